// Package mouse defines the mouse button identifiers carried by mouse events.
package mouse
