// Package gamepad defines gamepad handles and analog axis identifiers.
package gamepad

import "fmt"

// Handle identifies a connected gamepad slot.
type Handle uint16

// InvalidHandle marks an unassigned gamepad slot.
const InvalidHandle Handle = 0xFFFF

// IsValid returns true if h refers to a gamepad slot.
func (h Handle) IsValid() bool {
	return h != InvalidHandle
}

// Axis identifies an analog gamepad axis.
type Axis uint8

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisLeftZ
	AxisRightX
	AxisRightY
	AxisRightZ

	axisCount
)

var axisNames = [axisCount]string{
	AxisLeftX:  "LeftX",
	AxisLeftY:  "LeftY",
	AxisLeftZ:  "LeftZ",
	AxisRightX: "RightX",
	AxisRightY: "RightY",
	AxisRightZ: "RightZ",
}

// String returns the axis name.
func (a Axis) String() string {
	if a < axisCount {
		return axisNames[a]
	}
	return fmt.Sprintf("Axis(%d)", a)
}

// ParseAxis returns the axis with the given name.
func ParseAxis(name string) (Axis, bool) {
	for a, n := range axisNames {
		if n == name {
			return Axis(a), true
		}
	}
	return 0, false
}
