package keymap

import (
	"github.com/pkg/errors"

	"github.com/dshills/harness/internal/input/key"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the combination that triggers the binding.
	// Formats: "a", "f5", "ctrl+s", "ctrl+shift+tab"
	Keys string

	// Command is the command line executed when the binding fires.
	// It may hold several sub-commands separated by newlines.
	Command string

	// Description provides documentation for the binding.
	Description string
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys, command string) Binding {
	return Binding{
		Keys:    keys,
		Command: command,
	}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Validate checks that the binding has a parseable combination and a command.
func (b Binding) Validate() error {
	if b.Command == "" {
		return errors.Wrapf(ErrEmptyCommand, "binding %q", b.Keys)
	}
	_, err := parseChord(b.Keys)
	return err
}

// chord is the lookup key of a binding: a key plus side-less modifiers.
type chord struct {
	key  key.Key
	mods key.Modifier
}

func parseChord(keys string) (chord, error) {
	k, mods, ok := key.ParseCombo(keys)
	if !ok {
		return chord{}, errors.Wrapf(ErrInvalidKeys, "%q", keys)
	}
	return chord{key: k, mods: normalize(mods)}, nil
}

// normalize folds right-hand modifiers onto their left-hand bits.
func normalize(m key.Modifier) key.Modifier {
	var out key.Modifier
	if m.HasAlt() {
		out |= key.ModLeftAlt
	}
	if m.HasCtrl() {
		out |= key.ModLeftCtrl
	}
	if m.HasShift() {
		out |= key.ModLeftShift
	}
	if m.HasMeta() {
		out |= key.ModLeftMeta
	}
	return out
}
