package command

import "github.com/pkg/errors"

// Registration errors. Both indicate a programming error in the caller.
var (
	// ErrDuplicateCommand indicates a command with the same name is already registered.
	ErrDuplicateCommand = errors.New("command: already registered")

	// ErrHashCollision indicates a different command name hashes to the same slot.
	ErrHashCollision = errors.New("command: name hash collides with a registered command")

	// ErrInvalidCommand indicates an empty name or nil handler.
	ErrInvalidCommand = errors.New("command: invalid command")
)
