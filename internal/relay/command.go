package relay

import (
	"errors"
	"fmt"
)

// Operation is a lock-controller command verb.
type Operation string

// Operations understood by the lock controller firmware.
const (
	OpEnroll Operation = "ENROLL"
	OpDelete Operation = "DELETE"
)

// Command is a single instruction for the lock controller.
//
// Arg carries the operation's parameter: the display name for ENROLL,
// the biometric id for DELETE.
type Command struct {
	Op  Operation
	Arg string
}

// ErrInvalidCommand is returned when a command fails validation before send.
var ErrInvalidCommand = errors.New("invalid relay command")

// Validate checks the command is well-formed for the wire format.
func (c Command) Validate() error {
	switch c.Op {
	case OpEnroll, OpDelete:
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidCommand, c.Op)
	}
	if c.Arg == "" {
		return fmt.Errorf("%w: missing argument", ErrInvalidCommand)
	}
	return nil
}

// Encode renders the command in the controller's wire format, "OP:arg".
// The argument is carried verbatim; the firmware splits on the first colon.
func (c Command) Encode() string {
	return string(c.Op) + ":" + c.Arg
}
