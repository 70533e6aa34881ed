package rlwe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a parameter identifier is unknown,
	// when a requested size or capacity is below CiphertextSizeMin, or when
	// the requested buffer length overflows.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned when a polynomial or coefficient index
	// is beyond the logical size of a ciphertext.
	ErrOutOfRange = errors.New("out of range")

	// ErrLogic is returned when an operation is called on an object
	// whose state does not allow it, e.g. reserving without a bound shape.
	ErrLogic = errors.New("logic error")
)

// wrapInvalidArgument tags err with ErrInvalidArgument unless it already is one.
func wrapInvalidArgument(op string, err error) error {
	if errors.Is(err, ErrInvalidArgument) {
		return fmt.Errorf("cannot %s: %w", op, err)
	}
	return fmt.Errorf("cannot %s: %w: %w", op, ErrInvalidArgument, err)
}
