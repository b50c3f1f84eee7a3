package genvec

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch indicates an output or input vector whose length does not
// match the generalized layout for the given number of joints.
var ErrSizeMismatch = errors.New("genvec: size mismatch")

// SizeError names the offending vector and both sizes.
type SizeError struct {
	Vector string
	Joints int
	Want   int
	Got    int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("genvec: %s vector has %d elements, want %d for %d joint values", e.Vector, e.Got, e.Want, e.Joints)
}

func (e *SizeError) Unwrap() error {
	return ErrSizeMismatch
}
