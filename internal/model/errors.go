package model

import (
	"errors"
	"fmt"
)

// Domain errors for tree construction and kinematics.
var (
	// ErrInvalidParent indicates a parent id that does not name an existing body.
	ErrInvalidParent = errors.New("model: invalid parent body")

	// ErrUnknownBody indicates a lookup of a body that does not exist.
	ErrUnknownBody = errors.New("model: unknown body")

	// ErrDuplicateName indicates a body name that is already registered.
	ErrDuplicateName = errors.New("model: duplicate body name")

	// ErrInvalidJoint indicates a joint without axes or with an unsupported layout.
	ErrInvalidJoint = errors.New("model: invalid joint")

	// ErrOrdering indicates a body whose parent index is not smaller than its own.
	ErrOrdering = errors.New("model: parent index must be smaller than child index")

	// ErrDimensionMismatch indicates a q, qdot or qddot of the wrong size.
	ErrDimensionMismatch = errors.New("model: dimension mismatch between vector and model")
)

// DimensionError reports which generalized vector had the wrong size.
type DimensionError struct {
	Vector string
	Want   int
	Got    int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("model: %s has %d elements, model expects %d", e.Vector, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// OrderingError identifies the body that breaks the parent < child invariant.
type OrderingError struct {
	Body   int
	Parent int
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("model: body %d has parent %d", e.Body, e.Parent)
}

func (e *OrderingError) Unwrap() error {
	return ErrOrdering
}
