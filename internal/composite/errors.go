package composite

import (
	"errors"
	"fmt"
)

// ErrDegenerateMass indicates a tree whose total mass is zero, for which
// center of mass and potential energy are undefined.
var ErrDegenerateMass = errors.New("composite: degenerate mass (total mass is not positive)")

type DegenerateMassError struct {
	Mass   float64
	Bodies int
}

func (e *DegenerateMassError) Error() string {
	return fmt.Sprintf("composite: total mass %g over %d bodies", e.Mass, e.Bodies)
}

func (e *DegenerateMassError) Unwrap() error {
	return ErrDegenerateMass
}
