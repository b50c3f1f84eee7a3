package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrVirtualFanOut indicates a virtual body with more than one child. Such a
// body cannot stand for a single multi-DOF joint, so the hierarchy of the
// tree is ambiguous.
var ErrVirtualFanOut = errors.New("report: virtual body has more than one child")

// FanOutError identifies the offending virtual body and its children.
type FanOutError struct {
	Body       int
	Name       string
	Children   []int
	ChildNames []string
}

func (e *FanOutError) Error() string {
	return fmt.Sprintf("report: virtual body %d (name: %q) has %d children %v", e.Body, e.Name, len(e.Children), e.Children)
}

func (e *FanOutError) Unwrap() error {
	return ErrVirtualFanOut
}

// Diagnostic lists every child of the offending body, one per line.
func (e *FanOutError) Diagnostic() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cannot collapse virtual body %d (name: %s): it has more than one child:\n", e.Body, e.Name)
	for i, c := range e.Children {
		fmt.Fprintf(&sb, "  id: %d name: %s\n", c, e.ChildNames[i])
	}
	return sb.String()
}
