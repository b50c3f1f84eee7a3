package genvec

import (
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

var baseAxes = []spatial.Vector{spatial.AxisTX, spatial.AxisTY, spatial.AxisTZ}

// MatchesLayout reports whether the position vector of m follows the
// floating-base layout: body 1 starts a FloatingBase decomposition (virtual
// TX, TY and TZ links ending in a spherical joint) and that spherical joint
// is the only one, so its w is the last q slot.
func MatchesLayout(m *model.Model) bool {
	if m.NumBodies() < 5 || m.QSize() != m.DOFCount()+1 {
		return false
	}

	body := 1
	for k, axis := range baseAxes {
		j := m.Joint(body)
		if !m.IsVirtual(body) || j.Kind != model.JointPrismatic || j.QIndex != k || j.Axes[0] != axis {
			return false
		}
		children := m.Children(body)
		if len(children) != 1 {
			return false
		}
		body = children[0]
	}

	j := m.Joint(body)
	return j.Kind == model.JointSpherical && j.QIndex == len(baseAxes)
}
