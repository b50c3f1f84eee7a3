package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
)

// Reporter renders text reports of a model. Reports read the tree and, for
// NamedBodyOrigins, run a kinematics update on it; a Reporter therefore
// shares the model's thread-safety rules.
type Reporter struct {
	// Logger receives a warning for every real body that ends up without a
	// name in a report. Nil disables the warnings.
	Logger *slog.Logger

	model *model.Model
}

func New(m *model.Model) *Reporter {
	return &Reporter{model: m}
}

func (r *Reporter) warn(msg string, body int) {
	if r.Logger == nil {
		return
	}
	r.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, slog.Int("body", body))
}

// DOFLabels returns "<body>_<dof>" for every generalized velocity slot, in
// body order.
func (r *Reporter) DOFLabels() []string {
	m := r.model
	labels := make([]string, 0, m.DOFCount())
	for i := 1; i < m.NumBodies(); i++ {
		name := ResolveName(m, model.Movable(i))
		if name == "" {
			r.warn("unresolved body name in dof overview", i)
		}
		for _, label := range jointLabels(m.Joint(i)) {
			labels = append(labels, name+"_"+label)
		}
	}
	return labels
}

// DOFOverview lists every generalized velocity slot as
// "<index>: <body>_<dof>".
func (r *Reporter) DOFOverview() string {
	var sb strings.Builder
	for idx, label := range r.DOFLabels() {
		fmt.Fprintf(&sb, "%3d: %s\n", idx, label)
	}
	return sb.String()
}

// NamedBodyOrigins lists the base-frame origin of every named movable body
// as "name(id): x y z", followed by every fixed body as
// "name(fixedIndex,fixedId): x y z". A nil q selects the zero configuration.
// The kinematic state of the model is left at q with zero velocity.
func (r *Reporter) NamedBodyOrigins(q []float64) (string, error) {
	m := r.model
	if q == nil {
		q = m.ZeroConfiguration()
	}
	if err := m.UpdateKinematics(q, nil, nil); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 0; i < m.NumBodies(); i++ {
		id := model.Movable(i)
		name := m.Name(id)
		if name == "" {
			if !m.IsVirtual(i) {
				r.warn("unnamed body skipped in origins", i)
			}
			continue
		}
		pos, err := m.BodyToBase(id, mgl64.Vec3{})
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s(%d): %s\n", name, i, formatVec(pos))
	}

	for i := 0; i < m.NumFixed(); i++ {
		id := model.Fixed(i)
		pos, err := m.BodyToBase(id, mgl64.Vec3{})
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s(%d,%d): %s\n", m.Name(id), i, id.Number(), formatVec(pos))
	}
	return sb.String(), nil
}

func formatVec(v mgl64.Vec3) string {
	parts := make([]string, len(v))
	for i, x := range v {
		if x == 0 {
			x = 0 // drop the sign of -0
		}
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return strings.Join(parts, " ")
}
