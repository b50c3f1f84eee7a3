package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dyntree/internal/composite"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/report"
)

const (
	canvasWidth     = 40
	canvasHeight    = 18
	historyCapacity = 120
	defaultStep     = 0.1
)

// Inspector is a bubbletea model that edits the configuration of a tree one
// slot at a time and shows its drawing, mass properties and energies.
// Rotational slots of spherical joints edit the quaternion vector part.
type Inspector struct {
	name   string
	tree   *model.Model
	acc    *composite.Accumulator
	labels []string

	q, q0, qdot []float64
	cursor      int
	step        float64

	mass      composite.Mass
	energy    composite.Energy
	err       error
	peHistory []float64

	theme  Theme
	styles Styles
	canvas *Canvas
}

// NewInspector starts at q (nil selects the zero configuration) with the
// fixed joint velocities qdot (nil means at rest).
func NewInspector(name string, m *model.Model, q, qdot []float64) (*Inspector, error) {
	if q == nil {
		q = m.ZeroConfiguration()
	}
	if len(q) != m.QSize() {
		return nil, &model.DimensionError{Vector: "q", Want: m.QSize(), Got: len(q)}
	}
	if qdot != nil && len(qdot) != m.DOFCount() {
		return nil, &model.DimensionError{Vector: "qdot", Want: m.DOFCount(), Got: len(qdot)}
	}

	in := &Inspector{
		name:   name,
		tree:   m,
		acc:    composite.NewAccumulator(m),
		labels: report.New(m).DOFLabels(),
		q:      append([]float64(nil), q...),
		q0:     append([]float64(nil), q...),
		qdot:   qdot,
		step:   defaultStep,
		theme:  Themes[0],
		styles: NewStyles(Themes[0]),
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}
	in.evaluate()
	return in, nil
}

func (in *Inspector) Init() tea.Cmd { return nil }

func (in *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return in, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return in, tea.Quit
	case "up", "k":
		if in.cursor > 0 {
			in.cursor--
		}
	case "down", "j":
		if in.cursor < len(in.labels)-1 {
			in.cursor++
		}
	case "left", "h":
		in.nudge(-1)
	case "right", "l":
		in.nudge(1)
	case "+", "=":
		in.step *= 2
	case "-":
		in.step /= 2
	case "r":
		copy(in.q, in.q0)
		in.peHistory = in.peHistory[:0]
		in.evaluate()
	case "p":
		in.canvas.Plane = (in.canvas.Plane + 1) % 3
	case "t":
		in.theme = NextTheme(in.theme)
		in.styles = NewStyles(in.theme)
	}
	return in, nil
}

func (in *Inspector) nudge(dir float64) {
	if len(in.labels) == 0 {
		return
	}
	in.q[in.cursor] += dir * in.step
	in.evaluate()
}

func (in *Inspector) evaluate() {
	in.mass, in.err = in.acc.CenterOfMass(in.tree, in.q, in.qdot, true)
	if in.err != nil {
		return
	}
	in.energy.Kinetic, in.err = in.acc.KineticEnergy(in.tree, in.q, in.qdot, false)
	if in.err != nil {
		return
	}
	in.energy.Potential, in.err = in.acc.PotentialEnergy(in.tree, in.q, false)
	if in.err != nil {
		return
	}

	in.peHistory = append(in.peHistory, in.energy.Potential)
	if len(in.peHistory) > historyCapacity {
		in.peHistory = in.peHistory[1:]
	}
}

// Configuration returns the current q.
func (in *Inspector) Configuration() []float64 {
	return append([]float64(nil), in.q...)
}

func (in *Inspector) Mass() composite.Mass { return in.mass }

func (in *Inspector) Energy() composite.Energy { return in.energy }

func (in *Inspector) View() string {
	in.draw()
	s := in.styles

	var b strings.Builder
	b.WriteString(s.Title.Render(strings.ToUpper(in.name)) + "\n\n")
	if in.err != nil {
		b.WriteString(s.Error.Render(in.err.Error()) + "\n\n")
	}

	for i, label := range in.labels {
		line := fmt.Sprintf("%3d %-22s %8.3f", i, label, in.q[i])
		if i == in.cursor {
			b.WriteString(s.Active.Render("▸"+line) + "\n")
		} else {
			b.WriteString(" " + s.Subtle.Render(line) + "\n")
		}
	}
	if len(in.labels) == 0 {
		b.WriteString(s.Subtle.Render("  (no degrees of freedom)") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(s.KeyValue("mass", "%.4g", in.mass.Total) + "\n")
	b.WriteString(s.KeyValue("com", "%s", fmtVec(in.mass.CoM)) + "\n")
	b.WriteString(s.KeyValue("com vel", "%s", fmtVec(in.mass.CoMVelocity)) + "\n")
	b.WriteString(s.KeyValue("ang mom", "%s", fmtVec(in.mass.AngularMomentum)) + "\n")
	b.WriteString(s.KeyValue("kinetic", "%.4g", in.energy.Kinetic) + "\n")
	b.WriteString(s.KeyValue("potential", "%.4g", in.energy.Potential) + "\n")
	b.WriteString(s.KeyValue("step", "%.4g", in.step) + "\n")

	if len(in.peHistory) > 1 {
		chart := asciigraph.Plot(in.peHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("potential"))
		b.WriteString("\n" + s.Joints.Render(chart) + "\n")
	}

	b.WriteString("\n" + s.KeyHint.Render("j/k select  h/l adjust  +/- step  p plane  t theme  r reset  q quit"))

	left := s.Panel.Render(s.Subtle.Render(in.canvas.Plane.String()) + "\n" + in.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", b.String())
}

func (in *Inspector) draw() {
	in.canvas.Clear()
	if in.err != nil {
		return
	}
	DrawTree(in.canvas, in.tree, in.mass.CoM)
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("%7.3f %7.3f %7.3f", v[0], v[1], v[2])
}

// RunInspector opens the inspector full screen.
func RunInspector(name string, m *model.Model, q, qdot []float64) error {
	in, err := NewInspector(name, m, q, qdot)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(in, tea.WithAltScreen()).Run()
	return err
}
