package report

import (
	"strings"

	"github.com/san-kum/dyntree/internal/model"
)

type hierarchyItem struct {
	body   int
	indent int
	// fixedOf is set for the deferred fixed-body listing of a collapsed chain
	fixedOf []int
}

// Hierarchy renders the tree one body per line, children indented by two
// spaces. A chain of virtual bodies collapses into the line of the real
// body at its end, listing the DOF labels of every link:
//
//	ROOT
//	  pelvis [ TX, TY, TZ, RX, RY, RZ ]
//	    thigh [ RY ]
//	    camera [fixed]
//
// A virtual body with several children makes the collapse ambiguous; the
// call then returns a *FanOutError and no output.
func (r *Reporter) Hierarchy() (string, error) {
	m := r.model
	var sb strings.Builder

	stack := []hierarchyItem{{body: 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.fixedOf != nil {
			r.writeFixed(&sb, it.fixedOf, it.indent)
			continue
		}

		chain, end, err := collapse(m, it.body)
		if err != nil {
			return "", err
		}

		name := ResolveName(m, model.Movable(it.body))
		if name == "" && it.body != 0 {
			r.warn("unnamed body in hierarchy", it.body)
		}
		sb.WriteString(strings.Repeat("  ", it.indent))
		sb.WriteString(name)
		if it.body > 0 {
			var labels []string
			for _, b := range chain {
				labels = append(labels, jointLabels(m.Joint(b))...)
			}
			if end {
				labels = append(labels, "end")
			}
			sb.WriteString(" [ " + strings.Join(labels, ", ") + " ]")
		}
		sb.WriteByte('\n')

		// fixed bodies print after all movable children
		stack = append(stack, hierarchyItem{fixedOf: chain, indent: it.indent + 1})
		children := m.Children(chain[len(chain)-1])
		for k := len(children) - 1; k >= 0; k-- {
			stack = append(stack, hierarchyItem{body: children[k], indent: it.indent + 1})
		}
	}
	return sb.String(), nil
}

// collapse follows the single-child chain of virtual bodies starting at
// body. It returns the visited bodies, ending with the first real body or
// with a childless virtual body (end set).
func collapse(m *model.Model, body int) (chain []int, end bool, err error) {
	chain = []int{body}
	for m.IsVirtual(body) {
		children := m.Children(body)
		switch len(children) {
		case 0:
			return chain, true, nil
		case 1:
			body = children[0]
			chain = append(chain, body)
		default:
			return nil, false, fanOut(m, body)
		}
	}
	return chain, false, nil
}

func fanOut(m *model.Model, body int) *FanOutError {
	children := m.Children(body)
	e := &FanOutError{
		Body:       body,
		Name:       m.Name(model.Movable(body)),
		Children:   append([]int(nil), children...),
		ChildNames: make([]string, len(children)),
	}
	for i, c := range children {
		e.ChildNames[i] = m.Name(model.Movable(c))
	}
	return e
}

func (r *Reporter) writeFixed(sb *strings.Builder, chain []int, indent int) {
	m := r.model
	for i := 0; i < m.NumFixed(); i++ {
		f := m.FixedBody(i)
		for _, b := range chain {
			if f.Parent == b {
				sb.WriteString(strings.Repeat("  ", indent))
				sb.WriteString(f.Name + " [fixed]\n")
				break
			}
		}
	}
}
