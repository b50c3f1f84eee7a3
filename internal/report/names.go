package report

import "github.com/san-kum/dyntree/internal/model"

// ResolveName returns the report name of id. A virtual body borrows the
// name of the first real body down its single-child chain; when the chain
// forks or ends in a virtual leaf the name is empty.
func ResolveName(m *model.Model, id model.BodyID) string {
	if id.IsFixed() {
		return m.Name(id)
	}

	i := id.Index
	for i >= 0 && i < m.NumBodies() && m.IsVirtual(i) {
		children := m.Children(i)
		if len(children) != 1 {
			return ""
		}
		i = children[0]
	}
	return m.Name(model.Movable(i))
}
