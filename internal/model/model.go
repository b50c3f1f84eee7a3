package model

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/spatial"
)

// FixedBodyDiscriminator is the numeric offset at which fixed bodies start
// in the flat id space used by text reports.
const FixedBodyDiscriminator = 1<<31 - 1

// RootName is the name registered for body 0.
const RootName = "ROOT"

type BodyKind uint8

const (
	KindMovable BodyKind = iota
	KindFixed
)

// BodyID identifies either a movable body (an index into the body table)
// or a fixed body (an index into the fixed-body table).
type BodyID struct {
	Kind  BodyKind
	Index int
}

func Movable(index int) BodyID { return BodyID{Kind: KindMovable, Index: index} }
func Fixed(index int) BodyID   { return BodyID{Kind: KindFixed, Index: index} }

// Root is the world body.
var Root = Movable(0)

func (id BodyID) IsFixed() bool { return id.Kind == KindFixed }

// Number returns the flat numeric id: the index for movable bodies and
// FixedBodyDiscriminator+index for fixed ones.
func (id BodyID) Number() int {
	if id.IsFixed() {
		return FixedBodyDiscriminator + id.Index
	}
	return id.Index
}

func (id BodyID) String() string {
	if id.IsFixed() {
		return fmt.Sprintf("fixed(%d)", id.Index)
	}
	return fmt.Sprintf("movable(%d)", id.Index)
}

// Body is a node of the kinematic tree.
type Body struct {
	Name     string
	Virtual  bool
	Inertia  spatial.Inertia
	Parent   int
	Children []int
}

// FixedBody is a body welded to a movable parent.
type FixedBody struct {
	Name string
	// Parent is the index of the movable body the fixed body hangs off.
	Parent    int
	Transform spatial.Transform
	Inertia   spatial.Inertia
}

// Model is a kinematic tree stored as an arena of bodies addressed by index.
// Body 0 is the root. Every body's parent index is smaller than its own.
//
// Model also holds the kinematic state written by UpdateKinematics. It is
// not safe for concurrent use; use Clone to give each goroutine its own copy.
type Model struct {
	Gravity mgl64.Vec3

	bodies    []Body
	joints    []Joint
	placement []spatial.Transform
	fixed     []FixedBody
	names     map[string]BodyID

	dofCount   int
	nSpherical int

	xLambda []spatial.Transform
	xBase   []spatial.Transform
	v       []spatial.Vector
	a       []spatial.Vector
}

func New() *Model {
	return &Model{
		Gravity:   mgl64.Vec3{0, 0, -9.81},
		bodies:    []Body{{Name: RootName}},
		joints:    []Joint{{Kind: JointFixed}},
		placement: []spatial.Transform{spatial.Identity()},
		names:     map[string]BodyID{RootName: Root},
		xLambda:   []spatial.Transform{spatial.Identity()},
		xBase:     []spatial.Transform{spatial.Identity()},
		v:         []spatial.Vector{{}},
		a:         []spatial.Vector{{}},
	}
}

// AddBody attaches a body to parent through joint. placement is the joint
// frame relative to the parent frame. Multi-DOF joints are split into a
// chain of virtual bodies; the returned id is the body carrying the inertia
// and the name. Empty names are allowed and are not registered.
func (m *Model) AddBody(parent BodyID, placement spatial.Transform, joint Joint, inertia spatial.Inertia, name string) (BodyID, error) {
	return m.add(parent, placement, joint, inertia, name, false)
}

// AddVirtualBody attaches a massless body. Virtual bodies take their
// report name from their single child.
func (m *Model) AddVirtualBody(parent BodyID, placement spatial.Transform, joint Joint, name string) (BodyID, error) {
	return m.add(parent, placement, joint, spatial.Inertia{}, name, true)
}

func (m *Model) add(parent BodyID, placement spatial.Transform, joint Joint, inertia spatial.Inertia, name string, virtual bool) (BodyID, error) {
	if name != "" {
		if _, ok := m.names[name]; ok {
			return BodyID{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	pidx, placement, err := m.resolveParent(parent, placement)
	if err != nil {
		return BodyID{}, err
	}

	var id BodyID
	switch joint.Kind {
	case JointFixed:
		m.fixed = append(m.fixed, FixedBody{
			Name:      name,
			Parent:    pidx,
			Transform: placement,
			Inertia:   inertia,
		})
		m.bodies[pidx].Inertia = m.bodies[pidx].Inertia.Add(placement.ApplyTransposeInertia(inertia))
		id = Fixed(len(m.fixed) - 1)

	case JointRevolute, JointPrismatic, JointHelical:
		if len(joint.Axes) != 1 {
			return BodyID{}, fmt.Errorf("%w: %s joint needs exactly one axis, got %d", ErrInvalidJoint, joint.Kind, len(joint.Axes))
		}
		if err := checkAxis(joint.Axes[0]); err != nil {
			return BodyID{}, err
		}
		id = m.appendBody(pidx, placement, joint, inertia, virtual)

	case JointSpherical:
		if len(joint.Axes) != 3 {
			return BodyID{}, fmt.Errorf("%w: spherical joint needs three axes", ErrInvalidJoint)
		}
		id = m.appendBody(pidx, placement, joint, inertia, virtual)

	case JointMultiAxis:
		if len(joint.Axes) == 0 {
			return BodyID{}, fmt.Errorf("%w: multi-axis joint without axes", ErrInvalidJoint)
		}
		for _, axis := range joint.Axes {
			if err := checkAxis(axis); err != nil {
				return BodyID{}, err
			}
		}
		cur, xt := pidx, placement
		last := len(joint.Axes) - 1
		for _, axis := range joint.Axes[:last] {
			cur = m.appendBody(cur, xt, singleAxis(axis), spatial.Inertia{}, true).Index
			xt = spatial.Identity()
		}
		id = m.appendBody(cur, xt, singleAxis(joint.Axes[last]), inertia, virtual)

	case JointFloatingBase:
		cur, xt := pidx, placement
		for _, axis := range []spatial.Vector{spatial.AxisTX, spatial.AxisTY, spatial.AxisTZ} {
			cur = m.appendBody(cur, xt, singleAxis(axis), spatial.Inertia{}, true).Index
			xt = spatial.Identity()
		}
		id = m.appendBody(cur, xt, Spherical(), inertia, virtual)

	default:
		return BodyID{}, fmt.Errorf("%w: unsupported kind %d", ErrInvalidJoint, joint.Kind)
	}

	if id.IsFixed() {
		m.fixed[id.Index].Name = name
	} else {
		m.bodies[id.Index].Name = name
	}
	if name != "" {
		m.names[name] = id
	}
	return id, nil
}

// resolveParent maps a parent id to its movable body index. Fixed parents
// are replaced by their movable parent with the fixed transform folded into
// the placement.
func (m *Model) resolveParent(parent BodyID, placement spatial.Transform) (int, spatial.Transform, error) {
	if parent.IsFixed() {
		if parent.Index < 0 || parent.Index >= len(m.fixed) {
			return 0, placement, fmt.Errorf("%w: %s", ErrInvalidParent, parent)
		}
		f := m.fixed[parent.Index]
		return f.Parent, placement.Mul(f.Transform), nil
	}
	if parent.Index < 0 || parent.Index >= len(m.bodies) {
		return 0, placement, fmt.Errorf("%w: %s", ErrInvalidParent, parent)
	}
	return parent.Index, placement, nil
}

// axisTolerance bounds how far a rotation axis may stray from unit length.
const axisTolerance = 1e-9

// checkAxis accepts a non-zero axis whose angular part is zero or of unit
// length. The joint transform rotates by q about the normalized angular
// part while the joint velocity is axis*qdot, so any other length makes
// the two disagree.
func checkAxis(axis spatial.Vector) error {
	if axis.IsZero() {
		return fmt.Errorf("%w: zero joint axis", ErrInvalidJoint)
	}
	for _, c := range axis {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite joint axis %v", ErrInvalidJoint, axis)
		}
	}
	w := axis.Angular()
	if w == (mgl64.Vec3{}) {
		return nil
	}
	if l := w.Len(); !(math.Abs(l-1) <= axisTolerance) {
		return fmt.Errorf("%w: rotation part of axis %v has length %g, want 1", ErrInvalidJoint, axis, l)
	}
	return nil
}

func singleAxis(axis spatial.Vector) Joint {
	switch {
	case axis.Linear() == (mgl64.Vec3{}):
		return axisJoint(JointRevolute, axis)
	case axis.Angular() == (mgl64.Vec3{}):
		return axisJoint(JointPrismatic, axis)
	}
	return axisJoint(JointHelical, axis)
}

func (m *Model) appendBody(parent int, placement spatial.Transform, joint Joint, inertia spatial.Inertia, virtual bool) BodyID {
	idx := len(m.bodies)

	joint.Axes = append([]spatial.Vector(nil), joint.Axes...)
	joint.QIndex = m.dofCount
	m.dofCount += joint.DOF()
	if joint.Kind == JointSpherical {
		m.nSpherical++
	}

	m.bodies = append(m.bodies, Body{
		Virtual: virtual,
		Inertia: inertia,
		Parent:  parent,
	})
	m.bodies[parent].Children = append(m.bodies[parent].Children, idx)
	m.joints = append(m.joints, joint)
	m.placement = append(m.placement, placement)
	m.xLambda = append(m.xLambda, spatial.Identity())
	m.xBase = append(m.xBase, spatial.Identity())
	m.v = append(m.v, spatial.Vector{})
	m.a = append(m.a, spatial.Vector{})

	// quaternion scalars live after all DOF slots, one per spherical joint
	k := 0
	for i := range m.joints {
		if m.joints[i].Kind == JointSpherical {
			m.joints[i].WIndex = m.dofCount + k
			k++
		}
	}

	return Movable(idx)
}

// Validate re-checks the structural invariants of the tree.
func (m *Model) Validate() error {
	for i := 1; i < len(m.bodies); i++ {
		p := m.bodies[i].Parent
		if p < 0 || p >= i {
			return &OrderingError{Body: i, Parent: p}
		}
		found := false
		for _, c := range m.bodies[p].Children {
			if c == i {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: body %d missing from children of %d", ErrInvalidParent, i, p)
		}
	}
	for i, f := range m.fixed {
		if f.Parent < 0 || f.Parent >= len(m.bodies) {
			return fmt.Errorf("%w: fixed body %d has parent %d", ErrInvalidParent, i, f.Parent)
		}
	}
	return nil
}

// NumBodies returns the number of movable bodies including the root.
func (m *Model) NumBodies() int { return len(m.bodies) }

func (m *Model) NumFixed() int { return len(m.fixed) }

// DOFCount is the size of qdot.
func (m *Model) DOFCount() int { return m.dofCount }

// QSize is the size of q: one slot per DOF plus one per spherical joint.
func (m *Model) QSize() int { return m.dofCount + m.nSpherical }

// Body returns body i. The Children slice must not be modified.
func (m *Model) Body(i int) Body { return m.bodies[i] }

func (m *Model) Children(i int) []int { return m.bodies[i].Children }

func (m *Model) IsVirtual(i int) bool { return m.bodies[i].Virtual }

func (m *Model) Joint(i int) Joint { return m.joints[i] }

func (m *Model) FixedBody(i int) FixedBody { return m.fixed[i] }

// Name returns the stored name of id, or "" for unnamed or unknown bodies.
func (m *Model) Name(id BodyID) string {
	if id.IsFixed() {
		if id.Index < 0 || id.Index >= len(m.fixed) {
			return ""
		}
		return m.fixed[id.Index].Name
	}
	if id.Index < 0 || id.Index >= len(m.bodies) {
		return ""
	}
	return m.bodies[id.Index].Name
}

// BodyID looks a body up by name.
func (m *Model) BodyID(name string) (BodyID, error) {
	id, ok := m.names[name]
	if !ok {
		return BodyID{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return id, nil
}

// Parent returns the movable parent index of id.
func (m *Model) Parent(id BodyID) (int, error) {
	if err := m.check(id); err != nil {
		return 0, err
	}
	if id.IsFixed() {
		return m.fixed[id.Index].Parent, nil
	}
	return m.bodies[id.Index].Parent, nil
}

// ParentTransform returns the transform from the parent frame into the
// body frame as of the last kinematics update.
func (m *Model) ParentTransform(id BodyID) (spatial.Transform, error) {
	if err := m.check(id); err != nil {
		return spatial.Transform{}, err
	}
	if id.IsFixed() {
		return m.fixed[id.Index].Transform, nil
	}
	return m.xLambda[id.Index], nil
}

func (m *Model) check(id BodyID) error {
	n := len(m.bodies)
	if id.IsFixed() {
		n = len(m.fixed)
	}
	if id.Index < 0 || id.Index >= n {
		return fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	return nil
}

// ZeroConfiguration returns the q of the reference pose: all joint values
// zero and identity quaternions for spherical joints.
func (m *Model) ZeroConfiguration() []float64 {
	q := make([]float64, m.QSize())
	for _, j := range m.joints {
		if j.Kind == JointSpherical {
			q[j.WIndex] = 1
		}
	}
	return q
}

// Clone returns a deep copy, kinematic state included.
func (m *Model) Clone() *Model {
	c := *m
	c.bodies = make([]Body, len(m.bodies))
	for i, b := range m.bodies {
		b.Children = append([]int(nil), b.Children...)
		c.bodies[i] = b
	}
	c.joints = make([]Joint, len(m.joints))
	for i, j := range m.joints {
		j.Axes = append([]spatial.Vector(nil), j.Axes...)
		c.joints[i] = j
	}
	c.placement = append([]spatial.Transform(nil), m.placement...)
	c.fixed = append([]FixedBody(nil), m.fixed...)
	c.names = make(map[string]BodyID, len(m.names))
	for k, v := range m.names {
		c.names[k] = v
	}
	c.xLambda = append([]spatial.Transform(nil), m.xLambda...)
	c.xBase = append([]spatial.Transform(nil), m.xBase...)
	c.v = append([]spatial.Vector(nil), m.v...)
	c.a = append([]spatial.Vector(nil), m.a...)
	return &c
}
