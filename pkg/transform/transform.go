// Package transform builds 4x4 homogeneous transform matrices for the
// row-vector convention (point × matrix, translation in row 3).
package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goobj/pkg/matrix"
)

// Delta is an (x, y, z) triple used for offsets, scale factors and angles
type Delta struct {
	X, Y, Z float32
}

// IsDelta reports whether any component is non-zero
func (d Delta) IsDelta() bool {
	return d.X != 0 || d.Y != 0 || d.Z != 0
}

// IsZero is the negation of IsDelta
func (d Delta) IsZero() bool {
	return !d.IsDelta()
}

// Add returns the component-wise sum
func (d Delta) Add(other Delta) Delta {
	return Delta{X: d.X + other.X, Y: d.Y + other.Y, Z: d.Z + other.Z}
}

// Neg returns the negated triple
func (d Delta) Neg() Delta {
	return Delta{X: -d.X, Y: -d.Y, Z: -d.Z}
}

// Params is one atomic edit: scale factors, translation and rotation in radians
type Params struct {
	Scale    Delta
	Move     Delta
	Rotation Delta
}

// Kind selects which transform a Matrix represents
type Kind int

const (
	Identity Kind = iota
	Move
	Scale
	RotateX
	RotateY
	RotateZ
	Rotate
	General
)

var kindNames = [...]string{"identity", "move", "scale", "rotate-x", "rotate-y", "rotate-z", "rotate", "general"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a kind name back into a Kind
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return Identity, fmt.Errorf("unknown transform kind %q", name)
}

// Matrix is a 4x4 homogeneous transform
type Matrix struct {
	m *matrix.Matrix
}

// NewIdentity returns the 4x4 identity transform
func NewIdentity() *Matrix {
	return &Matrix{m: matrix.Identity(4)}
}

// Build creates a matrix of the given kind for p
func Build(kind Kind, p Params) *Matrix {
	t := NewIdentity()
	t.Set(kind, p)
	return t
}

// Set overwrites the matrix so that it represents kind applied with p
func (t *Matrix) Set(kind Kind, p Params) {
	t.m = matrix.Identity(4)

	switch kind {
	case Move:
		t.put(3, 0, float64(p.Move.X))
		t.put(3, 1, float64(p.Move.Y))
		t.put(3, 2, float64(p.Move.Z))
	case Scale:
		t.put(0, 0, float64(p.Scale.X))
		t.put(1, 1, float64(p.Scale.Y))
		t.put(2, 2, float64(p.Scale.Z))
	case RotateX:
		c, s := cosSin(p.Rotation.X)
		t.put(1, 1, c)
		t.put(2, 2, c)
		t.put(1, 2, s)
		t.put(2, 1, -s)
	case RotateY:
		c, s := cosSin(p.Rotation.Y)
		t.put(0, 0, c)
		t.put(2, 2, c)
		t.put(0, 2, -s)
		t.put(2, 0, s)
	case RotateZ:
		c, s := cosSin(p.Rotation.Z)
		t.put(0, 0, c)
		t.put(1, 1, c)
		t.put(0, 1, s)
		t.put(1, 0, -s)
	case Rotate:
		// X, then Y, then Z; the order is part of the result
		t.compose(RotateX, p)
		t.compose(RotateY, p)
		t.compose(RotateZ, p)
	case General:
		if p.Scale.IsDelta() {
			t.compose(Scale, p)
		}
		if p.Rotation.IsDelta() {
			t.compose(Rotate, p)
		}
		if p.Move.IsDelta() {
			t.compose(Move, p)
		}
	}
}

func cosSin(angle float32) (float64, float64) {
	a := float64(angle)
	return math.Cos(a), math.Sin(a)
}

func (t *Matrix) put(i, j int, v float64) {
	// indices are constant and always inside the 4x4 grid
	_ = t.m.Set(i, j, v)
}

// compose right-multiplies t by a freshly built matrix of the given kind
func (t *Matrix) compose(kind Kind, p Params) {
	// 4x4 by 4x4 always has matching shapes
	_ = t.m.MulMatrix(Build(kind, p).m)
}

// At returns element (i, j); it panics outside the 4x4 grid
func (t *Matrix) At(i, j int) float64 {
	return t.Values()[i*4+j]
}

// Values returns the 16 elements in row-major order
func (t *Matrix) Values() [16]float64 {
	var out [16]float64
	copy(out[:], t.m.Elements())
	return out
}

// IsIdentity reports whether the matrix is exactly the identity
func (t *Matrix) IsIdentity() bool {
	for i, v := range t.Values() {
		want := 0.0
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			return false
		}
	}
	return true
}

// Equal compares two transforms within matrix.EqualTolerance
func (t *Matrix) Equal(other *Matrix) bool {
	return t.m.Equal(other.m)
}

// Determinant returns the determinant of the transform
func (t *Matrix) Determinant() (float64, error) {
	return t.m.Determinant()
}

// Inverse returns the inverse transform; degenerate transforms (for example a
// zero scale factor) fail with matrix.ErrInvalidArgument.
func (t *Matrix) Inverse() (*Matrix, error) {
	inv, err := t.m.InverseMatrix()
	if err != nil {
		return nil, err
	}
	return &Matrix{m: inv}, nil
}

// Apply transforms every vertex of a flat stride-3 buffer in place as
// [x y z 1] × M, keeping the first three components.
func (t *Matrix) Apply(vertices []float32) {
	m := t.Values()
	n := len(vertices) - len(vertices)%3
	for i := 0; i < n; i += 3 {
		x, y, z := float64(vertices[i]), float64(vertices[i+1]), float64(vertices[i+2])
		vertices[i] = float32(x*m[0] + y*m[4] + z*m[8] + m[12])
		vertices[i+1] = float32(x*m[1] + y*m[5] + z*m[9] + m[13])
		vertices[i+2] = float32(x*m[2] + y*m[6] + z*m[10] + m[14])
	}
}

// Mat4 converts the transform into mathgl's column-vector convention. The
// row-major values of a row-vector matrix are exactly the column-major
// storage of its transpose.
func (t *Matrix) Mat4() mgl64.Mat4 {
	return mgl64.Mat4(t.Values())
}

// Mat4f is Mat4 in single precision, ready for GL uniform upload
func (t *Matrix) Mat4f() mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range t.Values() {
		out[i] = float32(v)
	}
	return out
}

func (t *Matrix) String() string {
	return t.m.String()
}
