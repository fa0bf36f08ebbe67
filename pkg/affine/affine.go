// Package affine applies incremental transforms to a bound vertex buffer.
//
// Scale and rotation pivot around the object's accumulated translation, so an
// object that was moved away from the origin still turns in place. Moves
// compose globally and accumulate.
package affine

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/matrix"
	"github.com/philipparndt/goobj/pkg/transform"
)

// ErrInvalidArgument is returned for unusable buffers and unbound transforms
var ErrInvalidArgument = matrix.ErrInvalidArgument

// Transform holds the last composite matrix and the accumulated translation.
// It does not own the vertex buffer; it mutates the caller's slice in place.
type Transform struct {
	matrix      *transform.Matrix
	translation transform.Delta
	vertices    []float32
}

// New creates an unbound transform with an identity matrix
func New() *Transform {
	return &Transform{
		matrix: transform.Build(transform.General, transform.Params{}),
	}
}

// AddVertices binds the vertex buffer. The first successful bind wins;
// later calls validate their argument but keep the original buffer.
func (a *Transform) AddVertices(vertices []float32) error {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return fmt.Errorf("bind %d floats: need a non-empty multiple of 3: %w", len(vertices), ErrInvalidArgument)
	}
	if a.vertices == nil {
		a.vertices = vertices
	}
	return nil
}

// Bound reports whether a vertex buffer is bound
func (a *Transform) Bound() bool {
	return a.vertices != nil
}

// Vertices returns the bound buffer
func (a *Transform) Vertices() []float32 {
	return a.vertices
}

// Translation returns the displacement accumulated since the buffer was bound
func (a *Transform) Translation() transform.Delta {
	return a.translation
}

// ResetTranslation forgets the accumulated displacement
func (a *Transform) ResetTranslation() {
	a.translation = transform.Delta{}
}

// Matrix returns the composite matrix of the last edit, without the pivot moves
func (a *Transform) Matrix() *transform.Matrix {
	return a.matrix
}

// TransformVertices applies one edit to the bound buffer
func (a *Transform) TransformVertices(p transform.Params) error {
	if a.vertices == nil {
		return fmt.Errorf("transform: no vertices bound: %w", ErrInvalidArgument)
	}

	pivoted := a.translation.IsDelta()
	if pivoted {
		a.apply(transform.Params{Move: a.translation.Neg()})
	}
	a.matrix = a.apply(p)
	if pivoted {
		a.apply(transform.Params{Move: a.translation})
	}

	a.translation = a.translation.Add(p.Move)
	return nil
}

func (a *Transform) apply(p transform.Params) *transform.Matrix {
	m := transform.Build(transform.General, p)
	if !m.IsIdentity() {
		m.Apply(a.vertices)
	}
	return m
}
