// Package model ties a parsed OBJ mesh to its affine transform engine.
package model

import (
	"fmt"

	"github.com/philipparndt/goobj/internal/logger"
	"github.com/philipparndt/goobj/pkg/affine"
	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/matrix"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/philipparndt/goobj/pkg/transform"
	"go.uber.org/zap"
)

var (
	ErrInvalidArgument = matrix.ErrInvalidArgument
	ErrEmpty           = fmt.Errorf("model: vertex buffer is empty: %w", ErrInvalidArgument)
)

// Option configures a Model
type Option func(*Model)

// WithParserOptions passes options to every parse
func WithParserOptions(opts ...obj.Option) Option {
	return func(m *Model) {
		m.parserOpts = append(m.parserOpts, opts...)
	}
}

// WithNormalize controls whether a freshly loaded mesh is centered and
// scaled into the unit cube. It is on by default.
func WithNormalize(normalize bool) Option {
	return func(m *Model) {
		m.normalize = normalize
	}
}

// Model owns the geometry of the loaded file. It is not safe for concurrent
// use; see Live.
type Model struct {
	data       obj.ObjectData
	affine     *affine.Transform
	state      transform.Params
	path       string
	parserOpts []obj.Option
	normalize  bool
}

// New creates an empty model
func New(opts ...Option) *Model {
	m := &Model{
		state:     initialState(),
		normalize: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func initialState() transform.Params {
	return transform.Params{Scale: transform.Delta{X: 1, Y: 1, Z: 1}}
}

// loaded is a parsed mesh bound to its own transform, ready to replace the
// current one
type loaded struct {
	path   string
	data   obj.ObjectData
	affine *affine.Transform
}

func (m *Model) read(path string) (*loaded, error) {
	data, err := obj.Parse(path, m.parserOpts...)
	if err != nil {
		return nil, err
	}

	at := affine.New()
	if err := at.AddVertices(data.Vertices); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &loaded{path: path, data: data, affine: at}, nil
}

func (m *Model) commit(next *loaded) {
	m.path, m.data, m.affine = next.path, next.data, next.affine
	m.state = initialState()
	if m.normalize {
		// the buffer was checked non-empty when it was bound
		_ = m.ResetTransform()
	}
}

// Load replaces the geometry with the contents of path. On failure the
// previous geometry stays untouched.
func (m *Model) Load(path string) error {
	next, err := m.read(path)
	if err != nil {
		return err
	}
	m.commit(next)

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", m.data.VertexCount()),
		zap.Int("edges", m.data.EdgeCount()))
	return nil
}

// LoadFile is Load for callers that only show a message; errors are logged
func (m *Model) LoadFile(path string) (bool, string) {
	if err := m.Load(path); err != nil {
		logger.Error("error while loading file", zap.String("path", path), zap.Error(err))
		return false, err.Error()
	}
	return true, ""
}

// Path returns the file the current geometry was loaded from
func (m *Model) Path() string {
	return m.path
}

// Loaded reports whether any geometry is present
func (m *Model) Loaded() bool {
	return m.affine != nil
}

// Vertices returns the flat vertex buffer; callers must not modify it
func (m *Model) Vertices() []float32 {
	return m.data.Vertices
}

// Faces returns the edge list; callers must not modify it
func (m *Model) Faces() []uint32 {
	return m.data.Faces
}

// Data returns both buffers
func (m *Model) Data() obj.ObjectData {
	return m.data
}

// State returns the edits accumulated since the last reset
func (m *Model) State() transform.Params {
	return m.state
}

// CalculateBoundingBox returns the axis-aligned bounds of the current vertices
func (m *Model) CalculateBoundingBox() (geometry.BoundingBox, error) {
	box, ok := geometry.BoundsOf(m.data.Vertices)
	if !ok {
		return geometry.BoundingBox{}, ErrEmpty
	}
	return box, nil
}

// ResetTransform centers the mesh on the origin and scales its largest
// extent to 1. A mesh without extent is only centered.
func (m *Model) ResetTransform() error {
	box, err := m.CalculateBoundingBox()
	if err != nil {
		return err
	}

	size := box.MaxExtent()
	if size == 0 {
		size = 1
	}
	factor := float32(1 / size)
	center := box.Center()

	transform.Build(transform.General, transform.Params{
		Scale: transform.Delta{X: factor, Y: factor, Z: factor},
		Move: transform.Delta{
			X: float32(-center.X / size),
			Y: float32(-center.Y / size),
			Z: float32(-center.Z / size),
		},
	}).Apply(m.data.Vertices)

	m.affine.ResetTranslation()
	m.state = initialState()
	return nil
}

// Transform applies one edit to the vertices and records it
func (m *Model) Transform(p transform.Params) error {
	if m.affine == nil {
		return ErrEmpty
	}
	if err := m.affine.TransformVertices(p); err != nil {
		return err
	}

	m.state.Move = m.state.Move.Add(p.Move)
	m.state.Rotation = m.state.Rotation.Add(p.Rotation)
	if p.Scale.IsDelta() {
		m.state.Scale = transform.Delta{
			X: m.state.Scale.X * p.Scale.X,
			Y: m.state.Scale.Y * p.Scale.Y,
			Z: m.state.Scale.Z * p.Scale.Z,
		}
	}
	return nil
}
