package controller

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/goobj/pkg/model"
	"github.com/philipparndt/goobj/pkg/transform"
)

const cubeFile = "../../pkg/obj/testdata/cube.obj"

type recordingView struct {
	updates  int
	vertices []float32
	errors   []string
	resets   int
}

func (v *recordingView) SetModelData(vertices []float32, faces []uint32) {
	v.updates++
	v.vertices = vertices
}

func (v *recordingView) ShowError(message string) {
	v.errors = append(v.errors, message)
}

func (v *recordingView) ResetSliders() {
	v.resets++
}

func newLoaded(t *testing.T) (*Controller, *model.Model, *recordingView) {
	t.Helper()
	m := model.New()
	view := &recordingView{}
	c := New(m, view)
	if !c.LoadModel(cubeFile) {
		t.Fatalf("LoadModel failed: %v", view.errors)
	}
	return c, m, view
}

func TestLoadModel(t *testing.T) {
	_, m, view := newLoaded(t)

	if view.updates != 1 || view.resets != 1 {
		t.Errorf("expected one update and one reset, got %d/%d", view.updates, view.resets)
	}
	if len(view.vertices) != len(m.Vertices()) {
		t.Errorf("expected the view to receive %d floats, got %d", len(m.Vertices()), len(view.vertices))
	}
}

func TestLoadModelFailure(t *testing.T) {
	view := &recordingView{}
	c := New(model.New(), view)

	if c.LoadModel("missing.obj") {
		t.Fatal("expected LoadModel to fail")
	}
	if len(view.errors) != 1 || !strings.HasPrefix(view.errors[0], "Failed to load model: ") {
		t.Errorf("unexpected errors %v", view.errors)
	}
	if view.updates != 0 {
		t.Errorf("expected no geometry update, got %d", view.updates)
	}
}

func TestOnMove(t *testing.T) {
	c, m, view := newLoaded(t)
	x := m.Vertices()[0]

	if err := c.OnMove(2, X); err != nil {
		t.Fatalf("OnMove failed: %v", err)
	}
	if got := m.Vertices()[0]; math.Abs(float64(got-(x+2))) > 1e-6 {
		t.Errorf("expected x to move by 2, got %v -> %v", x, got)
	}
	if view.updates != 2 {
		t.Errorf("expected a view update, got %d", view.updates)
	}
	if got := m.State().Move; got != (transform.Delta{X: 2}) {
		t.Errorf("expected state move (2,0,0), got %v", got)
	}
}

func TestDeltaResetsAfterEachEdit(t *testing.T) {
	c, m, _ := newLoaded(t)

	if err := c.OnMove(1, X); err != nil {
		t.Fatalf("OnMove failed: %v", err)
	}
	if err := c.OnMove(1, Y); err != nil {
		t.Fatalf("OnMove failed: %v", err)
	}

	if got := m.State().Move; got != (transform.Delta{X: 1, Y: 1}) {
		t.Errorf("expected each edit to move one axis once, got %v", got)
	}
}

func TestOnRotateConvertsDegrees(t *testing.T) {
	c, m, _ := newLoaded(t)

	if err := c.OnRotate(90, RotateZ); err != nil {
		t.Fatalf("OnRotate failed: %v", err)
	}
	if got := m.State().Rotation.Z; math.Abs(float64(got)-math.Pi/2) > 1e-6 {
		t.Errorf("expected pi/2 radians, got %v", got)
	}

	// (0.5, 0.5, -0.5) turned a quarter around z
	v := m.Vertices()
	if math.Abs(float64(v[0])+0.5) > 1e-6 || math.Abs(float64(v[1])-0.5) > 1e-6 {
		t.Errorf("unexpected rotated vertex (%v, %v, %v)", v[0], v[1], v[2])
	}
}

func TestOnRotateIgnoresMoveAxis(t *testing.T) {
	c, m, _ := newLoaded(t)
	before := append([]float32(nil), m.Vertices()...)

	if err := c.OnRotate(45, X); err != nil {
		t.Fatalf("OnRotate failed: %v", err)
	}
	for i := range before {
		if m.Vertices()[i] != before[i] {
			t.Fatalf("expected no change for a move axis, index %d changed", i)
		}
	}
}

func TestOnScale(t *testing.T) {
	c, m, _ := newLoaded(t)

	if err := c.OnScale(2); err != nil {
		t.Fatalf("OnScale failed: %v", err)
	}
	box, err := m.CalculateBoundingBox()
	if err != nil {
		t.Fatalf("CalculateBoundingBox failed: %v", err)
	}
	if math.Abs(box.MaxExtent()-2) > 1e-6 {
		t.Errorf("expected extent 2, got %v", box.MaxExtent())
	}
}

func TestEditWithoutModel(t *testing.T) {
	c := New(model.New(), &recordingView{})

	if err := c.OnScale(2); !errors.Is(err, model.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestAxisString(t *testing.T) {
	if RotateY.String() != "rotate-y" {
		t.Errorf("unexpected name %q", RotateY.String())
	}
	if Axis(42).String() != "Axis(42)" {
		t.Errorf("unexpected name %q", Axis(42).String())
	}
}
