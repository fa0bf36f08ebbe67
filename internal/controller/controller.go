// Package controller turns per-axis UI edits into model transforms.
package controller

import (
	"fmt"
	"math"

	"github.com/philipparndt/goobj/internal/logger"
	"github.com/philipparndt/goobj/pkg/transform"
	"go.uber.org/zap"
)

// Axis names the control an edit came from
type Axis int

const (
	X Axis = iota
	Y
	Z
	RotateX
	RotateY
	RotateZ
	Scale
)

var axisNames = [...]string{"x", "y", "z", "rotate-x", "rotate-y", "rotate-z", "scale"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Model is the part of model.Model the controller drives
type Model interface {
	LoadFile(path string) (bool, string)
	Transform(p transform.Params) error
	Vertices() []float32
	Faces() []uint32
}

// View receives geometry updates and user-facing errors
type View interface {
	SetModelData(vertices []float32, faces []uint32)
	ShowError(message string)
	ResetSliders()
}

// Controller applies one pending delta per edit and pushes the result to the view
type Controller struct {
	model Model
	view  View
	delta transform.Params
}

// New creates a controller
func New(m Model, v View) *Controller {
	return &Controller{model: m, view: v}
}

// LoadModel loads path and shows it, or reports the failure to the view
func (c *Controller) LoadModel(path string) bool {
	c.view.ResetSliders()

	if ok, msg := c.model.LoadFile(path); !ok {
		c.view.ShowError("Failed to load model: " + msg)
		return false
	}

	c.delta = transform.Params{}
	c.view.SetModelData(c.model.Vertices(), c.model.Faces())
	return true
}

// OnMove translates along X, Y or Z; other axes are ignored
func (c *Controller) OnMove(value float32, axis Axis) error {
	switch axis {
	case X:
		c.delta.Move.X = value
	case Y:
		c.delta.Move.Y = value
	case Z:
		c.delta.Move.Z = value
	}
	return c.update()
}

// OnRotate turns by degrees around the axis of a RotateX/Y/Z control
func (c *Controller) OnRotate(degrees float32, axis Axis) error {
	radians := float32(float64(degrees) * math.Pi / 180)
	switch axis {
	case RotateX:
		c.delta.Rotation.X = radians
	case RotateY:
		c.delta.Rotation.Y = radians
	case RotateZ:
		c.delta.Rotation.Z = radians
	}
	return c.update()
}

// OnScale scales uniformly by value
func (c *Controller) OnScale(value float32) error {
	c.delta.Scale = transform.Delta{X: value, Y: value, Z: value}
	return c.update()
}

func (c *Controller) update() error {
	delta := c.delta
	c.delta = transform.Params{}

	if err := c.model.Transform(delta); err != nil {
		logger.Warn("transform rejected", zap.Error(err))
		return err
	}
	c.view.SetModelData(c.model.Vertices(), c.model.Faces())
	return nil
}
