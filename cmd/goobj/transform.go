package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/goobj/internal/controller"
	"github.com/philipparndt/goobj/pkg/analysis"
	"github.com/philipparndt/goobj/pkg/transform"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	moveX, moveY, moveZ       float32
	rotateX, rotateY, rotateZ float32
	scaleFactor               float32
	transformKind             string
	printVertices             bool
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Apply move, rotate and scale edits to an OBJ model",
	Long: `Load a model, apply the requested edits in the order scale, rotate, move and
report the resulting bounds. Rotations are given in degrees. Scaling and rotation
pivot around the model's own position.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().Float32Var(&moveX, "move-x", 0, "Translate along X")
	transformCmd.Flags().Float32Var(&moveY, "move-y", 0, "Translate along Y")
	transformCmd.Flags().Float32Var(&moveZ, "move-z", 0, "Translate along Z")
	transformCmd.Flags().Float32Var(&rotateX, "rotate-x", 0, "Rotate around X in degrees")
	transformCmd.Flags().Float32Var(&rotateY, "rotate-y", 0, "Rotate around Y in degrees")
	transformCmd.Flags().Float32Var(&rotateZ, "rotate-z", 0, "Rotate around Z in degrees")
	transformCmd.Flags().Float32Var(&scaleFactor, "scale", 0, "Uniform scale factor")
	transformCmd.Flags().StringVar(&transformKind, "kind", "general", "Matrix to print (identity, move, scale, rotate-x, rotate-y, rotate-z, rotate, general)")
	transformCmd.Flags().BoolVar(&printVertices, "vertices", false, "Print the transformed vertices as OBJ lines")
}

// consoleView collects what the controller pushes
type consoleView struct {
	vertices []float32
	faces    []uint32
	err      string
}

func (v *consoleView) SetModelData(vertices []float32, faces []uint32) {
	v.vertices, v.faces = vertices, faces
}

func (v *consoleView) ShowError(message string) {
	v.err = message
}

func (v *consoleView) ResetSliders() {}

func runTransform(cmd *cobra.Command, args []string) error {
	kind, err := transform.ParseKind(transformKind)
	if err != nil {
		return err
	}

	m := newModel()
	view := &consoleView{}
	c := controller.New(m, view)
	if !c.LoadModel(args[0]) {
		return errors.New(view.err)
	}

	var edits []error
	if scaleFactor != 0 {
		edits = append(edits, c.OnScale(scaleFactor))
	}
	for _, r := range []struct {
		degrees float32
		axis    controller.Axis
	}{{rotateX, controller.RotateX}, {rotateY, controller.RotateY}, {rotateZ, controller.RotateZ}} {
		if r.degrees != 0 {
			edits = append(edits, c.OnRotate(r.degrees, r.axis))
		}
	}
	for _, mv := range []struct {
		value float32
		axis  controller.Axis
	}{{moveX, controller.X}, {moveY, controller.Y}, {moveZ, controller.Z}} {
		if mv.value != 0 {
			edits = append(edits, c.OnMove(mv.value, mv.axis))
		}
	}
	if err := multierr.Combine(edits...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	state := m.State()
	fmt.Fprintf(out, "File: %s\n\n", m.Path())
	fmt.Fprintln(out, "Accumulated edits:")
	fmt.Fprintf(out, "  Scale: (%.6f, %.6f, %.6f)\n", state.Scale.X, state.Scale.Y, state.Scale.Z)
	fmt.Fprintf(out, "  Rotation: (%.6f, %.6f, %.6f) degrees\n",
		degrees(state.Rotation.X), degrees(state.Rotation.Y), degrees(state.Rotation.Z))
	fmt.Fprintf(out, "  Move: (%.6f, %.6f, %.6f)\n\n", state.Move.X, state.Move.Y, state.Move.Z)

	if err := printMatrix(out, kind, state); err != nil {
		return err
	}

	box, err := m.CalculateBoundingBox()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(box.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(box.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(box.Center()))

	if printVertices {
		fmt.Fprintln(out)
		for i := 0; i+2 < len(view.vertices); i += 3 {
			fmt.Fprintf(out, "v %.6f %.6f %.6f\n", view.vertices[i], view.vertices[i+1], view.vertices[i+2])
		}
	}
	return nil
}

func printMatrix(out io.Writer, kind transform.Kind, p transform.Params) error {
	matrix := transform.Build(kind, p)

	fmt.Fprintf(out, "%s matrix (row vectors):\n", kind)
	for i := 0; i < 4; i++ {
		fmt.Fprintf(out, "  [% .6f % .6f % .6f % .6f]\n", matrix.At(i, 0), matrix.At(i, 1), matrix.At(i, 2), matrix.At(i, 3))
	}

	det, err := matrix.Determinant()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Determinant: %.6f\n", det)
	if _, err := matrix.Inverse(); err != nil {
		fmt.Fprintln(out, "  Not invertible")
	}
	fmt.Fprintln(out)
	return nil
}

func degrees(radians float32) float64 {
	return float64(radians) * 180 / math.Pi
}
