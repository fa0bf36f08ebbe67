package main

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/analysis"
	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/spf13/cobra"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points and between the
model vertices nearest to them. Coordinates are those of the file, not normalized.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	filename := args[0]

	p1 := geometry.NewVector3(point1X, point1Y, point1Z)
	p2 := geometry.NewVector3(point2X, point2Y, point2Z)

	data, err := obj.Parse(filename, parserOptions()...)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Point-to-Point Measurement")
	fmt.Fprintln(out, "==========================")

	index1, dist1, ok1 := analysis.FindNearestVertex(data.Vertices, p1)
	index2, dist2, ok2 := analysis.FindNearestVertex(data.Vertices, p2)

	fmt.Fprintf(out, "\nPoint 1: %s\n", analysis.FormatVector(p1))
	if ok1 && dist1 > 0 {
		fmt.Fprintf(out, "  Nearest vertex #%d: %s (distance: %.6f)\n",
			index1+1, analysis.FormatVector(geometry.VertexAt(data.Vertices, index1)), dist1)
	}

	fmt.Fprintf(out, "\nPoint 2: %s\n", analysis.FormatVector(p2))
	if ok2 && dist2 > 0 {
		fmt.Fprintf(out, "  Nearest vertex #%d: %s (distance: %.6f)\n",
			index2+1, analysis.FormatVector(geometry.VertexAt(data.Vertices, index2)), dist2)
	}

	fmt.Fprintf(out, "\nDirect distance: %.6f units\n", analysis.DistanceBetweenPoints(p1, p2))

	if ok1 && ok2 && (dist1 > 0 || dist2 > 0) {
		vertexDistance := analysis.DistanceBetweenPoints(
			geometry.VertexAt(data.Vertices, index1),
			geometry.VertexAt(data.Vertices, index2))
		fmt.Fprintf(out, "Distance between nearest vertices: %.6f units\n", vertexDistance)
	}
	return nil
}
