package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/philipparndt/goobj/pkg/analysis"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var infoCmd = &cobra.Command{
	Use:   "info [file...]",
	Short: "Display general information about OBJ files",
	Long:  "Show vertex and edge counts, bounding box, dimensions and edge statistics. Several files are parsed in parallel.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

type fileReport struct {
	path   string
	stats  obj.Stats
	result *analysis.MeasurementResult
}

func runInfo(cmd *cobra.Command, args []string) error {
	reports := make([]fileReport, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p := obj.NewParser(parserOptions()...)
			if err := p.LoadFile(path); err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			reports[i] = fileReport{
				path:   path,
				stats:  p.Stats(),
				result: analysis.AnalyzeModel(p.Data()),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printInfo(out, report)
	}
	return nil
}

func printInfo(out io.Writer, report fileReport) {
	result := report.result

	fmt.Fprintln(out, "OBJ File Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n\n", report.path)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Faces: %d\n", report.stats.FaceLines)
	fmt.Fprintf(out, "  Edge list entries: %d\n", result.FaceEntries)
	fmt.Fprintf(out, "  Edges: %d (%d unique)\n\n", result.EdgeCount, result.UniqueEdgeCount)

	if result.VertexCount == 0 {
		fmt.Fprintln(out, "No geometry.")
		return
	}

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Height (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Depth (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
}
