// Package analysis measures loaded meshes: bounds, edge lengths and nearest
// vertices.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/obj"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	From   uint32
	To     uint32
	// Entry is the position of the edge in the model's edge list
	Entry int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox     geometry.BoundingBox
	Dimensions      geometry.Vector3
	Volume          float64
	VertexCount     int
	FaceEntries     int
	EdgeCount       int
	UniqueEdgeCount int
	MinEdgeLength   float64
	MaxEdgeLength   float64
	AvgEdgeLength   float64
	AllEdges        []EdgeInfo
}

// AnalyzeModel performs comprehensive analysis on parsed geometry.
// The face indices must already be validated against the vertex buffer.
func AnalyzeModel(data obj.ObjectData) *MeasurementResult {
	result := &MeasurementResult{
		VertexCount: data.VertexCount(),
		FaceEntries: len(data.Faces),
		AllEdges:    make([]EdgeInfo, 0, data.EdgeCount()),
	}

	if box, ok := geometry.BoundsOf(data.Vertices); ok {
		result.BoundingBox = box
		result.Dimensions = box.Size()
		result.Volume = box.Volume()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	unique := make(map[[2]uint32]struct{})

	for i := 0; i+1 < len(data.Faces); i += 2 {
		from, to := data.Faces[i], data.Faces[i+1]
		start := geometry.VertexAt(data.Vertices, int(from))
		end := geometry.VertexAt(data.Vertices, int(to))
		length := start.Distance(end)

		result.AllEdges = append(result.AllEdges, EdgeInfo{
			Start:  start,
			End:    end,
			Length: length,
			From:   from,
			To:     to,
			Entry:  i / 2,
		})

		key := [2]uint32{from, to}
		if from > to {
			key = [2]uint32{to, from}
		}
		unique[key] = struct{}{}

		totalLength += length
		if length < minLength {
			minLength = length
		}
		if length > maxLength {
			maxLength = length
		}
	}

	result.EdgeCount = len(result.AllEdges)
	result.UniqueEdgeCount = len(unique)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool {
		return a.Length > b.Length
	})
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool {
		return a.Length < b.Length
	})
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count < 0 {
		count = 0
	}
	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// DistanceBetweenPoints calculates the distance between two arbitrary points
func DistanceBetweenPoints(p1, p2 geometry.Vector3) float64 {
	return p1.Distance(p2)
}

// FindNearestVertex finds the vertex nearest to point. ok is false for an
// empty buffer.
func FindNearestVertex(vertices []float32, point geometry.Vector3) (index int, distance float64, ok bool) {
	distance = math.MaxFloat64
	index = -1

	for i := 0; i < len(vertices)/3; i++ {
		d := point.Distance(geometry.VertexAt(vertices, i))
		if d < distance {
			distance = d
			index = i
		}
	}

	return index, distance, index >= 0
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
