package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// BoundsOf computes the bounding box of a flat stride-3 vertex buffer in a
// single pass. ok is false when the buffer holds no complete vertex.
func BoundsOf(vertices []float32) (box BoundingBox, ok bool) {
	count := len(vertices) / 3
	if count == 0 {
		return BoundingBox{}, false
	}
	box = NewBoundingBox()
	for i := 0; i < count; i++ {
		box.Extend(VertexAt(vertices, i))
	}
	return box, true
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: b.Min.X + (b.Max.X-b.Min.X)/2.0,
		Y: b.Min.Y + (b.Max.Y-b.Min.Y)/2.0,
		Z: b.Min.Z + (b.Max.Z-b.Min.Z)/2.0,
	}
}

// MaxExtent returns the largest axis extent
func (b BoundingBox) MaxExtent() float64 {
	return b.Size().MaxComponent()
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}
