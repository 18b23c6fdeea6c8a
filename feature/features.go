package feature

import (
	"github.com/hupe1980/geosearch/geometry"
)

// HistogramBins is the number of bins of the radial distance histogram.
const HistogramBins = 32

// Histogram is a normalized radial distance distribution.
type Histogram [HistogramBins]float64

// Sum returns the total mass of the histogram.
func (h *Histogram) Sum() float64 {
	var s float64
	for _, v := range h {
		s += v
	}
	return s
}

// Features is the geometric descriptor of a model.
type Features struct {
	// Volume is the bounding-box volume estimate, never negative.
	Volume float64
	// SurfaceArea is the summed area of all indexed triangles.
	SurfaceArea float64
	// Centroid is the arithmetic mean of all vertices.
	Centroid geometry.Vec3
	// Histogram sums to 1 when VertexCount > 0, otherwise it is all zero.
	Histogram Histogram
	// Bounds is copied from the model.
	Bounds geometry.Bounds

	VertexCount   int
	TriangleCount int
}

// Empty returns the descriptor of a model without geometry.
func Empty() Features {
	return Features{}
}

// IsEmpty reports whether f was computed from zero vertices.
func (f *Features) IsEmpty() bool {
	return f.VertexCount == 0
}

// EstimateVolume returns the volume of the axis-aligned box b.
func EstimateVolume(b geometry.Bounds) float64 {
	return b.Volume()
}
