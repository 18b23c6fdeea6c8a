// Package similarity compares geometric descriptors.
//
// The metric blends three bounded terms with fixed weights:
//
//	similarity = 0.5·histogram + 0.25·volume + 0.25·area
//
// where histogram is the intersection Σ min(aᵢ, bᵢ) of the radial distance
// histograms and volume/area are min/max ratios. Every term lies in [0, 1] and the
// weights sum to 1, so the result does as well. Compare is pure and symmetric.
package similarity

import (
	"math"

	"github.com/hupe1980/geosearch/feature"
)

// Metric weights.
const (
	HistogramWeight = 0.5
	VolumeWeight    = 0.25
	AreaWeight      = 0.25
)

// Breakdown holds the individual terms of a comparison.
type Breakdown struct {
	Histogram  float64
	Volume     float64
	Area       float64
	Similarity float64
}

// Score returns the similarity as an integer percentage.
func (b Breakdown) Score() int {
	return Score(b.Similarity)
}

// Compare returns the similarity of a and b in [0, 1].
// It returns 0 if either descriptor is nil.
func Compare(a, b *feature.Features) float64 {
	if a == nil || b == nil {
		return 0
	}
	return Explain(a, b).Similarity
}

// Explain returns the individual terms of Compare(a, b).
// Both descriptors must be non-nil.
func Explain(a, b *feature.Features) Breakdown {
	bd := Breakdown{
		Histogram: HistogramIntersection(&a.Histogram, &b.Histogram),
		Volume:    Ratio(a.Volume, b.Volume),
		Area:      Ratio(a.SurfaceArea, b.SurfaceArea),
	}
	bd.Similarity = clamp01(HistogramWeight*bd.Histogram + VolumeWeight*bd.Volume + AreaWeight*bd.Area)
	return bd
}

// HistogramIntersection returns Σ min(aᵢ, bᵢ), clamped to [0, 1].
// Two all-zero histograms (models without vertices) are identical and yield 1.
func HistogramIntersection(a, b *feature.Histogram) float64 {
	var s, massA, massB float64
	for i := range a {
		s += math.Min(a[i], b[i])
		massA += a[i]
		massB += b[i]
	}
	if massA == 0 && massB == 0 {
		return 1
	}
	return clamp01(s)
}

// Ratio returns min(x, y) / max(x, y) for non-negative x and y.
// Two zero values are treated as identical and yield 1. Negative or NaN input
// yields 0.
func Ratio(x, y float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 {
		return 0
	}
	hi := math.Max(x, y)
	if hi == 0 {
		return 1
	}
	if math.IsInf(hi, 1) {
		if x == y {
			return 1
		}
		return 0
	}
	return math.Min(x, y) / hi
}

// Score converts a similarity into a rounded percentage in [0, 100].
func Score(similarity float64) int {
	return int(math.Round(clamp01(similarity) * 100))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
