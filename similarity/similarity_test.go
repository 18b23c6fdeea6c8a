package similarity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
)

func mustExtract(t *testing.T, m *geometry.Model) *feature.Features {
	t.Helper()
	f, err := feature.Extract(m)
	require.NoError(t, err)
	return &f
}

func randomFeatures(rng *rand.Rand) *feature.Features {
	f := &feature.Features{
		Volume:      rng.Float64() * 1000,
		SurfaceArea: rng.Float64() * 1000,
		VertexCount: 1,
	}
	var sum float64
	for i := range f.Histogram {
		f.Histogram[i] = rng.Float64()
		sum += f.Histogram[i]
	}
	for i := range f.Histogram {
		f.Histogram[i] /= sum
	}
	return f
}

func TestCompareNil(t *testing.T) {
	f := mustExtract(t, geometry.Cube("c", 1))
	assert.Equal(t, 0.0, Compare(nil, f))
	assert.Equal(t, 0.0, Compare(f, nil))
	assert.Equal(t, 0.0, Compare(nil, nil))
}

func TestCompareEmptyDescriptors(t *testing.T) {
	a, b := feature.Empty(), feature.Empty()

	bd := Explain(&a, &b)
	assert.Equal(t, 1.0, bd.Histogram)
	assert.Equal(t, 1.0, bd.Volume)
	assert.Equal(t, 1.0, bd.Area)
	assert.Equal(t, 1.0, Compare(&a, &b))

	c := mustExtract(t, geometry.Cube("c", 1))
	assert.Equal(t, 0.0, HistogramIntersection(&a.Histogram, &c.Histogram))
	assert.Equal(t, Compare(&a, c), Compare(c, &a))
}

func TestRatio(t *testing.T) {
	tests := []struct {
		x, y float64
		want float64
	}{
		{0, 0, 1},
		{0, 5, 0},
		{5, 0, 0},
		{2, 8, 0.25},
		{8, 2, 0.25},
		{3, 3, 1},
		{-1, 3, 0},
		{math.NaN(), 3, 0},
		{math.Inf(1), math.Inf(1), 1},
		{math.Inf(1), 3, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Ratio(tt.x, tt.y), "Ratio(%v, %v)", tt.x, tt.y)
	}
}

func TestCompareProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(4711))

	for range 200 {
		a, b := randomFeatures(rng), randomFeatures(rng)

		ab, ba := Compare(a, b), Compare(b, a)
		assert.Equal(t, ab, ba, "symmetry")
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)

		assert.InDelta(t, 1.0, Compare(a, a), 1e-9, "reflexivity")
	}
}

func TestCompareCubesOfDifferentScale(t *testing.T) {
	c1 := mustExtract(t, geometry.Cube("c1", 1))
	c2 := mustExtract(t, geometry.Cube("c2", 2))

	bd := Explain(c1, c2)
	assert.InDelta(t, 1.0, bd.Histogram, 1e-12)
	assert.InDelta(t, 1.0/8, bd.Volume, 1e-12)
	assert.InDelta(t, 1.0/4, bd.Area, 1e-12)
	assert.InDelta(t, 0.59375, bd.Similarity, 1e-12)
	assert.Equal(t, 59, bd.Score())
}

func TestCompareCubeAndSphere(t *testing.T) {
	const r = 50.0
	cube := mustExtract(t, geometry.Cube("cube", 2*r))
	sphere := mustExtract(t, geometry.UVSphere("sphere", r, 12, 16))

	bd := Explain(cube, sphere)
	assert.InDelta(t, 1.0, bd.Volume, 1e-12)
	assert.Less(t, bd.Histogram, 1.0)
	assert.Less(t, bd.Similarity, 1.0)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(0))
	assert.Equal(t, 100, Score(1))
	assert.Equal(t, 59, Score(0.59375))
	assert.Equal(t, 60, Score(0.6))
	assert.Equal(t, 100, Score(1.2))
	assert.Equal(t, 0, Score(math.NaN()))
}
