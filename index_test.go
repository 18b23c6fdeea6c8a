package geosearch

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
)

func corruptCube(id string) *geometry.Model {
	m := geometry.Cube(id, 1)
	m.Nodes[0].Geometry.Indices[2] = 1000
	return m
}

func TestIndexModel(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("cube", 2)))
	assert.Equal(t, 1, idx.Len())

	m, ok := idx.Get("cube")
	require.True(t, ok)
	assert.Equal(t, "cube", m.ID)

	f, ok := idx.Features("cube")
	require.True(t, ok)
	assert.Equal(t, 8, f.VertexCount)
	assert.InDelta(t, 8.0, f.Volume, 1e-12)

	_, ok = idx.Get("missing")
	assert.False(t, ok)
	_, ok = idx.Features("missing")
	assert.False(t, ok)
}

func TestIndexModelInvalid(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.ErrorIs(t, idx.IndexModel(ctx, nil), ErrInvalidModel)
	require.ErrorIs(t, idx.IndexModel(ctx, geometry.Cube("", 1)), ErrInvalidModel)
	assert.Equal(t, 0, idx.Len())
}

func TestIndexModelCorruptLeavesIndexUnchanged(t *testing.T) {
	ctx := context.Background()
	idx := New()
	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("a", 1)))
	before, _ := idx.Features("a")

	err := idx.IndexModel(ctx, corruptCube("b"))
	require.ErrorIs(t, err, feature.ErrCorruptGeometry)
	assert.Equal(t, 1, idx.Len())

	// A failing re-index keeps the previous entry.
	err = idx.IndexModel(ctx, corruptCube("a"))
	require.ErrorIs(t, err, feature.ErrCorruptGeometry)
	after, ok := idx.Features("a")
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestIndexModelRejectsNonFiniteBounds(t *testing.T) {
	ctx := context.Background()
	idx := New()

	m := geometry.Cube("nan", 1)
	m.Bounds = geometry.Bounds{Max: geometry.Vec3{X: math.NaN(), Y: 1, Z: 1}}

	require.ErrorIs(t, idx.IndexModel(ctx, m), feature.ErrCorruptGeometry)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.SearchBySize(0, math.Inf(1)))
}

func TestIndexModelCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := New()
	require.ErrorIs(t, idx.IndexModel(ctx, geometry.Cube("a", 1)), context.Canceled)
	assert.Equal(t, 0, idx.Len())
}

func TestIndexModelReplaces(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("m", 1)))
	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("m", 3)))

	assert.Equal(t, 1, idx.Len())
	f, _ := idx.Features("m")
	assert.InDelta(t, 27.0, f.Volume, 1e-9)
}

func TestIndexModelMovesFormatPosting(t *testing.T) {
	ctx := context.Background()
	idx := New()

	m := geometry.Cube("m", 1)
	m.Format = "stl"
	require.NoError(t, idx.IndexModel(ctx, m))

	m2 := geometry.Cube("m", 1)
	m2.Format = "obj"
	require.NoError(t, idx.IndexModel(ctx, m2))

	assert.Empty(t, idx.SearchByFormat("stl"))
	require.Len(t, idx.SearchByFormat("obj"), 1)
	assert.Equal(t, map[string]int{"obj": 1}, idx.Stats().Formats)
}

func TestRemoveModel(t *testing.T) {
	ctx := context.Background()
	idx := New()
	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("keep", 1)))

	sizeBefore := idx.Len()
	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("drop", 1)))
	assert.True(t, idx.RemoveModel(ctx, "drop"))
	assert.Equal(t, sizeBefore, idx.Len())

	assert.False(t, idx.RemoveModel(ctx, "drop"))
	assert.False(t, idx.RemoveModel(ctx, "never-indexed"))

	_, ok := idx.Features("drop")
	assert.False(t, ok)
	assert.Equal(t, []string{"keep"}, idx.IDs())
	assert.Equal(t, []string{"keep"}, modelIDs(idx.SearchByFormat(geometry.FormatGenerated)))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	idx := New()
	for i := range 5 {
		require.NoError(t, idx.IndexModel(ctx, geometry.Cube(fmt.Sprintf("c%d", i), float64(i+1))))
	}

	idx.Clear()
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.IDs())
	assert.Empty(t, idx.SearchByFormat(geometry.FormatGenerated))
	assert.Empty(t, idx.Stats().Formats)

	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("again", 1)))
	assert.Equal(t, 1, idx.Len())
}

func TestIDsSorted(t *testing.T) {
	ctx := context.Background()
	idx := New()
	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, idx.IndexModel(ctx, geometry.Cube(id, 1)))
	}
	assert.Equal(t, []string{"a", "b", "c"}, idx.IDs())
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	idx := New(WithExtractorOptions(func(o *feature.Options) { o.Scale = 10 }))

	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("c", 1)))
	s := geometry.UVSphere("s", 1, 4, 6)
	s.Format = "obj"
	require.NoError(t, idx.IndexModel(ctx, s))

	st := idx.Stats()
	assert.Equal(t, 2, st.Models)
	assert.Equal(t, 8+2+3*6, st.Vertices)
	assert.Equal(t, 12+2*6+2*2*6, st.Triangles)
	assert.Equal(t, map[string]int{geometry.FormatGenerated: 1, "obj": 1}, st.Formats)
	assert.Equal(t, feature.HistogramBins, st.HistogramBins)
	assert.Equal(t, 10.0, st.Extractor.Scale)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	idx := New(WithParallelThreshold(8), WithWorkers(4))

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				id := fmt.Sprintf("w%d-%d", w, i)
				assert.NoError(t, idx.IndexModel(ctx, geometry.Cube(id, float64(i+1))))
				_, err := idx.Search(ctx, geometry.Cube(id, 1), 5)
				assert.NoError(t, err)
				if i%5 == 0 {
					idx.RemoveModel(ctx, id)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4*20, idx.Len())
}

func TestMetricsCollector(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}
	idx := New(WithMetricsCollector(mc))

	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("a", 1)))
	require.Error(t, idx.IndexModel(ctx, corruptCube("b")))
	require.NoError(t, idx.IndexModel(ctx, geometry.Cube("c", 2)))
	_, err := idx.Search(ctx, geometry.Cube("a", 1), 3)
	require.NoError(t, err)
	_, err = idx.Search(ctx, geometry.Cube("a", 1), 0)
	require.ErrorIs(t, err, ErrInvalidK)
	idx.RemoveModel(ctx, "a")
	idx.RemoveModel(ctx, "a")

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.IndexCount)
	assert.Equal(t, int64(1), stats.IndexErrors)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(1), stats.SearchCandidates)
	assert.Equal(t, int64(2), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.RemoveMisses)
}

func TestNilOptionsFallBackToDefaults(t *testing.T) {
	idx := New(nil, WithLogger(nil), WithMetricsCollector(nil), WithExtractor(nil))

	require.NotNil(t, idx.Extractor())
	assert.Equal(t, feature.DefaultOptions, idx.Extractor().Options())
	require.NoError(t, idx.IndexModel(context.Background(), geometry.Cube("a", 1)))
}

func modelIDs(ms []*geometry.Model) []string {
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	return ids
}
