package geosearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geosearch/testutil"
)

func TestSearchMatchesBruteForce(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)
	models := rng.Catalog(300)
	feats := testutil.ExtractAll(models)

	for _, threshold := range []int{0, 16} {
		idx := New(WithParallelThreshold(threshold), WithWorkers(4))
		require.NoError(t, idx.IndexBatch(ctx, models).Err())

		for _, q := range models[:10] {
			truth := testutil.BruteForceSearch(feats, feats[q.ID], q.ID, 10)

			results, err := idx.Search(ctx, q, 10)
			require.NoError(t, err)

			got := make([]testutil.SearchResult, len(results))
			for i, r := range results {
				got[i] = testutil.SearchResult{ID: r.ID, Similarity: r.Similarity}
			}

			assert.Equal(t, 1.0, testutil.ComputeRecall(truth, got))
			assert.Equal(t, truth, got)
		}
	}
}

func TestSearchJitteredCopyRanksFirst(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(9)
	idx := New()

	target := rng.Model("target")
	require.NoError(t, idx.IndexBatch(ctx, append(rng.Catalog(100), target)).Err())

	query := rng.Jitter(target, 1e-6)
	query.ID = "query"

	best, err := idx.Query(query).First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "target", best.ID)
	assert.InDelta(t, 1.0, best.Similarity, 1e-3)
}
