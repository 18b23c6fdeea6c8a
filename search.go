package geosearch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
	"github.com/hupe1980/geosearch/internal/topk"
	"github.com/hupe1980/geosearch/similarity"
)

// DefaultTopK is the number of results returned by a Query without TopK.
const DefaultTopK = 10

// SearchResult is a ranked match.
type SearchResult struct {
	ID    string
	Model *geometry.Model
	// Similarity lies in [0, 1]; results are ordered by it.
	Similarity float64
	// Score is Similarity as a rounded percentage.
	Score int
}

// Predicate selects models by their attributes and cached descriptor.
type Predicate func(m *geometry.Model, f *feature.Features) bool

// SearchOptions contains optional search parameters.
type SearchOptions struct {
	// Filter, if set, restricts candidates to models for which it returns true.
	Filter Predicate
	// Format, if set, restricts candidates to models of that format.
	Format string
	// MinSimilarity drops results below the threshold.
	MinSimilarity float64
}

// Search ranks the indexed models by similarity to query and returns the best k,
// most similar first. Ties are broken by ascending model id.
//
// If query.ID is indexed its cached features are reused (they are not refreshed
// automatically when the geometry changes) and the query itself is never part of
// the results. A nil query or an empty index yields no results and no error.
func (idx *Index) Search(ctx context.Context, query *geometry.Model, k int, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	start := time.Now()

	opts := SearchOptions{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	results, candidates, err := idx.search(ctx, query, k, &opts)

	idx.metrics.RecordSearch(k, candidates, time.Since(start), err)
	idx.logger.LogSearch(ctx, k, candidates, len(results), err)

	return results, err
}

// SearchByID is like Search with the indexed model id as query.
// It returns ErrNotFound if id is not indexed.
func (idx *Index) SearchByID(ctx context.Context, id string, k int, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	m, ok := idx.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return idx.Search(ctx, m, k, optFns...)
}

func (idx *Index) search(ctx context.Context, query *geometry.Model, k int, opts *SearchOptions) ([]SearchResult, int, error) {
	if k <= 0 {
		return nil, 0, ErrInvalidK
	}
	if query == nil {
		return nil, 0, nil
	}

	qf, cands, cached := idx.candidates(query, opts.Format)
	if !cached {
		f, err := idx.extract(query)
		if err != nil {
			return nil, 0, err
		}
		qf = f
	}

	if opts.Filter != nil {
		kept := cands[:0]
		for _, e := range cands {
			if opts.Filter(e.model, &e.features) {
				kept = append(kept, e)
			}
		}
		cands = kept
	}

	if len(cands) == 0 {
		return nil, 0, nil
	}

	sims := make([]float64, len(cands))
	if err := idx.score(ctx, &qf, cands, sims); err != nil {
		return nil, len(cands), err
	}

	h := topk.New(k)
	for i, s := range sims {
		if s < opts.MinSimilarity {
			continue
		}
		h.Push(topk.Item{Slot: i, Key: cands[i].model.ID, Score: s})
	}

	items := h.Sorted()
	results := make([]SearchResult, len(items))
	for i, it := range items {
		e := cands[it.Slot]
		results[i] = SearchResult{
			ID:         e.model.ID,
			Model:      e.model,
			Similarity: it.Score,
			Score:      similarity.Score(it.Score),
		}
	}

	return results, len(cands), nil
}

// candidates returns the cached features of query (if indexed) and every other
// entry, optionally restricted to one format.
func (idx *Index) candidates(query *geometry.Model, format string) (feature.Features, []*entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var (
		qf     feature.Features
		cached bool
	)
	if query.ID != "" {
		if e, ok := idx.entries[query.ID]; ok {
			qf, cached = e.features, true
		}
	}

	var cands []*entry
	if format != "" {
		bm, ok := idx.formats[format]
		if !ok {
			return qf, nil, cached
		}
		cands = make([]*entry, 0, bm.GetCardinality())
		it := bm.Iterator()
		for it.HasNext() {
			e := idx.byLocal[it.Next()]
			if e.model.ID != query.ID {
				cands = append(cands, e)
			}
		}
		return qf, cands, cached
	}

	cands = make([]*entry, 0, len(idx.entries))
	for id, e := range idx.entries {
		if id != query.ID {
			cands = append(cands, e)
		}
	}
	return qf, cands, cached
}

// score fills sims[i] with the similarity of q and cands[i]. Large candidate
// sets are split into chunks scored on up to idx.workers goroutines.
func (idx *Index) score(ctx context.Context, q *feature.Features, cands []*entry, sims []float64) error {
	if idx.parallelThreshold <= 0 || len(cands) < idx.parallelThreshold || idx.workers <= 1 {
		for i, e := range cands {
			sims[i] = similarity.Compare(q, &e.features)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.workers)

	chunk := (len(cands) + idx.workers - 1) / idx.workers
	for lo := 0; lo < len(cands); lo += chunk {
		hi := min(lo+chunk, len(cands))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				sims[i] = similarity.Compare(q, &cands[i].features)
			}
			return nil
		})
	}

	return g.Wait()
}

// Query creates a fluent search builder for the given query model.
//
// Example:
//
//	results, err := idx.Query(model).
//	    TopK(5).
//	    Format("stl").
//	    MinSimilarity(0.6).
//	    Execute(ctx)
func (idx *Index) Query(query *geometry.Model) *SearchBuilder {
	return &SearchBuilder{
		idx:   idx,
		query: query,
		k:     DefaultTopK,
	}
}

// SearchBuilder is a fluent builder for constructing search queries.
type SearchBuilder struct {
	idx   *Index
	query *geometry.Model
	k     int
	opts  SearchOptions
}

// TopK sets the maximum number of results.
func (sb *SearchBuilder) TopK(k int) *SearchBuilder {
	sb.k = k
	return sb
}

// Where restricts candidates to models matching pred.
func (sb *SearchBuilder) Where(pred Predicate) *SearchBuilder {
	sb.opts.Filter = pred
	return sb
}

// Format restricts candidates to models of the given format.
func (sb *SearchBuilder) Format(format string) *SearchBuilder {
	sb.opts.Format = format
	return sb
}

// MinSimilarity drops results below s.
func (sb *SearchBuilder) MinSimilarity(s float64) *SearchBuilder {
	sb.opts.MinSimilarity = s
	return sb
}

// Execute runs the search and returns the results.
func (sb *SearchBuilder) Execute(ctx context.Context) ([]SearchResult, error) {
	return sb.idx.Search(ctx, sb.query, sb.k, func(o *SearchOptions) {
		*o = sb.opts
	})
}

// First returns only the most similar result, or ErrNotFound if there is none.
func (sb *SearchBuilder) First(ctx context.Context) (SearchResult, error) {
	sb.k = 1
	results, err := sb.Execute(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	if len(results) == 0 {
		return SearchResult{}, ErrNotFound
	}
	return results[0], nil
}
