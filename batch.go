package geosearch

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
	"github.com/hupe1980/geosearch/internal/workerpool"
)

// BatchIndexResult reports the outcome of IndexBatch.
type BatchIndexResult struct {
	IDs    []string // IDs of successfully indexed models, in input order
	Errors []error  // Errors[i] belongs to models[i] (nil for successful)
}

// Failed returns the number of models that were not indexed.
func (r BatchIndexResult) Failed() int {
	n := 0
	for _, err := range r.Errors {
		if err != nil {
			n++
		}
	}
	return n
}

// Err joins all per-model errors, or returns nil if every model was indexed.
func (r BatchIndexResult) Err() error {
	return errors.Join(r.Errors...)
}

// IndexBatch indexes many models, extracting their features in parallel.
//
// Extraction is spread over a worker pool keyed by model id. Successful models
// are committed together in input order, so a later duplicate id wins. A model
// whose extraction fails is skipped and reported in Errors; the remaining models
// are still indexed. If ctx ends, models not yet extracted fail with ctx.Err().
func (idx *Index) IndexBatch(ctx context.Context, models []*geometry.Model) BatchIndexResult {
	start := time.Now()

	result := BatchIndexResult{
		IDs:    make([]string, 0, len(models)),
		Errors: make([]error, len(models)),
	}
	if len(models) == 0 {
		return result
	}

	feats := make([]feature.Features, len(models))
	pool := workerpool.New(min(idx.workers, len(models)))

	for i, m := range models {
		if err := validateModel(m); err != nil {
			result.Errors[i] = err
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Errors[i] = err
			continue
		}
		if idx.limiter != nil {
			if err := idx.limiter.Wait(ctx); err != nil {
				result.Errors[i] = err
				continue
			}
		}

		err := pool.Submit(ctx, m.ID, func() {
			feats[i], result.Errors[i] = idx.extract(m)
		})
		if err != nil {
			result.Errors[i] = err
		}
	}

	pool.Close()

	idx.mu.Lock()
	for i, m := range models {
		if result.Errors[i] != nil {
			continue
		}
		idx.commitLocked(m, feats[i])
		result.IDs = append(result.IDs, m.ID)
	}
	idx.mu.Unlock()

	failed := result.Failed()
	idx.metrics.RecordBatchIndex(len(models), failed, time.Since(start))
	idx.logger.LogBatchIndex(ctx, len(models), failed)

	return result
}

// Reindex re-extracts the features of every indexed model.
//
// Cached features are never refreshed automatically; call Reindex (or IndexModel
// for a single model) after changing the geometry of indexed models. Models
// whose extraction now fails keep their previous features and are reported in
// the returned error. Models removed or replaced concurrently are left alone.
// If ctx ends before extraction completes nothing is changed.
func (idx *Index) Reindex(ctx context.Context) error {
	entries := idx.snapshot()

	feats := make([]feature.Features, len(entries))
	errs := make([]error, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.workers)

	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			feats[i], errs[i] = idx.extract(e.model)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		idx.logger.LogReindex(ctx, len(entries), err)
		return err
	}

	idx.mu.Lock()
	for i, e := range entries {
		if errs[i] != nil {
			continue
		}
		if cur, ok := idx.entries[e.model.ID]; ok && cur == e {
			idx.commitLocked(e.model, feats[i])
		}
	}
	idx.mu.Unlock()

	err := errors.Join(errs...)
	idx.logger.LogReindex(ctx, len(entries), err)

	return err
}
