package geosearch

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/time/rate"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
)

// entry is an indexed model together with its cached descriptor.
// Entries are immutable; re-indexing replaces the pointer.
type entry struct {
	model    *geometry.Model
	features feature.Features
	// local is a dense id used by the format posting lists.
	local uint32
}

// Index is an in-memory similarity index over mesh models.
//
// It stores every indexed model next to its cached feature descriptor, so the
// model store and the features cache always contain the same ids. All methods
// are safe for concurrent use.
type Index struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	byLocal   map[uint32]*entry
	formats   map[string]*roaring.Bitmap
	nextLocal uint32

	extractor         *feature.Extractor
	metrics           MetricsCollector
	logger            *Logger
	workers           int
	parallelThreshold int
	limiter           *rate.Limiter
}

// New creates an empty index.
func New(optFns ...Option) *Index {
	o := applyOptions(optFns)

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	idx := &Index{
		entries:           make(map[string]*entry),
		byLocal:           make(map[uint32]*entry),
		formats:           make(map[string]*roaring.Bitmap),
		extractor:         o.extractor,
		metrics:           o.metricsCollector,
		logger:            o.logger,
		workers:           workers,
		parallelThreshold: o.parallelThreshold,
	}

	if o.indexRateLimit > 0 {
		idx.limiter = rate.NewLimiter(o.indexRateLimit, o.indexBurst)
	}

	return idx
}

// Extractor returns the feature extractor used by the index.
func (idx *Index) Extractor() *feature.Extractor {
	return idx.extractor
}

// IndexModel extracts the features of m and stores both under m.ID, replacing
// any previous entry with the same id.
//
// If extraction fails the index is left unchanged and the error (matching
// feature.ErrCorruptGeometry) is returned. The model is not copied; callers
// that change its geometry later must index it again.
func (idx *Index) IndexModel(ctx context.Context, m *geometry.Model) error {
	start := time.Now()

	f, err := idx.indexModel(ctx, m)

	idx.metrics.RecordIndex(time.Since(start), err)
	idx.logger.LogIndex(ctx, modelID(m), f.VertexCount, err)

	return err
}

func (idx *Index) indexModel(ctx context.Context, m *geometry.Model) (feature.Features, error) {
	if err := validateModel(m); err != nil {
		return feature.Features{}, err
	}
	if err := ctx.Err(); err != nil {
		return feature.Features{}, err
	}

	f, err := idx.extract(m)
	if err != nil {
		return feature.Features{}, err
	}

	idx.mu.Lock()
	idx.commitLocked(m, f)
	idx.mu.Unlock()

	return f, nil
}

func (idx *Index) extract(m *geometry.Model) (feature.Features, error) {
	f, err := idx.extractor.Extract(m)
	if err != nil {
		return feature.Features{}, fmt.Errorf("extract features of %q: %w", m.ID, err)
	}
	return f, nil
}

// commitLocked stores m and f. idx.mu must be held for writing.
func (idx *Index) commitLocked(m *geometry.Model, f feature.Features) {
	local := idx.nextLocal
	if old, ok := idx.entries[m.ID]; ok {
		local = old.local
		idx.removePostingLocked(old.model.Format, local)
	} else {
		idx.nextLocal++
	}

	e := &entry{model: m, features: f, local: local}
	idx.entries[m.ID] = e
	idx.byLocal[local] = e

	bm, ok := idx.formats[m.Format]
	if !ok {
		bm = roaring.New()
		idx.formats[m.Format] = bm
	}
	bm.Add(local)
}

func (idx *Index) removePostingLocked(format string, local uint32) {
	bm, ok := idx.formats[format]
	if !ok {
		return
	}
	bm.Remove(local)
	if bm.IsEmpty() {
		delete(idx.formats, format)
	}
}

// RemoveModel deletes the model with the given id and its cached features.
// It reports whether the id was indexed.
func (idx *Index) RemoveModel(ctx context.Context, id string) bool {
	start := time.Now()

	idx.mu.Lock()
	e, ok := idx.entries[id]
	if ok {
		delete(idx.entries, id)
		delete(idx.byLocal, e.local)
		idx.removePostingLocked(e.model.Format, e.local)
	}
	idx.mu.Unlock()

	idx.metrics.RecordRemove(time.Since(start), ok)
	idx.logger.LogRemove(ctx, id, ok)

	return ok
}

// Clear removes every model from the index.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = make(map[string]*entry)
	idx.byLocal = make(map[uint32]*entry)
	idx.formats = make(map[string]*roaring.Bitmap)
	idx.nextLocal = 0
}

// Len returns the number of indexed models.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.entries)
}

// Get returns the indexed model with the given id.
func (idx *Index) Get(id string) (*geometry.Model, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.entries[id]
	if !ok {
		return nil, false
	}
	return e.model, true
}

// Features returns the cached descriptor of the model with the given id.
func (idx *Index) Features(id string) (feature.Features, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.entries[id]
	if !ok {
		return feature.Features{}, false
	}
	return e.features, true
}

// IDs returns the ids of all indexed models in ascending order.
func (idx *Index) IDs() []string {
	idx.mu.RLock()
	ids := make([]string, 0, len(idx.entries))
	for id := range idx.entries {
		ids = append(ids, id)
	}
	idx.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// snapshot returns all entries ordered by model id.
func (idx *Index) snapshot() []*entry {
	idx.mu.RLock()
	out := make([]*entry, 0, len(idx.entries))
	for _, e := range idx.entries {
		out = append(out, e)
	}
	idx.mu.RUnlock()

	sortEntries(out)
	return out
}

func sortEntries(es []*entry) {
	slices.SortFunc(es, func(a, b *entry) int {
		return cmp.Compare(a.model.ID, b.model.ID)
	})
}

func validateModel(m *geometry.Model) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if m.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidModel)
	}
	return nil
}

func modelID(m *geometry.Model) string {
	if m == nil {
		return ""
	}
	return m.ID
}
