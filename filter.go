package geosearch

import (
	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
)

// FilterModels returns the indexed models for which pred returns true,
// ordered by id. pred is called without holding the index lock.
func (idx *Index) FilterModels(pred Predicate) []*geometry.Model {
	var out []*geometry.Model
	for _, e := range idx.snapshot() {
		if pred == nil || pred(e.model, &e.features) {
			out = append(out, e.model)
		}
	}
	return out
}

// SearchByFormat returns the indexed models of the given format, ordered by id.
func (idx *Index) SearchByFormat(format string) []*geometry.Model {
	idx.mu.RLock()
	bm, ok := idx.formats[format]
	if !ok {
		idx.mu.RUnlock()
		return nil
	}
	entries := make([]*entry, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		entries = append(entries, idx.byLocal[it.Next()])
	}
	idx.mu.RUnlock()

	sortEntries(entries)

	out := make([]*geometry.Model, len(entries))
	for i, e := range entries {
		out[i] = e.model
	}
	return out
}

// SearchBySize returns the indexed models whose cached volume lies in
// [minVolume, maxVolume], ordered by id.
func (idx *Index) SearchBySize(minVolume, maxVolume float64) []*geometry.Model {
	return idx.FilterModels(func(_ *geometry.Model, f *feature.Features) bool {
		return f.Volume >= minVolume && f.Volume <= maxVolume
	})
}
