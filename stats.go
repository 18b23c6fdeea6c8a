package geosearch

import (
	"github.com/hupe1980/geosearch/feature"
)

// Stats summarises the contents of an index.
type Stats struct {
	Models    int
	Vertices  int
	Triangles int
	// Formats maps each format to the number of indexed models.
	Formats       map[string]int
	HistogramBins int
	Extractor     feature.Options
}

// Stats returns a summary of the index contents.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s := Stats{
		Models:        len(idx.entries),
		Formats:       make(map[string]int, len(idx.formats)),
		HistogramBins: feature.HistogramBins,
		Extractor:     idx.extractor.Options(),
	}
	for _, e := range idx.entries {
		s.Vertices += e.features.VertexCount
		s.Triangles += e.features.TriangleCount
	}
	for format, bm := range idx.formats {
		s.Formats[format] = int(bm.GetCardinality())
	}
	return s
}
