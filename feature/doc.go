// Package feature computes compact geometric shape descriptors from mesh models.
//
// A descriptor (Features) summarises a model by its centroid, triangle surface
// area, bounding-box volume estimate and a 32-bin histogram of vertex distances
// from the origin. Descriptors are small fixed-size values that are cheap to copy
// and compare; see package similarity for the comparison metric.
//
// # Extraction
//
//	f, err := feature.Extract(model)
//	if err != nil {
//	    // structurally corrupt buffers, see ErrCorruptGeometry
//	}
//
// Missing data is never an error: a nil model, a model without a root or nodes
// without geometry simply contribute nothing. Callers that prefer a sentinel over
// an error use ExtractOrEmpty.
//
// # Options
//
// The default extractor measures distances from the world origin and maps the
// range [0, 100] onto the histogram. Both can be changed:
//
//	x := feature.NewExtractor(func(o *feature.Options) {
//	    o.Origin = feature.OriginCentroid
//	    o.Scale = 2
//	})
package feature
