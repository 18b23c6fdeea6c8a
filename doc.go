// Package geosearch provides an embedded, in-memory shape similarity index for
// 3D mesh models.
//
// Geosearch summarises every model by a compact geometric descriptor (centroid,
// surface area, bounding-box volume estimate and a radial distance histogram,
// see package feature) and ranks indexed models by a bounded similarity metric
// (see package similarity). File loaders, rendering and persistence are left to
// the hosting application: it hands parsed geometry.Model trees to the index and
// consumes ranked results.
//
// # Quick Start
//
//	ctx := context.Background()
//	idx := geosearch.New()
//
//	if err := idx.IndexModel(ctx, model); err != nil {
//	    // corrupt geometry; the index is unchanged
//	}
//
//	results, err := idx.Search(ctx, query, 10)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Similarity, r.Score)
//	}
//
// # Fluent Queries
//
//	results, err := idx.Query(query).
//	    TopK(5).
//	    Format("stl").
//	    Where(func(m *geometry.Model, f *feature.Features) bool { return f.VertexCount > 100 }).
//	    MinSimilarity(0.5).
//	    Execute(ctx)
//
// # Bulk Loading
//
// IndexBatch extracts features on a worker pool and commits all successful
// models at once:
//
//	res := idx.IndexBatch(ctx, models)
//	if err := res.Err(); err != nil {
//	    log.Printf("%d of %d models failed: %v", res.Failed(), len(models), err)
//	}
//
// # Cache Invalidation
//
// Cached descriptors are never refreshed implicitly. After changing the geometry
// of an indexed model call IndexModel again, or Reindex for all models.
//
// # Concurrency
//
// An Index is safe for concurrent use. Searches score candidates outside the
// index lock and, above a configurable candidate count, on several goroutines.
package geosearch
