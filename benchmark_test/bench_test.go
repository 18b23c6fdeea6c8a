package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/geosearch"
	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
	"github.com/hupe1980/geosearch/similarity"
	"github.com/hupe1980/geosearch/testutil"
)

func BenchmarkExtract(b *testing.B) {
	for _, rings := range []int{8, 32, 128} {
		m := geometry.UVSphere("s", 50, rings, 2*rings)
		n, err := m.VertexCount()
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("sphere_%dv", n), func(b *testing.B) {
			ext := feature.NewExtractor()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ext.Extract(m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompare(b *testing.B) {
	fa, _ := feature.Extract(geometry.Cube("a", 10))
	fb, _ := feature.Extract(geometry.UVSphere("b", 5, 16, 32))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		similarity.Compare(&fa, &fb)
	}
}

func BenchmarkIndex(b *testing.B) {
	const batchSize = 256
	ctx := context.Background()
	models := testutil.NewRNG(1).Catalog(batchSize)

	b.Run("Sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			idx := geosearch.New()
			for _, m := range models {
				if err := idx.IndexModel(ctx, m); err != nil {
					b.Fatal(err)
				}
			}
		}
	})

	b.Run("Batch", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			idx := geosearch.New()
			if err := idx.IndexBatch(ctx, models).Err(); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkSearch(b *testing.B) {
	ctx := context.Background()
	const k = 10

	for _, n := range []int{1_000, 10_000, 50_000} {
		models := testutil.NewRNG(1).Catalog(n)

		for _, mode := range []struct {
			name      string
			threshold int
		}{
			{"sequential", 0},
			{"parallel", 1024},
		} {
			b.Run(fmt.Sprintf("%s_%d", mode.name, n), func(b *testing.B) {
				idx := geosearch.New(geosearch.WithParallelThreshold(mode.threshold))
				if err := idx.IndexBatch(ctx, models).Err(); err != nil {
					b.Fatal(err)
				}
				query := geometry.UVSphere("query", 25, 16, 32)

				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := idx.Search(ctx, query, k); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkSearchFormat(b *testing.B) {
	ctx := context.Background()
	idx := geosearch.New()
	if err := idx.IndexBatch(ctx, testutil.NewRNG(2).Catalog(20_000)).Err(); err != nil {
		b.Fatal(err)
	}
	query := geometry.Cube("query", 30)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := idx.Query(query).Format("stl").TopK(10).Execute(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
