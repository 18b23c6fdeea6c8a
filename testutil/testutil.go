package testutil

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/geometry"
	"github.com/hupe1980/geosearch/similarity"
)

// Formats assigned to generated models.
var Formats = []string{"stl", "obj", "gltf"}

// SearchResult represents a ranked match.
type SearchResult struct {
	ID         string
	Similarity float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64Range returns a pseudo-random number in [minVal, maxVal).
func (r *RNG) Float64Range(minVal, maxVal float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minVal + r.rand.Float64()*(maxVal-minVal)
}

// Model returns a random cube, box or UV sphere with the given id.
// Edge lengths lie in [1, 100), sphere radii in [1, 50).
// The model name records the shape as <kind>:<size>.
func (r *RNG) Model(id string) *geometry.Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.modelLocked(id)
}

func (r *RNG) modelLocked(id string) *geometry.Model {
	var m *geometry.Model
	switch r.rand.Intn(3) {
	case 0:
		side := 1 + r.rand.Float64()*99
		m = geometry.Cube(id, side)
		m.Name = fmt.Sprintf("cube:%.1f", side)
	case 1:
		x, y, z := 1+r.rand.Float64()*99, 1+r.rand.Float64()*99, 1+r.rand.Float64()*99
		m = geometry.Box(id, x, y, z)
		m.Name = fmt.Sprintf("box:%.1fx%.1fx%.1f", x, y, z)
	default:
		radius := 1 + r.rand.Float64()*49
		m = geometry.UVSphere(id, radius, 4+r.rand.Intn(13), 6+r.rand.Intn(27))
		m.Name = fmt.Sprintf("sphere:%.1f", radius)
	}
	m.Format = Formats[r.rand.Intn(len(Formats))]
	return m
}

// Catalog generates n random models with UUID ids.
func (r *RNG) Catalog(n int) []*geometry.Model {
	r.mu.Lock()
	defer r.mu.Unlock()

	models := make([]*geometry.Model, n)
	for i := range models {
		models[i] = r.modelLocked(uuid.NewString())
	}
	return models
}

// Jitter returns a clone of m with every vertex displaced by up to amount on
// each axis. The declared bounds are kept.
func (r *RNG) Jitter(m *geometry.Model, amount float64) *geometry.Model {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := m.Clone()
	for i := range c.Nodes {
		g := c.Nodes[i].Geometry
		if g == nil {
			continue
		}
		for j := range g.Vertices {
			g.Vertices[j] += (r.rand.Float64()*2 - 1) * amount
		}
	}
	return c
}

// ExtractAll extracts the features of every model with the default extractor,
// keyed by model id. It panics on corrupt geometry.
func ExtractAll(models []*geometry.Model) map[string]feature.Features {
	out := make(map[string]feature.Features, len(models))
	for _, m := range models {
		f, err := feature.Extract(m)
		if err != nil {
			panic(err)
		}
		out[m.ID] = f
	}
	return out
}

// ComputeRecall computes recall@k by comparing approximate results against ground truth.
func ComputeRecall(groundTruth, approximate []SearchResult) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[string]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].ID] = struct{}{}
	}

	hits := 0
	for _, r := range approximate {
		if _, ok := truthSet[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}

// BruteForceSearch performs exact ranking for ground truth: every entry of
// features except excludeID is compared with query, best first, ties by id.
func BruteForceSearch(features map[string]feature.Features, query feature.Features, excludeID string, k int) []SearchResult {
	results := make([]SearchResult, 0, len(features))
	for id, f := range features {
		if id == excludeID {
			continue
		}
		results = append(results, SearchResult{ID: id, Similarity: similarity.Compare(&query, &f)})
	}

	slices.SortFunc(results, func(a, b SearchResult) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
