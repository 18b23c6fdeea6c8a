package feature

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/geosearch/geometry"
)

// DefaultScale is the distance mapped onto the last histogram bin.
const DefaultScale = 100.0

// ErrCorruptGeometry is returned when a model's buffers or node arena are malformed.
var ErrCorruptGeometry = errors.New("corrupt geometry")

// CorruptGeometryError describes which node of a model failed validation.
//
// It matches ErrCorruptGeometry with errors.Is; the underlying geometry error
// can be accessed via errors.Unwrap.
type CorruptGeometryError struct {
	ModelID string
	NodeID  string
	Node    int
	cause   error
}

func (e *CorruptGeometryError) Error() string {
	if e.Node == geometry.NoNode {
		return fmt.Sprintf("corrupt geometry in model %q: %v", e.ModelID, e.cause)
	}
	return fmt.Sprintf("corrupt geometry in model %q node %d (%q): %v", e.ModelID, e.Node, e.NodeID, e.cause)
}

func (e *CorruptGeometryError) Is(target error) bool { return target == ErrCorruptGeometry }

func (e *CorruptGeometryError) Unwrap() error { return e.cause }

// Origin selects the reference point of the radial distance histogram.
type Origin int

const (
	// OriginWorld measures distances from (0, 0, 0). Models are expected to be
	// centered by the caller.
	OriginWorld Origin = iota
	// OriginCentroid measures distances from the model's vertex centroid.
	OriginCentroid
)

func (o Origin) String() string {
	switch o {
	case OriginWorld:
		return "World"
	case OriginCentroid:
		return "Centroid"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// Options configures an Extractor.
type Options struct {
	// Scale is the distance that maps to the last histogram bin.
	// Farther vertices are clamped into it. Values <= 0 select DefaultScale.
	Scale float64

	// Origin is the reference point for histogram distances.
	Origin Origin

	// TriangulateUnindexed treats nodes without an index buffer as plain
	// triangle lists (v0 v1 v2, v3 v4 v5, ...) when computing surface area.
	// When false such nodes contribute zero area.
	TriangulateUnindexed bool
}

// DefaultOptions contains the default extractor configuration.
var DefaultOptions = Options{
	Scale:                DefaultScale,
	Origin:               OriginWorld,
	TriangulateUnindexed: false,
}

// Extractor computes Features from models. It is stateless and safe for
// concurrent use.
type Extractor struct {
	opts Options
}

// NewExtractor creates an extractor starting from DefaultOptions.
func NewExtractor(optFns ...func(o *Options)) *Extractor {
	opts := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Scale <= 0 || math.IsNaN(opts.Scale) || math.IsInf(opts.Scale, 0) {
		opts.Scale = DefaultScale
	}
	return &Extractor{opts: opts}
}

// Options returns the effective configuration.
func (e *Extractor) Options() Options {
	return e.opts
}

var defaultExtractor = NewExtractor()

// Extract computes the descriptor of m with the default extractor.
func Extract(m *geometry.Model) (Features, error) {
	return defaultExtractor.Extract(m)
}

// ExtractOrEmpty is like Extract but returns Empty() instead of an error.
func ExtractOrEmpty(m *geometry.Model) Features {
	return defaultExtractor.ExtractOrEmpty(m)
}

// ExtractOrEmpty is like Extract but returns Empty() instead of an error.
func (e *Extractor) ExtractOrEmpty(m *geometry.Model) Features {
	f, err := e.Extract(m)
	if err != nil {
		return Empty()
	}
	return f
}

// Extract computes the descriptor of m.
//
// A nil model or a model without a root yields Empty(). Nodes without geometry
// contribute nothing. Malformed buffers, node arenas and non-finite model bounds
// yield an error matching ErrCorruptGeometry and a zero descriptor.
func (e *Extractor) Extract(m *geometry.Model) (Features, error) {
	if m == nil || !m.HasRoot() {
		return Empty(), nil
	}

	var (
		meshes []*geometry.Geometry
		sum    geometry.Vec3
		f      Features
	)

	// Pass 1: centroid sums, vertex count and surface area.
	err := m.Walk(func(idx int, n *geometry.Node) error {
		g := n.Geometry
		if g == nil || len(g.Vertices) == 0 {
			return nil
		}
		if err := g.Validate(); err != nil {
			return &CorruptGeometryError{ModelID: m.ID, NodeID: n.ID, Node: idx, cause: err}
		}

		meshes = append(meshes, g)
		for i := range g.VertexCount() {
			sum = sum.Add(g.Vertex(i))
		}
		f.VertexCount += g.VertexCount()

		area, triangles := e.surfaceArea(g)
		f.SurfaceArea += area
		f.TriangleCount += triangles
		return nil
	})
	if err != nil {
		var cge *CorruptGeometryError
		if errors.As(err, &cge) {
			return Features{}, err
		}
		return Features{}, &CorruptGeometryError{ModelID: m.ID, Node: geometry.NoNode, cause: err}
	}

	if err := m.Bounds.Validate(); err != nil {
		return Features{}, &CorruptGeometryError{ModelID: m.ID, Node: geometry.NoNode, cause: err}
	}

	f.Bounds = m.Bounds
	f.Volume = EstimateVolume(m.Bounds)

	if f.VertexCount == 0 {
		return f, nil
	}

	f.Centroid = sum.Scale(1 / float64(f.VertexCount))

	// Pass 2: radial distance histogram.
	var origin geometry.Vec3
	if e.opts.Origin == OriginCentroid {
		origin = f.Centroid
	}
	for _, g := range meshes {
		for i := range g.VertexCount() {
			dist := g.Vertex(i).Sub(origin).Length()
			f.Histogram[e.bin(dist)]++
		}
	}
	inv := 1 / float64(f.VertexCount)
	for i := range f.Histogram {
		f.Histogram[i] *= inv
	}

	return f, nil
}

// bin maps a distance onto a histogram bin, clamping out-of-range values.
func (e *Extractor) bin(dist float64) int {
	x := math.Floor((dist / e.opts.Scale) * (HistogramBins - 1))
	if !(x < HistogramBins-1) {
		// Also catches +Inf from overflowing coordinates.
		return HistogramBins - 1
	}
	return max(int(x), 0)
}

// surfaceArea returns the summed triangle area of g and the triangle count.
func (e *Extractor) surfaceArea(g *geometry.Geometry) (float64, int) {
	var area float64

	if len(g.Indices) > 0 {
		for t := range g.TriangleCount() {
			o := 3 * t
			area += geometry.TriangleArea(
				g.Vertex(int(g.Indices[o])),
				g.Vertex(int(g.Indices[o+1])),
				g.Vertex(int(g.Indices[o+2])),
			)
		}
		return area, g.TriangleCount()
	}

	if !e.opts.TriangulateUnindexed {
		return 0, 0
	}

	triangles := g.VertexCount() / 3
	for t := range triangles {
		o := 3 * t
		area += geometry.TriangleArea(g.Vertex(o), g.Vertex(o+1), g.Vertex(o+2))
	}
	return area, triangles
}
