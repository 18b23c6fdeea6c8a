package geometry

import (
	"fmt"
	"math"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Volume returns the volume of the box.
// An inverted axis (Max < Min) has zero extent. A box with a non-finite corner
// has volume 0, so the result is always finite and never negative.
func (b Bounds) Volume() float64 {
	if !b.IsFinite() {
		return 0
	}
	s := b.Size()
	v := math.Max(s.X, 0) * math.Max(s.Y, 0) * math.Max(s.Z, 0)
	if math.IsInf(v, 0) {
		return 0
	}
	return v
}

// IsFinite reports whether both corners have finite coordinates.
func (b Bounds) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Validate returns an error matching ErrInvalidGeometry if a corner is not finite.
func (b Bounds) Validate() error {
	if !b.IsFinite() {
		return fmt.Errorf("%w: non-finite bounds %v..%v", ErrInvalidGeometry, b.Min, b.Max)
	}
	return nil
}

// Contains reports whether p lies inside the box, borders included.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// extend grows b to include p.
func (b *Bounds) extend(p Vec3) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// ComputeBounds derives the bounding box of every vertex reachable from the root.
// A model without vertices yields a box collapsed to the origin.
func ComputeBounds(m *Model) (Bounds, error) {
	var (
		b     Bounds
		found bool
	)

	err := m.Walk(func(_ int, n *Node) error {
		if n.Geometry == nil {
			return nil
		}
		for i := range n.Geometry.VertexCount() {
			p := n.Geometry.Vertex(i)
			if !found {
				b = Bounds{Min: p, Max: p}
				found = true
				continue
			}
			b.extend(p)
		}
		return nil
	})
	if err != nil {
		return Bounds{}, err
	}

	return b, nil
}
