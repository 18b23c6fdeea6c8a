package geometry

import "fmt"

// Centroid returns the arithmetic mean of every vertex reachable from the root
// and the number of vertices it was computed from.
func Centroid(m *Model) (Vec3, int, error) {
	var (
		sum   Vec3
		count int
	)

	err := m.Walk(func(_ int, n *Node) error {
		for i := range n.Geometry.VertexCount() {
			sum = sum.Add(n.Geometry.Vertex(i))
			count++
		}
		return nil
	})
	if err != nil {
		return Vec3{}, 0, err
	}
	if count == 0 {
		return Vec3{}, 0, nil
	}

	return sum.Scale(1 / float64(count)), count, nil
}

// Normalize returns a copy of m centered on its vertex centroid and scaled so the
// farthest vertex lies at distance radius from the origin. Bounds are recomputed.
// The input model is left untouched. Models without vertices are only copied.
// A nil model fails with ErrInvalidNode.
func Normalize(m *Model, radius float64) (*Model, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidNode)
	}

	c, count, err := Centroid(m)
	if err != nil {
		return nil, err
	}

	out := m.Clone()
	if count == 0 {
		return out, nil
	}

	var maxDist float64
	_ = out.Walk(func(_ int, n *Node) error {
		g := n.Geometry
		for i := range g.VertexCount() {
			p := g.Vertex(i).Sub(c)
			g.setVertex(i, p)
			if d := p.Length(); d > maxDist {
				maxDist = d
			}
		}
		return nil
	})

	if maxDist > 0 && radius > 0 {
		s := radius / maxDist
		_ = out.Walk(func(_ int, n *Node) error {
			if n.Geometry == nil {
				return nil
			}
			for i := range n.Geometry.Vertices {
				n.Geometry.Vertices[i] *= s
			}
			return nil
		})
	}

	out.Bounds, err = ComputeBounds(out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (g *Geometry) setVertex(i int, p Vec3) {
	o := i * 3
	g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2] = p.X, p.Y, p.Z
}
