package geometry

import "math"

// FormatGenerated is the format tag of models built by the primitive generators.
const FormatGenerated = "generated"

// Box returns an axis-aligned box centered at the origin with the given edge
// lengths: 8 vertices and 12 indexed triangles in a single mesh node.
func Box(id string, sx, sy, sz float64) *Model {
	hx, hy, hz := sx/2, sy/2, sz/2

	g := &Geometry{
		Vertices: []float64{
			-hx, -hy, -hz,
			hx, -hy, -hz,
			hx, hy, -hz,
			-hx, hy, -hz,
			-hx, -hy, hz,
			hx, -hy, hz,
			hx, hy, hz,
			-hx, hy, hz,
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // -z
			4, 5, 6, 4, 6, 7, // +z
			0, 1, 5, 0, 5, 4, // -y
			3, 7, 6, 3, 6, 2, // +y
			0, 4, 7, 0, 7, 3, // -x
			1, 2, 6, 1, 6, 5, // +x
		},
	}

	m := NewModel(id, id, FormatGenerated)
	m.MustAddNode(NoNode, Node{ID: id + "/mesh", Geometry: g})
	m.Bounds = Bounds{
		Min: Vec3{-hx, -hy, -hz},
		Max: Vec3{hx, hy, hz},
	}
	return m
}

// Cube returns a cube with edge length side centered at the origin.
func Cube(id string, side float64) *Model {
	return Box(id, side, side, side)
}

// UVSphere returns a latitude/longitude tessellated sphere centered at the origin.
// rings is the number of latitude bands (>= 2), segments the number of
// longitude slices (>= 3); smaller values are raised to the minimum.
func UVSphere(id string, radius float64, rings, segments int) *Model {
	rings = max(rings, 2)
	segments = max(segments, 3)

	g := &Geometry{}
	g.Vertices = append(g.Vertices, 0, radius, 0)

	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := radius * math.Cos(phi)
		rr := radius * math.Sin(phi)
		for s := range segments {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			g.Vertices = append(g.Vertices, rr*math.Cos(theta), y, rr*math.Sin(theta))
		}
	}

	g.Vertices = append(g.Vertices, 0, -radius, 0)
	south := uint32(g.VertexCount() - 1)

	ring := func(r, s int) uint32 {
		return uint32(1 + (r-1)*segments + s%segments)
	}

	for s := range segments {
		g.Indices = append(g.Indices, 0, ring(1, s+1), ring(1, s))
	}
	for r := 1; r < rings-1; r++ {
		for s := range segments {
			a, b := ring(r, s), ring(r, s+1)
			c, d := ring(r+1, s), ring(r+1, s+1)
			g.Indices = append(g.Indices, a, b, d, a, d, c)
		}
	}
	for s := range segments {
		g.Indices = append(g.Indices, south, ring(rings-1, s), ring(rings-1, s+1))
	}

	m := NewModel(id, id, FormatGenerated)
	m.MustAddNode(NoNode, Node{ID: id + "/mesh", Geometry: g})
	m.Bounds = Bounds{
		Min: Vec3{-radius, -radius, -radius},
		Max: Vec3{radius, radius, radius},
	}
	return m
}
