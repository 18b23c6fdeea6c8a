package geometry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// NoNode marks an absent node reference (e.g. a model without a root).
const NoNode = -1

var (
	// ErrInvalidNode is returned when the node arena is not a well-formed tree.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidGeometry is returned when a mesh buffer is malformed.
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Geometry is a triangle mesh stored as flat buffers.
type Geometry struct {
	// Vertices holds 3 coordinates per vertex: [x0, y0, z0, x1, y1, z1, ...].
	Vertices []float64
	// Indices holds 3 vertex indices per triangle. It may be empty.
	Indices []uint32
}

// VertexCount returns the number of complete vertices.
func (g *Geometry) VertexCount() int {
	if g == nil {
		return 0
	}
	return len(g.Vertices) / 3
}

// TriangleCount returns the number of complete indexed triangles.
func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// Vertex returns the i-th vertex. The caller guarantees i < VertexCount().
func (g *Geometry) Vertex(i int) Vec3 {
	o := i * 3
	return Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

// Validate checks buffer lengths, index ranges and coordinate values.
func (g *Geometry) Validate() error {
	if g == nil {
		return nil
	}
	if len(g.Vertices)%3 != 0 {
		return fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrInvalidGeometry, len(g.Vertices))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: index buffer length %d is not a multiple of 3", ErrInvalidGeometry, len(g.Indices))
	}
	for i, c := range g.Vertices {
		if !isFinite(c) {
			return fmt.Errorf("%w: non-finite coordinate at offset %d", ErrInvalidGeometry, i)
		}
	}
	n := uint32(g.VertexCount())
	for i, idx := range g.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at offset %d out of range (%d vertices)", ErrInvalidGeometry, idx, i, n)
		}
	}
	return nil
}

// Clone returns a deep copy of g.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{
		Vertices: slices.Clone(g.Vertices),
		Indices:  slices.Clone(g.Indices),
	}
}

// Node is one element of a model tree.
type Node struct {
	ID       string
	Geometry *Geometry
	// Children are indices into the owning Model's Nodes.
	Children []int
}

// Model is a hierarchical mesh together with its catalog attributes.
type Model struct {
	ID     string
	Name   string
	Format string

	Nodes []Node
	// Root is the index of the root node, or NoNode.
	Root int

	// Bounds is supplied by the caller and is not derived from the nodes.
	Bounds Bounds
}

// NewModel creates an empty model without a root.
func NewModel(id, name, format string) *Model {
	return &Model{
		ID:     id,
		Name:   name,
		Format: format,
		Root:   NoNode,
	}
}

// HasRoot reports whether the model has a root node.
func (m *Model) HasRoot() bool {
	return m != nil && m.Root >= 0 && m.Root < len(m.Nodes)
}

// AddNode appends n to the arena and returns its index.
// With parent == NoNode the node becomes the root, which is only allowed once.
func (m *Model) AddNode(parent int, n Node) (int, error) {
	if parent == NoNode {
		if m.HasRoot() {
			return NoNode, fmt.Errorf("%w: model %q already has a root", ErrInvalidNode, m.ID)
		}
		m.Nodes = append(m.Nodes, n)
		m.Root = len(m.Nodes) - 1
		return m.Root, nil
	}

	if parent < 0 || parent >= len(m.Nodes) {
		return NoNode, fmt.Errorf("%w: parent %d out of range", ErrInvalidNode, parent)
	}

	m.Nodes = append(m.Nodes, n)
	idx := len(m.Nodes) - 1
	m.Nodes[parent].Children = append(m.Nodes[parent].Children, idx)
	return idx, nil
}

// MustAddNode is like AddNode but panics on error.
// Use it only for statically known trees.
func (m *Model) MustAddNode(parent int, n Node) int {
	idx, err := m.AddNode(parent, n)
	if err != nil {
		panic(err)
	}
	return idx
}

// Walk visits every node reachable from the root in depth-first pre-order,
// children in declaration order. It fails with ErrInvalidNode if a child index
// is out of range or a node is reachable twice. An error returned by fn stops
// the walk and is returned unchanged.
func (m *Model) Walk(fn func(idx int, n *Node) error) error {
	if !m.HasRoot() {
		return nil
	}

	visited := bitset.New(uint(len(m.Nodes)))
	stack := []int{m.Root}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited.Test(uint(idx)) {
			return fmt.Errorf("%w: node %d reached more than once", ErrInvalidNode, idx)
		}
		visited.Set(uint(idx))

		n := &m.Nodes[idx]
		if err := fn(idx, n); err != nil {
			return err
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			if c < 0 || c >= len(m.Nodes) {
				return fmt.Errorf("%w: node %d has child %d out of range", ErrInvalidNode, idx, c)
			}
			stack = append(stack, c)
		}
	}

	return nil
}

// VertexCount returns the number of vertices reachable from the root.
// It fails with ErrInvalidNode if the node arena is not a well-formed tree.
func (m *Model) VertexCount() (int, error) {
	var n int
	if err := m.Walk(func(_ int, node *Node) error {
		n += node.Geometry.VertexCount()
		return nil
	}); err != nil {
		return 0, err
	}
	return n, nil
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	c := *m
	c.Nodes = make([]Node, len(m.Nodes))
	for i, n := range m.Nodes {
		c.Nodes[i] = Node{
			ID:       n.ID,
			Geometry: n.Geometry.Clone(),
			Children: slices.Clone(n.Children),
		}
	}
	return &c
}
