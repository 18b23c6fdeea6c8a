// Package geometry defines the mesh data model consumed by geosearch.
//
// A Model owns a flat arena of Nodes. Each Node optionally carries a triangle
// mesh (Geometry) and refers to its children by index into the arena, so a model
// tree never contains pointer cycles and can be traversed with an explicit stack.
//
// # Building a Model
//
//	m := geometry.NewModel("part-42", "bracket", "gltf")
//	root, _ := m.AddNode(geometry.NoNode, geometry.Node{ID: "root"})
//	_, _ = m.AddNode(root, geometry.Node{
//	    ID: "mesh0",
//	    Geometry: &geometry.Geometry{
//	        Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
//	        Indices:  []uint32{0, 1, 2},
//	    },
//	})
//	m.Bounds, _ = geometry.ComputeBounds(m)
//
// Loaders for concrete file formats live outside this module; they are expected to
// fill Model.Bounds themselves.
package geometry
