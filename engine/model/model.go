package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

type model struct {
	name      string
	meshes    []*Mesh
	materials *MaterialLibrary
	bounds    Bounds
}

// Model is a loaded composite of meshes and the material library they reference.
// A Model is immutable once built and becomes a scene child of kind scene.NodeKindModel.
type Model interface {
	scene.Node

	// Name returns the model's identifier.
	Name() string

	// Meshes returns the model's meshes in file order.
	//
	// Returns:
	//   - []*Mesh: the meshes; callers must not modify them
	Meshes() []*Mesh

	// Materials returns the material library the meshes were built against. May be nil.
	//
	// Returns:
	//   - *MaterialLibrary: the material library
	Materials() *MaterialLibrary

	// Bounds returns the model-space bounding box of all meshes.
	//
	// Returns:
	//   - Bounds: the bounding box
	Bounds() Bounds

	// VertexCount returns the total number of vertices across all meshes.
	VertexCount() int

	// TriangleCount returns the total number of triangles across all meshes.
	TriangleCount() int
}

var _ Model = &model{}

// NewModel creates a Model from the given options and computes its bounds.
//
// Parameters:
//   - name: the model's identifier
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(name string, options ...ModelBuilderOption) Model {
	m := &model{name: name}
	for _, option := range options {
		option(m)
	}
	m.bounds = ComputeBounds(m.meshes)
	return m
}

func (m *model) NodeName() string {
	return m.name
}

func (m *model) NodeKind() scene.NodeKind {
	return scene.NodeKindModel
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []*Mesh {
	return m.meshes
}

func (m *model) Materials() *MaterialLibrary {
	return m.materials
}

func (m *model) Bounds() Bounds {
	return m.bounds
}

func (m *model) VertexCount() int {
	n := 0
	for _, mesh := range m.meshes {
		n += len(mesh.Vertices)
	}
	return n
}

func (m *model) TriangleCount() int {
	n := 0
	for _, mesh := range m.meshes {
		n += mesh.TriangleCount()
	}
	return n
}
