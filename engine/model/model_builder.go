package model

// ModelBuilderOption is a functional option for configuring a Model.
// Use the With* functions to create options.
type ModelBuilderOption func(*model)

// WithMeshes appends meshes to the model. Nil meshes are skipped.
//
// Parameters:
//   - meshes: the meshes to add
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithMeshes(meshes ...*Mesh) ModelBuilderOption {
	return func(m *model) {
		for _, mesh := range meshes {
			if mesh != nil {
				m.meshes = append(m.meshes, mesh)
			}
		}
	}
}

// WithMaterials sets the material library the meshes reference.
//
// Parameters:
//   - lib: the material library
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithMaterials(lib *MaterialLibrary) ModelBuilderOption {
	return func(m *model) {
		m.materials = lib
	}
}
