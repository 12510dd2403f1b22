package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithPreProcessor sets the pre-processor used to expand @oxy: annotations.
//
// Parameters:
//   - pp: the pre-processor carrying the struct registry
//
// Returns:
//   - ShaderBuilderOption: a function that sets the pre-processor
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = pp
	}
}

// WithEntryPoint overrides the entry point name for a stage.
//
// Parameters:
//   - stage: ShaderTypeVertex or ShaderTypeFragment
//   - name: the WGSL function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(stage ShaderType, name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoints[stage] = name
	}
}
