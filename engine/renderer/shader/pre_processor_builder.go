package shader

// PreProcessorBuilderOption is a functional option used to configure a PreProcessor during construction.
type PreProcessorBuilderOption func(*preProcessor)

// WithStruct registers a WGSL struct source under an annotation key.
//
// Parameters:
//   - key: the struct type key used by @oxy:include and @oxy:group
//   - source: the WGSL struct definition
//   - typeName: the WGSL type name emitted in generated declarations
//
// Returns:
//   - PreProcessorBuilderOption: a function that registers the struct
func WithStruct(key AnnotationArg, source, typeName string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.structRegistry[key] = registryEntry{Source: source, Type: typeName}
	}
}
