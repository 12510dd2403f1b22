package shader

import (
	"fmt"
	"regexp"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies a render pipeline stage.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

// Default entry point names.
const (
	DefaultVertexEntryPoint   = "vs_main"
	DefaultFragmentEntryPoint = "fs_main"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key         string
	source      string
	entryPoints map[ShaderType]string
	module      *wgpu.ShaderModuleDescriptor

	declarations []Annotation
	pp           PreProcessor
}

// Shader is a pre-processed WGSL module holding a vertex and a fragment entry point.
type Shader interface {
	// Key returns the unique identifier of the shader, also used as its module label.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source returns the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL source handed to the GPU
	Source() string

	// EntryPoint returns the entry point name for a stage.
	//
	// Parameters:
	//   - stage: ShaderTypeVertex or ShaderTypeFragment
	//
	// Returns:
	//   - string: the entry point name, or "" for an unknown stage
	EntryPoint(stage ShaderType) string

	// Module returns the shader module descriptor built from the pre-processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the group and provider annotations found while pre-processing.
	//
	// Returns:
	//   - []Annotation: declarations in source order
	Declarations() []Annotation

	// Declaration looks up the declaration at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - Annotation: the declaration
	//   - bool: true if one was found
	Declaration(group, binding int) (Annotation, bool)
}

var _ Shader = &shader{}

// NewShader pre-processes WGSL source and checks that both entry points are present.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the annotated WGSL source
//   - options: functional options configuring the pre-processor and entry points
//
// Returns:
//   - Shader: the processed shader
//   - error: an error if pre-processing fails or an entry point is missing
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key: key,
		entryPoints: map[ShaderType]string{
			ShaderTypeVertex:   DefaultVertexEntryPoint,
			ShaderTypeFragment: DefaultFragmentEntryPoint,
		},
	}
	for _, opt := range options {
		opt(s)
	}
	if s.pp == nil {
		s.pp = NewPreProcessor()
	}

	processed, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.source = processed
	s.declarations = append([]Annotation(nil), s.pp.Declarations()...)

	stageAttrs := map[ShaderType]string{
		ShaderTypeVertex:   "@vertex",
		ShaderTypeFragment: "@fragment",
	}
	for stage, name := range s.entryPoints {
		if !hasEntryPoint(s.source, stageAttrs[stage], name) {
			return nil, fmt.Errorf("shader %s: missing %s entry point %q", key, stageAttrs[stage], name)
		}
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

// hasEntryPoint reports whether source declares fn name directly after the stage attribute.
func hasEntryPoint(source, attr, name string) bool {
	re := regexp.MustCompile(regexp.QuoteMeta(attr) + `\s+fn\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	return re.MatchString(source)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage ShaderType) string {
	return s.entryPoints[stage]
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) Declaration(group, binding int) (Annotation, bool) {
	for _, d := range s.declarations {
		if d.Group != nil && d.Binding != nil && *d.Group == group && *d.Binding == binding {
			return d, true
		}
	}
	return Annotation{}, false
}
