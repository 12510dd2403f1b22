package shader

import (
	"strings"
	"testing"
)

const testLightStruct = "struct DirectionalLight {\n    color: vec3<f32>,\n};\n"

const testFrameStruct = "struct Frame {\n    lights: array<DirectionalLight, 4>,\n};\n"

func testPreProcessor() PreProcessor {
	return NewPreProcessor(
		WithStruct(AnnotationArgLight, testLightStruct, "DirectionalLight"),
		WithStruct(AnnotationArgFrame, testFrameStruct, "Frame"),
	)
}

const testShaderSource = `//@oxy:include light
//@oxy:include frame
//@oxy:include light
//@oxy:group 0 0 uniform frame frame
//@oxy:provider 1 1 material diffuse_texture
@group(1) @binding(1) var diffuse_map: texture_2d<f32>;

@vertex
fn vs_main(@location(0) p: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(p, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(frame.lights[0].color, 1.0);
}
`

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantType AnnotationType
		wantNil  bool
		wantErr  bool
	}{
		{name: "plain code", line: "let x = 1.0;", wantNil: true},
		{name: "plain comment", line: "// light loop", wantNil: true},
		{name: "prefix outside comment", line: "let s = \"@oxy:include light\";", wantNil: true},
		{name: "include", line: "//@oxy:include light", wantType: annotationTypeInclude},
		{name: "include indented", line: "    // @oxy:include frame", wantType: annotationTypeInclude},
		{name: "group", line: "//@oxy:group 0 0 uniform frame frame", wantType: AnnotationTypeBindingGroup},
		{name: "provider", line: "//@oxy:provider 1 2 material diffuse_sampler", wantType: AnnotationTypeProvider},
		{name: "empty", line: "//@oxy:", wantErr: true},
		{name: "unknown type", line: "//@oxy:define MAX 4", wantErr: true},
		{name: "include arity", line: "//@oxy:include", wantErr: true},
		{name: "group bad number", line: "//@oxy:group x 0 uniform frame frame", wantErr: true},
		{name: "group negative binding", line: "//@oxy:group 0 -1 uniform frame frame", wantErr: true},
		{name: "group bad address space", line: "//@oxy:group 0 0 private frame frame", wantErr: true},
		{name: "provider bad identity", line: "//@oxy:provider 1 1 shadow diffuse_texture", wantErr: true},
		{name: "provider bad role", line: "//@oxy:provider 1 1 material normal_map", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 7)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAnnotation(%q) expected an error", tt.line)
				}
				if !strings.Contains(err.Error(), "line 7") {
					t.Errorf("error %q does not name the line", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnnotation(%q) error = %v", tt.line, err)
			}
			if tt.wantNil {
				if a != nil {
					t.Errorf("parseAnnotation(%q) = %+v, want nil", tt.line, a)
				}
				return
			}
			if a == nil || a.Type != tt.wantType {
				t.Fatalf("parseAnnotation(%q) = %+v, want type %s", tt.line, a, tt.wantType)
			}
			if a.Line != 7 {
				t.Errorf("Line = %d, want 7", a.Line)
			}
		})
	}
}

func TestPreProcessorProcess(t *testing.T) {
	pp := testPreProcessor()
	out, err := pp.Process(testShaderSource)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if strings.Contains(out, "@oxy:") {
		t.Error("processed source still contains annotations")
	}
	if got := strings.Count(out, "struct DirectionalLight"); got != 1 {
		t.Errorf("DirectionalLight included %d times, want 1", got)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> frame: Frame;") {
		t.Errorf("generated declaration missing:\n%s", out)
	}
	if strings.Index(out, "struct DirectionalLight") > strings.Index(out, "struct Frame") {
		t.Error("include order not preserved")
	}

	decls := pp.Declarations()
	if len(decls) != 2 {
		t.Fatalf("declarations = %d, want 2", len(decls))
	}
	if decls[0].Type != AnnotationTypeBindingGroup || *decls[0].Group != 0 || *decls[0].Binding != 0 {
		t.Errorf("first declaration = %+v", decls[0])
	}
	if decls[1].Type != AnnotationTypeProvider || decls[1].Args[1] != AnnotationArgRoleDiffuseTexture {
		t.Errorf("second declaration = %+v", decls[1])
	}

	// Declarations are reset on each call.
	if _, err := pp.Process("fn f() {}"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(pp.Declarations()) != 0 {
		t.Errorf("declarations after reprocess = %d, want 0", len(pp.Declarations()))
	}
}

func TestPreProcessorUnknownStruct(t *testing.T) {
	for _, src := range []string{"//@oxy:include material", "//@oxy:group 1 0 uniform material material"} {
		if _, err := testPreProcessor().Process(src); err == nil {
			t.Errorf("Process(%q) expected an error", src)
		}
	}
}

func TestNewShader(t *testing.T) {
	s, err := NewShader("test.wgsl", testShaderSource, WithPreProcessor(testPreProcessor()))
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	if s.Key() != "test.wgsl" || s.Module().Label != "test.wgsl" {
		t.Errorf("key = %q, module label = %q", s.Key(), s.Module().Label)
	}
	if s.Module().WGSLDescriptor.Code != s.Source() {
		t.Error("module code differs from processed source")
	}
	if s.EntryPoint(ShaderTypeVertex) != "vs_main" || s.EntryPoint(ShaderTypeFragment) != "fs_main" {
		t.Errorf("entry points = %q, %q", s.EntryPoint(ShaderTypeVertex), s.EntryPoint(ShaderTypeFragment))
	}
	if _, ok := s.Declaration(0, 0); !ok {
		t.Error("Declaration(0, 0) not found")
	}
	if d, ok := s.Declaration(1, 1); !ok || d.Args[0] != AnnotationArgProviderMaterial {
		t.Errorf("Declaration(1, 1) = %+v, %v", d, ok)
	}
	if _, ok := s.Declaration(1, 2); ok {
		t.Error("Declaration(1, 2) unexpectedly found")
	}
}

func TestNewShaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		options []ShaderBuilderOption
	}{
		{name: "unregistered include", source: testShaderSource},
		{name: "missing fragment", source: "@vertex\nfn vs_main() {}\n"},
		{
			name:    "renamed vertex entry",
			source:  "@vertex\nfn vs_main() {}\n@fragment\nfn fs_main() {}\n",
			options: []ShaderBuilderOption{WithEntryPoint(ShaderTypeVertex, "main")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewShader("bad.wgsl", tt.source, tt.options...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
