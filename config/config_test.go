package config

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Assets.Root != "models" || cfg.Assets.Model != "Humvee" {
		t.Errorf("assets = %+v", cfg.Assets)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := writeConfig(t, `
assets:
  model: Truck
window:
  width: 640
render:
  presentMode: uncapped
  frameLimit: 30
profile: true
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Assets.Model = "Truck"
	want.Window.Width = 640
	want.Render.PresentMode = PresentModeUncapped
	want.Render.FrameLimit = 30
	want.Profile = true
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", "window: [", "parse config"},
		{"bad present mode", "render:\n  presentMode: adaptive\n", "render.presentMode"},
		{"bad msaa", "render:\n  msaa: 3\n", "render.msaa"},
		{"zero width", "window:\n  width: 0\n", "window size"},
		{"empty model", "assets:\n  model: \"\"\n", "assets.model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want a not-exist error", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for the zero Config")
	}
	for _, field := range []string{"assets.root", "assets.model", "window size", "render.presentMode", "render.msaa"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestExportedTypesDocumented(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "config.go", nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse config.go: %v", err)
	}
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			ts := s.(*ast.TypeSpec)
			if !ts.Name.IsExported() {
				continue
			}
			if ts.Doc == nil && gd.Doc == nil {
				t.Errorf("exported type %s has no doc comment", ts.Name.Name)
			}
		}
	}
}
