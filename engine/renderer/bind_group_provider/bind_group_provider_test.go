package bind_group_provider

import "testing"

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("mesh body", WithMesh(nil, nil, 36))

	if got := p.Label(); got != "mesh body" {
		t.Errorf("Label() = %q, want %q", got, "mesh body")
	}
	if got := p.IndexCount(); got != 36 {
		t.Errorf("IndexCount() = %d, want 36", got)
	}
	if p.BindGroup() != nil || p.Buffer(0) != nil || p.TextureView(1) != nil {
		t.Error("expected a fresh provider to hold no GPU resources")
	}
}

func TestReleaseClearsState(t *testing.T) {
	p := NewBindGroupProvider("material", WithBuffer(0, nil), WithMesh(nil, nil, 6))
	p.SetTexture(1, nil, nil)

	p.Release()
	p.Release()

	if got := p.IndexCount(); got != 0 {
		t.Errorf("IndexCount() after Release = %d, want 0", got)
	}
	if p.Texture(1) != nil || p.Buffer(0) != nil {
		t.Error("expected Release to clear stored resources")
	}
}
