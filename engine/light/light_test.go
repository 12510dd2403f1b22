package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func TestAddRigOnEmptyScene(t *testing.T) {
	s := scene.NewScene("test")
	lights := AddRig(s)

	if s.Count() != 4 {
		t.Fatalf("scene Count() = %d, want 4", s.Count())
	}
	if len(lights) != 4 {
		t.Fatalf("AddRig returned %d lights, want 4", len(lights))
	}

	want := []mgl32.Vec3{{200, 0, 0}, {-200, 0, 0}, {0, 200, 0}, {0, -200, 0}}
	white := common.Color{R: 1, G: 1, B: 1, A: 1}
	children := s.Children()
	for i, l := range lights {
		if children[i] != l {
			t.Errorf("child %d is not rig light %d", i, i)
		}
		if l.NodeKind() != scene.NodeKindLight {
			t.Errorf("light %d NodeKind() = %v", i, l.NodeKind())
		}
		if l.Position() != want[i] {
			t.Errorf("light %d Position() = %v, want %v", i, l.Position(), want[i])
		}
		if l.Target() != (mgl32.Vec3{}) {
			t.Errorf("light %d Target() = %v, want origin", i, l.Target())
		}
		if l.Color() != white {
			t.Errorf("light %d Color() = %+v, want white", i, l.Color())
		}
		if l.Intensity() != 1 {
			t.Errorf("light %d Intensity() = %v, want 1", i, l.Intensity())
		}
		if !l.CastsShadows() {
			t.Errorf("light %d CastsShadows() = false", i)
		}
	}
}

func TestAddRigOptions(t *testing.T) {
	s := scene.NewScene("test")
	lights := AddRig(s, WithRigDistance(50), WithRigIntensity(0.5), WithRigShadows(false))
	if lights[0].Position() != (mgl32.Vec3{50, 0, 0}) {
		t.Fatalf("Position() = %v, want (50, 0, 0)", lights[0].Position())
	}
	for i, l := range lights {
		if l.Intensity() != 0.5 || l.CastsShadows() {
			t.Fatalf("light %d = intensity %v shadows %v", i, l.Intensity(), l.CastsShadows())
		}
	}
}

func TestDirectionPointsAtTarget(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl32.Vec3
		want mgl32.Vec3
	}{
		{"from +x", mgl32.Vec3{200, 0, 0}, mgl32.Vec3{-1, 0, 0}},
		{"from -y", mgl32.Vec3{0, -200, 0}, mgl32.Vec3{0, 1, 0}},
		{"coincident", mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewDirectionalLight("l", WithPosition(tt.pos))
			if got := l.Direction(); !got.ApproxEqual(tt.want) {
				t.Fatalf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGPULightMarshal(t *testing.T) {
	l := NewDirectionalLight("l",
		WithPosition(mgl32.Vec3{0, 200, 0}),
		WithColor(common.Color{R: 1, G: 0.5, B: 0.25, A: 1}),
		WithIntensity(2),
		WithCastsShadows(true),
	)
	g := ToGPULight(l)
	if g.Size() != 32 {
		t.Fatalf("Size() = %d, want 32", g.Size())
	}

	buf := g.Marshal()
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }

	if f(4) != -1 {
		t.Errorf("direction.y = %v, want -1", f(4))
	}
	if binary.LittleEndian.Uint32(buf[12:]) != 1 {
		t.Errorf("castsShadows = %d, want 1", binary.LittleEndian.Uint32(buf[12:]))
	}
	if f(16) != 1 || f(20) != 0.5 || f(24) != 0.25 {
		t.Errorf("color = (%v, %v, %v)", f(16), f(20), f(24))
	}
	if f(28) != 2 {
		t.Errorf("intensity = %v, want 2", f(28))
	}
}

func TestPackLightsSkipsDisabledAndCaps(t *testing.T) {
	var lights []Light
	lights = append(lights, NewDirectionalLight("off", WithEnabled(false)))
	for i := 0; i < 6; i++ {
		lights = append(lights, NewDirectionalLight("on", WithIntensity(float32(i+1))))
	}

	packed := PackLights(lights)
	if len(packed) != MaxGPULights {
		t.Fatalf("len(PackLights) = %d, want %d", len(packed), MaxGPULights)
	}
	if packed[0].Intensity != 1 {
		t.Fatalf("first packed intensity = %v, want 1 (disabled light skipped)", packed[0].Intensity)
	}
}
