package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

type testNode struct {
	name string
	kind NodeKind
}

func (n *testNode) NodeName() string   { return n.name }
func (n *testNode) NodeKind() NodeKind { return n.kind }

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene("viewer")
	if s.Name() != "viewer" {
		t.Fatalf("Name() = %q, want %q", s.Name(), "viewer")
	}
	if got, want := s.Background(), (common.Color{A: 1}); got != want {
		t.Fatalf("Background() = %+v, want %+v", got, want)
	}
	if s.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", s.Count())
	}
}

func TestWithBackground(t *testing.T) {
	bg := common.ColorFromRGB8(100, 250, 0)
	s := NewScene("viewer", WithBackground(bg))
	if s.Background() != bg {
		t.Fatalf("Background() = %+v, want %+v", s.Background(), bg)
	}
}

func TestAddRemove(t *testing.T) {
	s := NewScene("viewer")
	a := &testNode{name: "a", kind: NodeKindLight}
	b := &testNode{name: "b", kind: NodeKindModel}

	if !s.Add(a) {
		t.Fatal("Add(a) = false on first insert")
	}
	if s.Add(a) {
		t.Fatal("Add(a) = true on duplicate insert")
	}
	s.Add(b)

	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}

	children := s.Children()
	if children[0] != a || children[1] != b {
		t.Fatalf("Children() not in insertion order: %v", children)
	}

	if got := s.ChildrenOfKind(NodeKindModel); len(got) != 1 || got[0] != b {
		t.Fatalf("ChildrenOfKind(model) = %v, want [b]", got)
	}

	if !s.Remove(a) {
		t.Fatal("Remove(a) = false")
	}
	if s.Remove(a) {
		t.Fatal("Remove(a) = true after removal")
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d after remove, want 1", s.Count())
	}

	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("Count() = %d after Clear, want 0", s.Count())
	}
}

func TestChildrenIsSnapshot(t *testing.T) {
	s := NewScene("viewer", WithChildren(&testNode{name: "a"}, nil))
	c := s.Children()
	c[0] = nil
	if s.Children()[0] == nil {
		t.Fatal("mutating Children() result changed the scene")
	}
}

func TestAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Add(nil) did not panic")
		}
	}()
	NewScene("viewer").Add(nil)
}
