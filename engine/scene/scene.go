package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// NodeKind classifies a scene child so renderers can pick the children they draw
// without a type switch on every concrete type.
type NodeKind int

const (
	// NodeKindLight marks a light source.
	NodeKindLight NodeKind = iota

	// NodeKindModel marks a loaded, drawable model.
	NodeKindModel
)

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeKindLight:
		return "light"
	case NodeKindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Node is anything that can be added as a direct child of a Scene.
type Node interface {
	// NodeName returns the display name of the node. Names do not need to be unique.
	NodeName() string

	// NodeKind returns the node's classification.
	NodeKind() NodeKind
}

// Scene is the root container of everything the viewer draws: a background color
// and a flat list of children (lights and the loaded model).
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Background returns the color the renderer clears to before drawing the scene.
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the new background color
	SetBackground(c common.Color)

	// Add appends a child to the scene. Adding a node that is already a child is a no-op.
	//
	// Parameters:
	//   - n: the node to add (must not be nil)
	//
	// Returns:
	//   - bool: true if the node was added, false if it was already present
	Add(n Node) bool

	// Remove removes a child by reference.
	//
	// Parameters:
	//   - n: the node to remove
	//
	// Returns:
	//   - bool: true if the node was a child and has been removed
	Remove(n Node) bool

	// Children returns a snapshot of the scene's children in insertion order.
	//
	// Returns:
	//   - []Node: copy of the child list
	Children() []Node

	// ChildrenOfKind returns a snapshot of the children with the given kind, in insertion order.
	//
	// Parameters:
	//   - kind: the kind to filter by
	//
	// Returns:
	//   - []Node: matching children
	ChildrenOfKind(kind NodeKind) []Node

	// Count returns the number of direct children.
	Count() int

	// Clear removes all children.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	background common.Color
	children   []Node
}

var _ Scene = &scene{}

// NewScene creates an empty Scene with a black background.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		background: common.Color{A: 1},
		children:   make([]Node, 0, 8),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Add(n Node) bool {
	if n == nil {
		panic("scene: Add requires a non-nil Node")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.children {
		if c == n {
			return false
		}
	}
	s.children = append(s.children, n)
	return true
}

func (s *scene) Remove(n Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.children {
		if c == n {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return true
		}
	}
	return false
}

func (s *scene) Children() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.children))
	copy(out, s.children)
	return out
}

func (s *scene) ChildrenOfKind(kind NodeKind) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Node
	for _, c := range s.children {
		if c.NodeKind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.children)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = s.children[:0]
}
