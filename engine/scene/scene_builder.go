package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithBackground sets the color the renderer clears to.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithChildren adds initial children to the scene. Duplicate and nil nodes are skipped.
//
// Parameters:
//   - nodes: the nodes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithChildren(nodes ...Node) SceneBuilderOption {
	return func(s *scene) {
	outer:
		for _, n := range nodes {
			if n == nil {
				continue
			}
			for _, c := range s.children {
				if c == n {
					continue outer
				}
			}
			s.children = append(s.children, n)
		}
	}
}
