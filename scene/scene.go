package scene

import (
	"daynight-engine/core"
	"daynight-engine/math"
)

// Scene holds what the day/night cycle drives: an anchor node that gives
// the cycle its heading, the sun, and the live sky material.
type Scene struct {
	Root    *Node
	Anchor  *Node
	Sun     *DirectionalLight
	Sky     *SkyMaterial
	Ambient core.Color
}

func NewScene() *Scene {
	s := &Scene{
		Root:    NewNode("Root"),
		Anchor:  NewNode("DayNight"),
		Sun:     NewDirectionalLight("Sun"),
		Sky:     NewProceduralSky("Sky"),
		Ambient: core.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
	}
	s.Root.AddChild(s.Anchor)
	s.Root.AddChild(s.Sun.Node)
	s.Sun.SetRotation(math.QuaternionFromEulerDegrees(math.Vec3{X: 50, Y: -30}))
	return s
}

// SetAnchor replaces the anchor node, reparenting it under the root.
func (s *Scene) SetAnchor(anchor *Node) {
	if s.Anchor != nil && s.Anchor.Parent != nil {
		s.Anchor.Parent.RemoveChild(s.Anchor)
	}
	s.Anchor = anchor
	s.Root.AddChild(anchor)
}
