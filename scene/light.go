package scene

import (
	"daynight-engine/core"
	"daynight-engine/math"
)

// DirectionalLight is a sun or moon. It shines along its node's forward
// axis, so rotating the node moves the light.
type DirectionalLight struct {
	Node *Node

	color     core.Color
	intensity float32
}

func NewDirectionalLight(name string) *DirectionalLight {
	return &DirectionalLight{
		Node:      NewNode(name),
		color:     core.ColorWhite,
		intensity: 1,
	}
}

func (l *DirectionalLight) Color() core.Color { return l.color }

func (l *DirectionalLight) SetColor(c core.Color) { l.color = c }

func (l *DirectionalLight) Intensity() float32 { return l.intensity }

// SetIntensity clamps negative values to zero.
func (l *DirectionalLight) SetIntensity(v float32) {
	if v < 0 {
		v = 0
	}
	l.intensity = v
}

// Rotation is the light's world rotation.
func (l *DirectionalLight) Rotation() math.Quaternion {
	return l.Node.WorldRotation()
}

// SetRotation sets the world rotation, compensating for any parent node.
func (l *DirectionalLight) SetRotation(q math.Quaternion) {
	if p := l.Node.Parent; p != nil {
		q = p.WorldRotation().Conjugate().Mul(q)
	}
	l.Node.SetRotation(q.Normalize())
}

// Direction is the world direction the light travels in.
func (l *DirectionalLight) Direction() math.Vec3 {
	return l.Rotation().RotateVector(math.Vec3Front).Normalize()
}

// Radiance is the light colour scaled by intensity.
func (l *DirectionalLight) Radiance() core.Color {
	return l.color.Scale(l.intensity)
}
