package scene

import (
	"daynight-engine/core"
	"daynight-engine/math"
)

// Node is an object in the scene graph. The day/night controller uses one
// as its anchor: keyframe light rotations are relative to the anchor's
// heading.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Id        uint32
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:      name,
		Transform: core.NewTransform(),
		Children:  make([]*Node, 0),
		Id:        nodeIdCounter,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (n *Node) SetPosition(pos math.Vec3) {
	n.Transform.Position = pos
}

func (n *Node) SetRotation(rot math.Quaternion) {
	n.Transform.Rotation = rot
}

func (n *Node) Rotate(axis math.Vec3, angle float32) {
	rotation := math.QuaternionFromAxisAngle(axis, angle)
	n.Transform.Rotation = n.Transform.Rotation.Mul(rotation).Normalize()
}

// WorldRotation composes the rotations of n and all of its ancestors.
func (n *Node) WorldRotation() math.Quaternion {
	if n.Parent == nil {
		return n.Transform.Rotation
	}
	return n.Parent.WorldRotation().Mul(n.Transform.Rotation).Normalize()
}

// WorldPosition ignores ancestor scale.
func (n *Node) WorldPosition() math.Vec3 {
	if n.Parent == nil {
		return n.Transform.Position
	}
	return n.Parent.WorldPosition().Add(n.Parent.WorldRotation().RotateVector(n.Transform.Position))
}

// Heading is the node's world yaw in radians.
func (n *Node) Heading() float32 {
	return n.WorldRotation().Yaw()
}

// Compass holds the four horizontal world directions of a node's heading.
type Compass struct {
	North, East, South, West math.Vec3
}

// Compass returns the anchor's cardinal directions: north is its forward
// axis flattened onto the ground plane, east its right.
func (n *Node) Compass() Compass {
	yaw := math.QuaternionFromAxisAngle(math.Vec3Up, n.Heading())
	north := yaw.RotateVector(math.Vec3Front)
	east := yaw.RotateVector(math.Vec3Right)
	return Compass{
		North: north,
		East:  east,
		South: north.Negate(),
		West:  east.Negate(),
	}
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
