package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"daynight-engine/math"
)

// LoadAnchor opens a .glb or .gltf file and returns the node called name,
// with its ancestors' transforms folded in. Only the node hierarchy is read;
// meshes and materials are ignored.
func LoadAnchor(path, name string) (*Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return anchorFromDocument(doc, name)
}

func anchorFromDocument(doc *gltf.Document, name string) (*Node, error) {
	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		nodeName := gn.Name
		if nodeName == "" {
			nodeName = fmt.Sprintf("node_%d", i)
		}
		n := NewNode(nodeName)

		t := gn.TranslationOrDefault()
		n.SetPosition(math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})

		r := gn.RotationOrDefault() // [x, y, z, w]
		n.SetRotation(math.Quaternion{
			X: float32(r[0]), Y: float32(r[1]),
			Z: float32(r[2]), W: float32(r[3]),
		})
		nodes[i] = n
	}

	// Wire up parent-child relationships
	for i, gn := range doc.Nodes {
		for _, childIdx := range gn.Children {
			if childIdx < len(nodes) && nodes[childIdx] != nil {
				nodes[i].AddChild(nodes[childIdx])
			}
		}
	}

	for _, n := range nodes {
		if n.Name != name {
			continue
		}
		// Detach with the world transform baked in, so the anchor can be
		// re-parented under another scene's root.
		anchor := NewNode(n.Name)
		anchor.SetPosition(n.WorldPosition())
		anchor.SetRotation(n.WorldRotation())
		return anchor, nil
	}
	return nil, fmt.Errorf("gltf: no node named %q", name)
}
