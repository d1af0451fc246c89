package octree

import "github.com/go-gl/mathgl/mgl32"

// AccumulateMass fills TotalMass and COM for every node. Children always
// follow their parent in the arena, so one reverse sweep is a post-order
// traversal. Zero-mass nodes keep COM at the origin and are treated as
// empty by the force evaluator.
func (t *Tree) AccumulateMass(pos []mgl32.Vec3, mass []float32) {
	for i := len(t.Nodes) - 1; i >= 0; i-- {
		n := &t.Nodes[i]

		if n.IsLeaf() {
			m := mass[n.Particle]
			weighted := pos[n.Particle].Mul(m)
			for _, idx := range n.Overflow {
				m += mass[idx]
				weighted = weighted.Add(pos[idx].Mul(mass[idx]))
			}
			n.TotalMass = m
			if m > 0 {
				n.COM = weighted.Mul(1 / m)
			} else {
				n.COM = mgl32.Vec3{}
			}
			continue
		}

		var total float32
		var weighted mgl32.Vec3
		for _, c := range n.Children {
			if c == None {
				continue
			}
			child := &t.Nodes[c]
			total += child.TotalMass
			weighted = weighted.Add(child.COM.Mul(child.TotalMass))
		}
		n.TotalMass = total
		if total > 0 {
			n.COM = weighted.Mul(1 / total)
		} else {
			n.COM = mgl32.Vec3{}
		}
	}
}
