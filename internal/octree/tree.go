package octree

import "github.com/go-gl/mathgl/mgl32"

// None marks an empty particle slot or a missing child.
const None int32 = -1

// maxDepth bounds insertion so coincident particles cannot recurse forever;
// particles that cannot be separated by then share a leaf via its overflow
// list.
const maxDepth = 32

// Node is an axis-aligned cube of the tree. Children are arena indices,
// ordered by octant code: bit 2 = x >= center.x, bit 1 = y >= center.y,
// bit 0 = z >= center.z. TotalMass and COM are valid only after
// AccumulateMass.
type Node struct {
	Center    mgl32.Vec3
	Size      float32
	COM       mgl32.Vec3
	TotalMass float32
	Children  [8]int32
	Particle  int32
	Overflow  []int32
}

// IsLeaf reports whether the node holds at least one particle directly.
func (n *Node) IsLeaf() bool { return n.Particle != None }

// Tree is an arena of nodes. Node 0 is the root. Children are always
// appended after their parent, so a reverse index sweep visits children
// before parents.
type Tree struct {
	Nodes []Node
}

// Build constructs the tree for the given positions. Returns nil when there
// are no particles. Leaves correspond one-to-one with particles except at
// the depth cap, where coincident particles share a leaf.
func Build(pos []mgl32.Vec3) *Tree {
	if len(pos) == 0 {
		return nil
	}

	min, max := pos[0], pos[0]
	for _, p := range pos[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}

	var center mgl32.Vec3
	var size float32
	for k := 0; k < 3; k++ {
		center[k] = (min[k] + max[k]) * 0.5
		if ext := max[k] - min[k]; ext > size {
			size = ext
		}
	}
	size *= 1.1 // padding keeps boundary particles off the faces

	t := &Tree{Nodes: make([]Node, 0, 2*len(pos))}
	t.newNode(center, size)
	for i := range pos {
		t.insert(int32(i), pos)
	}
	return t
}

func (t *Tree) newNode(center mgl32.Vec3, size float32) int32 {
	idx := int32(len(t.Nodes))
	n := Node{Center: center, Size: size, Particle: None}
	for k := range n.Children {
		n.Children[k] = None
	}
	t.Nodes = append(t.Nodes, n)
	return idx
}

// octant returns the child code of p relative to center.
func octant(p, center mgl32.Vec3) int {
	oct := 0
	if p[0] >= center[0] {
		oct |= 4
	}
	if p[1] >= center[1] {
		oct |= 2
	}
	if p[2] >= center[2] {
		oct |= 1
	}
	return oct
}

// childCenter offsets the parent center by ±size/4 per axis.
func childCenter(center mgl32.Vec3, size float32, oct int) mgl32.Vec3 {
	h := size * 0.25
	c := center
	if oct&4 != 0 {
		c[0] += h
	} else {
		c[0] -= h
	}
	if oct&2 != 0 {
		c[1] += h
	} else {
		c[1] -= h
	}
	if oct&1 != 0 {
		c[2] += h
	} else {
		c[2] -= h
	}
	return c
}

func (t *Tree) ensureChild(parent int32, oct int) int32 {
	if c := t.Nodes[parent].Children[oct]; c != None {
		return c
	}
	p := t.Nodes[parent]
	c := t.newNode(childCenter(p.Center, p.Size, oct), p.Size*0.5)
	t.Nodes[parent].Children[oct] = c
	return c
}

// insert walks particle idx down from the root, splitting occupied leaves
// as it goes.
func (t *Tree) insert(idx int32, pos []mgl32.Vec3) {
	cur := int32(0)
	for depth := 0; ; depth++ {
		n := &t.Nodes[cur]

		if n.Particle == None && n.Children == emptyChildren {
			n.Particle = idx
			return
		}

		if n.IsLeaf() {
			if depth >= maxDepth {
				n.Overflow = append(n.Overflow, idx)
				return
			}
			// Push the resident particle into its child, then continue the
			// descent for the incoming one.
			old := n.Particle
			n.Particle = None
			oct := octant(pos[old], n.Center)
			child := t.ensureChild(cur, oct)
			t.Nodes[child].Particle = old
		}

		oct := octant(pos[idx], t.Nodes[cur].Center)
		cur = t.ensureChild(cur, oct)
	}
}

var emptyChildren = [8]int32{None, None, None, None, None, None, None, None}
