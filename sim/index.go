// Implements the JobIndex, an order-statistics red-black tree keyed by job ID.
// Nodes live in a single arena slice and refer to each other by integer handle;
// handle 0 is the shared sentinel that stands for every external leaf and for
// the parent of the root.

package sim

import "fmt"

type color uint8

const (
	black color = iota
	red
)

func (c color) String() string {
	if c == red {
		return "red"
	}
	return "black"
}

// nilNode is the handle of the sentinel.
const nilNode = 0

type indexNode struct {
	job                 *Job
	color               color
	left, right, parent int
	leftCount           int // real nodes in the left subtree
	rightCount          int // real nodes in the right subtree
}

// JobIndex is a self-balancing search tree over live jobs, ordered by ID.
// It supports exact lookup, next/previous present key, range enumeration
// and rank/select queries, each in O(log n).
//
// Not safe for concurrent use; the owning Simulator is its only mutator.
type JobIndex struct {
	nodes []indexNode
	root  int
	free  []int // recycled arena slots
}

// NewJobIndex creates an empty index.
func NewJobIndex() *JobIndex {
	return &JobIndex{
		nodes: []indexNode{{color: black}},
		root:  nilNode,
	}
}

// Size returns the number of jobs in the index.
func (t *JobIndex) Size() int {
	if t.root == nilNode {
		return 0
	}
	r := &t.nodes[t.root]
	return r.leftCount + r.rightCount + 1
}

// Search returns the job with the given ID, or (nil, false) if absent.
func (t *JobIndex) Search(id int) (*Job, bool) {
	n := t.find(id)
	if n == nilNode {
		return nil, false
	}
	return t.nodes[n].job, true
}

// Contains reports whether a job with the given ID is present.
func (t *JobIndex) Contains(id int) bool {
	return t.find(id) != nilNode
}

func (t *JobIndex) find(id int) int {
	x := t.root
	for x != nilNode {
		key := t.key(x)
		switch {
		case id < key:
			x = t.nodes[x].left
		case id > key:
			x = t.nodes[x].right
		default:
			return x
		}
	}
	return nilNode
}

// Insert adds a job to the index. The caller guarantees the ID is not
// already present; the Simulator rejects duplicates before calling.
func (t *JobIndex) Insert(j *Job) {
	if j == nil {
		panic("Insert: job must not be nil")
	}
	z := t.alloc(j)

	// Descend to the insertion point, counting the new node on every
	// ancestor according to the side taken.
	y := nilNode
	x := t.root
	for x != nilNode {
		y = x
		if j.ID < t.key(x) {
			t.nodes[x].leftCount++
			x = t.nodes[x].left
		} else {
			t.nodes[x].rightCount++
			x = t.nodes[x].right
		}
	}

	t.nodes[z].parent = y
	switch {
	case y == nilNode:
		t.root = z
	case j.ID < t.key(y):
		t.nodes[y].left = z
	default:
		t.nodes[y].right = z
	}

	t.insertFixup(z)
}

// Remove deletes the job with the given ID and returns it.
// The ID must be present: removing an absent ID panics.
func (t *JobIndex) Remove(id int) *Job {
	z := t.find(id)
	if z == nilNode {
		panic(fmt.Sprintf("Remove: job %d is not in the index", id))
	}
	removed := t.nodes[z].job

	// y is the node physically unlinked from the tree: z itself when it has
	// at most one real child, otherwise z's in-order successor.
	y := z
	if t.nodes[z].left != nilNode && t.nodes[z].right != nilNode {
		y = t.minimum(t.nodes[z].right)
	}

	// y disappears from every ancestor's subtree.
	for c, p := y, t.nodes[y].parent; p != nilNode; c, p = p, t.nodes[p].parent {
		if t.nodes[p].left == c {
			t.nodes[p].leftCount--
		} else {
			t.nodes[p].rightCount--
		}
	}

	x := t.nodes[y].left
	if x == nilNode {
		x = t.nodes[y].right
	}

	// The sentinel's parent is set on purpose so the fixup can climb from it.
	t.nodes[x].parent = t.nodes[y].parent
	t.replaceChild(t.nodes[y].parent, y, x)

	if y != z {
		// Move the whole job record, not just its key, into z's position.
		t.nodes[z].job = t.nodes[y].job
	}

	if t.nodes[y].color == black {
		t.deleteFixup(x)
	}
	t.nodes[nilNode].parent = nilNode
	t.release(y)
	return removed
}

// replaceChild points parent's link that currently refers to old at repl.
func (t *JobIndex) replaceChild(parent, old, repl int) {
	switch {
	case parent == nilNode:
		t.root = repl
	case t.nodes[parent].left == old:
		t.nodes[parent].left = repl
	default:
		t.nodes[parent].right = repl
	}
}

func (t *JobIndex) alloc(j *Job) int {
	n := indexNode{job: j, color: red, left: nilNode, right: nilNode, parent: nilNode}
	if k := len(t.free); k > 0 {
		h := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[h] = n
		return h
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *JobIndex) release(h int) {
	t.nodes[h] = indexNode{}
	t.free = append(t.free, h)
}

func (t *JobIndex) key(n int) int {
	return t.nodes[n].job.ID
}

// subtreeSize returns the number of real nodes rooted at n.
func (t *JobIndex) subtreeSize(n int) int {
	if n == nilNode {
		return 0
	}
	return t.nodes[n].leftCount + t.nodes[n].rightCount + 1
}

func (t *JobIndex) minimum(n int) int {
	for t.nodes[n].left != nilNode {
		n = t.nodes[n].left
	}
	return n
}

func (t *JobIndex) maximum(n int) int {
	for t.nodes[n].right != nilNode {
		n = t.nodes[n].right
	}
	return n
}

// successor returns the node holding the next larger key, or the sentinel.
func (t *JobIndex) successor(n int) int {
	if t.nodes[n].right != nilNode {
		return t.minimum(t.nodes[n].right)
	}
	p := t.nodes[n].parent
	for p != nilNode && n == t.nodes[p].right {
		n = p
		p = t.nodes[p].parent
	}
	return p
}

// predecessor returns the node holding the next smaller key, or the sentinel.
func (t *JobIndex) predecessor(n int) int {
	if t.nodes[n].left != nilNode {
		return t.maximum(t.nodes[n].left)
	}
	p := t.nodes[n].parent
	for p != nilNode && n == t.nodes[p].left {
		n = p
		p = t.nodes[p].parent
	}
	return p
}
