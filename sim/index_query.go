package sim

import (
	"errors"
	"fmt"
)

func (t *JobIndex) jobAt(n int) (*Job, bool) {
	if n == nilNode {
		return nil, false
	}
	return t.nodes[n].job, true
}

// Next returns the job with the smallest ID strictly greater than id.
// id need not be present. Returns (nil, false) if no such job exists.
func (t *JobIndex) Next(id int) (*Job, bool) {
	if t.root == nilNode {
		return nil, false
	}
	x, last := t.root, nilNode
	for x != nilNode {
		last = x
		key := t.key(x)
		switch {
		case id < key:
			x = t.nodes[x].left
		case id > key:
			x = t.nodes[x].right
		default:
			return t.jobAt(t.successor(x))
		}
	}
	if t.key(last) > id {
		return t.jobAt(last)
	}
	return t.jobAt(t.successor(last))
}

// Previous returns the job with the largest ID strictly less than id.
// id need not be present. Returns (nil, false) if no such job exists.
func (t *JobIndex) Previous(id int) (*Job, bool) {
	if t.root == nilNode {
		return nil, false
	}
	x, last := t.root, nilNode
	for x != nilNode {
		last = x
		key := t.key(x)
		switch {
		case id < key:
			x = t.nodes[x].left
		case id > key:
			x = t.nodes[x].right
		default:
			return t.jobAt(t.predecessor(x))
		}
	}
	if t.key(last) < id {
		return t.jobAt(last)
	}
	return t.jobAt(t.predecessor(last))
}

// Range returns the jobs with lo <= ID <= hi in ascending ID order.
// The result is empty (never nil) when no job falls in the range.
func (t *JobIndex) Range(lo, hi int) []*Job {
	out := make([]*Job, 0)
	if lo > hi {
		return out
	}
	t.collect(t.root, lo, hi, &out)
	return out
}

func (t *JobIndex) collect(n, lo, hi int, out *[]*Job) {
	if n == nilNode {
		return
	}
	key := t.key(n)
	if lo <= key {
		t.collect(t.nodes[n].left, lo, hi, out)
	}
	if lo <= key && key <= hi {
		*out = append(*out, t.nodes[n].job)
	}
	if key <= hi {
		t.collect(t.nodes[n].right, lo, hi, out)
	}
}

// Rank returns the number of present IDs strictly less than id.
func (t *JobIndex) Rank(id int) int {
	rank := 0
	x := t.root
	for x != nilNode {
		if id <= t.key(x) {
			x = t.nodes[x].left
		} else {
			rank += t.nodes[x].leftCount + 1
			x = t.nodes[x].right
		}
	}
	return rank
}

// Select returns the job with the k-th smallest ID (0-based).
// Returns (nil, false) if k is out of range.
func (t *JobIndex) Select(k int) (*Job, bool) {
	if k < 0 || k >= t.Size() {
		return nil, false
	}
	x := t.root
	for x != nilNode {
		lc := t.nodes[x].leftCount
		switch {
		case k < lc:
			x = t.nodes[x].left
		case k == lc:
			return t.nodes[x].job, true
		default:
			k -= lc + 1
			x = t.nodes[x].right
		}
	}
	return nil, false
}

// Min returns the job with the smallest ID.
func (t *JobIndex) Min() (*Job, bool) {
	if t.root == nilNode {
		return nil, false
	}
	return t.jobAt(t.minimum(t.root))
}

// Max returns the job with the largest ID.
func (t *JobIndex) Max() (*Job, bool) {
	if t.root == nilNode {
		return nil, false
	}
	return t.jobAt(t.maximum(t.root))
}

// Ascend calls fn for every job in ascending ID order until fn returns false.
// fn must not mutate the index.
func (t *JobIndex) Ascend(fn func(*Job) bool) {
	if t.root == nilNode {
		return
	}
	for n := t.minimum(t.root); n != nilNode; n = t.successor(n) {
		if !fn(t.nodes[n].job) {
			return
		}
	}
}

// Jobs returns every job in ascending ID order.
func (t *JobIndex) Jobs() []*Job {
	out := make([]*Job, 0, t.Size())
	t.Ascend(func(j *Job) bool {
		out = append(out, j)
		return true
	})
	return out
}

// Validate checks the red-black and subtree-count invariants of the whole tree.
// It returns nil if the tree is well formed.
func (t *JobIndex) Validate() error {
	s := &t.nodes[nilNode]
	if s.color != black || s.job != nil || s.leftCount != 0 || s.rightCount != 0 {
		return errors.New("sentinel must be black, empty and have zero counts")
	}
	if t.root == nilNode {
		if live := len(t.nodes) - 1 - len(t.free); live != 0 {
			return fmt.Errorf("empty tree holds %d live arena slots", live)
		}
		return nil
	}
	if t.nodes[t.root].color != black {
		return errors.New("root is red")
	}
	if t.nodes[t.root].parent != nilNode {
		return errors.New("root has a parent")
	}
	size, _, err := t.validate(t.root, nil, nil)
	if err != nil {
		return err
	}
	if live := len(t.nodes) - 1 - len(t.free); live != size {
		return fmt.Errorf("tree holds %d nodes but arena has %d live slots", size, live)
	}
	return nil
}

// validate returns the size and black-height of the subtree rooted at n.
// lo and hi bound the keys allowed in the subtree (exclusive) when non-nil.
func (t *JobIndex) validate(n int, lo, hi *int) (size, blackHeight int, err error) {
	if n == nilNode {
		return 0, 0, nil
	}
	node := &t.nodes[n]
	if node.job == nil {
		return 0, 0, fmt.Errorf("node %d has no job", n)
	}
	key := node.job.ID
	if (lo != nil && key <= *lo) || (hi != nil && key >= *hi) {
		return 0, 0, fmt.Errorf("job %d is out of search order", key)
	}
	if node.color == red {
		if t.nodes[node.left].color == red || t.nodes[node.right].color == red {
			return 0, 0, fmt.Errorf("red job %d has a red child", key)
		}
	}
	for _, c := range []int{node.left, node.right} {
		if c != nilNode && t.nodes[c].parent != n {
			return 0, 0, fmt.Errorf("child of job %d has a wrong parent link", key)
		}
	}

	ls, lbh, err := t.validate(node.left, lo, &key)
	if err != nil {
		return 0, 0, err
	}
	rs, rbh, err := t.validate(node.right, &key, hi)
	if err != nil {
		return 0, 0, err
	}
	if lbh != rbh {
		return 0, 0, fmt.Errorf("job %d has black-height %d on the left and %d on the right", key, lbh, rbh)
	}
	if node.leftCount != ls || node.rightCount != rs {
		return 0, 0, fmt.Errorf("job %d counts (%d,%d), subtree sizes (%d,%d)", key, node.leftCount, node.rightCount, ls, rs)
	}
	if node.color == black {
		lbh++
	}
	return ls + rs + 1, lbh, nil
}
