package sim

// rotateLeft turns x's right child y into the root of x's subtree:
//
//	  x                y
//	 / \              / \
//	a   y     =>     x   c
//	   / \          / \
//	  b   c        a   b
//
// Only x and y change subtree membership, so only their counters are recomputed.
func (t *JobIndex) rotateLeft(x int) {
	y := t.nodes[x].right
	b := t.nodes[y].left

	t.nodes[x].right = b
	if b != nilNode {
		t.nodes[b].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y

	t.nodes[x].rightCount = t.subtreeSize(b)
	t.nodes[y].leftCount = t.subtreeSize(x)
}

// rotateRight is the mirror of rotateLeft.
func (t *JobIndex) rotateRight(x int) {
	y := t.nodes[x].left
	b := t.nodes[y].right

	t.nodes[x].left = b
	if b != nilNode {
		t.nodes[b].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y

	t.nodes[x].leftCount = t.subtreeSize(b)
	t.nodes[y].rightCount = t.subtreeSize(x)
}

// insertFixup restores the red-black properties after z was attached as a red leaf.
func (t *JobIndex) insertFixup(z int) {
	for t.nodes[t.nodes[z].parent].color == red {
		p := t.nodes[z].parent
		g := t.nodes[p].parent

		if p == t.nodes[g].left {
			uncle := t.nodes[g].right
			if t.nodes[uncle].color == red {
				// Recolor only; the violation moves up two levels.
				t.nodes[p].color = black
				t.nodes[uncle].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].right {
				// Inner child: rotate into the outer case.
				z = p
				t.rotateLeft(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateRight(g)
		} else {
			uncle := t.nodes[g].left
			if t.nodes[uncle].color == red {
				t.nodes[p].color = black
				t.nodes[uncle].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rotateRight(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateLeft(g)
		}
	}
	t.nodes[t.root].color = black
}

// deleteFixup restores the red-black properties after a black node was
// unlinked and x took its place. x may be the sentinel.
func (t *JobIndex) deleteFixup(x int) {
	for x != t.root && t.nodes[x].color == black {
		p := t.nodes[x].parent

		if x == t.nodes[p].left {
			w := t.nodes[p].right
			if t.nodes[w].color == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateLeft(p)
				w = t.nodes[p].right
			}
			if t.nodes[t.nodes[w].left].color == black && t.nodes[t.nodes[w].right].color == black {
				t.nodes[w].color = red
				x = p
				continue
			}
			if t.nodes[t.nodes[w].right].color == black {
				t.nodes[t.nodes[w].left].color = black
				t.nodes[w].color = red
				t.rotateRight(w)
				w = t.nodes[p].right
			}
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = black
			t.nodes[t.nodes[w].right].color = black
			t.rotateLeft(p)
			x = t.root
		} else {
			w := t.nodes[p].left
			if t.nodes[w].color == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateRight(p)
				w = t.nodes[p].left
			}
			if t.nodes[t.nodes[w].right].color == black && t.nodes[t.nodes[w].left].color == black {
				t.nodes[w].color = red
				x = p
				continue
			}
			if t.nodes[t.nodes[w].left].color == black {
				t.nodes[t.nodes[w].right].color = black
				t.nodes[w].color = red
				t.rotateLeft(w)
				w = t.nodes[p].left
			}
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = black
			t.nodes[t.nodes[w].left].color = black
			t.rotateRight(p)
			x = t.root
		}
	}
	t.nodes[x].color = black
}
