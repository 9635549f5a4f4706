package tree

import "github.com/benz9527/xtree/lib/infra"

// Linkage is the parent/left/right bookkeeping shared by every
// balancing strategy. N is the concrete node pointer type that
// embeds it.
// The parent is a back reference only, children are owned.
type Linkage[K infra.OrderedKey, V comparable, N comparable] struct {
	Entry[K, V]
	parent N
	left   N
	right  N
	isLeft bool // Meaningless for a root.
}

func (l *Linkage[K, V, N]) Parent() N {
	return l.parent
}

func (l *Linkage[K, V, N]) Left() N {
	return l.left
}

func (l *Linkage[K, V, N]) Right() N {
	return l.right
}

// IsLeft reports whether the node is its parent's left child.
func (l *Linkage[K, V, N]) IsLeft() bool {
	return l.isLeft
}

func (l *Linkage[K, V, N]) IsLeaf() bool {
	var zero N
	return l.left == zero && l.right == zero
}

func (l *Linkage[K, V, N]) IsRoot() bool {
	var zero N
	return l.parent == zero
}

func (l *Linkage[K, V, N]) Direction() Direction {
	if l.IsRoot() {
		return Root
	}
	if l.isLeft {
		return Left
	}
	return Right
}

// link puts child into one of self's slots.
//
//	 self          self
//	 /      ==>    /
//	old          child      old.parent = nil, if old still points to self
//
// The previous occupant is released only while it still points back to
// self. A rotation re-parents nodes before their old slot is overwritten,
// and those nodes keep their new parent.
func link[K infra.OrderedKey, V comparable, N Linker[K, V, N]](self, child N, isLeft bool) {
	var zero N
	l := self.linkage()
	old := l.right
	if isLeft {
		old, l.left = l.left, child
	} else {
		l.right = child
	}

	if old != zero && old != child {
		if ol := old.linkage(); ol.parent == self {
			ol.parent, ol.isLeft = zero, false
		}
	}
	if child != zero {
		cl := child.linkage()
		cl.parent, cl.isLeft = self, isLeft
	}
}

func sibling[K infra.OrderedKey, V comparable, N Linker[K, V, N]](node N) N {
	var zero N
	l := node.linkage()
	if l.parent == zero {
		return zero
	}
	if l.isLeft {
		return l.parent.linkage().right
	}
	return l.parent.linkage().left
}

func minimum[K infra.OrderedKey, V comparable, N Linker[K, V, N]](node N) N {
	var zero N
	aux := node
	for ; aux != zero && aux.linkage().left != zero; aux = aux.linkage().left {
	}
	return aux
}

func maximum[K infra.OrderedKey, V comparable, N Linker[K, V, N]](node N) N {
	var zero N
	aux := node
	for ; aux != zero && aux.linkage().right != zero; aux = aux.linkage().right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
func pred[K infra.OrderedKey, V comparable, N Linker[K, V, N]](node N) N {
	var zero N
	if node == zero {
		return zero
	}
	if l := node.linkage().left; l != zero {
		return maximum[K, V](l)
	}
	// Backtrack to the first ancestor reached from its right side.
	x := node
	for x.linkage().parent != zero && x.linkage().isLeft {
		x = x.linkage().parent
	}
	return x.linkage().parent
}

// The succ node of the current node is its next node in sorted order.
func succ[K infra.OrderedKey, V comparable, N Linker[K, V, N]](node N) N {
	var zero N
	if node == zero {
		return zero
	}
	if r := node.linkage().right; r != zero {
		return minimum[K, V](r)
	}
	x := node
	for x.linkage().parent != zero && !x.linkage().isLeft {
		x = x.linkage().parent
	}
	return x.linkage().parent
}

// Inorder traversal to implement the DFS. Stops as soon as the
// action returns false.
func inorder[K infra.OrderedKey, V comparable, N Linker[K, V, N]](root N, sizeHint int64, action func(idx int64, node N) bool) {
	var zero N
	if root == zero {
		return
	}

	stack := make([]N, 0, max(sizeHint>>1, 1))
	defer func() {
		clear(stack)
	}()

	aux := root
	for ; aux != zero; aux = aux.linkage().left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		if !action(idx, aux) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.linkage().right; aux != zero; aux = aux.linkage().left {
			stack = append(stack, aux)
		}
	}
}

// search descends from root by repeated comparison. fn returns the
// ordering of the wanted key against the visited node.
func search[K infra.OrderedKey, V comparable, N Linker[K, V, N]](root N, fn func(node N) infra.Ordering) N {
	var zero N
	for aux := root; aux != zero; {
		switch fn(aux) {
		case infra.Equal:
			return aux
		case infra.Greater:
			aux = aux.linkage().right
		default:
			aux = aux.linkage().left
		}
	}
	return zero
}
