package tree

import "github.com/benz9527/xtree/lib/infra"

// AVLNode keeps its subtree height and balance factor up to date on
// every link mutation.
//
// height: a leaf is 0, a missing child counts as -1.
// balance: height(right) - height(left), right heavy is positive.
type AVLNode[K infra.OrderedKey, V comparable] struct {
	Linkage[K, V, *AVLNode[K, V]]
	height  int
	balance int
}

func NewAVLNode[K infra.OrderedKey, V comparable](key K, val V) *AVLNode[K, V] {
	return &AVLNode[K, V]{
		Linkage: Linkage[K, V, *AVLNode[K, V]]{
			Entry: NewEntry(key, val),
		},
	}
}

func (node *AVLNode[K, V]) linkage() *Linkage[K, V, *AVLNode[K, V]] {
	return &node.Linkage
}

func (node *AVLNode[K, V]) Height() int {
	return node.height
}

func (node *AVLNode[K, V]) Balance() int {
	return node.balance
}

type linkOptions struct {
	propagate bool
}

type LinkOpt func(*linkOptions)

// WithoutPropagation leaves height and balance of the mutated nodes
// stale. The caller must run UpdateHeightsAndBalances on the subtree
// root before reading them again.
func WithoutPropagation() LinkOpt {
	return func(o *linkOptions) {
		o.propagate = false
	}
}

func applyLinkOpts(opts []LinkOpt) linkOptions {
	o := linkOptions{propagate: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (node *AVLNode[K, V]) SetLeftChild(child *AVLNode[K, V], opts ...LinkOpt) {
	node.setChild(child, true, applyLinkOpts(opts).propagate)
}

func (node *AVLNode[K, V]) SetRightChild(child *AVLNode[K, V], opts ...LinkOpt) {
	node.setChild(child, false, applyLinkOpts(opts).propagate)
}

func (node *AVLNode[K, V]) setChild(child *AVLNode[K, V], isLeft, propagate bool) {
	link[K, V](node, child, isLeft)
	if !propagate {
		return
	}
	// Walk to the root on every mutation, recomputation is idempotent.
	for aux := node; aux != nil; aux = aux.parent {
		aux.updateHeightAndBalance()
	}
}

func heightOf[K infra.OrderedKey, V comparable](node *AVLNode[K, V]) int {
	if node == nil {
		return -1
	}
	return node.height
}

// updateHeightAndBalance trusts the children's values.
func (node *AVLNode[K, V]) updateHeightAndBalance() {
	lh, rh := heightOf(node.left), heightOf(node.right)
	node.height = 1 + max(lh, rh)
	node.balance = rh - lh
}

// UpdateHeightsAndBalances recomputes the whole subtree rooted at node
// bottom-up (post-order), so it is safe after any number of mutations
// made WithoutPropagation. Ancestors of node are not touched.
func (node *AVLNode[K, V]) UpdateHeightsAndBalances() {
	if node == nil {
		return
	}

	stack := make([]*AVLNode[K, V], 0, 32)
	defer func() {
		clear(stack)
	}()

	var last *AVLNode[K, V]
	aux := node
	for aux != nil || len(stack) > 0 {
		if aux != nil {
			stack = append(stack, aux)
			aux = aux.left
			continue
		}
		top := stack[len(stack)-1]
		if top.right != nil && top.right != last {
			aux = top.right
			continue
		}
		top.updateHeightAndBalance()
		last = top
		stack = stack[:len(stack)-1]
	}
}
