package tree

import "github.com/benz9527/xtree/lib/infra"

// RBNode only carries a color tag. Link mutations never repaint it,
// the tree layer is in charge of the red-black rules.
type RBNode[K infra.OrderedKey, V comparable] struct {
	Linkage[K, V, *RBNode[K, V]]
	color RBColor
}

// NewRBNode returns a detached red node, the usual insertion color.
func NewRBNode[K infra.OrderedKey, V comparable](key K, val V) *RBNode[K, V] {
	return &RBNode[K, V]{
		Linkage: Linkage[K, V, *RBNode[K, V]]{
			Entry: NewEntry(key, val),
		},
		color: Red,
	}
}

func (node *RBNode[K, V]) linkage() *Linkage[K, V, *RBNode[K, V]] {
	return &node.Linkage
}

func (node *RBNode[K, V]) Color() RBColor {
	return node.color
}

func (node *RBNode[K, V]) IsRed() bool {
	return node.color == Red
}

func (node *RBNode[K, V]) SetColor(color RBColor) {
	node.color = color
}

func (node *RBNode[K, V]) SetLeftChild(child *RBNode[K, V]) {
	link[K, V](node, child, true)
}

func (node *RBNode[K, V]) SetRightChild(child *RBNode[K, V]) {
	link[K, V](node, child, false)
}

// All nil leaves are considered black.
func isBlack[K infra.OrderedKey, V comparable](node *RBNode[K, V]) bool {
	return node == nil || node.color == Black
}

func isRed[K infra.OrderedKey, V comparable](node *RBNode[K, V]) bool {
	return node != nil && node.color == Red
}
