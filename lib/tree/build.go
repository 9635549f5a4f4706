package tree

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/benz9527/xtree/lib/infra"
)

var ErrUnsortedEntries = errors.New("[tree] entries are not in strictly ascending key order")

func checkAscending[K infra.OrderedKey, V comparable](entries []Entry[K, V]) error {
	for i := 1; i < len(entries); i++ {
		switch entries[i].Compare(entries[i-1]) {
		case infra.Equal:
			return fmt.Errorf("%w: duplicate key %v at index %d", ErrUnsortedEntries, entries[i].Key(), i)
		case infra.Less:
			return fmt.Errorf("%w: key %v at index %d", ErrUnsortedEntries, entries[i].Key(), i)
		default:
		}
	}
	return nil
}

// BuildAVL links the median of every range as the subtree root, so the
// result is height balanced. With WithoutPropagation the links are made
// silently and heights are computed in one pass at the end.
func BuildAVL[K infra.OrderedKey, V comparable](entries []Entry[K, V], opts ...LinkOpt) (*AVLNode[K, V], error) {
	if err := checkAscending(entries); err != nil {
		return nil, err
	}
	o := applyLinkOpts(opts)
	root := buildAVL(entries, o.propagate)
	if !o.propagate {
		root.UpdateHeightsAndBalances()
	}
	return root, nil
}

func buildAVL[K infra.OrderedKey, V comparable](entries []Entry[K, V], propagate bool) *AVLNode[K, V] {
	if len(entries) <= 0 {
		return nil
	}
	mid := len(entries) >> 1
	node := NewAVLNode(entries[mid].Key(), entries[mid].Value())
	node.setChild(buildAVL(entries[:mid], propagate), true, propagate)
	node.setChild(buildAVL(entries[mid+1:], propagate), false, propagate)
	return node
}

/*
BuildRB uses the same median split. Every level above the deepest one
is full, so painting the deepest level red and the rest black gives
each root-to-nil path the same black depth without red-violation.

	       [4]
	      /   \
	    [2]   [6]
	    / \   /
	  <1> <3><5>
*/
func BuildRB[K infra.OrderedKey, V comparable](entries []Entry[K, V]) (*RBNode[K, V], error) {
	if err := checkAscending(entries); err != nil {
		return nil, err
	}
	if len(entries) <= 0 {
		return nil, nil
	}
	deepest := bits.Len(uint(len(entries))) - 1
	root := buildRB(entries, 0, deepest)
	root.SetColor(Black)
	return root, nil
}

func buildRB[K infra.OrderedKey, V comparable](entries []Entry[K, V], depth, deepest int) *RBNode[K, V] {
	if len(entries) <= 0 {
		return nil
	}
	mid := len(entries) >> 1
	node := NewRBNode(entries[mid].Key(), entries[mid].Value())
	if depth != deepest {
		node.SetColor(Black)
	}
	node.SetLeftChild(buildRB(entries[:mid], depth+1, deepest))
	node.SetRightChild(buildRB(entries[mid+1:], depth+1, deepest))
	return node
}
