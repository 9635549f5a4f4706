package tree

import "github.com/benz9527/xtree/lib/infra"

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Direction is where a node hangs from its parent.
type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Root:
		return "root"
	case Right:
		return "right"
	default:
	}
	return "unknown"
}

type KeyValue[K infra.OrderedKey, V comparable] interface {
	Key() K
	Value() V
}

// Linker is satisfied only by the node pointer types of this package.
// A node type N links to N and nothing else, so an AVL node can never
// be attached under a red-black node.
type Linker[K infra.OrderedKey, V comparable, N comparable] interface {
	comparable
	KeyValue[K, V]
	linkage() *Linkage[K, V, N]
}

type RBTree[K infra.OrderedKey, V comparable] interface {
	Len() int64
	Root() *RBNode[K, V]
	Get(key K) (V, bool)
	Insert(key K, val V, ifNotPresent ...bool) error
	Remove(key K) (Entry[K, V], error)
	RemoveMin() (Entry[K, V], error)
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	Release()
}

type AVLTree[K infra.OrderedKey, V comparable] interface {
	Len() int64
	Root() *AVLNode[K, V]
	Get(key K) (V, bool)
	Insert(key K, val V, ifNotPresent ...bool) error
	Remove(key K) (Entry[K, V], error)
	RemoveMin() (Entry[K, V], error)
	Foreach(action func(idx int64, key K, val V) bool)
	Release()
}
