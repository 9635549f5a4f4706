package tree

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	ErrAVLTreeEmpty           = errors.New("[avltree] empty element to remove")
	ErrAVLTreeKeyNotFound     = errors.New("[avltree] key not found")
	ErrAVLTreeReplaceDisabled = errors.New("[avltree] replace disabled")
)

// avlTree never writes a height or a balance. It relinks nodes and
// lets AVLNode propagate the new values up to the root.
type avlTree[K infra.OrderedKey, V comparable] struct {
	root   *AVLNode[K, V]
	logger *zap.Logger
	cmp    infra.OrderedKeyComparator[K]
	count  int64
	isDesc bool
}

func (tree *avlTree[K, V]) keyCompare(k1, k2 K) infra.Ordering {
	res := tree.cmp(k1, k2)
	if tree.isDesc {
		return res.Reverse()
	}
	return res
}

func (tree *avlTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *avlTree[K, V]) Root() *AVLNode[K, V] {
	return tree.root
}

func (tree *avlTree[K, V]) replace(p, y *AVLNode[K, V], dir Direction) {
	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.SetLeftChild(y)
	case Right:
		p.SetRightChild(y)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[avltree] unknown node direction to replace")
	}
}

/*
	 |                         |
	 X                         Y
	/ \     leftRotate(X)     / \
	L   Y    ============>    X   R
	   / \                   / \
	  M   R                 L   M

X is relinked first, so Y reads the fresh height of X.
*/
func (tree *avlTree[K, V]) leftRotate(x *AVLNode[K, V]) *AVLNode[K, V] {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[avltree] left rotate node x is nil or x.right is nil")
	}

	p, y, dir := x.parent, x.right, x.Direction()
	x.SetRightChild(y.left)
	y.SetLeftChild(x)
	tree.replace(p, y, dir)
	return y
}

func (tree *avlTree[K, V]) rightRotate(x *AVLNode[K, V]) *AVLNode[K, V] {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[avltree] right rotate node x is nil or x.left is nil")
	}

	p, y, dir := x.parent, x.left, x.Direction()
	x.SetLeftChild(y.right)
	y.SetRightChild(x)
	tree.replace(p, y, dir)
	return y
}

/*
rebalance climbs from x to the root and rotates every node whose
balance left [-1, 1].

LL: balance(X) = -2, balance(L) <= 0, rightRotate(X).
LR: balance(X) = -2, balance(L) > 0, leftRotate(L) then rightRotate(X).
RR: balance(X) = +2, balance(R) >= 0, leftRotate(X).
RL: balance(X) = +2, balance(R) < 0, rightRotate(R) then leftRotate(X).
*/
func (tree *avlTree[K, V]) rebalance(x *AVLNode[K, V]) {
	for aux := x; aux != nil; aux = aux.parent {
		switch {
		case aux.balance < -1:
			if aux.left.balance > 0 {
				tree.leftRotate(aux.left)
			}
			aux = tree.rightRotate(aux)
		case aux.balance > 1:
			if aux.right.balance < 0 {
				tree.rightRotate(aux.right)
			}
			aux = tree.leftRotate(aux)
		default:
		}
	}
}

func (tree *avlTree[K, V]) Get(key K) (V, bool) {
	x := search[K, V](tree.root, func(node *AVLNode[K, V]) infra.Ordering {
		return tree.keyCompare(key, node.Key())
	})
	if x == nil {
		var zero V
		return zero, false
	}
	return x.Value(), true
}

func (tree *avlTree[K, V]) Insert(key K, val V, ifNotPresent ...bool) error {
	if tree.root == nil {
		tree.root = NewAVLNode(key, val)
		atomic.AddInt64(&tree.count, 1)
		return nil
	}

	var x, y *AVLNode[K, V] = tree.root, nil
	res := infra.Equal
	for x != nil {
		y = x
		if res = tree.keyCompare(key, x.Key()); res == infra.Equal {
			break
		} else if res == infra.Less {
			x = x.left
		} else {
			x = x.right
		}
	}

	switch res {
	case infra.Equal:
		if len(ifNotPresent) > 0 && ifNotPresent[0] {
			tree.logger.Debug("[avltree] insert an existed key with replace disabled", zap.Any("key", key))
			return ErrAVLTreeReplaceDisabled
		}
		y.SetValue(val)
		return nil
	case infra.Less:
		y.SetLeftChild(NewAVLNode(key, val))
	default:
		y.SetRightChild(NewAVLNode(key, val))
	}

	atomic.AddInt64(&tree.count, 1)
	tree.rebalance(y)
	return nil
}

/*
A node with two children borrows the entry of its succ, then the succ
(at most one child) is spliced out instead.

	  |                  |
	  Z                  S
	 / \   splice(S)    / \
	L  ..  ========>   L  ..
	   /                  /
	  S                  R
	   \
	    R
*/
func (tree *avlTree[K, V]) removeNode(z *AVLNode[K, V]) Entry[K, V] {
	res := z.Entry
	y := z
	if y.left != nil && y.right != nil {
		y = succ[K, V](z)
		z.Entry = y.Entry
	}

	p, dir, child := y.parent, y.Direction(), y.left
	if child == nil {
		child = y.right
		y.SetRightChild(nil)
	} else {
		y.SetLeftChild(nil)
	}
	tree.replace(p, child, dir)
	tree.rebalance(p)
	return res
}

func (tree *avlTree[K, V]) Remove(key K) (Entry[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return Entry[K, V]{}, ErrAVLTreeEmpty
	}
	z := search[K, V](tree.root, func(node *AVLNode[K, V]) infra.Ordering {
		return tree.keyCompare(key, node.Key())
	})
	if z == nil {
		return Entry[K, V]{}, ErrAVLTreeKeyNotFound
	}
	defer func() {
		atomic.AddInt64(&tree.count, -1)
	}()
	return tree.removeNode(z), nil
}

func (tree *avlTree[K, V]) RemoveMin() (Entry[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 || tree.root == nil {
		return Entry[K, V]{}, ErrAVLTreeEmpty
	}
	defer func() {
		atomic.AddInt64(&tree.count, -1)
	}()
	return tree.removeNode(minimum[K, V](tree.root)), nil
}

func (tree *avlTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	inorder[K, V](tree.root, atomic.LoadInt64(&tree.count), func(idx int64, node *AVLNode[K, V]) bool {
		return action(idx, node.Key(), node.Value())
	})
}

func (tree *avlTree[K, V]) Release() {
	released := releaseLinks[K, V](tree.root)
	tree.root = nil
	atomic.StoreInt64(&tree.count, 0)
	tree.logger.Debug("[avltree] released", zap.Int64("nodes", released))
}

type AVLTreeOpt[K infra.OrderedKey, V comparable] func(*avlTree[K, V])

func WithAVLTreeDesc[K infra.OrderedKey, V comparable]() AVLTreeOpt[K, V] {
	return func(tree *avlTree[K, V]) {
		tree.isDesc = true
	}
}

// WithAVLTreeComparator replaces the natural key order. Keys the
// comparator reports Equal share one node.
func WithAVLTreeComparator[K infra.OrderedKey, V comparable](cmp infra.OrderedKeyComparator[K]) AVLTreeOpt[K, V] {
	return func(tree *avlTree[K, V]) {
		if cmp != nil {
			tree.cmp = cmp
		}
	}
}

func WithAVLTreeLogger[K infra.OrderedKey, V comparable](logger *zap.Logger) AVLTreeOpt[K, V] {
	return func(tree *avlTree[K, V]) {
		if logger != nil {
			tree.logger = logger
		}
	}
}

func NewAVLTree[K infra.OrderedKey, V comparable](opts ...AVLTreeOpt[K, V]) AVLTree[K, V] {
	tree := &avlTree[K, V]{
		logger: zap.NewNop(),
		cmp:    infra.Compare[K],
	}
	for _, o := range opts {
		o(tree)
	}
	return tree
}
