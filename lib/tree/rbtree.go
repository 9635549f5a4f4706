package tree

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	ErrRBTreeEmpty           = errors.New("[rbtree] empty element to remove")
	ErrRBTreeKeyNotFound     = errors.New("[rbtree] key not found")
	ErrRBTreeReplaceDisabled = errors.New("[rbtree] replace disabled")
)

type rbTree[K infra.OrderedKey, V comparable] struct {
	root           *RBNode[K, V]
	logger         *zap.Logger
	cmp            infra.OrderedKeyComparator[K]
	count          int64
	isDesc         bool
	isRmBorrowSucc bool
}

func (tree *rbTree[K, V]) keyCompare(k1, k2 K) infra.Ordering {
	res := tree.cmp(k1, k2)
	if tree.isDesc {
		return res.Reverse()
	}
	return res
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Root() *RBNode[K, V] {
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. (Optional) The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

// replace hangs y where x used to hang, p and dir are x's former
// parent and direction, captured before x was relinked.
func (tree *rbTree[K, V]) replace(p, y *RBNode[K, V], dir Direction) {
	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.SetLeftChild(y)
	case Right:
		p.SetRightChild(y)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to replace")
	}
}

/*
	 |                         |
	 X                         S
	/ \     leftRotate(X)     / \
	L   S    ============>    X   Sd
	   / \                   / \
	 Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *RBNode[K, V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y, dir := x.parent, x.right, x.Direction()
	x.SetRightChild(y.left) // y detached
	y.SetLeftChild(x)
	tree.replace(p, y, dir)
}

/*
	     |                         |
	     X                         S
	    / \     rightRotate(S)    / \
	   L   S    <============    X   R
	      / \                   / \
	    Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K, V]) rightRotate(x *RBNode[K, V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y, dir := x.parent, x.left, x.Direction()
	x.SetLeftChild(y.right) // y detached
	y.SetRightChild(x)
	tree.replace(p, y, dir)
}

func (tree *rbTree[K, V]) Get(key K) (V, bool) {
	x := search[K, V](tree.root, func(node *RBNode[K, V]) infra.Ordering {
		return tree.keyCompare(key, node.Key())
	})
	if x == nil {
		var zero V
		return zero, false
	}
	return x.Value(), true
}

// i1: Empty rbtree, insert directly, but root node is painted to black.
func (tree *rbTree[K, V]) Insert(key K, val V, ifNotPresent ...bool) error {
	if /* i1 */ tree.root == nil {
		tree.root = NewRBNode(key, val)
		tree.root.SetColor(Black)
		atomic.AddInt64(&tree.count, 1)
		return nil
	}

	var x, y *RBNode[K, V] = tree.root, nil
	res := infra.Equal
	for x != nil {
		y = x
		if res = tree.keyCompare(key, x.Key()); /* equal */ res == infra.Equal {
			break
		} else /* less */ if res == infra.Less {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	var z *RBNode[K, V]
	switch res {
	case infra.Equal:
		if /* disabled */ len(ifNotPresent) > 0 && ifNotPresent[0] {
			tree.logger.Debug("[rbtree] insert an existed key with replace disabled", zap.Any("key", key))
			return ErrRBTreeReplaceDisabled
		}
		y.SetValue(val)
		return nil
	case infra.Less:
		z = NewRBNode(key, val)
		y.SetLeftChild(z)
	default:
		z = NewRBNode(key, val)
		y.SetRightChild(z)
	}

	atomic.AddInt64(&tree.count, 1)
	tree.insertRebalance(z)
	return nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, nothing to fix.

im2: Current node X's parent P is red and P is root, repaint P into black.

im3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Handle im4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x *RBNode[K, V]) {
	for x != nil {
		p := x.parent
		if p == nil {
			x.SetColor(Black)
			return
		}
		if /* im1 */ isBlack(p) {
			return
		}

		gp := p.parent
		if /* im2 */ gp == nil {
			p.SetColor(Black)
			return
		}

		if uncle := sibling[K, V](p); /* im3 */ isRed(uncle) {
			p.SetColor(Black)
			uncle.SetColor(Black)
			gp.SetColor(Red)
			x = gp
			continue
		}

		if /* im4 */ x.Direction() != p.Direction() {
			switch x.Direction() {
			case Left:
				tree.rightRotate(p)
			case Right:
				tree.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert violate (im4)")
			}
			p = x // enter im5 to fix, the old parent hangs under x now
		}

		switch /* im5 */ p.Direction() {
		case Left:
			tree.rightRotate(gp)
		case Right:
			tree.leftRotate(gp)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert violate (im5)")
		}
		p.SetColor(Black)
		gp.SetColor(Red)
		return
	}
}

/*
r1: Only a root node, remove directly.

r2: Current node X has left and right node.
Find node X's pred or succ to replace it to be removed.
Swap the entry only.
Both of pred and succ have at most one child.

Find pred:

	  |                    |
	  X                    L
	 / \                  / \
	L  ..   swap(X, L)   X  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                S  ..

Find succ:

	  |                    |
	  X                    S
	 / \                  / \
	L  ..   swap(X, S)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                X  ..

r3: (1) Current node X is a red leaf node, remove directly.

r3: (2) Current node X is a black leaf node, we have to rebalance after remove.
(black-violation)

r4: Current node X is not a leaf node but contains a not nil child node.
The child node must be a red node. (See conclusion. Otherwise, black-violation)
*/
func (tree *rbTree[K, V]) removeNode(z *RBNode[K, V]) Entry[K, V] {
	res := z.Entry
	if /* r1 */ z.IsRoot() && z.IsLeaf() {
		tree.root = nil
		return res
	}

	y := z
	if /* r2 */ y.left != nil && y.right != nil {
		if tree.isRmBorrowSucc {
			y = succ[K, V](z) // enter r3-r4
		} else {
			y = pred[K, V](z) // enter r3-r4
		}
		z.Entry = y.Entry
	}

	if /* r3 */ y.IsLeaf() {
		if /* r3 (2) */ !y.IsRed() {
			tree.removeRebalance(y)
		}
		// Unlink node
		if y.isLeft {
			y.parent.SetLeftChild(nil)
		} else {
			y.parent.SetRightChild(nil)
		}
		return res
	}

	/* r4 */
	p, dir, replace := y.parent, y.Direction(), y.left
	if replace == nil {
		replace = y.right
		y.SetRightChild(nil)
	} else {
		y.SetLeftChild(nil)
	}
	tree.replace(p, replace, dir)

	if !y.IsRed() {
		if replace.IsRed() {
			replace.SetColor(Black)
		} else {
			tree.removeRebalance(replace)
		}
	}
	return res
}

func (tree *rbTree[K, V]) Remove(key K) (Entry[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return Entry[K, V]{}, ErrRBTreeEmpty
	}
	z := search[K, V](tree.root, func(node *RBNode[K, V]) infra.Ordering {
		return tree.keyCompare(key, node.Key())
	})
	if z == nil {
		return Entry[K, V]{}, ErrRBTreeKeyNotFound
	}
	defer func() {
		atomic.AddInt64(&tree.count, -1)
	}()
	return tree.removeNode(z), nil
}

func (tree *rbTree[K, V]) RemoveMin() (Entry[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 || tree.root == nil {
		return Entry[K, V]{}, ErrRBTreeEmpty
	}
	defer func() {
		atomic.AddInt64(&tree.count, -1)
	}()
	return tree.removeNode(minimum[K, V](tree.root)), nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) X is left node of P, left rotate P
(2) X is right node of P, right rotate P.
(3) repaint S into black, P into red.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [D]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: Current node X's parent P is red, the sibling S, nephew node Sc and Sd
is black.
Repaint S into red and P into black.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: All of current node X's parent P, the sibling S, nephew node Sc and Sd
are black.
Unable to satisfy p3 and p4. We have to paint the S into red to satisfy
p4 locally. Then recursive to handle P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: Current node X's sibling S is black, nephew node Sc is red and Sd
is black. Ignore X's parent P's color (red or black is okay)
Unable to satisfy p3 and p4.
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: Current node X's sibling S is black, nephew node Sc is black and Sd
is red. Ignore X's parent P's color (red or black is okay)
Unable to satisfy p4 (black-violation)
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) Swap P and S's color (red-violation)
(4) Repaint Sd into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K, V]) removeRebalance(x *RBNode[K, V]) {
	for !x.IsRoot() {
		s, dir := sibling[K, V](x), x.Direction()
		if /* rm1 */ isRed(s) {
			switch dir {
			case Left:
				tree.leftRotate(x.parent)
			case Right:
				tree.rightRotate(x.parent)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm1)")
			}
			s.SetColor(Black)
			x.parent.SetColor(Red) // ready to enter rm2
			s = sibling[K, V](x)
		}

		var sc, sd *RBNode[K, V]
		switch dir {
		case Left:
			sc, sd = s.left, s.right
		case Right:
			sc, sd = s.right, s.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm2)")
		}

		if isBlack(sc) && isBlack(sd) {
			if /* rm2 */ isRed(x.parent) {
				s.SetColor(Red)
				x.parent.SetColor(Black)
				return
			}
			/* rm3 */
			s.SetColor(Red)
			x = x.parent
			continue
		}

		if /* rm4 */ isRed(sc) && isBlack(sd) {
			switch dir {
			case Left:
				tree.rightRotate(s)
			case Right:
				tree.leftRotate(s)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm4)")
			}
			sc.SetColor(Black)
			s.SetColor(Red)
			s = sibling[K, V](x)
			if dir == Left {
				sd = s.right
			} else {
				sd = s.left
			}
		}

		switch /* rm5 */ dir {
		case Left:
			tree.leftRotate(x.parent)
		case Right:
			tree.rightRotate(x.parent)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm5)")
		}
		s.SetColor(x.parent.Color())
		x.parent.SetColor(Black)
		if sd != nil {
			sd.SetColor(Black)
		}
		return
	}
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	inorder[K, V](tree.root, atomic.LoadInt64(&tree.count), func(idx int64, node *RBNode[K, V]) bool {
		return action(idx, node.Color(), node.Key(), node.Value())
	})
}

// Release cuts every link so that no node keeps the others alive.
func (tree *rbTree[K, V]) Release() {
	released := releaseLinks[K, V](tree.root)
	tree.root = nil
	atomic.StoreInt64(&tree.count, 0)
	tree.logger.Debug("[rbtree] released", zap.Int64("nodes", released))
}

// releaseLinks detaches every node in the subtree bottom-up through
// the link primitives and returns how many nodes it visited.
func releaseLinks[K infra.OrderedKey, V comparable, N Linker[K, V, N]](root N) int64 {
	var zero N
	if root == zero {
		return 0
	}
	nodes := make([]N, 0, 64)
	preorder[K, V](root, func(node N) {
		nodes = append(nodes, node)
	})
	for i := len(nodes) - 1; i >= 0; i-- {
		l := nodes[i].linkage()
		l.left, l.right, l.parent, l.isLeft = zero, zero, zero, false
	}
	clear(nodes)
	return int64(len(nodes))
}

type RBTreeOpt[K infra.OrderedKey, V comparable] func(*rbTree[K, V])

func WithRBTreeDesc[K infra.OrderedKey, V comparable]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

func WithRBTreeRemoveBorrowSucc[K infra.OrderedKey, V comparable]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowSucc = true
	}
}

// WithRBTreeComparator replaces the natural key order. Keys the
// comparator reports Equal share one node.
func WithRBTreeComparator[K infra.OrderedKey, V comparable](cmp infra.OrderedKeyComparator[K]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if cmp != nil {
			tree.cmp = cmp
		}
	}
}

func WithRBTreeLogger[K infra.OrderedKey, V comparable](logger *zap.Logger) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if logger != nil {
			tree.logger = logger
		}
	}
}

func NewRBTree[K infra.OrderedKey, V comparable](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	tree := &rbTree[K, V]{
		logger:         zap.NewNop(),
		cmp:            infra.Compare[K],
		count:          0,
		isDesc:         false,
		isRmBorrowSucc: false,
	}

	for _, o := range opts {
		o(tree)
	}
	return tree
}
