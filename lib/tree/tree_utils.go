package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Tree rule validation utilities.
// Every validator visits the whole subtree and reports all the
// violations it meets, combined by multierr.

var (
	ErrLinkageViolation = errors.New("linkage violation")
	ErrHeightViolation  = errors.New("avl height violation")
	ErrBalanceViolation = errors.New("avl balance violation")
	ErrRedViolation     = errors.New("rbtree red violation")
	ErrBlackViolation   = errors.New("rbtree black violation")
)

// preorder visits every node reachable from root, parents first.
func preorder[K infra.OrderedKey, V comparable, N Linker[K, V, N]](root N, action func(node N)) {
	var zero N
	if root == zero {
		return
	}
	stack := []N{root}
	defer func() {
		clear(stack)
	}()
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		action(aux)
		if r := aux.linkage().right; r != zero {
			stack = append(stack, r)
		}
		if l := aux.linkage().left; l != zero {
			stack = append(stack, l)
		}
	}
}

// LinkageViolationValidate checks that every child points back to its
// parent with the right orientation, and that root is really detached.
func LinkageViolationValidate[K infra.OrderedKey, V comparable, N Linker[K, V, N]](root N) (err error) {
	var zero N
	if root == zero {
		return nil
	}
	if p := root.linkage().parent; p != zero {
		err = multierr.Append(err, fmt.Errorf("%w: root %v has parent %v", ErrLinkageViolation, root.Key(), p.Key()))
	}
	preorder[K, V](root, func(node N) {
		l := node.linkage()
		if l.left != zero {
			if cl := l.left.linkage(); cl.parent != node || !cl.isLeft {
				err = multierr.Append(err, fmt.Errorf("%w: left child %v of %v", ErrLinkageViolation, l.left.Key(), node.Key()))
			}
		}
		if l.right != zero {
			if cl := l.right.linkage(); cl.parent != node || cl.isLeft {
				err = multierr.Append(err, fmt.Errorf("%w: right child %v of %v", ErrLinkageViolation, l.right.Key(), node.Key()))
			}
		}
	})
	return err
}

// HeightViolationValidate checks the stored height and balance of every
// node against its children, for any tree shape.
func HeightViolationValidate[K infra.OrderedKey, V comparable](root *AVLNode[K, V]) (err error) {
	preorder[K, V](root, func(node *AVLNode[K, V]) {
		lh, rh := heightOf(node.left), heightOf(node.right)
		if exp := 1 + max(lh, rh); node.height != exp {
			err = multierr.Append(err, fmt.Errorf("%w: node %v height %d, expected %d", ErrHeightViolation, node.Key(), node.height, exp))
		}
		if exp := rh - lh; node.balance != exp {
			err = multierr.Append(err, fmt.Errorf("%w: node %v balance %d, expected %d", ErrHeightViolation, node.Key(), node.balance, exp))
		}
	})
	return err
}

// AVLViolationValidate checks the linkage, the stored heights and the
// AVL rule |balance| <= 1.
func AVLViolationValidate[K infra.OrderedKey, V comparable](root *AVLNode[K, V]) error {
	err := multierr.Combine(
		LinkageViolationValidate[K, V](root),
		HeightViolationValidate(root),
	)
	preorder[K, V](root, func(node *AVLNode[K, V]) {
		if node.balance < -1 || node.balance > 1 {
			err = multierr.Append(err, fmt.Errorf("%w: node %v balance %d", ErrBalanceViolation, node.Key(), node.balance))
		}
	})
	return err
}

// p3. A red node does not have a red child. (red-violation)
func redViolation[K infra.OrderedKey, V comparable](root *RBNode[K, V]) (err error) {
	preorder[K, V](root, func(node *RBNode[K, V]) {
		if node.IsRed() && (isRed(node.left) || isRed(node.right)) {
			err = multierr.Append(err, fmt.Errorf("%w: red node %v has a red child", ErrRedViolation, node.Key()))
		}
	})
	return err
}

func blackDepthTo[K infra.OrderedKey, V comparable](target, to *RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if isBlack(aux) {
			depth++
		}
	}
	return depth
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
	        /  \
	     <8>    <15>
	     / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

2-3-4 tree like:

	       <8> --- [13] --- <15>
	      /  \             /    \
	     /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
Nodes missing at least one child are where the nil leaves hang.
*/
func blackViolation[K infra.OrderedKey, V comparable](root *RBNode[K, V]) (err error) {
	expected := -1
	preorder[K, V](root, func(node *RBNode[K, V]) {
		if node.left != nil && node.right != nil {
			return
		}
		depth := blackDepthTo(node, root)
		if expected < 0 {
			expected = depth
			return
		}
		if depth != expected {
			err = multierr.Append(err, fmt.Errorf("%w: node %v black depth %d, expected %d", ErrBlackViolation, node.Key(), depth, expected))
		}
	})
	return err
}

func RedViolationValidate[K infra.OrderedKey, V comparable](tree RBTree[K, V]) error {
	return redViolation(tree.Root())
}

func BlackViolationValidate[K infra.OrderedKey, V comparable](tree RBTree[K, V]) error {
	return blackViolation(tree.Root())
}
