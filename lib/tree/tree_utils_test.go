package tree

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLinkageViolationValidate(t *testing.T) {
	r, a, b := threeNodeChain()
	require.NoError(t, LinkageViolationValidate[int, string](r))

	// Reattach without detaching first, r.left still points at a.
	other := NewAVLNode(100, "other")
	other.SetLeftChild(a)
	err := LinkageViolationValidate[int, string](r)
	require.ErrorIs(t, err, ErrLinkageViolation)
	require.Len(t, multierr.Errors(err), 1)

	b.isLeft = true
	err = LinkageViolationValidate[int, string](r)
	require.Len(t, multierr.Errors(err), 2)

	require.ErrorIs(t, LinkageViolationValidate[int, string](a), ErrLinkageViolation, "a is not a root")
	require.NoError(t, LinkageViolationValidate[int, string](other))
}

func TestHeightViolationValidate(t *testing.T) {
	r, a, _ := threeNodeChain()
	require.NoError(t, HeightViolationValidate(r))

	a.SetLeftChild(NewAVLNode(1, "c"), WithoutPropagation())
	err := HeightViolationValidate(r)
	require.ErrorIs(t, err, ErrHeightViolation)
	// a height and balance, r height and balance.
	require.Len(t, multierr.Errors(err), 4)

	r.UpdateHeightsAndBalances()
	require.NoError(t, HeightViolationValidate(r))
	require.NoError(t, AVLViolationValidate(r))
}

func TestRBViolationValidate(t *testing.T) {
	root, err := BuildRB(ascendingEntries(7))
	require.NoError(t, err)
	require.NoError(t, redViolation(root))
	require.NoError(t, blackViolation(root))

	// Perfect tree of 7, the deepest level is red.
	root.Left().SetColor(Red)
	require.ErrorIs(t, redViolation(root), ErrRedViolation)
	require.ErrorIs(t, blackViolation(root), ErrBlackViolation)

	root.Left().SetColor(Black)
	root.Right().Right().SetColor(Black)
	require.NoError(t, redViolation(root))
	require.ErrorIs(t, blackViolation(root), ErrBlackViolation)

	require.NoError(t, redViolation[int, string](nil))
	require.NoError(t, blackViolation[int, string](nil))
}

func TestRBViolationValidate_234Shape(t *testing.T) {
	nodes := lo.KeyBy(lo.Map([]int{1, 6, 8, 11, 13, 14, 15, 16, 17}, func(k int, _ int) *RBNode[int, string] {
		n := NewRBNode(k, "")
		n.SetColor(Black)
		return n
	}), func(n *RBNode[int, string]) int {
		return n.Key()
	})
	for _, k := range []int{1, 8, 15, 16} {
		nodes[k].SetColor(Red)
	}
	nodes[13].SetLeftChild(nodes[8])
	nodes[13].SetRightChild(nodes[15])
	nodes[8].SetLeftChild(nodes[6])
	nodes[8].SetRightChild(nodes[11])
	nodes[6].SetLeftChild(nodes[1])
	nodes[15].SetLeftChild(nodes[14])
	nodes[15].SetRightChild(nodes[17])
	nodes[17].SetLeftChild(nodes[16])

	root := nodes[13]
	require.NoError(t, LinkageViolationValidate[int, string](root))
	require.NoError(t, redViolation(root))
	require.NoError(t, blackViolation(root))

	nodes[16].SetColor(Black)
	require.ErrorIs(t, blackViolation(root), ErrBlackViolation)
}
