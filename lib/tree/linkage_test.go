package tree

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

/*
	      [8]
	     /   \
	   [4]   [12]
	   / \     \
	 [2] [6]   [14]
	       \
	       [7]
*/
func linkageFixture() map[int]*RBNode[int, int] {
	nodes := lo.KeyBy(lo.Map([]int{2, 4, 6, 7, 8, 12, 14}, func(k int, _ int) *RBNode[int, int] {
		return NewRBNode(k, k*10)
	}), func(n *RBNode[int, int]) int {
		return n.Key()
	})
	nodes[8].SetLeftChild(nodes[4])
	nodes[8].SetRightChild(nodes[12])
	nodes[4].SetLeftChild(nodes[2])
	nodes[4].SetRightChild(nodes[6])
	nodes[6].SetRightChild(nodes[7])
	nodes[12].SetRightChild(nodes[14])
	return nodes
}

func TestLinkage_Navigation(t *testing.T) {
	nodes := linkageFixture()
	root := nodes[8]
	require.NoError(t, LinkageViolationValidate[int, int](root))

	require.Same(t, nodes[2], minimum[int, int](root))
	require.Same(t, nodes[14], maximum[int, int](root))
	require.Same(t, nodes[12], sibling[int, int](nodes[4]))
	require.Same(t, nodes[4], sibling[int, int](nodes[12]))
	require.Nil(t, sibling[int, int](root))
	require.Nil(t, sibling[int, int](nodes[7]))

	testcases := []struct {
		key        int
		pred, succ int // 0 means none
	}{
		{2, 0, 4},
		{4, 2, 6},
		{6, 4, 7},
		{7, 6, 8},
		{8, 7, 12},
		{12, 8, 14},
		{14, 12, 0},
	}
	for _, tc := range testcases {
		p, s := pred[int, int](nodes[tc.key]), succ[int, int](nodes[tc.key])
		if tc.pred == 0 {
			require.Nil(t, p, "pred of %d", tc.key)
		} else {
			require.Same(t, nodes[tc.pred], p, "pred of %d", tc.key)
		}
		if tc.succ == 0 {
			require.Nil(t, s, "succ of %d", tc.key)
		} else {
			require.Same(t, nodes[tc.succ], s, "succ of %d", tc.key)
		}
	}
}

func TestLinkage_InorderAndSearch(t *testing.T) {
	nodes := linkageFixture()
	root := nodes[8]

	keys := make([]int, 0, len(nodes))
	inorder[int, int](root, int64(len(nodes)), func(idx int64, node *RBNode[int, int]) bool {
		require.Equal(t, int64(len(keys)), idx)
		keys = append(keys, node.Key())
		return true
	})
	require.Equal(t, []int{2, 4, 6, 7, 8, 12, 14}, keys)

	visited := 0
	inorder[int, int](root, 0, func(idx int64, node *RBNode[int, int]) bool {
		visited++
		return idx < 2
	})
	require.Equal(t, 3, visited)

	for k, n := range nodes {
		found := search[int, int](root, func(node *RBNode[int, int]) infra.Ordering {
			return n.Compare(node)
		})
		require.Same(t, n, found, "search %d", k)
	}
	require.Nil(t, search[int, int](root, func(node *RBNode[int, int]) infra.Ordering {
		return NewEntry(5, 0).Compare(node)
	}))
}

func TestLinkage_DetachSubtree(t *testing.T) {
	nodes := linkageFixture()
	nodes[8].SetLeftChild(nil)

	require.True(t, nodes[4].IsRoot())
	require.Equal(t, Root, nodes[4].Direction())
	require.NoError(t, LinkageViolationValidate[int, int](nodes[4]))
	require.NoError(t, LinkageViolationValidate[int, int](nodes[8]))
	require.Same(t, nodes[4], nodes[2].Parent(), "detached subtree keeps its inner links")
}

func TestLinkage_RotationBySetters(t *testing.T) {
	nodes := linkageFixture()
	// Left rotate 4 under 8: 6 becomes the left child of 8.
	x, p := nodes[4], nodes[8]
	y := x.Right()
	x.SetRightChild(y.Left())
	y.SetLeftChild(x)
	p.SetLeftChild(y)

	require.NoError(t, LinkageViolationValidate[int, int](p))
	require.Same(t, nodes[6], p.Left())
	require.Same(t, nodes[4], nodes[6].Left())
	require.Same(t, nodes[7], nodes[6].Right())
	require.Nil(t, nodes[4].Right())

	keys := make([]int, 0, len(nodes))
	inorder[int, int](p, 0, func(_ int64, node *RBNode[int, int]) bool {
		keys = append(keys, node.Key())
		return true
	})
	require.Equal(t, []int{2, 4, 6, 7, 8, 12, 14}, keys)
}
