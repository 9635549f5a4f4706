package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRBNode_DefaultRed(t *testing.T) {
	n := NewRBNode("k", 1)
	require.True(t, n.IsRed())
	require.Equal(t, Red, n.Color())
	require.True(t, n.IsLeaf())
	require.True(t, n.IsRoot())

	n.SetColor(Black)
	require.False(t, n.IsRed())
	require.Equal(t, "black", n.Color().String())
}

func TestRBNode_LinkNeverRepaints(t *testing.T) {
	r := NewRBNode(5, "r")
	a := NewRBNode(2, "a")
	b := NewRBNode(8, "b")
	r.SetColor(Black)

	r.SetLeftChild(a)
	r.SetRightChild(b)
	require.Equal(t, Black, r.Color())
	require.True(t, a.IsRed())
	require.True(t, b.IsRed())
	require.Same(t, r, a.Parent())
	require.Same(t, r, b.Parent())
	require.True(t, a.IsLeft())
	require.False(t, b.IsLeft())

	r.SetLeftChild(nil)
	require.Nil(t, a.Parent())
	require.True(t, a.IsRed())
	require.Equal(t, Black, r.Color())

	b.SetColor(Black)
	r.SetRightChild(nil)
	require.Equal(t, Black, b.Color())
	require.True(t, r.IsLeaf())
}

func TestRBNode_ThreeNodeChainLinkage(t *testing.T) {
	r := NewRBNode(5, "r")
	a := NewRBNode(2, "a")
	c := NewRBNode(1, "c")
	r.SetLeftChild(a)
	a.SetLeftChild(c)

	require.Equal(t, Left, c.Direction())
	require.Same(t, a, c.Parent())
	require.Same(t, r, a.Parent())
	require.NoError(t, LinkageViolationValidate[int, string](r))
	require.ErrorIs(t, redViolation(r), ErrRedViolation)
}
