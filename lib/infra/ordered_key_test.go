package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	assert.Equal(t, Less, Compare(1, 2))
	assert.Equal(t, Equal, Compare(uint8(7), uint8(7)))
	assert.Equal(t, Greater, Compare("b", "a"))
	assert.Equal(t, Less, Compare(-1.5, 0.0))
}

func TestCompare_NaN(t *testing.T) {
	nan := math.NaN()
	require.Equal(t, Less, Compare(nan, math.Inf(-1)))
	require.Equal(t, Greater, Compare(math.Inf(-1), nan))
	require.Equal(t, Equal, Compare(nan, nan))
}

func TestOrdering_Reverse(t *testing.T) {
	testcases := []struct {
		in, out Ordering
	}{
		{Less, Greater},
		{Equal, Equal},
		{Greater, Less},
	}
	for _, tc := range testcases {
		t.Run(tc.in.String(), func(tt *testing.T) {
			require.Equal(tt, tc.out, tc.in.Reverse())
		})
	}
}

type celsius float32

func TestCompare_NamedType(t *testing.T) {
	var cmpFn OrderedKeyComparator[celsius] = Compare[celsius]
	assert.Equal(t, Greater, cmpFn(36.6, -40))
}
