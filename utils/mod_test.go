package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	t.Run("finding the first occurrence", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]int{4, 9, 9}, 9))
	})

	t.Run("missing item", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
		require.False(t, Contains([]string{"a"}, "b"))
	})
}

func TestFindFunc(t *testing.T) {
	got, ok := FindFunc([]int{1, 4, 6}, func(v int) bool { return v%2 == 0 })
	require.True(t, ok)
	require.Equal(t, 4, got)

	_, ok = FindFunc([]int{1, 3}, func(v int) bool { return v%2 == 0 })
	require.False(t, ok)
}
