package raset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mthimm/taas-fudge-go/internal/raset"
)

func TestAddRemoveIsIdentity(t *testing.T) {
	s := raset.NewEmpty(10)
	require.False(t, s.Contains(3))
	require.True(t, s.Add(3))
	require.True(t, s.Contains(3))
	require.True(t, s.Remove(3))
	require.False(t, s.Contains(3))
	require.Equal(t, 0, s.Len())
}

func TestLenTracksAddRemove(t *testing.T) {
	s := raset.NewEmpty(10)
	s.Add(1)
	s.Add(2)
	s.Add(3)
	require.Equal(t, 3, s.Len())
	s.Remove(2)
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(1))
	require.True(t, s.Contains(3))
	require.False(t, s.Contains(2))
}

func TestAddDuplicateIsNoop(t *testing.T) {
	s := raset.NewEmpty(10)
	require.True(t, s.Add(5))
	require.False(t, s.Add(5))
	require.Equal(t, 1, s.Len())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s := raset.NewEmpty(10)
	require.False(t, s.Remove(7))
}

func TestResetClearsMembership(t *testing.T) {
	s := raset.NewEmpty(5)
	s.Add(1)
	s.Add(2)
	s.Reset()
	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains(1))
}

func TestSwapRemovalKeepsOtherMembers(t *testing.T) {
	s := raset.NewEmpty(5)
	for i := 0; i < 5; i++ {
		s.Add(i)
	}
	s.Remove(1) // removing a middle element exercises the swap-with-last path
	seen := map[int]bool{}
	for i := 0; i < s.Len(); i++ {
		seen[s.At(i)] = true
	}
	require.Equal(t, map[int]bool{0: true, 2: true, 3: true, 4: true}, seen)
}

func TestRandomOnEmptyReturnsMinusOne(t *testing.T) {
	s := raset.NewEmpty(3)
	require.Equal(t, -1, s.Random())
}
