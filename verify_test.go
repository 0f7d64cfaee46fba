package xalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyCleanHeap(t *testing.T) {
	a := newTestAllocator(t)
	st, err := a.Verify(nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), st.FreeBlocks)
}

func TestVerifyDetectsHeaderFooterMismatch(t *testing.T) {
	a := newTestAllocator(t)
	bp, ok := a.Alloc(64)
	require.True(t, ok)

	// Corrupt the footer directly, bypassing writeBlock.
	sz, err := a.size(bp)
	require.NoError(t, err)
	require.NoError(t, a.writeWordAt(footerOffset(bp, sz), packWord(sz+8, true)))

	var reported []error
	_, err = a.Verify(func(e error) bool {
		reported = append(reported, e)
		return true
	})
	require.Error(t, err)
	require.NotEmpty(t, reported)
}

func TestVerifyStatsAccumulateAcrossAllocations(t *testing.T) {
	a := newTestAllocator(t)
	for i := 0; i < 10; i++ {
		_, ok := a.Alloc(48)
		require.True(t, ok)
	}
	st, err := a.Verify(nil)
	require.NoError(t, err)
	// +1 for the permanently allocated prologue sentinel block.
	require.Equal(t, int64(11), st.AllocBlocks)
	require.Greater(t, st.TotalBytes, int64(0))
}
