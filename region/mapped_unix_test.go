//go:build unix

package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMappedGrowthPreservesExistingBytes(t *testing.T) {
	m, err := NewMapped(pageSize)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Extend(64)
	require.NoError(t, err)

	want := []byte("mmap region address stability")
	_, err = m.WriteAt(want, 0)
	require.NoError(t, err)

	_, err = m.Extend(pageSize * 8)
	require.NoError(t, err)

	got := make([]byte, len(want))
	_, err = m.ReadAt(got, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMappedOutOfBounds(t *testing.T) {
	m, err := NewMapped(0)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Extend(16)
	require.NoError(t, err)

	buf := make([]byte, 8)
	_, err = m.ReadAt(buf, 16)
	require.Error(t, err)
}
