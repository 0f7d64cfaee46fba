package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryExtendRejectsNonPositive(t *testing.T) {
	m := NewMemory()
	_, err := m.Extend(0)
	require.Error(t, err)
	_, err = m.Extend(-1)
	require.Error(t, err)
}

func TestMemoryWriteReadAcrossPageBoundary(t *testing.T) {
	m := NewMemory()
	_, err := m.Extend(pageSize * 3)
	require.NoError(t, err)

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	off := int64(pageSize) - 128
	_, err = m.WriteAt(data, off)
	require.NoError(t, err)

	got := make([]byte, len(data))
	_, err = m.ReadAt(got, off)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestMemoryUnwrittenPagesReadZero(t *testing.T) {
	m := NewMemory()
	_, err := m.Extend(pageSize)
	require.NoError(t, err)

	buf := make([]byte, pageSize)
	_, err = m.ReadAt(buf, 0)
	require.NoError(t, err)
	for i, b := range buf {
		require.Zerof(t, b, "byte %d not zero", i)
	}
}

func TestMemoryGrowthPreservesExistingBytes(t *testing.T) {
	m := NewMemory()
	_, err := m.Extend(64)
	require.NoError(t, err)

	want := []byte("stable address contents")
	_, err = m.WriteAt(want, 0)
	require.NoError(t, err)

	_, err = m.Extend(pageSize * 4)
	require.NoError(t, err)

	got := make([]byte, len(want))
	_, err = m.ReadAt(got, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := NewMemory()
	_, err := m.Extend(16)
	require.NoError(t, err)

	buf := make([]byte, 8)
	_, err = m.ReadAt(buf, 16)
	require.Error(t, err)
	_, err = m.WriteAt(buf, 16)
	require.Error(t, err)
}
