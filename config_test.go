package xalloc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchChunkSizePicksUpWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chunk_size":4096}`), 0o644))

	values, errs, closeFn, err := WatchChunkSize(path)
	require.NoError(t, err)
	t.Cleanup(func() { closeFn() })

	require.NoError(t, os.WriteFile(path, []byte(`{"chunk_size":8192}`), 0o644))

	select {
	case v := <-values:
		require.Equal(t, int64(8192), v)
	case err := <-errs:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chunk size update")
	}
}

func TestSetChunkSizeIgnoresNonPositive(t *testing.T) {
	a := newTestAllocator(t)
	orig := a.chunk
	a.SetChunkSize(0)
	require.Equal(t, orig, a.chunk)
	a.SetChunkSize(-5)
	require.Equal(t, orig, a.chunk)
	a.SetChunkSize(1024)
	require.Equal(t, int64(1024), a.chunk)
}
