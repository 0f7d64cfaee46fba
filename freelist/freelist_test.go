package freelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBlocks is a minimal in-memory Blocks implementation used to
// exercise Lister implementations without any real heap.
type fakeBlocks struct {
	size map[int64]int64
	next map[int64]int64
	prev map[int64]int64
}

func newFakeBlocks() *fakeBlocks {
	return &fakeBlocks{
		size: map[int64]int64{},
		next: map[int64]int64{},
		prev: map[int64]int64{},
	}
}

func (f *fakeBlocks) Size(bp int64) (int64, error) { return f.size[bp], nil }
func (f *fakeBlocks) Next(bp int64) (int64, error) { return f.next[bp], nil }
func (f *fakeBlocks) SetNext(bp, v int64) error    { f.next[bp] = v; return nil }
func (f *fakeBlocks) Prev(bp int64) (int64, error) { return f.prev[bp], nil }
func (f *fakeBlocks) SetPrev(bp, v int64) error    { f.prev[bp] = v; return nil }

func testLister(t *testing.T, l Lister) {
	b := newFakeBlocks()
	b.size[100] = 16
	b.size[200] = 32
	b.size[300] = 64

	require.NoError(t, l.Insert(b, 100))
	require.NoError(t, l.Insert(b, 200))
	require.NoError(t, l.Insert(b, 300))

	// LIFO: most recently inserted head-reachable first for Explicit;
	// for Segregated each size lands in its own class, so check fit
	// instead of exact order.
	bp, err := l.FirstFit(b, 16)
	require.NoError(t, err)
	require.NotZero(t, bp)
	require.GreaterOrEqual(t, b.size[bp], int64(16))

	require.NoError(t, l.Remove(b, bp))
	bp2, err := l.FirstFit(b, b.size[bp])
	require.NoError(t, err)
	require.NotEqual(t, bp, bp2)
}

func TestExplicitInsertRemoveFirstFit(t *testing.T) {
	testLister(t, NewExplicit())
}

func TestSegregatedInsertRemoveFirstFit(t *testing.T) {
	testLister(t, NewSegregated())
}

func TestExplicitLIFOOrder(t *testing.T) {
	b := newFakeBlocks()
	b.size[10] = 16
	b.size[20] = 16
	b.size[30] = 16

	l := NewExplicit()
	require.NoError(t, l.Insert(b, 10))
	require.NoError(t, l.Insert(b, 20))
	require.NoError(t, l.Insert(b, 30))

	require.Equal(t, int64(30), l.Head())

	require.NoError(t, l.Remove(b, 20))
	// 10 <-> 30 should now be directly linked.
	next, err := b.Next(30)
	require.NoError(t, err)
	require.Equal(t, int64(10), next)
}

func TestSegregatedClassSelection(t *testing.T) {
	s := NewSegregated()
	require.Equal(t, 0, s.classOf(1))
	require.Equal(t, 0, s.classOf(16))
	require.Equal(t, 1, s.classOf(17))
	require.Equal(t, len(s.classes)-1, s.classOf(1<<20))
}
