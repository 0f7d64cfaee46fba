package region

import "io"

const (
	pageBits = 12
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

type page [pageSize]byte

var zeroPage page

// Memory is a growable, page-mapped in-memory Provider modeled directly
// on lldb.MemFiler: pages are independent [pageSize]byte arrays kept in
// a map, so growing the region never reallocates or moves bytes that
// were already written — every address Alloc has ever handed out stays
// valid for the life of the Provider, which is the one property the
// allocator core depends on from any region implementation.
type Memory struct {
	pages map[int64]*page
	hi    int64
}

// NewMemory returns an empty Memory region with Lo() == Hi() == 0.
func NewMemory() *Memory {
	return &Memory{pages: map[int64]*page{}}
}

// Lo implements Provider.
func (m *Memory) Lo() int64 { return 0 }

// Hi implements Provider.
func (m *Memory) Hi() int64 { return m.hi }

// Extend implements Provider.
func (m *Memory) Extend(n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrInvalidExtend
	}

	prev := m.hi
	m.hi += n
	return prev, nil
}

// ReadAt implements Provider.
func (m *Memory) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(b)) > m.hi {
		return 0, io.ErrUnexpectedEOF
	}

	n := 0
	for n < len(b) {
		cur := off + int64(n)
		pgI := cur >> pageBits
		pgO := int(cur & pageMask)
		pg := m.pages[pgI]
		var src []byte
		if pg == nil {
			src = zeroPage[pgO:]
		} else {
			src = pg[pgO:]
		}

		n += copy(b[n:], src)
	}
	return n, nil
}

// WriteAt implements Provider.
func (m *Memory) WriteAt(b []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(b)) > m.hi {
		return 0, io.ErrUnexpectedEOF
	}

	n := 0
	for n < len(b) {
		cur := off + int64(n)
		pgI := cur >> pageBits
		pgO := int(cur & pageMask)
		pg := m.pages[pgI]
		if pg == nil {
			pg = &page{}
			m.pages[pgI] = pg
		}

		n += copy(pg[pgO:], b[n:])
	}
	return n, nil
}
