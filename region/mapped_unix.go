//go:build unix

package region

import (
	"io"

	"golang.org/x/sys/unix"
)

// Mapped is an OS-backed Provider over an anonymous mmap mapping. It
// gives the allocator a real "break pointer" facility instead of only a
// Go slice: bytes live outside the Go heap and outside the garbage
// collector's view, the same way a production allocator's backing store
// would. Growth beyond the current mapping's capacity remaps into a
// larger anonymous region and copies the live bytes over, since
// anonymous mappings cannot be grown in place portably; addresses handed
// out by the Allocator are offsets into the region, not raw pointers, so
// remapping never invalidates anything the core holds onto.
//
// Modeled on SeleniaProject-Orizon's use of golang.org/x/sys/unix for
// low-level syscalls (there, unix.Sendfile in internal/runtime/asyncio);
// this extends the same package to unix.Mmap/unix.Munmap.
type Mapped struct {
	buf []byte
	hi  int64
}

// NewMapped returns a Mapped region with an initial mapping capacity of
// initial bytes. Pass 0 for a default of one page. The region starts with Hi() == 0; capacity is headroom, not
// already-extended space.
func NewMapped(initial int64) (*Mapped, error) {
	if initial <= 0 {
		initial = pageSize
	}

	buf, err := mmapAnon(initial)
	if err != nil {
		return nil, err
	}

	return &Mapped{buf: buf}, nil
}

func mmapAnon(n int64) ([]byte, error) {
	return unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// Lo implements Provider.
func (m *Mapped) Lo() int64 { return 0 }

// Hi implements Provider.
func (m *Mapped) Hi() int64 { return m.hi }

// Extend implements Provider.
func (m *Mapped) Extend(n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrInvalidExtend
	}

	prev := m.hi
	need := m.hi + n
	if need > int64(len(m.buf)) {
		grown := int64(len(m.buf)) * 2
		if grown < need {
			grown = need
		}

		nb, err := mmapAnon(grown)
		if err != nil {
			return 0, err
		}

		copy(nb, m.buf[:m.hi])
		old := m.buf
		m.buf = nb
		if err := unix.Munmap(old); err != nil {
			return 0, err
		}
	}

	m.hi = need
	return prev, nil
}

// ReadAt implements Provider.
func (m *Mapped) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(b)) > m.hi {
		return 0, io.ErrUnexpectedEOF
	}

	return copy(b, m.buf[off:off+int64(len(b))]), nil
}

// WriteAt implements Provider.
func (m *Mapped) WriteAt(b []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(b)) > m.hi {
		return 0, io.ErrUnexpectedEOF
	}

	return copy(m.buf[off:], b), nil
}

// Close unmaps the backing memory. An Allocator never calls it; whoever
// created the Mapped region is responsible for calling it.
func (m *Mapped) Close() error {
	if m.buf == nil {
		return nil
	}

	buf := m.buf
	m.buf = nil
	return unix.Munmap(buf)
}
