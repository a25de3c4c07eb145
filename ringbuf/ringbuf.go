// ringbuf/ringbuf.go

// Package ringbuf implements a fixed-capacity circular byte buffer with an
// overwrite-on-full policy. One writer and one reader may use a Ring from
// different execution contexts provided the owner serialises multi-field
// updates (the transport does this around its interrupt callbacks).
package ringbuf

import "errors"

var (
	ErrNoStorage = errors.New("ringbuf: nil or empty storage")
)

// Ring is a byte ring over caller-supplied storage. head is the write index,
// tail the read index; head == tail is disambiguated by the full flag.
type Ring struct {
	buf  []byte
	head int
	tail int
	full bool
}

// New returns a Ring over storage. The Ring takes ownership of the slice.
func New(storage []byte) (*Ring, error) {
	if len(storage) == 0 {
		return nil, ErrNoStorage
	}
	return &Ring{buf: storage}, nil
}

// Cap returns the total capacity in bytes.
func (r *Ring) Cap() int { return len(r.buf) }

// Len returns the number of unread bytes.
func (r *Ring) Len() int {
	if r.full {
		return len(r.buf)
	}
	return (r.head - r.tail + len(r.buf)) % len(r.buf)
}

// IsEmpty reports whether no unread bytes remain.
func (r *Ring) IsEmpty() bool { return !r.full && r.head == r.tail }

// IsFull reports whether the next Push will overwrite the oldest byte.
func (r *Ring) IsFull() bool { return r.full }

// Push stores b, overwriting the oldest unread byte when full. It never
// fails: latest data wins over completeness, which suits line-delimited
// traffic where a lost byte corrupts at most one in-flight line.
func (r *Ring) Push(b byte) {
	r.buf[r.head] = b
	r.head = (r.head + 1) % len(r.buf)
	if r.full {
		r.tail = r.head
	} else if r.head == r.tail {
		r.full = true
	}
}

// Pop removes and returns the oldest byte. ok is false when empty.
func (r *Ring) Pop() (b byte, ok bool) {
	if r.IsEmpty() {
		return 0, false
	}
	b = r.buf[r.tail]
	r.tail = (r.tail + 1) % len(r.buf)
	r.full = false
	return b, true
}

// Reset discards all unread bytes.
func (r *Ring) Reset() {
	r.head = 0
	r.tail = 0
	r.full = false
}
