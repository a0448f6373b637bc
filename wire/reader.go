package wire

import "io"

// Reader is a cursor over a borrowed byte slice. Reads consume from the front.
// No method panics on short input.
type Reader struct {
	b []byte
}

func NewReader(b []byte) *Reader { return &Reader{b: b} }

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int { return len(r.b) }

// Peek returns the next n bytes without consuming them, or nil if fewer than
// n remain.
func (r *Reader) Peek(n int) []byte {
	if n < 0 || n > len(r.b) {
		return nil
	}
	return r.b[:n:n]
}

// Advance skips n bytes. It reports false and consumes nothing when fewer
// than n remain.
func (r *Reader) Advance(n int) bool {
	if n < 0 || n > len(r.b) {
		return false
	}
	r.b = r.b[n:]
	return true
}

// Take consumes n bytes and returns them as a view of the input.
func (r *Reader) Take(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if n > len(r.b) {
		return nil, ErrTruncated
	}
	out := r.b[:n:n]
	r.b = r.b[n:]
	return out, nil
}

// ReadByte implements io.ByteReader. It returns ErrTruncated at the end of
// input.
func (r *Reader) ReadByte() (byte, error) {
	if len(r.b) == 0 {
		return 0, ErrTruncated
	}
	c := r.b[0]
	r.b = r.b[1:]
	return c, nil
}

// Read implements io.Reader so a Reader can feed stdlib decoders.
func (r *Reader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// Rest consumes and returns everything left as a view of the input.
func (r *Reader) Rest() []byte {
	out := r.b
	r.b = r.b[len(r.b):]
	return out
}

// uvarint reads an LEB128 value of at most max groups. Nothing is consumed
// on failure.
func (r *Reader) uvarint(max int) (uint64, error) {
	var x uint64
	var s uint
	for i, c := range r.b {
		if i == max {
			return 0, ErrVarIntOverflow
		}
		x |= uint64(c&0x7f) << s
		if c < 0x80 {
			r.b = r.b[i+1:]
			return x, nil
		}
		s += 7
	}
	if len(r.b) >= max {
		return 0, ErrVarIntOverflow
	}
	return 0, ErrTruncated
}
