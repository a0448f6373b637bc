package wire

// Writer is an append-only byte accumulator. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with capacity preallocated.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated bytes. The slice aliases the Writer until the
// next write.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }

// Append returns a Writer that appends to b.
func Append(b []byte) *Writer { return &Writer{buf: b} }

// Truncate discards everything written after the first n bytes.
func (w *Writer) Truncate(n int) {
	if n >= 0 && n < len(w.buf) {
		w.buf = w.buf[:n]
	}
}

// Reset empties the Writer, keeping its storage.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

// Grow ensures room for n more bytes without another allocation.
func (w *Writer) Grow(n int) {
	if n <= cap(w.buf)-len(w.buf) {
		return
	}
	nb := make([]byte, len(w.buf), 2*cap(w.buf)+n)
	copy(nb, w.buf)
	w.buf = nb
}

// Write implements io.Writer. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// WriteByte implements io.ByteWriter. It never fails.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteString implements io.StringWriter. It never fails.
func (w *Writer) WriteString(s string) (int, error) {
	w.buf = append(w.buf, s...)
	return len(s), nil
}

// WriteBytes appends p.
func (w *Writer) WriteBytes(p []byte) { w.buf = append(w.buf, p...) }
