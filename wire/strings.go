package wire

import (
	"unicode/utf8"
	"unsafe"
)

// WriteString writes a P byte length followed by s.
func WriteString[P Prefix](w *Writer, s string) {
	var p P
	p.PutLen(w, len(s))
	w.buf = append(w.buf, s...)
}

// ReadString reads a P-prefixed UTF-8 string into a new allocation.
func ReadString[P Prefix](r *Reader) (string, error) {
	b, err := readPrefixed[P](r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// ReadStringView is ReadString without the copy. The result aliases the
// input buffer.
func ReadStringView[P Prefix](r *Reader) (string, error) {
	b, err := readPrefixed[P](r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return view(b), nil
}

// WriteBytes writes a P byte length followed by b.
func WriteBytes[P Prefix](w *Writer, b []byte) {
	var p P
	p.PutLen(w, len(b))
	w.buf = append(w.buf, b...)
}

// ReadBytes reads a P-prefixed blob into a new allocation.
func ReadBytes[P Prefix](r *Reader) ([]byte, error) {
	b, err := readPrefixed[P](r)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// ReadBytesView is ReadBytes without the copy.
func ReadBytesView[P Prefix](r *Reader) ([]byte, error) {
	return readPrefixed[P](r)
}

func readPrefixed[P Prefix](r *Reader) ([]byte, error) {
	var p P
	n, err := p.ReadLen(r)
	if err != nil {
		return nil, err
	}
	return r.Take(n)
}

func view(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// String is a UTF-8 string with a P byte-length prefix.
type String[P Prefix] string

func (s String[P]) Encode(w *Writer) { WriteString[P](w, string(s)) }
func (s *String[P]) Decode(r *Reader) error {
	v, err := ReadString[P](r)
	if err != nil {
		return err
	}
	*s = String[P](v)
	return nil
}

// Bytes is a blob with a P byte-length prefix.
type Bytes[P Prefix] []byte

func (b Bytes[P]) Encode(w *Writer) { WriteBytes[P](w, b) }
func (b *Bytes[P]) Decode(r *Reader) error {
	v, err := ReadBytes[P](r)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// RestBytes is an unprefixed blob that runs to the end of the input. It
// belongs in terminal positions only.
type RestBytes []byte

func (b RestBytes) Encode(w *Writer) { w.buf = append(w.buf, b...) }
func (b *RestBytes) Decode(r *Reader) error {
	*b = append(RestBytes(nil), r.Rest()...)
	return nil
}

// RestString is the UTF-8 counterpart of RestBytes.
type RestString string

func (s RestString) Encode(w *Writer) { w.buf = append(w.buf, s...) }
func (s *RestString) Decode(r *Reader) error {
	b := r.Peek(r.Remaining())
	if !utf8.Valid(b) {
		return ErrInvalidUTF8
	}
	r.Rest()
	*s = RestString(b)
	return nil
}

// ReadRestStringView returns the remaining input as a string aliasing the
// buffer.
func ReadRestStringView(r *Reader) (string, error) {
	b := r.Peek(r.Remaining())
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	r.Rest()
	return view(b), nil
}
