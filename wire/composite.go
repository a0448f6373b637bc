package wire

// Option is an optional value framed by one presence byte (1 = present).
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }
func None[T any]() Option[T]     { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }

func (o Option[T]) Present() bool { return o.Valid }
func (Option[T]) optional()       {}

// Optional is implemented by every Option instantiation. Field 0 of the
// underlying struct is the value, field 1 the presence flag.
type Optional interface {
	Present() bool
	optional()
}

func WriteOption[T any](w *Writer, o Option[T], enc func(*Writer, T)) {
	Bool(o.Valid).Encode(w)
	if o.Valid {
		enc(w, o.Value)
	}
}

func ReadOption[T any](r *Reader, dec func(*Reader) (T, error)) (Option[T], error) {
	var present Bool
	if err := present.Decode(r); err != nil {
		return Option[T]{}, err
	}
	if !present {
		return Option[T]{}, nil
	}
	v, err := dec(r)
	if err != nil {
		return Option[T]{}, err
	}
	return Some(v), nil
}

// WriteFixed writes every element of s with no count.
func WriteFixed[T any](w *Writer, s []T, enc func(*Writer, T)) {
	for _, v := range s {
		enc(w, v)
	}
}

// ReadFixed reads exactly n elements. On failure the partially built slice
// is dropped and nil is returned.
func ReadFixed[T any](r *Reader, n int, dec func(*Reader) (T, error)) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	out := make([]T, 0, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		v, err := dec(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteSeq writes len(s) with P followed by the elements.
func WriteSeq[P Prefix, T any](w *Writer, s []T, enc func(*Writer, T)) {
	var p P
	p.PutLen(w, len(s))
	WriteFixed(w, s, enc)
}

// ReadSeq reads a P count and then that many elements.
func ReadSeq[P Prefix, T any](r *Reader, dec func(*Reader) (T, error)) ([]T, error) {
	var p P
	n, err := p.ReadLen(r)
	if err != nil {
		return nil, err
	}
	return ReadFixed(r, n, dec)
}

// Seq is a slice whose count prefix is part of its type.
type Seq[P Prefix, T any] []T

// LenPrefix returns the prefix codec of the sequence.
func (Seq[P, T]) LenPrefix() Prefix {
	var p P
	return p
}

// Prefixed is implemented by sequence types that carry their own prefix.
type Prefixed interface {
	LenPrefix() Prefix
}

// WritePtr writes the referent of p. A nil p writes the zero value of T.
// Pointers add no bytes of their own.
func WritePtr[T any](w *Writer, p *T, enc func(*Writer, T)) {
	if p == nil {
		var zero T
		enc(w, zero)
		return
	}
	enc(w, *p)
}

// ReadPtr decodes a fresh T and returns its address.
func ReadPtr[T any](r *Reader, dec func(*Reader) (T, error)) (*T, error) {
	v, err := dec(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
