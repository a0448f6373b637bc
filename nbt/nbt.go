package nbt

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/mcwire/wire"
)

// MaxDepth bounds nesting of lists and compounds on decode.
const MaxDepth = 512

var (
	ErrUnknownTag  = fmt.Errorf("%w: unknown nbt tag id", wire.ErrInvalid)
	ErrEndValue    = fmt.Errorf("%w: nbt End used as a value", wire.ErrInvalid)
	ErrTooDeep     = fmt.Errorf("%w: nbt nesting exceeds limit", wire.ErrInvalid)
	ErrNotCompound = errors.New("nbt: root is not a compound")
	ErrNilTag      = errors.New("nbt: nil tag")
)

// Encode writes a root tag: id, name, payload. An End root writes only its
// id.
func Encode(w *wire.Writer, enc Encoding, name string, t Tag) error {
	if t == nil {
		return ErrNilTag
	}
	if t.ID() == TagEnd {
		return w.WriteByte(byte(TagEnd))
	}
	_ = w.WriteByte(byte(t.ID()))
	if err := enc.WriteString(w, name); err != nil {
		return err
	}
	return writePayload(w, enc, t)
}

// Decode reads a root tag and returns its name and value.
func Decode(r *wire.Reader, enc Encoding) (string, Tag, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", nil, err
	}
	id := TagID(b)
	if id == TagEnd {
		return "", End{}, nil
	}
	if !id.Valid() {
		return "", nil, ErrUnknownTag
	}
	name, err := enc.ReadString(r)
	if err != nil {
		return "", nil, err
	}
	t, err := readPayload(r, enc, id, 0)
	if err != nil {
		return "", nil, err
	}
	return name, t, nil
}

// Marshal encodes t as a root with an empty name.
func Marshal(enc Encoding, t Tag) ([]byte, error) {
	var w wire.Writer
	if err := Encode(&w, enc, "", t); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes one root from b. Trailing bytes are left unread and not
// reported; use Decode with a Reader to observe them.
func Unmarshal(enc Encoding, b []byte) (Tag, error) {
	_, t, err := Decode(wire.NewReader(b), enc)
	return t, err
}

func writePayload(w *wire.Writer, enc Encoding, t Tag) error {
	switch v := t.(type) {
	case Byte:
		_ = w.WriteByte(byte(v))
	case Short:
		enc.WriteShort(w, int16(v))
	case Int:
		enc.WriteInt(w, int32(v))
	case Long:
		enc.WriteLong(w, int64(v))
	case Float:
		enc.WriteFloat(w, float32(v))
	case Double:
		enc.WriteDouble(w, float64(v))
	case ByteArray:
		enc.WriteInt(w, int32(len(v)))
		w.WriteBytes(v)
	case String:
		return enc.WriteString(w, string(v))
	case IntArray:
		enc.WriteInt(w, int32(len(v)))
		for _, x := range v {
			enc.WriteInt(w, x)
		}
	case LongArray:
		enc.WriteInt(w, int32(len(v)))
		for _, x := range v {
			enc.WriteLong(w, x)
		}
	case *List:
		if v == nil {
			return ErrNilTag
		}
		if err := v.validate(); err != nil {
			return err
		}
		_ = w.WriteByte(byte(v.Elem))
		enc.WriteInt(w, int32(len(v.Items)))
		for _, it := range v.Items {
			if err := writePayload(w, enc, it); err != nil {
				return err
			}
		}
	case *Compound:
		if v == nil {
			return ErrNilTag
		}
		for _, k := range v.keys {
			child := v.vals[k]
			if child == nil {
				return fmt.Errorf("%w: %q", ErrNilTag, k)
			}
			if child.ID() == TagEnd {
				return fmt.Errorf("%w: %q", ErrEndValue, k)
			}
			_ = w.WriteByte(byte(child.ID()))
			if err := enc.WriteString(w, k); err != nil {
				return err
			}
			if err := writePayload(w, enc, child); err != nil {
				return err
			}
		}
		_ = w.WriteByte(byte(TagEnd))
	case End:
		return ErrEndValue
	default:
		return fmt.Errorf("nbt: unsupported tag type %T", t)
	}
	return nil
}

// readCount reads a non-negative count whose elements occupy at least one
// byte each, so it can be checked against the remaining input up front.
func readCount(r *wire.Reader, enc Encoding) (int, error) {
	n, err := enc.ReadInt(r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, wire.ErrInvalidLength
	}
	if int(n) > r.Remaining() {
		return 0, wire.ErrTruncated
	}
	return int(n), nil
}

func readPayload(r *wire.Reader, enc Encoding, id TagID, depth int) (Tag, error) {
	switch id {
	case TagByte:
		b, err := r.ReadByte()
		return Byte(int8(b)), err
	case TagShort:
		v, err := enc.ReadShort(r)
		return Short(v), err
	case TagInt:
		v, err := enc.ReadInt(r)
		return Int(v), err
	case TagLong:
		v, err := enc.ReadLong(r)
		return Long(v), err
	case TagFloat:
		v, err := enc.ReadFloat(r)
		return Float(v), err
	case TagDouble:
		v, err := enc.ReadDouble(r)
		return Double(v), err
	case TagByteArray:
		n, err := readCount(r, enc)
		if err != nil {
			return nil, err
		}
		b, err := r.Take(n)
		if err != nil {
			return nil, err
		}
		return ByteArray(append([]byte(nil), b...)), nil
	case TagString:
		s, err := enc.ReadString(r)
		return String(s), err
	case TagIntArray:
		n, err := readCount(r, enc)
		if err != nil {
			return nil, err
		}
		out := make(IntArray, n)
		for i := range out {
			if out[i], err = enc.ReadInt(r); err != nil {
				return nil, err
			}
		}
		return out, nil
	case TagLongArray:
		n, err := readCount(r, enc)
		if err != nil {
			return nil, err
		}
		out := make(LongArray, n)
		for i := range out {
			if out[i], err = enc.ReadLong(r); err != nil {
				return nil, err
			}
		}
		return out, nil
	case TagList:
		return readList(r, enc, depth+1)
	case TagCompound:
		return readCompound(r, enc, depth+1)
	case TagEnd:
		return nil, ErrEndValue
	default:
		return nil, ErrUnknownTag
	}
}

func readList(r *wire.Reader, enc Encoding, depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	elem := TagID(b)
	if !elem.Valid() {
		return nil, ErrUnknownTag
	}
	if elem == TagEnd {
		// count of an End list is ignored
		if _, err := enc.ReadInt(r); err != nil {
			return nil, err
		}
		return &List{Elem: TagEnd}, nil
	}
	n, err := readCount(r, enc)
	if err != nil {
		return nil, err
	}
	l := &List{Elem: elem, Items: make([]Tag, 0, n)}
	for i := 0; i < n; i++ {
		t, err := readPayload(r, enc, elem, depth)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, t)
	}
	return l, nil
}

func readCompound(r *wire.Reader, enc Encoding, depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	c := NewCompound()
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		id := TagID(b)
		if id == TagEnd {
			return c, nil
		}
		if !id.Valid() {
			return nil, ErrUnknownTag
		}
		name, err := enc.ReadString(r)
		if err != nil {
			return nil, err
		}
		t, err := readPayload(r, enc, id, depth)
		if err != nil {
			return nil, err
		}
		c.Set(name, t)
	}
}

// Value is a compound root usable as a wire field. A nil Root is written as
// a lone End byte, which is how an absent tag is sent on the network.
// Encode panics if the tree is malformed (for example a list mixing kinds).
type Value[E Encoding] struct {
	Root *Compound
}

func (v Value[E]) Encode(w *wire.Writer) {
	var enc E
	var t Tag = End{}
	if v.Root != nil {
		t = v.Root
	}
	if err := Encode(w, enc, "", t); err != nil {
		panic(err)
	}
}

func (v *Value[E]) Decode(r *wire.Reader) error {
	var enc E
	_, t, err := Decode(r, enc)
	if err != nil {
		return err
	}
	switch root := t.(type) {
	case End:
		v.Root = nil
	case *Compound:
		v.Root = root
	default:
		return ErrNotCompound
	}
	return nil
}
