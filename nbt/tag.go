package nbt

import "fmt"

// TagID identifies the kind of a Tag on the wire.
type TagID byte

const (
	TagEnd TagID = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagNames = [...]string{
	"End", "Byte", "Short", "Int", "Long", "Float", "Double",
	"ByteArray", "String", "List", "Compound", "IntArray", "LongArray",
}

func (id TagID) Valid() bool { return id <= TagLongArray }

func (id TagID) String() string {
	if id.Valid() {
		return tagNames[id]
	}
	return fmt.Sprintf("TagID(%d)", byte(id))
}

// Tag is one node of the tree.
type Tag interface {
	ID() TagID
}

type (
	End       struct{}
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

func (End) ID() TagID       { return TagEnd }
func (Byte) ID() TagID      { return TagByte }
func (Short) ID() TagID     { return TagShort }
func (Int) ID() TagID       { return TagInt }
func (Long) ID() TagID      { return TagLong }
func (Float) ID() TagID     { return TagFloat }
func (Double) ID() TagID    { return TagDouble }
func (ByteArray) ID() TagID { return TagByteArray }
func (String) ID() TagID    { return TagString }
func (*List) ID() TagID     { return TagList }
func (*Compound) ID() TagID { return TagCompound }
func (IntArray) ID() TagID  { return TagIntArray }
func (LongArray) ID() TagID { return TagLongArray }

// Equal reports whether a and b are the same tree. Compound entry order is
// ignored; list order is not.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ID() != b.ID() {
		return false
	}
	switch x := a.(type) {
	case ByteArray:
		y := b.(ByteArray)
		return string(x) == string(y)
	case IntArray:
		y := b.(IntArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case LongArray:
		y := b.(LongArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case *List:
		y := b.(*List)
		if x == nil || y == nil {
			return x == y
		}
		if x.Elem != y.Elem || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if x == nil || y == nil {
			return x == y
		}
		if x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			ov, ok := y.Get(k)
			if !ok || !Equal(x.vals[k], ov) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
