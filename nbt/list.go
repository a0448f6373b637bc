package nbt

import (
	"errors"
	"fmt"
)

var ErrListKind = errors.New("nbt: list element kind mismatch")

// List is a homogeneous sequence. Every item must have kind Elem; a list of
// kind End must be empty.
type List struct {
	Elem  TagID
	Items []Tag
}

// NewList builds a list of kind elem from items.
func NewList(elem TagID, items ...Tag) (*List, error) {
	l := &List{Elem: elem, Items: make([]Tag, 0, len(items))}
	for _, t := range items {
		if err := l.Append(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// MustList is NewList for literals known to be homogeneous.
func MustList(elem TagID, items ...Tag) *List {
	l, err := NewList(elem, items...)
	if err != nil {
		panic(err)
	}
	return l
}

// Append adds t. An empty list of kind End adopts the kind of its first item.
func (l *List) Append(t Tag) error {
	if t == nil {
		return fmt.Errorf("%w: nil item", ErrListKind)
	}
	if l.Elem == TagEnd && len(l.Items) == 0 {
		l.Elem = t.ID()
	}
	if t.ID() == TagEnd || t.ID() != l.Elem {
		return fmt.Errorf("%w: list of %s, item %s", ErrListKind, l.Elem, t.ID())
	}
	l.Items = append(l.Items, t)
	return nil
}

func (l *List) Len() int { return len(l.Items) }

// Ints returns the items of an Int list.
func (l *List) Ints() ([]int32, bool) {
	if l.Elem != TagInt {
		return nil, false
	}
	out := make([]int32, len(l.Items))
	for i, t := range l.Items {
		out[i] = int32(t.(Int))
	}
	return out, true
}

// Compounds returns the items of a Compound list.
func (l *List) Compounds() ([]*Compound, bool) {
	if l.Elem != TagCompound {
		return nil, false
	}
	out := make([]*Compound, len(l.Items))
	for i, t := range l.Items {
		out[i] = t.(*Compound)
	}
	return out, true
}

func (l *List) validate() error {
	if l.Elem == TagEnd && len(l.Items) > 0 {
		return fmt.Errorf("%w: non-empty list of End", ErrListKind)
	}
	for _, t := range l.Items {
		if t == nil || t.ID() != l.Elem {
			return fmt.Errorf("%w: list of %s", ErrListKind, l.Elem)
		}
	}
	return nil
}
