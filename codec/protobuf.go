package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *structpb.Struct { return &structpb.Struct{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// ProtoStruct carries a tree of maps, lists and scalars as a
// google.protobuf.Struct. The root must be a map[string]any. Struct has only
// double, string, bool, list and map values, so integers widen to float64
// and byte arrays become lists of numbers.
type ProtoStruct struct{}

var _ Codec[any] = ProtoStruct{}

func (ProtoStruct) Encode(v any) ([]byte, error) {
	m, ok := protoSafe(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("codec: proto struct root must be a map, got %T", v)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("codec: proto struct: %w", err)
	}
	return Protobuf[*structpb.Struct]{}.Encode(s)
}

func (ProtoStruct) Decode(b []byte) (any, error) {
	s, err := NewProtobuf(func() *structpb.Struct { return &structpb.Struct{} }).Decode(b)
	if err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}

// protoSafe rewrites the typed slices produced by nbt.ToGo into []any, the
// only list form structpb accepts.
func protoSafe(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = protoSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = protoSafe(e)
		}
		return out
	case []byte:
		return widen(x)
	case []int32:
		return widen(x)
	case []int64:
		return widen(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func widen[T int8 | uint8 | int32 | int64](s []T) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = float64(e)
	}
	return out
}
