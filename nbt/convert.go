package nbt

import (
	"fmt"
	"math"
	"sort"
)

// ToGo converts t to plain Go values: compounds become map[string]any,
// lists []any, arrays typed slices, scalars their Go counterparts.
func ToGo(t Tag) any {
	switch v := t.(type) {
	case Byte:
		return int8(v)
	case Short:
		return int16(v)
	case Int:
		return int32(v)
	case Long:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case ByteArray:
		return []byte(v)
	case String:
		return string(v)
	case IntArray:
		return []int32(v)
	case LongArray:
		return []int64(v)
	case *List:
		out := make([]any, len(v.Items))
		for i, it := range v.Items {
			out[i] = ToGo(it)
		}
		return out
	case *Compound:
		out := make(map[string]any, v.Len())
		v.Range(func(name string, t Tag) bool {
			out[name] = ToGo(t)
			return true
		})
		return out
	default:
		return nil
	}
}

// FromGo is the best-effort inverse of ToGo for values produced by generic
// decoders (JSON, CBOR, msgpack, YAML, TOML). Map keys are sorted since Go
// maps carry no order. Integers that fit in 32 bits become Int, others Long.
func FromGo(v any) (Tag, error) {
	switch x := v.(type) {
	case nil:
		return End{}, nil
	case Tag:
		return x, nil
	case bool:
		if x {
			return Byte(1), nil
		}
		return Byte(0), nil
	case int8:
		return Byte(x), nil
	case uint8:
		return Byte(int8(x)), nil
	case int16:
		return Short(x), nil
	case uint16:
		return Int(int32(x)), nil
	case int32:
		return Int(x), nil
	case uint32:
		return Long(int64(x)), nil
	case int:
		return fromInt64(int64(x)), nil
	case int64:
		return fromInt64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("nbt: integer %d overflows Long", x)
		}
		return fromInt64(int64(x)), nil
	case uint:
		return FromGo(uint64(x))
	case float32:
		return Float(x), nil
	case float64:
		return Double(x), nil
	case string:
		return String(x), nil
	case []byte:
		return ByteArray(append([]byte(nil), x...)), nil
	case []int32:
		return IntArray(append([]int32(nil), x...)), nil
	case []int64:
		return LongArray(append([]int64(nil), x...)), nil
	case []any:
		l := &List{}
		for i, it := range x {
			t, err := FromGo(it)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			if err := l.Append(t); err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return l, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := NewCompound()
		for _, k := range keys {
			t, err := FromGo(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			c.Set(k, t)
		}
		return c, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = v
		}
		return FromGo(m)
	default:
		return nil, fmt.Errorf("nbt: cannot convert %T", v)
	}
}

func fromInt64(x int64) Tag {
	if x >= math.MinInt32 && x <= math.MaxInt32 {
		return Int(int32(x))
	}
	return Long(x)
}
