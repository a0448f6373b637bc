package codec

import "encoding/json"

// JSON uses encoding/json. Indent, when set, is used per nesting level.
type JSON[V any] struct {
	Indent string
}

func (c JSON[V]) Encode(v V) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
