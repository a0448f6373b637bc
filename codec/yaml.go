package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// YAML uses gopkg.in/yaml.v3 with a two-space indent.
type YAML[V any] struct{}

func (YAML[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAML[V]) Decode(b []byte) (V, error) {
	var v V
	err := yaml.Unmarshal(b, &v)
	return v, err
}
