package codec

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// TOML uses BurntSushi/toml. TOML documents are tables, so V must encode as
// a struct or a map with string keys.
type TOML[V any] struct{}

func (TOML[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOML[V]) Decode(b []byte) (V, error) {
	var v V
	_, err := toml.Decode(string(b), &v)
	return v, err
}
