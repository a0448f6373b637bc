package mcwire

import (
	"fmt"
	"sort"

	"github.com/vmihailenco/tagparser/v2"
)

const tagKey = "wire"

type fieldTag struct {
	skip    bool
	rest    bool
	lenFor  string
	prefix  string
	variant string
	as      string
}

func (t fieldTag) overrides() bool {
	return t.prefix != "" || t.variant != "" || t.as != "" || t.rest || t.skip
}

// parseTag reads `wire:"opt,key:value,..."` in the msgpack tag syntax. A bare
// leading option lands in tagparser's Name and is treated like any other flag.
func parseTag(s string) (fieldTag, error) {
	var t fieldTag
	if s == "" {
		return t, nil
	}
	if s == "-" {
		t.skip = true
		return t, nil
	}

	pt := tagparser.Parse(s)
	opts := make(map[string]string, len(pt.Options)+1)
	for k, v := range pt.Options {
		opts[k] = v
	}
	if pt.Name != "" {
		if _, dup := opts[pt.Name]; dup {
			return t, fmt.Errorf("%w: %q repeated", ErrBadTag, pt.Name)
		}
		opts[pt.Name] = ""
	}

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val := opts[key]
		switch {
		case key == "rest" && val == "":
			t.rest = true
		case key == "len" && val != "":
			t.lenFor = val
		case key == "prefix" && val != "":
			t.prefix = val
		case key == "variant" && val != "":
			t.variant = val
		case key == "as" && val != "":
			t.as = val
		default:
			if val != "" {
				return t, fmt.Errorf("%w: %q", ErrBadTag, key+":"+val)
			}
			return t, fmt.Errorf("%w: %q", ErrBadTag, key)
		}
	}
	return t, nil
}
