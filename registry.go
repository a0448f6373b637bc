package mcwire

import (
	"fmt"
	"reflect"
	"sync"
)

// Options tune a Registry. The zero value is valid.
type Options struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Registry compiles types into codecs and caches them. Compiled codecs and
// registered unions are never mutated after they are published, so encode and
// decode read them without locking. A Registry is safe for concurrent use.
type Registry struct {
	log   Logger
	hooks Hooks

	mu     sync.Mutex // serializes compilation and registration
	codecs sync.Map   // reflect.Type -> *typeCodec
	unions sync.Map   // reflect.Type -> *unionSchema
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

var std = NewRegistry(Options{})

// Default returns the registry used by the package-level functions.
func Default() *Registry { return std }

// Compile builds codecs for types ahead of first use so schema errors surface
// at startup.
func (r *Registry) Compile(types ...reflect.Type) error {
	for _, t := range types {
		if _, err := r.codecFor(t); err != nil {
			return err
		}
	}
	return nil
}

// Describe returns the layout of a record type.
func (r *Registry) Describe(t reflect.Type) (*Descriptor, error) {
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Err: fmt.Errorf("%w: not a struct", ErrUnsupportedType)}
	}
	tc, err := r.codecFor(t)
	if err != nil {
		return nil, err
	}
	return tc.desc.clone(), nil
}

// DescribeUnion returns the layout of a registered union.
func (r *Registry) DescribeUnion(t reflect.Type) (*UnionDescriptor, bool) {
	u, ok := r.union(t)
	if !ok {
		return nil, false
	}
	return u.desc.clone(), true
}

func (r *Registry) union(t reflect.Type) (*unionSchema, bool) {
	v, ok := r.unions.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*unionSchema), true
}

func (r *Registry) codecFor(t reflect.Type) (*typeCodec, error) {
	if v, ok := r.codecs.Load(t); ok {
		return v.(*typeCodec), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.codecs.Load(t); ok {
		return v.(*typeCodec), nil
	}

	c := &compiler{reg: r, pending: make(map[reflect.Type]*typeCodec)}
	tc, err := c.compile(t)
	if err != nil {
		r.log.Warn("mcwire: schema rejected", Fields{"type": t.String(), "err": err.Error()})
		r.hooks.SchemaRejected(t.String(), err)
		return nil, err
	}
	// publish the whole batch only after every member compiled
	for _, p := range c.order {
		r.codecs.Store(p.typ, p)
	}
	r.log.Debug("mcwire: compiled", Fields{"type": t.String(), "types": len(c.order)})
	return tc, nil
}
