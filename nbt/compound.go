package nbt

// Entry is one named child of a Compound.
type Entry struct {
	Name string
	Tag  Tag
}

// Compound is a map of names to tags that remembers insertion order, so the
// same tree always encodes to the same bytes.
type Compound struct {
	keys []string
	vals map[string]Tag
}

// NewCompound builds a Compound from entries in order. A repeated name keeps
// its first position and its last value.
func NewCompound(entries ...Entry) *Compound {
	c := &Compound{
		keys: make([]string, 0, len(entries)),
		vals: make(map[string]Tag, len(entries)),
	}
	for _, e := range entries {
		c.Set(e.Name, e.Tag)
	}
	return c
}

// Set stores t under name. Replacing an existing name keeps its position.
func (c *Compound) Set(name string, t Tag) {
	if c.vals == nil {
		c.vals = make(map[string]Tag)
	}
	if _, ok := c.vals[name]; !ok {
		c.keys = append(c.keys, name)
	}
	c.vals[name] = t
}

func (c *Compound) Get(name string) (Tag, bool) {
	t, ok := c.vals[name]
	return t, ok
}

func (c *Compound) Delete(name string) {
	if _, ok := c.vals[name]; !ok {
		return
	}
	delete(c.vals, name)
	for i, k := range c.keys {
		if k == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

func (c *Compound) Len() int { return len(c.keys) }

// Keys returns the names in insertion order.
func (c *Compound) Keys() []string { return append([]string(nil), c.keys...) }

// Range calls fn for each entry in insertion order until fn returns false.
func (c *Compound) Range(fn func(name string, t Tag) bool) {
	for _, k := range c.keys {
		if !fn(k, c.vals[k]) {
			return
		}
	}
}

func get[T Tag](c *Compound, name string) (T, bool) {
	t, ok := c.vals[name].(T)
	return t, ok
}

func (c *Compound) Byte(name string) (int8, bool) {
	v, ok := get[Byte](c, name)
	return int8(v), ok
}

func (c *Compound) Bool(name string) (bool, bool) {
	v, ok := get[Byte](c, name)
	return v != 0, ok
}

func (c *Compound) Short(name string) (int16, bool) {
	v, ok := get[Short](c, name)
	return int16(v), ok
}

func (c *Compound) Int(name string) (int32, bool) {
	v, ok := get[Int](c, name)
	return int32(v), ok
}

func (c *Compound) Long(name string) (int64, bool) {
	v, ok := get[Long](c, name)
	return int64(v), ok
}

func (c *Compound) Float(name string) (float32, bool) {
	v, ok := get[Float](c, name)
	return float32(v), ok
}

func (c *Compound) Double(name string) (float64, bool) {
	v, ok := get[Double](c, name)
	return float64(v), ok
}

func (c *Compound) String(name string) (string, bool) {
	v, ok := get[String](c, name)
	return string(v), ok
}

func (c *Compound) ByteArray(name string) ([]byte, bool) { return get[ByteArray](c, name) }
func (c *Compound) IntArray(name string) ([]int32, bool) { return get[IntArray](c, name) }
func (c *Compound) LongArray(name string) ([]int64, bool) {
	return get[LongArray](c, name)
}
func (c *Compound) List(name string) (*List, bool)         { return get[*List](c, name) }
func (c *Compound) Compound(name string) (*Compound, bool) { return get[*Compound](c, name) }
