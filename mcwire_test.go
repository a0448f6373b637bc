package mcwire

import (
	"bytes"
	"errors"
	"net/netip"
	"reflect"
	"sync"
	"testing"

	"github.com/unkn0wn-root/mcwire/nbt"
	"github.com/unkn0wn-root/mcwire/wire"
)

type item struct {
	ID    int32
	Count uint8
}

type inventory struct {
	_     wire.U16[wire.LE] `wire:"len:Items"`
	Owner string
	Items []item
	Note  string `wire:"prefix:u8"`
	Cache int    `wire:"-"`
}

type shape interface{ isShape() }

type (
	circle       struct{ R uint8 }
	square       struct{ S uint8 }
	triangle     struct{ A, B uint8 }
	unknownShape struct{}
)

func (circle) isShape()       {}
func (square) isShape()       {}
func (triangle) isShape()     {}
func (unknownShape) isShape() {}

type drawing struct {
	ID    uint8
	Shape shape `wire:"variant:varint32"`
}

type countingHooks struct {
	NopHooks
	mu        sync.Mutex
	fallbacks []int64
	rejected  int
	schema    int
}

func (h *countingHooks) FallbackDecoded(_ string, d int64) {
	h.mu.Lock()
	h.fallbacks = append(h.fallbacks, d)
	h.mu.Unlock()
}

func (h *countingHooks) DecodeRejected(string, error) {
	h.mu.Lock()
	h.rejected++
	h.mu.Unlock()
}

func (h *countingHooks) SchemaRejected(string, error) {
	h.mu.Lock()
	h.schema++
	h.mu.Unlock()
}

func shapeSpec(fallback bool) UnionSpec {
	spec := UnionSpec{
		Discriminant: "u8",
		Variants: []VariantSpec{
			{Type: circle{}},
			{Type: square{}, Discriminant: At(5)},
			{Type: triangle{}},
		},
	}
	if fallback {
		spec.Variants = append(spec.Variants, VariantSpec{Type: unknownShape{}, Discriminant: At(255), Fallback: true})
	}
	return spec
}

func newShapeRegistry(t *testing.T, fallback bool, h Hooks) *Registry {
	t.Helper()
	reg := NewRegistry(Options{Hooks: h})
	if err := reg.RegisterUnion(reflect.TypeFor[shape](), shapeSpec(fallback)); err != nil {
		t.Fatalf("RegisterUnion: %v", err)
	}
	return reg
}

func mustMarshal(t *testing.T, reg *Registry, v any) []byte {
	t.Helper()
	b, err := reg.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal(%T): %v", v, err)
	}
	return b
}

func mustSchemaError(t *testing.T, err error, want error) {
	t.Helper()
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err=%v, want *SchemaError", err)
	}
	if !errors.Is(err, want) {
		t.Fatalf("err=%v, want %v", err, want)
	}
}

// ==== Records ====

func TestRecordLayout(t *testing.T) {
	reg := NewRegistry(Options{})
	inv := inventory{Owner: "ab", Items: []item{{ID: 1, Count: 2}}, Note: "x", Cache: 99}
	got := mustMarshal(t, reg, inv)
	want := []byte{
		0x01, 0x00, // donor: len(Items) as u16 LE
		0x02, 'a', 'b', // Owner: w32 prefix
		0x01, 0x00, 0x00, 0x00, 0x02, // Items[0]
		0x01, 'x', // Note: u8 prefix
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % x, want % x", got, want)
	}

	var back inventory
	if err := reg.Unmarshal(got, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	inv.Cache = 0
	if !reflect.DeepEqual(back, inv) {
		t.Fatalf("round trip = %+v, want %+v", back, inv)
	}
}

func TestDonorTracksLiveLength(t *testing.T) {
	reg := NewRegistry(Options{})
	inv := inventory{Items: []item{{ID: 1}}}
	if b := mustMarshal(t, reg, inv); b[0] != 1 {
		t.Fatalf("donor = %d, want 1", b[0])
	}
	inv.Items = append(inv.Items, item{ID: 2}, item{ID: 3})
	if b := mustMarshal(t, reg, inv); b[0] != 3 {
		t.Fatalf("donor after append = %d, want 3", b[0])
	}
}

func TestAdjacentDonatedSequences(t *testing.T) {
	type status struct {
		_      wire.VarUint32 `wire:"len:Misses"`
		_      wire.VarUint32 `wire:"len:Hits"`
		Misses []uint64
		Hits   []uint64
	}
	reg := NewRegistry(Options{})
	s := status{Misses: []uint64{7}, Hits: []uint64{1, 2}}
	b := mustMarshal(t, reg, s)
	if len(b) != 2+3*8 || b[0] != 1 || b[1] != 2 {
		t.Fatalf("Marshal = % x", b)
	}
	var back status
	if err := reg.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, s) {
		t.Fatalf("round trip = %+v, want %+v", back, s)
	}
}

func TestTruncationAtEveryPrefix(t *testing.T) {
	reg := NewRegistry(Options{})
	full := mustMarshal(t, reg, inventory{Owner: "steve", Items: []item{{1, 1}, {2, 2}}, Note: "hi"})
	for i := 0; i < len(full); i++ {
		orig := inventory{Owner: "keep"}
		err := reg.Unmarshal(full[:i], &orig)
		if !errors.Is(err, wire.ErrTruncated) {
			t.Fatalf("prefix %d: err=%v, want ErrTruncated", i, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Type != reflect.TypeFor[inventory]() {
			t.Fatalf("prefix %d: err=%v, want *DecodeError for inventory", i, err)
		}
		if orig.Owner != "keep" {
			t.Fatalf("prefix %d: target modified: %+v", i, orig)
		}
	}
}

func TestTrailingBytes(t *testing.T) {
	reg := NewRegistry(Options{})
	b := mustMarshal(t, reg, item{ID: 9, Count: 1})
	var it item
	err := reg.Unmarshal(append(b, 0xee), &it)
	if !errors.Is(err, ErrTrailingBytes) || !errors.Is(err, wire.ErrInvalid) {
		t.Fatalf("err=%v, want ErrTrailingBytes", err)
	}

	r := wire.NewReader(append(b, 0xee))
	if err := reg.DecodeFrom(r, &it); err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if it != (item{ID: 9, Count: 1}) || r.Remaining() != 1 {
		t.Fatalf("DecodeFrom = %+v, remaining %d", it, r.Remaining())
	}
}

func TestInvalidTarget(t *testing.T) {
	var it item
	for _, v := range []any{it, nil, (*item)(nil)} {
		if err := Unmarshal([]byte{0}, v); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("Unmarshal(%T): err=%v, want ErrInvalidTarget", v, err)
		}
	}
}

func TestDefaultsAndComposites(t *testing.T) {
	type misc struct {
		Flag  bool
		Pos   [3]float32
		Hash  [4]byte
		Name  *string
		Maybe wire.Option[wire.VarInt32]
		None  wire.Option[uint16]
		Small []int32 `wire:"as:varint32"`
		Addr  wire.Addr
		Tail  []byte `wire:"rest"`
	}
	name := "alex"
	in := misc{
		Flag:  true,
		Pos:   [3]float32{1, -2, 0.5},
		Hash:  [4]byte{0xde, 0xad, 0xbe, 0xef},
		Name:  &name,
		Maybe: wire.Some(wire.VarInt32(-3)),
		Small: []int32{-1, 300},
		Addr:  wire.AddrFrom(netip.MustParseAddrPort("10.0.0.2:19132")),
		Tail:  []byte("tail"),
	}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Decode[misc](b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
	if out.Name == in.Name {
		t.Fatalf("decoded pointer aliases the input")
	}
}

func TestNilPointerEncodesZero(t *testing.T) {
	type named struct{ Name *string }
	b, err := Marshal(named{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(b, []byte{0}) {
		t.Fatalf("Marshal = % x, want 00", b)
	}
	out, err := Decode[named](b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Name == nil || *out.Name != "" {
		t.Fatalf("Name = %v, want pointer to empty string", out.Name)
	}
}

func TestIntegerOverrideOverflow(t *testing.T) {
	type small struct {
		N int8 `wire:"as:i32"`
	}
	if _, err := Decode[small]([]byte{0x00, 0x01, 0x00, 0x00}); !errors.Is(err, wire.ErrInvalid) {
		t.Fatalf("err=%v, want ErrInvalid", err)
	}
	out, err := Decode[small]([]byte{0x80, 0xff, 0xff, 0xff})
	if err != nil || out.N != -128 {
		t.Fatalf("Decode = %d, %v", out.N, err)
	}
}

func TestRecursiveTypes(t *testing.T) {
	type node struct {
		Val  uint8
		Kids []node
	}
	type link struct {
		V    uint8
		Next wire.Option[*link]
	}

	tree := node{Val: 1, Kids: []node{{Val: 2, Kids: []node{}}}}
	b, err := Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal node: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 1, 2, 0}) {
		t.Fatalf("Marshal node = % x", b)
	}
	back, err := Decode[node](b)
	if err != nil || !reflect.DeepEqual(back, tree) {
		t.Fatalf("Decode node = %+v, %v", back, err)
	}

	chain := link{V: 1, Next: wire.Some(&link{V: 2})}
	b, err = Marshal(chain)
	if err != nil {
		t.Fatalf("Marshal link: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 1, 2, 0}) {
		t.Fatalf("Marshal link = % x", b)
	}
	got, err := Decode[link](b)
	if err != nil {
		t.Fatalf("Decode link: %v", err)
	}
	next, ok := got.Next.Get()
	if !ok || next.V != 2 || next.Next.Present() {
		t.Fatalf("Decode link = %+v", got)
	}
}

func TestNBTField(t *testing.T) {
	type blockActor struct {
		X, Z int32 `wire:"as:varint32"`
		Data nbt.Value[nbt.NetworkLittleEndian]
	}
	in := blockActor{X: -4, Z: 9, Data: nbt.Value[nbt.NetworkLittleEndian]{
		Root: nbt.NewCompound(nbt.Entry{Name: "id", Tag: nbt.String("Chest")}),
	}}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Decode[blockActor](b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.X != -4 || out.Z != 9 || !nbt.Equal(out.Data.Root, in.Data.Root) {
		t.Fatalf("round trip = %+v", out)
	}

	empty, err := Marshal(blockActor{})
	if err != nil {
		t.Fatalf("Marshal empty: %v", err)
	}
	if !bytes.Equal(empty, []byte{0, 0, 0}) {
		t.Fatalf("Marshal empty = % x", empty)
	}
}

func TestAppendMarshal(t *testing.T) {
	b, err := AppendMarshal([]byte{0xfe}, item{ID: 1, Count: 1})
	if err != nil {
		t.Fatalf("AppendMarshal: %v", err)
	}
	if !bytes.Equal(b, []byte{0xfe, 1, 0, 0, 0, 1}) {
		t.Fatalf("AppendMarshal = % x", b)
	}
}

func TestDescribe(t *testing.T) {
	d, err := Describe(reflect.TypeFor[inventory]())
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	want := []struct {
		name   string
		role   FieldRole
		prefix string
		donor  int
	}{
		{"_", RoleDonor, "", -1},
		{"Owner", RoleConsumer, "varuint32", -1},
		{"Items", RoleConsumer, "", 0},
		{"Note", RoleConsumer, "u8", -1},
		{"Cache", RoleSkipped, "", -1},
	}
	if len(d.Fields) != len(want) {
		t.Fatalf("fields = %d, want %d", len(d.Fields), len(want))
	}
	for i, w := range want {
		f := d.Fields[i]
		if f.Name != w.name || f.Role != w.role || f.Prefix != w.prefix || f.DonorIndex != w.donor {
			t.Fatalf("field %d = %+v, want %+v", i, f, w)
		}
	}
	if d.Fields[0].Target != "Items" {
		t.Fatalf("donor target = %q", d.Fields[0].Target)
	}

	d.Fields[0].Name = "mutated"
	again, _ := Describe(reflect.TypeFor[inventory]())
	if again.Fields[0].Name != "_" {
		t.Fatalf("descriptor shared with caller")
	}
}

// ==== Unions ====

func TestDiscriminantContinuity(t *testing.T) {
	reg := newShapeRegistry(t, false, nil)
	cases := []struct {
		v    shape
		want []byte
	}{
		{circle{R: 3}, []byte{0, 3}},
		{square{S: 7}, []byte{5, 7}},
		{triangle{A: 1, B: 2}, []byte{6, 1, 2}},
	}
	for _, tc := range cases {
		v := tc.v
		got := mustMarshal(t, reg, &v)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%T: Marshal = % x, want % x", tc.v, got, tc.want)
		}
		var back shape
		if err := reg.Unmarshal(got, &back); err != nil {
			t.Fatalf("%T: Unmarshal: %v", tc.v, err)
		}
		if back != tc.v {
			t.Fatalf("Unmarshal = %#v, want %#v", back, tc.v)
		}
	}

	d, ok := reg.DescribeUnion(reflect.TypeFor[shape]())
	if !ok || d.Fallback != -1 || d.Variants[2].Discriminant != 6 {
		t.Fatalf("DescribeUnion = %+v", d)
	}
}

func TestUnknownDiscriminant(t *testing.T) {
	h := &countingHooks{}
	reg := newShapeRegistry(t, false, h)
	// 1 sits in the gap between circle (0) and square (5); 9 is past the end.
	for i, d := range []byte{9, 1} {
		var s shape
		err := reg.Unmarshal([]byte{d}, &s)
		if !errors.Is(err, wire.ErrUnknownDiscriminant) || !errors.Is(err, wire.ErrInvalid) {
			t.Fatalf("discriminant %d: err=%v, want ErrUnknownDiscriminant", d, err)
		}
		if h.rejected != i+1 {
			t.Fatalf("discriminant %d: DecodeRejected calls = %d", d, h.rejected)
		}
	}
}

func TestFallbackVariant(t *testing.T) {
	h := &countingHooks{}
	reg := newShapeRegistry(t, true, h)

	var s shape
	if err := reg.Unmarshal([]byte{9}, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := s.(unknownShape); !ok {
		t.Fatalf("Unmarshal = %#v, want unknownShape", s)
	}
	if len(h.fallbacks) != 1 || h.fallbacks[0] != 9 {
		t.Fatalf("FallbackDecoded = %v", h.fallbacks)
	}

	// the fallback's own slot decodes without the hook
	if err := reg.Unmarshal([]byte{255}, &s); err != nil {
		t.Fatalf("Unmarshal 255: %v", err)
	}
	if len(h.fallbacks) != 1 {
		t.Fatalf("FallbackDecoded = %v", h.fallbacks)
	}

	// known variants are unaffected
	if err := reg.Unmarshal([]byte{0, 4}, &s); err != nil || s != (circle{R: 4}) {
		t.Fatalf("Unmarshal circle = %#v, %v", s, err)
	}
}

func TestUnionEncodeErrors(t *testing.T) {
	reg := newShapeRegistry(t, true, nil)
	w := wire.NewWriter(8)
	_ = w.WriteByte(0xaa)

	err := reg.EncodeTo(w, &drawing{ID: 1, Shape: unknownShape{}})
	if !errors.Is(err, ErrFallbackEncode) {
		t.Fatalf("fallback: err=%v, want ErrFallbackEncode", err)
	}
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("fallback: err=%v, want *EncodeError", err)
	}
	if !bytes.Equal(w.Bytes(), []byte{0xaa}) {
		t.Fatalf("writer after failed encode = % x", w.Bytes())
	}

	if err := reg.EncodeTo(w, &drawing{ID: 1}); !errors.Is(err, ErrNilUnion) {
		t.Fatalf("nil: err=%v, want ErrNilUnion", err)
	}
	var p shape = &circle{}
	if err := reg.EncodeTo(w, &p); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("pointer variant: err=%v, want ErrUnknownVariant", err)
	}
}

func TestVariantWidthOverride(t *testing.T) {
	reg := newShapeRegistry(t, false, nil)
	d := drawing{ID: 4, Shape: square{S: 7}}
	got := mustMarshal(t, reg, d)
	// square sits at 5: zigzag varint32 is 0x0a
	if !bytes.Equal(got, []byte{4, 0x0a, 7}) {
		t.Fatalf("Marshal = % x", got)
	}
	var back drawing
	if err := reg.Unmarshal(got, &back); err != nil || back != d {
		t.Fatalf("Unmarshal = %+v, %v", back, err)
	}
}

func TestUnionRegistrationErrors(t *testing.T) {
	iface := reflect.TypeFor[shape]()
	cases := []struct {
		name string
		spec UnionSpec
		want error
	}{
		{"missing discriminant", UnionSpec{Variants: []VariantSpec{{Type: circle{}}}}, ErrMissingDiscriminant},
		{"unknown codec", UnionSpec{Discriminant: "u7"}, ErrUnknownCodec},
		{"two fallbacks", UnionSpec{Discriminant: "u8", Variants: []VariantSpec{
			{Type: circle{}, Fallback: true}, {Type: square{}, Fallback: true},
		}}, ErrMultipleFallbacks},
		{"explicit duplicate", UnionSpec{Discriminant: "u8", Variants: []VariantSpec{
			{Type: circle{}, Discriminant: At(1)}, {Type: square{}, Discriminant: At(1)},
		}}, ErrDuplicateDiscriminant},
		{"implicit collision", UnionSpec{Discriminant: "u8", Variants: []VariantSpec{
			{Type: circle{}, Discriminant: At(1)}, {Type: square{}}, {Type: triangle{}, Discriminant: At(2)},
		}}, ErrDuplicateDiscriminant},
		{"not a member", UnionSpec{Discriminant: "u8", Variants: []VariantSpec{{Type: item{}}}}, ErrBadVariant},
		{"nil variant", UnionSpec{Discriminant: "u8", Variants: []VariantSpec{{}}}, ErrBadVariant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &countingHooks{}
			reg := NewRegistry(Options{Hooks: h})
			mustSchemaError(t, reg.RegisterUnion(iface, tc.spec), tc.want)
			if h.schema != 1 {
				t.Fatalf("SchemaRejected calls = %d", h.schema)
			}
		})
	}

	reg := newShapeRegistry(t, false, nil)
	mustSchemaError(t, reg.RegisterUnion(iface, shapeSpec(false)), ErrAlreadyRegistered)
	mustSchemaError(t, reg.RegisterUnion(reflect.TypeFor[item](), shapeSpec(false)), ErrUnsupportedType)
}

// ==== Schema errors ====

func TestSchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want error
	}{
		{"duplicate donor", reflect.TypeOf(struct {
			_ wire.U8 `wire:"len:X"`
			_ wire.U8 `wire:"len:X"`
			X []byte
		}{}), ErrDuplicateDonor},
		{"donor after target", reflect.TypeOf(struct {
			X []byte
			_ wire.U8 `wire:"len:X"`
		}{}), ErrDonorTarget},
		{"donor target missing", reflect.TypeOf(struct {
			_ wire.U8 `wire:"len:Y"`
			X []byte
		}{}), ErrDonorTarget},
		{"donor target not a sequence", reflect.TypeOf(struct {
			_ wire.U8 `wire:"len:X"`
			X int32
		}{}), ErrDonorTarget},
		{"named donor", reflect.TypeOf(struct {
			N wire.U8 `wire:"len:X"`
			X []byte
		}{}), ErrDonorNotBlank},
		{"donor of non-prefix type", reflect.TypeOf(struct {
			_ string `wire:"len:X"`
			X []byte
		}{}), ErrDonorNotBlank},
		{"prefix with donor", reflect.TypeOf(struct {
			_ wire.U8 `wire:"len:X"`
			X []byte `wire:"prefix:u8"`
		}{}), ErrPrefixWithDonor},
		{"prefix on scalar", reflect.TypeOf(struct {
			N int32 `wire:"prefix:u8"`
		}{}), ErrPrefixNotSequence},
		{"variant on scalar", reflect.TypeOf(struct {
			N int32 `wire:"variant:u8"`
		}{}), ErrVariantNotUnion},
		{"as on string", reflect.TypeOf(struct {
			S string `wire:"as:u8"`
		}{}), ErrAsNotNumeric},
		{"rest not last", reflect.TypeOf(struct {
			B []byte `wire:"rest"`
			N uint8
		}{}), ErrRestNotLast},
		{"rest of wrong type", reflect.TypeOf(struct {
			N int `wire:"rest"`
		}{}), ErrRestType},
		{"unknown codec", reflect.TypeOf(struct {
			N int32 `wire:"as:u128"`
		}{}), ErrUnknownCodec},
		{"bad tag", reflect.TypeOf(struct {
			N int32 `wire:"bogus"`
		}{}), ErrBadTag},
		{"equals syntax", reflect.TypeOf(struct {
			N int32 `wire:"as=u8"`
		}{}), ErrBadTag},
		{"len without target", reflect.TypeOf(struct {
			_ wire.U8 `wire:"len"`
			X []byte
		}{}), ErrBadTag},
		{"map", reflect.TypeOf(struct {
			M map[string]int
		}{}), ErrUnsupportedType},
		{"unregistered interface", reflect.TypeOf(struct {
			S shape
		}{}), ErrNotRegistered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &countingHooks{}
			reg := NewRegistry(Options{Hooks: h})
			mustSchemaError(t, reg.Compile(tc.typ), tc.want)
			if h.schema != 1 {
				t.Fatalf("SchemaRejected calls = %d", h.schema)
			}
		})
	}
}

func TestSkippedAfterRest(t *testing.T) {
	type tail struct {
		N     uint8
		Body  string `wire:"rest"`
		Cache []int  `wire:"-"`
	}
	b, err := Marshal(tail{N: 1, Body: "hello"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Decode[tail](b)
	if err != nil || out.Body != "hello" || out.N != 1 {
		t.Fatalf("Decode = %+v, %v", out, err)
	}
	if _, err := Decode[tail]([]byte{1, 0xff}); !errors.Is(err, wire.ErrInvalidUTF8) {
		t.Fatalf("err=%v, want ErrInvalidUTF8", err)
	}
}

// ==== Concurrency ====

func TestConcurrentCompileAndUse(t *testing.T) {
	reg := NewRegistry(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := inventory{Owner: "p", Items: []item{{ID: int32(i)}}}
			b, err := reg.Marshal(in)
			if err != nil {
				t.Errorf("Marshal: %v", err)
				return
			}
			var out inventory
			if err := reg.Unmarshal(b, &out); err != nil || out.Items[0].ID != int32(i) {
				t.Errorf("Unmarshal = %+v, %v", out, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestEncodeToDecodeFrom(t *testing.T) {
	w := wire.NewWriter(0)
	if err := EncodeTo(w, item{ID: 2, Count: 3}); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if err := EncodeTo(w, "tail"); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	r := wire.NewReader(w.Bytes())
	it, err := DecodeFrom[item](r)
	if err != nil || it != (item{ID: 2, Count: 3}) {
		t.Fatalf("DecodeFrom item = %+v, %v", it, err)
	}
	s, err := DecodeFrom[string](r)
	if err != nil || s != "tail" || r.Remaining() != 0 {
		t.Fatalf("DecodeFrom string = %q, %v", s, err)
	}
}
