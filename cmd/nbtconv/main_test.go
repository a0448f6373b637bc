package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/mcwire/codec"
	"github.com/unkn0wn-root/mcwire/nbt"
	"github.com/unkn0wn-root/mcwire/wire"
)

func sampleRoot() *nbt.Compound {
	return nbt.NewCompound(
		nbt.Entry{Name: "LevelName", Tag: nbt.String("Bedrock level")},
		nbt.Entry{Name: "SpawnY", Tag: nbt.Int(64)},
		nbt.Entry{Name: "Time", Tag: nbt.Long(1 << 40)},
	)
}

func encodeRoot(t *testing.T, enc nbt.Encoding, name string) []byte {
	t.Helper()
	var w wire.Writer
	if err := nbt.Encode(&w, enc, name, sampleRoot()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return w.Bytes()
}

func writeFile(t *testing.T, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, b, 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func runCLI(t *testing.T, args ...string) ([]byte, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.Bytes(), stderr.String(), err
}

// ==========================================
// Exports
// ==========================================

func TestRun_JSONExport(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, "root"))

	out, logs, err := runCLI(t, "-o", "json", p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if got["LevelName"] != "Bedrock level" || got["SpawnY"] != float64(64) {
		t.Fatalf("unexpected export: %v", got)
	}
	for _, want := range []string{"decoded root", `"name": "root"`, `"kind": "Compound"`} {
		if !strings.Contains(logs, want) {
			t.Fatalf("log missing %s: %s", want, logs)
		}
	}
}

func TestRun_ExportFailureLogsError(t *testing.T) {
	var w wire.Writer
	list := nbt.MustList(nbt.TagInt, nbt.Int(1), nbt.Int(2))
	if err := nbt.Encode(&w, nbt.Network, "", list); err != nil {
		t.Fatalf("encode: %v", err)
	}
	p := writeFile(t, "list.nbt", w.Bytes())

	_, logs, err := runCLI(t, "-o", "toml", p)
	if err == nil {
		t.Fatalf("toml export of a list root succeeded")
	}
	if !strings.Contains(logs, "export failed") || !strings.Contains(logs, `"error":`) {
		t.Fatalf("export failure not logged with error field: %s", logs)
	}
}

func TestRun_MsgpackExport(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, ""))

	out, _, err := runCLI(t, "-o", "msgpack", p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var got map[string]any
	if err := msgpack.Unmarshal(out, &got); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	if got["LevelName"] != "Bedrock level" {
		t.Fatalf("unexpected export: %v", got)
	}
}

func TestRun_StructuredFormats(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, ""))
	for _, f := range []string{"cbor", "yaml", "toml", "proto"} {
		out, _, err := runCLI(t, "-o", f, p)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if len(out) == 0 {
			t.Fatalf("%s: empty output", f)
		}
	}
}

func TestRun_YAMLExportDecodesBack(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, ""))

	out, _, err := runCLI(t, "-o", "yaml", p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	tag, err := codec.Tree{Inner: codec.YAML[any]{}}.Decode(out)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	c, ok := tag.(*nbt.Compound)
	if !ok {
		t.Fatalf("root kind %v", tag.ID())
	}
	if y, _ := c.Int("SpawnY"); y != 64 {
		t.Fatalf("SpawnY=%d", y)
	}
}

// ==========================================
// Binary re-encoding
// ==========================================

func TestRun_ReencodeKeepsRootName(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, "root"))

	out, _, err := runCLI(t, "-o", "be", p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := encodeRoot(t, nbt.Java, "root"); !bytes.Equal(out, want) {
		t.Fatalf("be output mismatch\n got %x\nwant %x", out, want)
	}
}

func TestRun_LevelHeaderAndGzip(t *testing.T) {
	body := encodeRoot(t, nbt.Plain, "")
	header := make([]byte, levelHeaderSize)
	header[0] = 10
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write(append(header, body...))
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	p := writeFile(t, "level.dat", buf.Bytes())

	out, _, err := runCLI(t, "--in", "le", "--header", "-o", "le", p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !bytes.Equal(out, body) {
		t.Fatalf("le output mismatch")
	}
}

// ==========================================
// Flags and limits
// ==========================================

func TestRun_ProfileDefaults(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Java, ""))
	prof := writeFile(t, "profile.toml", []byte("in = \"be\"\noutput = \"network\"\n"))

	out, _, err := runCLI(t, "--profile", prof, p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := encodeRoot(t, nbt.Network, ""); !bytes.Equal(out, want) {
		t.Fatalf("profile output not applied")
	}

	// explicit flag beats the profile
	out, _, err = runCLI(t, "--profile", prof, "-o", "json", p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !json.Valid(out) {
		t.Fatalf("explicit -o ignored: %s", out)
	}
}

func TestRun_ProfileUnknownKey(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, ""))
	prof := writeFile(t, "profile.toml", []byte("colour = \"red\"\n"))

	if _, _, err := runCLI(t, "--profile", prof, p); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestRun_MaxSize(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, ""))

	_, _, err := runCLI(t, "--max-size", "4", p)
	if !errors.Is(err, codec.ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	p := writeFile(t, "level.nbt", encodeRoot(t, nbt.Network, ""))
	short := writeFile(t, "short.nbt", []byte{10, 0})

	cases := []struct {
		name string
		args []string
	}{
		{"no file", nil},
		{"bad input encoding", []string{"--in", "xml", p}},
		{"bad output", []string{"-o", "csv", p}},
		{"bad compression", []string{"--compression", "lz4", p}},
		{"truncated", []string{short}},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope")}},
	}
	for _, tc := range cases {
		if _, _, err := runCLI(t, tc.args...); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	_, _, err := runCLI(t, "--header", short)
	if !errors.Is(err, wire.ErrTruncated) {
		t.Fatalf("short header: want ErrTruncated, got %v", err)
	}
}
