// Command nbtconv decodes an NBT file and writes it back out in another NBT
// encoding or as a structured export.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/mcwire"
	"github.com/unkn0wn-root/mcwire/codec"
	logzap "github.com/unkn0wn-root/mcwire/log/zap"
	"github.com/unkn0wn-root/mcwire/nbt"
	"github.com/unkn0wn-root/mcwire/wire"
)

const levelHeaderSize = 8

// profile holds flag defaults loaded from --profile. Flags given on the
// command line win.
type profile struct {
	In          string `toml:"in"`
	Compression string `toml:"compression"`
	Header      bool   `toml:"header"`
	Output      string `toml:"output"`
	MaxSize     int    `toml:"max_size"`
}

type options struct {
	profile
	out     string
	verbose bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	var profilePath string

	flagSet := pflag.NewFlagSet("nbtconv", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.In, "in", "network", "input encoding: network, le, be")
	flagSet.StringVar(&opts.Compression, "compression", "auto", "input compression: none, gzip, zlib, auto")
	flagSet.BoolVar(&opts.Header, "header", false, "skip the 8-byte level.dat header")
	flagSet.StringVarP(&opts.Output, "output", "o", "json", "output: network, le, be, json, cbor, msgpack, yaml, toml, proto")
	flagSet.IntVar(&opts.MaxSize, "max-size", 64<<20, "reject inputs larger than this many bytes after decompression (0 = no limit)")
	flagSet.StringVar(&profilePath, "profile", "", "TOML file with flag defaults")
	flagSet.StringVar(&opts.out, "out", "", "write to this file instead of stdout")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: nbtconv [flags] FILE\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if profilePath != "" {
		if err := applyProfile(flagSet, &opts.profile, profilePath); err != nil {
			return err
		}
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected exactly one input file, got %d", flagSet.NArg())
	}

	zl := newLogger(stderr, opts.verbose)
	defer func() { _ = zl.Sync() }()
	var logger mcwire.Logger = logzap.ZapLogger{L: zl}

	in, ok := nbt.EncodingByName(strings.ToLower(opts.In))
	if !ok {
		return fmt.Errorf("unknown input encoding %q", opts.In)
	}

	path := flagSet.Arg(0)
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data, err := decompress(raw, opts.Compression, opts.MaxSize)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	data, err = codec.Limit[[]byte]{Inner: codec.Bytes{}, MaxDecode: opts.MaxSize}.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if opts.Header {
		if len(data) < levelHeaderSize {
			return fmt.Errorf("%s: %w: shorter than level header", path, wire.ErrTruncated)
		}
		data = data[levelHeaderSize:]
	}

	r := wire.NewReader(data)
	name, root, err := nbt.Decode(r, in)
	if err != nil {
		logger.Debug("decode failed", mcwire.Fields{"file": path, "encoding": opts.In, "err": err})
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("decoded root", mcwire.Fields{
		"file":  path,
		"name":  name,
		"kind":  root.ID().String(),
		"bytes": len(data),
	})
	if n := r.Remaining(); n > 0 {
		logger.Warn("trailing bytes after root", mcwire.Fields{"bytes": n})
	}

	body, err := render(opts.Output, name, root)
	if err != nil {
		logger.Error("export failed", mcwire.Fields{"format": opts.Output, "err": err})
		return err
	}

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	logger.Debug("wrote output", mcwire.Fields{"format": opts.Output, "bytes": len(body)})
	return nil
}

// applyProfile fills every flag the user did not set from the TOML file.
func applyProfile(fs *pflag.FlagSet, p *profile, path string) error {
	var file profile
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return fmt.Errorf("profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("profile %s: unknown key %q", path, undecoded[0].String())
	}
	set := func(flag, key string, apply func()) {
		if !fs.Changed(flag) && md.IsDefined(key) {
			apply()
		}
	}
	set("in", "in", func() { p.In = file.In })
	set("compression", "compression", func() { p.Compression = file.Compression })
	set("header", "header", func() { p.Header = file.Header })
	set("output", "output", func() { p.Output = file.Output })
	set("max-size", "max_size", func() { p.MaxSize = file.MaxSize })
	return nil
}

func decompress(b []byte, mode string, limit int) ([]byte, error) {
	switch strings.ToLower(mode) {
	case "", "none":
		return b, nil
	case "auto":
		switch {
		case len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b:
			return decompress(b, "gzip", limit)
		case len(b) >= 2 && b[0] == 0x78 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0:
			return decompress(b, "zlib", limit)
		}
		return b, nil
	case "gzip":
		zr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return readBounded(zr, limit)
	case "zlib":
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		return readBounded(zr, limit)
	}
	return nil, fmt.Errorf("unknown compression %q", mode)
}

// readBounded stops one byte past limit so Limit can reject the result
// without inflating the whole stream.
func readBounded(r io.Reader, limit int) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	return io.ReadAll(r)
}

func render(format, name string, root nbt.Tag) ([]byte, error) {
	format = strings.ToLower(format)
	if enc, ok := nbt.EncodingByName(format); ok {
		var w wire.Writer
		if err := nbt.Encode(&w, enc, name, root); err != nil {
			return nil, err
		}
		return w.Bytes(), nil
	}

	var c codec.Codec[nbt.Tag]
	switch format {
	case "json":
		c = codec.Tree{Inner: codec.JSON[any]{Indent: "  "}}
	case "cbor":
		cb, err := codec.NewCBOR[any](true)
		if err != nil {
			return nil, err
		}
		c = codec.Tree{Inner: cb}
	case "msgpack":
		c = codec.Tree{Inner: codec.Msgpack[any]{}}
	case "yaml":
		c = codec.Tree{Inner: codec.YAML[any]{}}
	case "toml":
		c = codec.Tree{Inner: codec.TOML[any]{}}
	case "proto":
		c = codec.Tree{Inner: codec.ProtoStruct{}}
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	out, err := c.Encode(root)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", format, err)
	}
	return out, nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
