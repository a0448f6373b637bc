// Package zap adapts a *zap.Logger to mcwire.Logger.
package zap

import (
	"slices"

	"github.com/unkn0wn-root/mcwire"
	"go.uber.org/zap"
)

var _ mcwire.Logger = ZapLogger{}

// ZapLogger writes mcwire fields as typed zap fields in key order. An error
// under "err" is logged with zap.Error; schema and union names ("type",
// "union") are plain strings.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f mcwire.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f mcwire.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f mcwire.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f mcwire.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f mcwire.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		out = append(out, field(k, f[k]))
	}
	return out
}

func field(k string, v any) zap.Field {
	switch x := v.(type) {
	case error:
		if k == "err" {
			return zap.Error(x)
		}
		return zap.NamedError(k, x)
	case string:
		return zap.String(k, x)
	case int:
		return zap.Int(k, x)
	case int64:
		return zap.Int64(k, x)
	case uint64:
		return zap.Uint64(k, x)
	case bool:
		return zap.Bool(k, x)
	}
	return zap.Any(k, v)
}
