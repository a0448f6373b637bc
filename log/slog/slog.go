//go:build go1.21

// Package slog adapts a *slog.Logger to mcwire.Logger.
package slog

import (
	"context"
	stdslog "log/slog"
	"slices"

	"github.com/unkn0wn-root/mcwire"
)

var _ mcwire.Logger = Logger{}

// Logger emits mcwire fields as slog attributes in key order. Errors are
// logged by their message so text and JSON handlers agree.
type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f mcwire.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f mcwire.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f mcwire.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f mcwire.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(level stdslog.Level, msg string, f mcwire.Fields) {
	ctx := context.Background()
	if !s.L.Enabled(ctx, level) {
		return
	}
	s.L.LogAttrs(ctx, level, msg, attrs(f)...)
}

func attrs(f mcwire.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range keys {
		switch v := f[k].(type) {
		case error:
			out = append(out, stdslog.String(k, v.Error()))
		case string:
			out = append(out, stdslog.String(k, v))
		case int:
			out = append(out, stdslog.Int(k, v))
		case int64:
			out = append(out, stdslog.Int64(k, v))
		default:
			out = append(out, stdslog.Any(k, v))
		}
	}
	return out
}
