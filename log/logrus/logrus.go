// Package logrus adapts a logrus entry to mcwire.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/mcwire"
)

var _ mcwire.Logger = LogrusLogger{}

// LogrusLogger copies mcwire fields onto the entry. An error under "err" is
// attached with WithError so formatters and hooks see it as logrus.ErrorKey.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f mcwire.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f mcwire.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f mcwire.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f mcwire.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f mcwire.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	data := make(logrus.Fields, len(f))
	var errv error
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			errv = err
			continue
		}
		data[k] = v
	}
	e := l.E.WithFields(data)
	if errv != nil {
		e = e.WithError(errv)
	}
	return e
}
