// Package navlog provides the structured logger used across the navigation
// core, and the per-iteration log record contract (§6 of the navigation
// core spec).
package navlog

import (
	"go.uber.org/zap"
)

// Logger is the logging surface every navigation-core package depends on,
// the same shape as go.viam.com/rdk/logging.Logger but trimmed to what this
// module needs: leveled, structured, named sub-loggers.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
}

type zapLogger struct {
	z *zap.SugaredLogger
}

// NewLogger returns a Logger backed by a production zap.Logger writing to
// stdout, named name.
func NewLogger(name string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return &zapLogger{z: l.Sugar().Named(name)}
}

// NewTestLogger returns a Logger backed by zap's development config, which
// writes human-readable output useful in test failures.
func NewTestLogger(name string) Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	return &zapLogger{z: l.Sugar().Named(name)}
}

func (zl *zapLogger) Debugw(msg string, kv ...interface{}) { zl.z.Debugw(msg, kv...) }
func (zl *zapLogger) Infow(msg string, kv ...interface{})  { zl.z.Infow(msg, kv...) }
func (zl *zapLogger) Warnw(msg string, kv ...interface{})  { zl.z.Warnw(msg, kv...) }
func (zl *zapLogger) Errorw(msg string, kv ...interface{}) { zl.z.Errorw(msg, kv...) }

func (zl *zapLogger) Named(name string) Logger {
	return &zapLogger{z: zl.z.Named(name)}
}
