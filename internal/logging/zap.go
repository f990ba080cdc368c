package logging

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger builds a ZapLogger. When development is true the verbose
// human-readable zap config is used, otherwise the production config.
func NewZapLogger(development bool) (*ZapLogger, error) {
	var base *zap.Logger
	var err error
	if development {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &ZapLogger{l: base.Sugar()}, nil
}

func (z *ZapLogger) Info(_ context.Context, msg string, args ...any) {
	z.l.Infow(msg, args...)
}

func (z *ZapLogger) Warn(_ context.Context, msg string, args ...any) {
	z.l.Warnw(msg, args...)
}

func (z *ZapLogger) Error(_ context.Context, msg string, args ...any) {
	z.l.Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered log entries. Call on shutdown.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
