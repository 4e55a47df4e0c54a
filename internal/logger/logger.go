// Package logger provides the leveled logger used by the huff command.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the printf-style logging surface of the command.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
	Sync() error
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New returns a console logger writing to w. Debug messages are only
// emitted when verbose is set.
func New(w io.Writer, verbose bool) Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(w),
		level,
	)
	return &zapLogger{s: zap.New(core).Sugar()}
}

func (l *zapLogger) Debugf(format string, v ...any) { l.s.Debugf(format, v...) }
func (l *zapLogger) Infof(format string, v ...any)  { l.s.Infof(format, v...) }
func (l *zapLogger) Warnf(format string, v ...any)  { l.s.Warnf(format, v...) }
func (l *zapLogger) Errorf(format string, v ...any) { l.s.Errorf(format, v...) }
func (l *zapLogger) Sync() error                    { return l.s.Sync() }
