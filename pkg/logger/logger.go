package logger

import (
	zlog "github.com/hsdfat/go-zlog/logger"
	"go.uber.org/zap"
)

// Log is the global logger instance for the diam-peer project
var Log zlog.LoggerI = zlog.NewLogger()

func init() {
	Log.(*zlog.Logger).SugaredLogger = Log.(*zlog.Logger).SugaredLogger.WithOptions(zap.AddCallerSkip(1))
}

// SetLevel sets the global log level
// Valid levels: "debug", "info", "warn", "error", "fatal"
func SetLevel(level string) {
	zlog.SetLevel(level)
}

// Logger is the leveled logging surface handed to server components.
// Printf-style methods for flow logging, w-style methods for structured
// key/value logging.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Logger
}

// New returns a named component logger backed by the global instance.
// An empty level leaves the global level untouched.
func New(name, level string) Logger {
	if level != "" {
		zlog.SetLevel(level)
	}
	return &componentLogger{
		sl: Log.(*zlog.Logger).SugaredLogger.With("mod", name),
	}
}

type componentLogger struct {
	sl *zap.SugaredLogger
}

func (c *componentLogger) Debug(format string, args ...any) { c.sl.Debugf(format, args...) }
func (c *componentLogger) Info(format string, args ...any)  { c.sl.Infof(format, args...) }
func (c *componentLogger) Warn(format string, args ...any)  { c.sl.Warnf(format, args...) }
func (c *componentLogger) Error(format string, args ...any) { c.sl.Errorf(format, args...) }

func (c *componentLogger) Debugw(msg string, keysAndValues ...any) { c.sl.Debugw(msg, keysAndValues...) }
func (c *componentLogger) Infow(msg string, keysAndValues ...any)  { c.sl.Infow(msg, keysAndValues...) }
func (c *componentLogger) Warnw(msg string, keysAndValues ...any)  { c.sl.Warnw(msg, keysAndValues...) }
func (c *componentLogger) Errorw(msg string, keysAndValues ...any) { c.sl.Errorw(msg, keysAndValues...) }

func (c *componentLogger) With(keysAndValues ...any) Logger {
	return &componentLogger{sl: c.sl.With(keysAndValues...)}
}
