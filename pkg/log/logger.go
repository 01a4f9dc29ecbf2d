package log

import (
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Warning
	Error
)

// Logger is a named, leveled logger.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})

	// With returns a child logger carrying extra key/value context.
	With(keysAndValues ...interface{}) Logger
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

var (
	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	sink  atomic.Pointer[zapcore.Core]
	root  = zap.New(&sinkCore{})
)

func init() {
	SetSink(os.Stderr)
}

// sinkCore forwards entries to the current sink, so SetSink reaches loggers
// created before it was called. Fields added through With are kept here and
// replayed on every write.
type sinkCore struct {
	fields []zapcore.Field
}

func (c *sinkCore) Enabled(l zapcore.Level) bool {
	return level.Enabled(l)
}

func (c *sinkCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	return &sinkCore{fields: append(merged, fields...)}
}

func (c *sinkCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *sinkCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	return (*sink.Load()).Write(entry, append(all, fields...))
}

func (c *sinkCore) Sync() error {
	return (*sink.Load()).Sync()
}

// New creates a named logger.
func New(name string) Logger {
	return &zapLogger{sugar: root.Named(name).Sugar()}
}

// SetSink redirects the output of every logger, including existing ones.
func SetSink(w io.Writer) {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	sink.Store(&core)
}

// SetLevel sets the verbosity of every logger.
func SetLevel(l Level) {
	switch l {
	case Debug:
		level.SetLevel(zapcore.DebugLevel)
	case Info:
		level.SetLevel(zapcore.InfoLevel)
	case Warning:
		level.SetLevel(zapcore.WarnLevel)
	case Error:
		level.SetLevel(zapcore.ErrorLevel)
	}
}

func (l *zapLogger) Debugf(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *zapLogger) Infof(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *zapLogger) Warningf(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *zapLogger) Errorf(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

func (l *zapLogger) With(keysAndValues ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(keysAndValues...)}
}
