// Package zaplog adapts a zap logger to the key/value Logger interface.
package zaplog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/micromdm/nanoinv/log"
	"github.com/micromdm/nanoinv/log/logkeys"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of each log line.
const TimeLayout = "2006-01-02 15:04:05.000"

// Logger wraps a zap sugared logger.
type Logger struct {
	s *zap.SugaredLogger
}

type config struct {
	paths []string
	debug bool
}

// Option configures the zap logger built by New.
type Option func(*config)

// WithFile appends log lines to path, creating it if needed.
// May be given more than once; "stdout" and "stderr" are also accepted.
func WithFile(path string) Option {
	return func(c *config) {
		c.paths = append(c.paths, path)
	}
}

// WithDebugFlag turns on debug level logging.
func WithDebugFlag(debug bool) Option {
	return func(c *config) {
		c.debug = debug
	}
}

// New builds a text (console encoded) zap logger.
// Each line reads "<time> - <LEVEL> - <message>" followed by any key/values,
// with WARNING spelled out.
// Without WithFile logs go to stderr.
func New(opts ...Option) (*Logger, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.paths) < 1 {
		cfg.paths = []string{"stderr"}
	}
	for _, p := range cfg.paths {
		if err := ensureDir(p); err != nil {
			return nil, fmt.Errorf("prepare log file: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.OutputPaths = cfg.paths
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.Sampling = nil
	zc.DisableCaller = true
	zc.DisableStacktrace = true
	if cfg.debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.MessageKey = logkeys.Message
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	zc.EncoderConfig.EncodeLevel = levelEncoder
	zc.EncoderConfig.ConsoleSeparator = " - "

	z, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return Wrap(z), nil
}

// levelEncoder is CapitalLevelEncoder with WarnLevel spelled WARNING.
func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == zapcore.WarnLevel {
		enc.AppendString("WARNING")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

// Wrap adapts an existing zap logger.
func Wrap(z *zap.Logger) *Logger {
	return &Logger{s: z.Sugar()}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.s.Sync()
}

func (l *Logger) Debug(keyvals ...interface{}) {
	msg, kvs := splitMessage(keyvals)
	l.s.Debugw(msg, kvs...)
}

func (l *Logger) Info(keyvals ...interface{}) {
	msg, kvs := splitMessage(keyvals)
	l.s.Infow(msg, kvs...)
}

func (l *Logger) Warn(keyvals ...interface{}) {
	msg, kvs := splitMessage(keyvals)
	l.s.Warnw(msg, kvs...)
}

func (l *Logger) Error(keyvals ...interface{}) {
	msg, kvs := splitMessage(keyvals)
	l.s.Errorw(msg, kvs...)
}

func (l *Logger) With(keyvals ...interface{}) log.Logger {
	return &Logger{s: l.s.With(normalize(keyvals)...)}
}

// splitMessage pulls the first logkeys.Message value out of keyvals
// to become the zap entry message.
func splitMessage(keyvals []interface{}) (string, []interface{}) {
	keyvals = normalize(keyvals)
	for i := 0; i+1 < len(keyvals); i += 2 {
		if k, ok := keyvals[i].(string); ok && k == logkeys.Message {
			rest := make([]interface{}, 0, len(keyvals)-2)
			rest = append(rest, keyvals[:i]...)
			rest = append(rest, keyvals[i+2:]...)
			return fmt.Sprint(keyvals[i+1]), rest
		}
	}
	return "", keyvals
}

// normalize copies keyvals, pads an odd-length list and stringifies non-string keys.
func normalize(keyvals []interface{}) []interface{} {
	out := make([]interface{}, len(keyvals), len(keyvals)+1)
	copy(out, keyvals)
	if len(out)%2 != 0 {
		out = append(out, "(MISSING)")
	}
	for i := 0; i < len(out); i += 2 {
		if _, ok := out[i].(string); !ok {
			out[i] = fmt.Sprint(out[i])
		}
	}
	return out
}

func ensureDir(path string) error {
	if path == "stdout" || path == "stderr" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
