// Package log defines a leveled, key/value structured logger.
package log

// Logger logs key/value pairs at a level.
// By convention the message is passed as the value of the logkeys.Message key.
type Logger interface {
	Debug(keyvals ...interface{})
	Info(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})

	// With returns a new Logger that includes keyvals in every entry.
	With(keyvals ...interface{}) Logger
}

type nopLogger struct{}

func (nopLogger) Debug(...interface{})         {}
func (nopLogger) Info(...interface{})          {}
func (nopLogger) Warn(...interface{})          {}
func (nopLogger) Error(...interface{})         {}
func (l nopLogger) With(...interface{}) Logger { return l }

// NopLogger discards all logs.
var NopLogger Logger = nopLogger{}
