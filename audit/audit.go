// Package audit records human-readable inventory actions.
// The audit log is separate from diagnostic logging.
package audit

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp layout used when rendering entries.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Entry is a single timestamped audit record.
type Entry struct {
	ID      string    `json:"id,omitempty"`
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// String renders the entry as "<time>: <message>".
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Time.Format(TimeLayout), e.Message)
}

// Sink receives audit entries. Implementations only ever append.
type Sink interface {
	Append(e Entry)
}

// Log is an in-memory, append-only Sink.
// The zero value is an empty log ready to use.
type Log struct {
	entries []Entry
}

// NewLog creates a new empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds e to the end of the log.
// Appending to a nil *Log discards e.
func (l *Log) Append(e Entry) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the recorded entries in order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	return append([]Entry(nil), l.entries...)
}

// Lines returns the rendered entries in order.
func (l *Log) Lines() []string {
	if l == nil {
		return []string{}
	}
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, e.String())
	}
	return lines
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
