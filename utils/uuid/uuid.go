// Package uuid generates audit entry identifiers.
package uuid

import "github.com/google/uuid"

// IDer generates identifiers.
type IDer interface {
	ID() string
}

// IDFunc adapts a plain function to an IDer.
type IDFunc func() string

// ID calls f.
func (f IDFunc) ID() string {
	return f()
}

// Ordered generates version 7 UUIDs, which sort by creation time.
// It falls back to a version 4 UUID if the time based one fails.
var Ordered IDer = IDFunc(func() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
})

// Sequence hands out a fixed list of IDs in order, starting over
// after the last one. An empty Sequence yields empty IDs.
type Sequence struct {
	ids  []string
	next int
}

// NewSequence creates a Sequence of ids.
func NewSequence(ids ...string) *Sequence {
	return &Sequence{ids: ids}
}

func (s *Sequence) ID() string {
	if len(s.ids) < 1 {
		return ""
	}
	id := s.ids[s.next]
	s.next = (s.next + 1) % len(s.ids)
	return id
}
