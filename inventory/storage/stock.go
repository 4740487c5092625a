package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Item is a single item name and quantity.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Stock maps item names to quantities and remembers the order in which
// item names were first inserted. The zero value is ready to use.
type Stock struct {
	names      []string
	quantities map[string]int
}

// NewStock creates a new Stock populated with items in order.
// Repeated names overwrite the earlier quantity but keep its position.
func NewStock(items ...Item) *Stock {
	s := &Stock{}
	for _, item := range items {
		s.Set(item.Name, item.Quantity)
	}
	return s
}

// Get returns the quantity for name and whether it is present.
func (s *Stock) Get(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	qty, ok := s.quantities[name]
	return qty, ok
}

// Set sets the quantity for name, appending name to the order if new.
func (s *Stock) Set(name string, qty int) {
	if s.quantities == nil {
		s.quantities = make(map[string]int)
	}
	if _, ok := s.quantities[name]; !ok {
		s.names = append(s.names, name)
	}
	s.quantities[name] = qty
}

// Delete removes name.
func (s *Stock) Delete(name string) {
	if _, ok := s.quantities[name]; !ok {
		return
	}
	delete(s.quantities, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of items.
func (s *Stock) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Items returns the items in insertion order.
func (s *Stock) Items() []Item {
	if s == nil {
		return nil
	}
	items := make([]Item, 0, len(s.names))
	for _, name := range s.names {
		items = append(items, Item{Name: name, Quantity: s.quantities[name]})
	}
	return items
}

// Map returns a copy of the stock as a plain map.
func (s *Stock) Map() map[string]int {
	m := make(map[string]int, s.Len())
	for _, item := range s.Items() {
		m[item.Name] = item.Quantity
	}
	return m
}

// Clone returns a deep copy of s.
func (s *Stock) Clone() *Stock {
	return NewStock(s.Items()...)
}

// MarshalJSON encodes s as a JSON object with keys in insertion order.
func (s *Stock) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, item := range s.Items() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(item.Name); err != nil {
			return nil, err
		}
		// Encode terminates the key with a newline.
		buf.Truncate(buf.Len() - 1)
		fmt.Fprintf(&buf, ":%d", item.Quantity)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of integer quantities keeping the
// order of the keys in the document. Any existing items are discarded.
func (s *Stock) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, found %v", tok)
	}

	decoded := &Stock{}
	for dec.More() {
		if tok, err = dec.Token(); err != nil {
			return err
		}
		name, _ := tok.(string)
		var qty int
		if err = dec.Decode(&qty); err != nil {
			return fmt.Errorf("quantity for %q: %w", name, err)
		}
		decoded.Set(name, qty)
	}
	if _, err = dec.Token(); err != nil {
		return err
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON object")
	}

	*s = *decoded
	return nil
}
