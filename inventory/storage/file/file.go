// Package file implements a single-file inventory storage backend.
// Stock is written as an indented JSON object, or as an XML property
// list when the file name ends in ".plist".
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/groob/plist"
	"github.com/micromdm/nanoinv/inventory/storage"
)

// Indent is the per-level indentation of saved files.
const Indent = "    "

// File is an inventory storage backend backed by a single file.
type File struct {
	path  string
	plist bool
}

// New creates a new file storage backend for path.
func New(path string) *File {
	return &File{
		path:  path,
		plist: strings.EqualFold(filepath.Ext(path), ".plist"),
	}
}

// Save overwrites the file with stock.
func (s *File) Save(_ context.Context, stock *storage.Stock) (err error) {
	raw, err := s.marshal(stock)
	if err != nil {
		return fmt.Errorf("marshal stock: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	_, err = f.Write(raw)
	return err
}

// Load reads and decodes the file.
func (s *File) Load(_ context.Context) (*storage.Stock, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, s.path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	stock, err := s.unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrMalformed, s.path, err)
	}
	return stock, nil
}

func (s *File) marshal(stock *storage.Stock) ([]byte, error) {
	if stock == nil {
		stock = &storage.Stock{}
	}
	if s.plist {
		return plist.MarshalIndent(stock.Map(), Indent)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(stock); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s *File) unmarshal(raw []byte) (*storage.Stock, error) {
	stock := &storage.Stock{}
	if !s.plist {
		if err := json.Unmarshal(raw, stock); err != nil {
			return nil, err
		}
		return stock, nil
	}

	// property list dictionaries are unordered; load them sorted by name.
	var m map[string]int
	if err := plist.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stock.Set(name, m[name])
	}
	return stock, nil
}
