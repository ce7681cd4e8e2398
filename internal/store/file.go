package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/petty/internal/terms"
	"gopkg.in/yaml.v3"
)

// Format names a term document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// document is the on-disk shape:
//
//	[[terms]]
//	term = "WordPress"
//	symbol = "&#174;"
type document struct {
	Terms terms.Mapping `toml:"terms" yaml:"terms"`
}

// Encode renders m in the given format.
func Encode(format Format, m terms.Mapping) ([]byte, error) {
	doc := document{Terms: m.Clone()}
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Decode parses a term document.
func Decode(format Format, data []byte) (terms.Mapping, error) {
	var doc document
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc.Terms.Normalize(), nil
}

// File keeps the mapping in a TOML or YAML document.
type File struct {
	mu     sync.Mutex
	path   string
	format Format
}

// NewFile binds a file store to path. The file need not exist yet.
func NewFile(path string) (*File, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, format: format}, nil
}

func (f *File) Name() string { return "file" }

func (f *File) Close() error { return nil }

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) Load(ctx context.Context) (terms.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return terms.Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read terms (%s): %w", f.path, err)
	}
	m, err := Decode(f.format, data)
	if err != nil {
		return nil, fmt.Errorf("load terms (%s): %w", f.path, err)
	}
	return m, nil
}

// Save replaces the file atomically.
func (f *File) Save(ctx context.Context, m terms.Mapping) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(f.format, m.Normalize())
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create terms dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp terms file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write terms: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close terms: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace terms (%s): %w", f.path, err)
	}
	return nil
}
