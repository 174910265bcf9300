package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/dobrovols/transformctl/pkg/options"
)

// Format identifies the syntax of a configuration document.
type Format string

const (
	FormatYAML Format = "yaml"
	// FormatJSON covers plain JSON and JSON with comments.
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates a document extension the loader cannot decode.
var ErrUnknownFormat = errors.New("unknown configuration document format")

// Document is a decoded configuration file.
type Document struct {
	Path   string
	Format Format
	Config options.ExternalConfig
	// Normalized is the document re-encoded as plain JSON, used for schema validation.
	Normalized []byte
}

// Loader parses configuration documents into external transform configuration.
type Loader struct {
	knownFields bool
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithKnownFields rejects document keys that do not map to a configuration field.
// By default unknown keys are ignored, matching the permissive resolution contract.
func WithKnownFields() LoaderOption {
	return func(l *Loader) { l.knownFields = true }
}

// NewLoader constructs a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes the document at path. The format follows the file extension;
// unrecognised extensions are decoded as YAML, which also accepts plain JSON.
func (l *Loader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	format := FormatYAML
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		format = FormatJSON
	}

	doc, err := l.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Decode parses raw document bytes in the given format.
func (l *Loader) Decode(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatYAML:
		return l.decodeYAML(data)
	case FormatJSON:
		return l.decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func (l *Loader) decodeYAML(data []byte) (*Document, error) {
	doc := &Document{Format: FormatYAML}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(l.knownFields)
	if err := decoder.Decode(&doc.Config); err != nil && err != io.EOF {
		return nil, err
	}

	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	normalized, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("normalize yaml document: %w", err)
	}
	doc.Normalized = normalized
	return doc, nil
}

func (l *Loader) decodeJSON(data []byte) (*Document, error) {
	normalized := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(normalized)) == 0 {
		normalized = []byte("{}")
	}

	doc := &Document{Format: FormatJSON, Normalized: normalized}
	decoder := json.NewDecoder(bytes.NewReader(normalized))
	if l.knownFields {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&doc.Config); err != nil {
		return nil, err
	}
	return doc, nil
}
