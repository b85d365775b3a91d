package yamlmap

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CadixDev/Lorenz-sub001/model"
)

// ErrUnsupportedVersion is returned for documents written by a newer schema.
var ErrUnsupportedVersion = errors.New("unsupported mapping document version")

// LoadFile loads and parses a YAML mapping document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	if doc.Version == "" {
		doc.Version = CurrentVersion
	}

	if doc.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.Version)
	}

	return &doc, nil
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes a Document to the given path.
func WriteFile(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// Read parses a document from r and adds its mappings to into.
func Read(r io.Reader, into *model.MappingSet) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read mapping YAML: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return err
	}

	return doc.Apply(into)
}

// Write renders set as a YAML document to w.
func Write(w io.Writer, set *model.MappingSet) error {
	data, err := Marshal(FromSet(set))
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write mapping YAML: %w", err)
	}

	return nil
}
