package classindex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/model"
)

// ErrDuplicateClass is returned when a class is listed twice.
var ErrDuplicateClass = errors.New("class listed twice")

// ErrMissingName is returned for entries without a class name.
var ErrMissingName = errors.New("class entry without name")

// ErrMalformedMethod is returned for method entries without a descriptor.
var ErrMalformedMethod = errors.New("method entry without descriptor")

// File is the YAML layout of an index.
type File struct {
	Classes []Entry `yaml:"classes"`
}

// Entry describes one class.
type Entry struct {
	Name       string            `yaml:"name"`
	Super      string            `yaml:"super,omitempty"`
	Interfaces []string          `yaml:"interfaces,omitempty"`
	Fields     map[string]string `yaml:"fields,omitempty"`
	// Methods lists declared methods as name followed by descriptor,
	// e.g. "get()Ljava/lang/Integer;".
	Methods []string `yaml:"methods,omitempty"`
}

// ClassEntry is an indexed class with parsed field types.
type ClassEntry struct {
	Info   model.ClassInfo
	Fields map[string]descriptor.FieldType
}

// Index holds classes by full obfuscated binary name. It is read-only once
// built and safe for concurrent use.
type Index struct {
	classes map[string]*ClassEntry
}

var (
	_ model.InheritanceProvider = (*Index)(nil)
	_ model.FieldTypeProvider   = (*Index)(nil)
)

// Load reads an index from the given path.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class index %s: %w", path, err)
	}

	return Parse(data)
}

// Read reads an index from r.
func Read(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read class index: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML data into an index.
func Parse(data []byte) (*Index, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse class index YAML: %w", err)
	}

	return New(f.Classes...)
}

// New builds an index from entries, parsing every field descriptor.
func New(entries ...Entry) (*Index, error) {
	idx := &Index{classes: make(map[string]*ClassEntry, len(entries))}

	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMissingName)
		}

		if _, ok := idx.classes[e.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, e.Name)
		}

		ce := &ClassEntry{
			Info: model.ClassInfo{
				Name:       e.Name,
				SuperName:  e.Super,
				Interfaces: slices.Clone(e.Interfaces),
			},
			Fields: make(map[string]descriptor.FieldType, len(e.Fields)),
		}

		for name, raw := range e.Fields {
			typ, err := descriptor.ParseFieldType(raw)
			if err != nil {
				return nil, fmt.Errorf("class %s field %s: %w", e.Name, name, err)
			}

			ce.Fields[name] = typ
		}

		for _, raw := range e.Methods {
			sig, err := parseMethod(raw)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", e.Name, err)
			}

			ce.Info.Methods = append(ce.Info.Methods, sig)
		}

		idx.classes[e.Name] = ce
	}

	return idx, nil
}

func parseMethod(raw string) (model.MethodSignature, error) {
	open := strings.IndexByte(raw, '(')
	if open <= 0 {
		return model.MethodSignature{}, fmt.Errorf("%w: method %q", ErrMalformedMethod, raw)
	}

	return model.ParseMethodSignature(raw[:open], raw[open:])
}

// Len returns the number of indexed classes.
func (idx *Index) Len() int { return len(idx.classes) }

// Class returns the entry for name.
func (idx *Index) Class(name string) (*ClassEntry, bool) {
	ce, ok := idx.classes[name]
	return ce, ok
}

// Names returns every indexed class name, sorted.
func (idx *Index) Names() []string {
	out := make([]string, 0, len(idx.classes))
	for name := range idx.classes {
		out = append(out, name)
	}

	slices.Sort(out)

	return out
}

// ProvideInheritance implements model.InheritanceProvider.
func (idx *Index) ProvideInheritance(className string) (model.ClassInfo, bool) {
	ce, ok := idx.classes[className]
	if !ok {
		return model.ClassInfo{}, false
	}

	return ce.Info, true
}

// ProvideFieldType implements model.FieldTypeProvider. The field is looked
// up on its owning class only; inherited fields are not searched.
func (idx *Index) ProvideFieldType(field *model.FieldMapping) (descriptor.FieldType, bool) {
	ce, ok := idx.classes[field.Parent().FullObfuscatedName()]
	if !ok {
		return nil, false
	}

	typ, ok := ce.Fields[field.ObfuscatedName()]

	return typ, ok
}
