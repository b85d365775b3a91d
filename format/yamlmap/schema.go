package yamlmap

import (
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the document version written by this package.
const CurrentVersion = "1"

// Document is the root of a YAML mapping file.
type Document struct {
	// Version of the document schema.
	Version string `yaml:"version,omitempty"`

	// Classes are the top-level classes, each keyed by its binary name.
	Classes []Class `yaml:"classes"`
}

// Class describes one class and its members. Top-level classes use binary
// names (with package), inner classes their simple name.
type Class struct {
	Obf     string   `yaml:"obf"`
	Deobf   string   `yaml:"deobf,omitempty"`
	Fields  []Field  `yaml:"fields,omitempty"`
	Methods []Method `yaml:"methods,omitempty"`
	Inner   []Class  `yaml:"inner,omitempty"`
}

// Field describes a field rename. Type is an optional field descriptor.
type Field struct {
	Obf   string `yaml:"obf"`
	Type  string `yaml:"type,omitempty"`
	Deobf string `yaml:"deobf"`
}

// Method describes a method rename. Desc is the obfuscated method descriptor.
type Method struct {
	Obf    string     `yaml:"obf"`
	Desc   string     `yaml:"desc"`
	Deobf  string     `yaml:"deobf,omitempty"`
	Params ParamNames `yaml:"params,omitempty"`
}

// ParamNames maps parameter indexes to names.
type ParamNames map[int]string

// UnmarshalYAML accepts either a sequence of names by position or a mapping
// from index to name.
func (p *ParamNames) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string

		if err := node.Decode(&names); err != nil {
			return err
		}

		out := make(ParamNames, len(names))

		for i, name := range names {
			if name != "" {
				out[i] = name
			}
		}

		*p = out

		return nil

	case yaml.MappingNode:
		var byIndex map[int]string

		if err := node.Decode(&byIndex); err != nil {
			return err
		}

		*p = byIndex

		return nil

	default:
		return fmt.Errorf("line %d: expected list or map of parameter names, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes a dense, zero-based set of names as a list and
// anything else as a map.
func (p ParamNames) MarshalYAML() (any, error) {
	indexes := p.Indexes()

	if len(indexes) > 0 && indexes[len(indexes)-1] == len(indexes)-1 {
		names := make([]string, len(indexes))
		for _, i := range indexes {
			names[i] = p[i]
		}

		return names, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, i := range indexes {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)},
			&yaml.Node{Kind: yaml.ScalarNode, Value: p[i]},
		)
	}

	return node, nil
}

// Indexes returns the parameter indexes in ascending order.
func (p ParamNames) Indexes() []int {
	out := make([]int, 0, len(p))
	for i := range p {
		out = append(out, i)
	}

	slices.Sort(out)

	return out
}
