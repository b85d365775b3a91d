package tsrg

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/model"
)

// Writer writes TSRG mappings. Output is deterministic: classes, fields and
// methods are ordered by obfuscated name, and entries without a rename are
// left out.
type Writer struct {
	w io.Writer
}

// NewWriter returns a writer to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes set. The set is not modified.
func (w *Writer) Write(set *model.MappingSet) error {
	bw := bufio.NewWriter(w.w)

	for _, class := range sortedClasses(set.TopLevelClasses()) {
		if err := writeClass(bw, class); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write TSRG output: %w", err)
	}

	return nil
}

// WriteString renders set as TSRG text.
func WriteString(set *model.MappingSet) (string, error) {
	var sb strings.Builder
	if err := NewWriter(&sb).Write(set); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func writeClass(w *bufio.Writer, class *model.ClassMapping) error {
	fields := sortedFields(class.Fields())
	methods := sortedMethods(class.Methods())

	if class.HasDeobfuscatedName() || len(fields) > 0 || len(methods) > 0 {
		if _, err := fmt.Fprintf(w, "%s %s\n", class.FullObfuscatedName(), class.FullDeobfuscatedName()); err != nil {
			return fmt.Errorf("failed to write class %s: %w", class.FullObfuscatedName(), err)
		}
	}

	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "\t%s %s\n", f.ObfuscatedName(), f.DeobfuscatedName()); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.FullObfuscatedName(), err)
		}
	}

	for _, m := range methods {
		if _, err := fmt.Fprintf(w, "\t%s %s %s\n", m.ObfuscatedName(), m.Descriptor(), m.DeobfuscatedName()); err != nil {
			return fmt.Errorf("failed to write method %s: %w", m.FullObfuscatedName(), err)
		}
	}

	for _, inner := range sortedClasses(class.InnerClasses()) {
		if err := writeClass(w, inner); err != nil {
			return err
		}
	}

	return nil
}

// sortedClasses keeps classes with renames, shorter names first.
func sortedClasses(classes []*model.ClassMapping) []*model.ClassMapping {
	out := slices.DeleteFunc(slices.Clone(classes), func(c *model.ClassMapping) bool {
		return !c.HasMappings()
	})

	slices.SortStableFunc(out, func(a, b *model.ClassMapping) int {
		an, bn := a.FullObfuscatedName(), b.FullObfuscatedName()
		return cmp.Or(cmp.Compare(len(an), len(bn)), strings.Compare(an, bn))
	})

	return out
}

// sortedFields keeps one renamed field per name, as TSRG fields are untyped.
func sortedFields(fields []*model.FieldMapping) []*model.FieldMapping {
	seen := make(map[string]bool, len(fields))

	var out []*model.FieldMapping

	for _, f := range fields {
		if !f.HasDeobfuscatedName() || seen[f.ObfuscatedName()] {
			continue
		}

		seen[f.ObfuscatedName()] = true
		out = append(out, f)
	}

	slices.SortStableFunc(out, func(a, b *model.FieldMapping) int {
		return strings.Compare(a.ObfuscatedName(), b.ObfuscatedName())
	})

	return out
}

func sortedMethods(methods []*model.MethodMapping) []*model.MethodMapping {
	out := slices.DeleteFunc(slices.Clone(methods), func(m *model.MethodMapping) bool {
		return !m.HasDeobfuscatedName()
	})

	slices.SortStableFunc(out, func(a, b *model.MethodMapping) int {
		return cmp.Or(
			strings.Compare(a.ObfuscatedName(), b.ObfuscatedName()),
			strings.Compare(a.Descriptor().String(), b.Descriptor().String()),
		)
	})

	return out
}
