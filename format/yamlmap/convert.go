package yamlmap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/model"
)

// FromSet builds a document holding every mapping of set. Classes and
// members are sorted by obfuscated name and identity entries are omitted.
func FromSet(set *model.MappingSet) *Document {
	doc := &Document{Version: CurrentVersion}

	for _, c := range set.TopLevelClasses() {
		if c.HasMappings() {
			doc.Classes = append(doc.Classes, fromClass(c))
		}
	}

	return doc
}

func fromClass(c *model.ClassMapping) Class {
	out := Class{Obf: c.ObfuscatedName()}
	if c.HasDeobfuscatedName() {
		out.Deobf = c.DeobfuscatedName()
	}

	for _, f := range c.Fields() {
		if !f.HasDeobfuscatedName() {
			continue
		}

		field := Field{Obf: f.ObfuscatedName(), Deobf: f.DeobfuscatedName()}
		if typ := f.Signature().Type; typ != nil {
			field.Type = typ.String()
		}

		out.Fields = append(out.Fields, field)
	}

	slices.SortStableFunc(out.Fields, func(a, b Field) int {
		return strings.Compare(a.Obf+a.Type, b.Obf+b.Type)
	})

	for _, m := range c.Methods() {
		if !m.HasMappings() {
			continue
		}

		method := Method{Obf: m.ObfuscatedName(), Desc: m.Descriptor().String()}
		if m.HasDeobfuscatedName() {
			method.Deobf = m.DeobfuscatedName()
		}

		for _, p := range m.Parameters() {
			if method.Params == nil {
				method.Params = make(ParamNames)
			}

			method.Params[p.Index()] = p.DeobfuscatedName()
		}

		out.Methods = append(out.Methods, method)
	}

	slices.SortStableFunc(out.Methods, func(a, b Method) int {
		return strings.Compare(a.Obf+a.Desc, b.Obf+b.Desc)
	})

	for _, inner := range c.InnerClasses() {
		if inner.HasMappings() {
			out.Inner = append(out.Inner, fromClass(inner))
		}
	}

	return out
}

// ToSet builds a new mapping set from the document.
func (d *Document) ToSet() (*model.MappingSet, error) {
	set := model.NewMappingSet()
	if err := d.Apply(set); err != nil {
		return nil, err
	}

	return set, nil
}

// Apply validates the document and adds its mappings to set. Nothing is
// added when validation fails.
func (d *Document) Apply(set *model.MappingSet) error {
	if err := Validate(d).Error(); err != nil {
		return fmt.Errorf("invalid mapping document: %w", err)
	}

	for i := range d.Classes {
		c := &d.Classes[i]
		applyClass(c, set.GetOrCreateClassMapping(c.Obf))
	}

	return nil
}

func applyClass(c *Class, into *model.ClassMapping) {
	if c.Deobf != "" {
		into.SetDeobfuscatedName(c.Deobf)
	}

	for _, f := range c.Fields {
		// validated
		sig, _ := model.ParseFieldSignature(f.Obf, f.Type)
		into.GetOrCreateField(sig).SetDeobfuscatedName(f.Deobf)
	}

	for _, m := range c.Methods {
		sig, _ := model.ParseMethodSignature(m.Obf, m.Desc)

		method := into.GetOrCreateMethod(sig)
		if m.Deobf != "" {
			method.SetDeobfuscatedName(m.Deobf)
		}

		for _, i := range m.Params.Indexes() {
			p, _ := method.GetOrCreateParameter(i)
			p.SetDeobfuscatedName(m.Params[i])
		}
	}

	for i := range c.Inner {
		inner := &c.Inner[i]
		applyClass(inner, into.GetOrCreateInnerClass(inner.Obf))
	}
}
