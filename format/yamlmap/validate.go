package yamlmap

import (
	"fmt"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/internal/common"
	"github.com/CadixDev/Lorenz-sub001/internal/diagnostic"
)

// Validation codes.
const (
	CodeMissingName      = "missing_name"
	CodeDuplicateClass   = "duplicate_class"
	CodeInvalidInnerName = "invalid_inner_name"
	CodeBadDescriptor    = "bad_descriptor"
	CodeParameterIndex   = "parameter_index"
)

// Validate checks a document for structural problems. Errors make Apply fail.
func Validate(doc *Document) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("document_is_nil", "mapping document is nil", "", "")
		return res
	}

	seen := make(map[string]bool, len(doc.Classes))

	for i := range doc.Classes {
		c := &doc.Classes[i]

		if seen[c.Obf] {
			res.AddError(CodeDuplicateClass, fmt.Sprintf("class %q listed twice", c.Obf), c.Obf, "")
		}

		seen[c.Obf] = true

		validateClass(res, c, c.Obf, true)
	}

	return res
}

func validateClass(res *diagnostic.Diagnostics, c *Class, fullName string, topLevel bool) {
	if c.Obf == "" {
		res.AddError(CodeMissingName, "class without obfuscated name", fullName, "")
		return
	}

	if !topLevel && strings.ContainsAny(c.Obf, common.InnerSeparator+common.PackageSeparator) {
		res.AddError(CodeInvalidInnerName, fmt.Sprintf("inner class name %q must be a simple name", c.Obf), fullName, "")
	}

	for _, f := range c.Fields {
		if f.Obf == "" {
			res.AddError(CodeMissingName, "field without obfuscated name", fullName, "")
			continue
		}

		if f.Type == "" {
			continue
		}

		if _, err := descriptor.ParseFieldType(f.Type); err != nil {
			res.AddError(CodeBadDescriptor, err.Error(), fullName, f.Obf)
		}
	}

	for _, m := range c.Methods {
		if m.Obf == "" {
			res.AddError(CodeMissingName, "method without obfuscated name", fullName, "")
			continue
		}

		desc, err := descriptor.ParseMethodDescriptor(m.Desc)
		if err != nil {
			res.AddError(CodeBadDescriptor, err.Error(), fullName, m.Obf)
			continue
		}

		for _, i := range m.Params.Indexes() {
			if i < 0 || i >= desc.Arity() {
				res.AddError(CodeParameterIndex,
					fmt.Sprintf("parameter %d outside of %d parameters", i, desc.Arity()),
					fullName, m.Obf+m.Desc)
			}
		}
	}

	for i := range c.Inner {
		inner := &c.Inner[i]
		validateClass(res, inner, common.JoinInner(fullName, inner.Obf), false)
	}
}
