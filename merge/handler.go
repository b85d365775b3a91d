package merge

import (
	"errors"

	"github.com/CadixDev/Lorenz-sub001/internal/diagnostic"
	"github.com/CadixDev/Lorenz-sub001/model"
)

// Match holds the right-side candidates found for one left node.
//
// A continuation is keyed by the left node's de-obfuscated name or signature:
// it continues the A to B rename into C. A duplicate is keyed by the left
// node's obfuscated name or signature: the right set describes the same A
// symbol. The loose variants are filled only in Loose mode and never repeat
// the strict candidate. Both are taken out of the right set; when both exist
// the continuation decides the merged name.
//
// For nodes present only in the right set the handler receives a nil left
// node and the right node as Continuation.
type Match[T comparable] struct {
	Continuation      T
	Duplicate         T
	LooseContinuation T
	LooseDuplicate    T
}

// BestContinuation returns the strict continuation, else the loose one.
func (m Match[T]) BestContinuation() (T, bool) {
	return firstSet(m.Continuation, m.LooseContinuation)
}

// BestDuplicate returns the strict duplicate, else the loose one.
func (m Match[T]) BestDuplicate() (T, bool) {
	return firstSet(m.Duplicate, m.LooseDuplicate)
}

// IsEmpty reports whether no right node was found.
func (m Match[T]) IsEmpty() bool {
	_, cont := m.BestContinuation()
	_, dup := m.BestDuplicate()

	return !cont && !dup
}

func (m Match[T]) nodes() []T {
	var zero T

	var out []T

	for _, n := range []T{m.Continuation, m.Duplicate, m.LooseContinuation, m.LooseDuplicate} {
		if n != zero {
			out = append(out, n)
		}
	}

	return out
}

func firstSet[T comparable](candidates ...T) (T, bool) {
	var zero T

	for _, c := range candidates {
		if c != zero {
			return c, true
		}
	}

	return zero, false
}

// Result is what a handler places in the merged tree. A zero Mapping drops
// the node and its children. Continue lists the right nodes whose children
// are merged below Mapping; when empty, the left node's children are merged
// against nothing and pass through.
type Result[T comparable] struct {
	Mapping  T
	Continue []T
}

// NewResult returns a result placing mapping and continuing with the given right nodes.
func NewResult[T comparable](mapping T, continueWith ...T) Result[T] {
	var zero T

	var cont []T

	for _, c := range continueWith {
		if c != zero {
			cont = append(cont, c)
		}
	}

	return Result[T]{Mapping: mapping, Continue: cont}
}

// Handler decides each step of a merge. Left is nil for nodes present only
// in the right set. Handlers for different top-level classes may run
// concurrently when Config.Parallelism is above one.
type Handler interface {
	MergeTopLevelClass(left *model.ClassMapping, right Match[*model.ClassMapping], target *model.MappingSet, ctx *Context) (Result[*model.ClassMapping], error)
	MergeInnerClass(left *model.ClassMapping, right Match[*model.ClassMapping], target *model.ClassMapping, ctx *Context) (Result[*model.ClassMapping], error)
	MergeField(left *model.FieldMapping, right Match[*model.FieldMapping], target *model.ClassMapping, ctx *Context) (*model.FieldMapping, error)
	MergeMethod(left *model.MethodMapping, right Match[*model.MethodMapping], target *model.ClassMapping, ctx *Context) (Result[*model.MethodMapping], error)
	MergeParameter(left, right *model.ParameterMapping, target *model.MethodMapping, ctx *Context) (*model.ParameterMapping, error)
}

var errNoMappings = errors.New("cannot merge two absent mappings")

// DefaultHandler composes names: a continuation supplies the final name, a
// duplicate replaces the left node when there is no continuation, and
// unmatched nodes are copied.
type DefaultHandler struct{}

var _ Handler = DefaultHandler{}

// MergeTopLevelClass implements Handler.
func (h DefaultHandler) MergeTopLevelClass(
	left *model.ClassMapping,
	right Match[*model.ClassMapping],
	target *model.MappingSet,
	_ *Context,
) (Result[*model.ClassMapping], error) {
	if left == nil {
		if right.Continuation == nil {
			return Result[*model.ClassMapping]{}, errNoMappings
		}

		return h.AddRightTopLevelClass(right.Continuation, target), nil
	}

	if cont, ok := right.BestContinuation(); ok {
		return NewResult(target.CreateTopLevelClass(left.ObfuscatedName(), cont.DeobfuscatedName()), cont), nil
	}

	if dup, ok := right.BestDuplicate(); ok {
		return h.AddRightTopLevelClass(dup, target), nil
	}

	return h.AddLeftTopLevelClass(left, target), nil
}

// AddLeftTopLevelClass copies a left class with no right counterpart.
func (DefaultHandler) AddLeftTopLevelClass(left *model.ClassMapping, target *model.MappingSet) Result[*model.ClassMapping] {
	return NewResult(target.CreateTopLevelClass(left.ObfuscatedName(), left.DeobfuscatedName()))
}

// AddRightTopLevelClass copies a right class and continues with its children.
func (DefaultHandler) AddRightTopLevelClass(right *model.ClassMapping, target *model.MappingSet) Result[*model.ClassMapping] {
	return NewResult(target.CreateTopLevelClass(right.ObfuscatedName(), right.DeobfuscatedName()), right)
}

// MergeInnerClass implements Handler.
func (h DefaultHandler) MergeInnerClass(
	left *model.ClassMapping,
	right Match[*model.ClassMapping],
	target *model.ClassMapping,
	_ *Context,
) (Result[*model.ClassMapping], error) {
	if left == nil {
		if right.Continuation == nil {
			return Result[*model.ClassMapping]{}, errNoMappings
		}

		return h.AddRightInnerClass(right.Continuation, target), nil
	}

	if cont, ok := right.BestContinuation(); ok {
		return NewResult(target.CreateInnerClass(left.ObfuscatedName(), cont.DeobfuscatedName()), cont), nil
	}

	if dup, ok := right.BestDuplicate(); ok {
		return h.AddRightInnerClass(dup, target), nil
	}

	return h.AddLeftInnerClass(left, target), nil
}

// AddLeftInnerClass copies a left inner class with no right counterpart.
func (DefaultHandler) AddLeftInnerClass(left *model.ClassMapping, target *model.ClassMapping) Result[*model.ClassMapping] {
	return NewResult(target.CreateInnerClass(left.ObfuscatedName(), left.DeobfuscatedName()))
}

// AddRightInnerClass copies a right inner class and continues with its children.
func (DefaultHandler) AddRightInnerClass(right *model.ClassMapping, target *model.ClassMapping) Result[*model.ClassMapping] {
	return NewResult(target.CreateInnerClass(right.ObfuscatedName(), right.DeobfuscatedName()), right)
}

// MergeField implements Handler.
func (h DefaultHandler) MergeField(
	left *model.FieldMapping,
	right Match[*model.FieldMapping],
	target *model.ClassMapping,
	ctx *Context,
) (*model.FieldMapping, error) {
	if left == nil {
		if right.Continuation == nil {
			return nil, errNoMappings
		}

		return h.AddRightField(right.Continuation, target, ctx), nil
	}

	if cont, ok := right.BestContinuation(); ok {
		return target.CreateField(left.Signature(), cont.DeobfuscatedName()), nil
	}

	if dup, ok := right.BestDuplicate(); ok {
		return h.AddRightField(dup, target, ctx), nil
	}

	return h.AddLeftField(left, target), nil
}

// AddLeftField copies a left field.
func (DefaultHandler) AddLeftField(left *model.FieldMapping, target *model.ClassMapping) *model.FieldMapping {
	return target.CreateField(left.Signature(), left.DeobfuscatedName())
}

// AddRightField copies a right field, translating its type back into the
// left set's obfuscated namespace.
func (DefaultHandler) AddRightField(right *model.FieldMapping, target *model.ClassMapping, ctx *Context) *model.FieldMapping {
	sig := right.Signature()
	if typ, ok := right.Type(); ok {
		sig = model.NewFieldSignature(sig.Name, ctx.LeftReversed().DeobfuscateFieldType(typ))
	}

	return target.CreateField(sig, right.DeobfuscatedName())
}

// MergeMethod implements Handler.
func (h DefaultHandler) MergeMethod(
	left *model.MethodMapping,
	right Match[*model.MethodMapping],
	target *model.ClassMapping,
	ctx *Context,
) (Result[*model.MethodMapping], error) {
	if left == nil {
		if right.Continuation == nil {
			return Result[*model.MethodMapping]{}, errNoMappings
		}

		return h.AddRightMethod(right.Continuation, target, ctx), nil
	}

	if cont, ok := right.BestContinuation(); ok {
		return NewResult(target.CreateMethod(left.Signature(), cont.DeobfuscatedName()), cont), nil
	}

	if dup, ok := right.BestDuplicate(); ok {
		return h.AddRightMethod(dup, target, ctx), nil
	}

	return h.AddLeftMethod(left, target), nil
}

// AddLeftMethod copies a left method.
func (DefaultHandler) AddLeftMethod(left *model.MethodMapping, target *model.ClassMapping) Result[*model.MethodMapping] {
	return NewResult(target.CreateMethod(left.Signature(), left.DeobfuscatedName()))
}

// AddRightMethod copies a right method, translating its descriptor back into
// the left set's obfuscated namespace, and continues with its parameters.
func (DefaultHandler) AddRightMethod(right *model.MethodMapping, target *model.ClassMapping, ctx *Context) Result[*model.MethodMapping] {
	desc := ctx.LeftReversed().DeobfuscateMethodDescriptor(right.Descriptor())
	sig := model.NewMethodSignature(right.ObfuscatedName(), desc)

	return NewResult(target.CreateMethod(sig, right.DeobfuscatedName()), right)
}

// MergeParameter implements Handler. The right name wins when both sides
// name the parameter. Indexes outside the merged descriptor are reported
// and dropped.
func (DefaultHandler) MergeParameter(
	left, right *model.ParameterMapping,
	target *model.MethodMapping,
	ctx *Context,
) (*model.ParameterMapping, error) {
	var index int

	var name string

	switch {
	case right != nil:
		index, name = right.Index(), right.DeobfuscatedName()
		if left != nil {
			index = left.Index()
		}
	case left != nil:
		index, name = left.Index(), left.DeobfuscatedName()
	default:
		return nil, errNoMappings
	}

	p, err := target.CreateParameter(index, name)
	if err != nil {
		ctx.Warn(diagnostic.CodeParameterRange, err.Error(), target.Parent().FullObfuscatedName(), target.Signature().String())
		return nil, nil
	}

	return p, nil
}
