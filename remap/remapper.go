package remap

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
	"github.com/CadixDev/Lorenz-sub001/model"
)

// Option configures a Remapper.
type Option func(*Remapper)

// WithLogger sets the logger used for completion messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Remapper) {
		if l != nil {
			r.log = l
		}
	}
}

// Stats counts the queries a Remapper answered.
type Stats struct {
	Queries       int64
	DirectHits    int64
	InheritedHits int64
	Misses        int64
	Completions   int64
}

// Remapper renames classes, members and descriptors through a mapping set.
// It is safe for concurrent use.
//
// Member queries add a node for an owner class the set does not know yet,
// so that the class can record what it inherits.
type Remapper struct {
	set      *model.MappingSet
	provider model.InheritanceProvider
	log      *slog.Logger

	// mu orders node creation against lookups and completion.
	mu sync.RWMutex

	queries       atomic.Int64
	directHits    atomic.Int64
	inheritedHits atomic.Int64
	misses        atomic.Int64
	completions   atomic.Int64
}

// New returns a remapper over set. provider may be nil, in which case
// nothing is inherited.
func New(set *model.MappingSet, provider model.InheritanceProvider, opts ...Option) *Remapper {
	if provider == nil {
		provider = model.StaticInheritanceProvider(nil)
	}

	r := &Remapper{
		set:      set,
		provider: provider,
		log:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Set returns the underlying mapping set.
func (r *Remapper) Set() *model.MappingSet { return r.set }

// MapClassName returns the de-obfuscated binary name of a class.
func (r *Remapper) MapClassName(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.set.DeobfuscateClassName(name)
}

// MapInnerClassName returns the de-obfuscated simple name of the inner class
// name, or innerName when the class is not mapped.
func (r *Remapper) MapInnerClassName(name, _, innerName string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if innerName == "" {
		return innerName
	}

	if c, ok := r.set.ClassMapping(name); ok && !c.IsTopLevel() {
		return c.DeobfuscatedName()
	}

	return innerName
}

// MapFieldName returns the de-obfuscated name of field name on owner. desc
// may be empty; a malformed desc is treated as empty.
func (r *Remapper) MapFieldName(owner, name, desc string) string {
	sig, err := model.ParseFieldSignature(name, desc)
	if err != nil {
		sig = model.FieldSignature{Name: name}
	}

	class := r.completedClass(owner)

	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queries.Add(1)

	if f, ok := class.Field(sig); ok {
		r.directHits.Add(1)
		return f.DeobfuscatedName()
	}

	if f, ok := class.ResolveField(sig); ok {
		if f.Parent() == class {
			r.directHits.Add(1)
		} else {
			r.inheritedHits.Add(1)
		}

		return f.DeobfuscatedName()
	}

	r.misses.Add(1)

	return name
}

// MapMethodName returns the de-obfuscated name of method name with
// descriptor desc on owner. Names with a malformed descriptor are returned
// unchanged.
func (r *Remapper) MapMethodName(owner, name, desc string) string {
	sig, err := model.ParseMethodSignature(name, desc)
	if err != nil {
		r.log.Debug("malformed method descriptor", "owner", owner, "name", name, "desc", desc, "error", err)
		r.queries.Add(1)
		r.misses.Add(1)

		return name
	}

	class := r.completedClass(owner)

	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queries.Add(1)

	if m, ok := class.Method(sig); ok {
		r.directHits.Add(1)
		return m.DeobfuscatedName()
	}

	if m, ok := class.ResolveMethod(sig); ok {
		r.inheritedHits.Add(1)
		return m.DeobfuscatedName()
	}

	r.misses.Add(1)

	return name
}

// MapDescriptor rewrites a field descriptor into de-obfuscated names.
// Malformed descriptors are returned unchanged.
func (r *Remapper) MapDescriptor(desc string) string {
	typ, err := descriptor.ParseFieldType(desc)
	if err != nil {
		return desc
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.set.DeobfuscateFieldType(typ).String()
}

// MapMethodDescriptor rewrites a method descriptor into de-obfuscated names.
// Malformed descriptors are returned unchanged.
func (r *Remapper) MapMethodDescriptor(desc string) string {
	d, err := descriptor.ParseMethodDescriptor(desc)
	if err != nil {
		return desc
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.set.DeobfuscateMethodDescriptor(d).String()
}

// Stats returns a snapshot of the query counters.
func (r *Remapper) Stats() Stats {
	return Stats{
		Queries:       r.queries.Load(),
		DirectHits:    r.directHits.Load(),
		InheritedHits: r.inheritedHits.Load(),
		Misses:        r.misses.Load(),
		Completions:   r.completions.Load(),
	}
}

// completedClass returns the node for owner, creating it when needed, with
// its inherited members recorded.
func (r *Remapper) completedClass(owner string) *model.ClassMapping {
	r.mu.RLock()
	class, ok := r.set.ClassMapping(owner)
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		class = r.set.GetOrCreateClassMapping(owner)
		r.mu.Unlock()
	}

	if class.IsComplete() {
		return class
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if class.Complete(r.provider) {
		r.completions.Add(1)
		r.log.Debug("completed class", "class", owner)
	}

	return class
}
