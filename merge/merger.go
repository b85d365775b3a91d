package merge

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CadixDev/Lorenz-sub001/internal/common"
	"github.com/CadixDev/Lorenz-sub001/internal/diagnostic"
	"github.com/CadixDev/Lorenz-sub001/internal/match"
	"github.com/CadixDev/Lorenz-sub001/model"
)

// Merger merges a left and a right set. One Merger performs one merge; its
// Context and Report describe that merge.
type Merger struct {
	left    *model.MappingSet
	right   *model.MappingSet
	cfg     Config
	handler Handler
	ctx     *Context
	log     *slog.Logger
}

// New validates cfg and returns a merger for left (A to B) and right (B to C).
func New(left, right *model.MappingSet, cfg Config) (*Merger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid merge configuration: %w", err)
	}

	return &Merger{
		left:    left,
		right:   right,
		cfg:     cfg,
		handler: cfg.Handler,
		ctx:     newContext(left, right, cfg),
		log:     cfg.logger(),
	}, nil
}

// Merge composes left and right into a new set using cfg.
func Merge(left, right *model.MappingSet, cfg Config) (*model.MappingSet, *Report, error) {
	m, err := New(left, right, cfg)
	if err != nil {
		return nil, nil, err
	}

	out, err := m.Merge()
	if err != nil {
		return nil, m.Report(), err
	}

	return out, m.Report(), nil
}

// Context returns the context shared with the handler.
func (m *Merger) Context() *Context { return m.ctx }

// Report summarises the work done so far.
func (m *Merger) Report() *Report { return m.ctx.report() }

// Merge composes the two sets into a new set.
func (m *Merger) Merge() (*model.MappingSet, error) {
	return m.MergeInto(model.NewMappingSet())
}

// MergeInto composes the two sets into target and returns it. Neither input
// is modified. With Parallelism above one, top-level classes are merged by a
// bounded pool of goroutines; MergeInto returns once all of them finished,
// with the first handler error if any.
func (m *Merger) MergeInto(target *model.MappingSet) (*model.MappingSet, error) {
	start := time.Now()
	tasks := m.planTopLevel()

	m.log.Info("merge started",
		"left_classes", m.left.Len(),
		"right_classes", m.right.Len(),
		"tasks", len(tasks),
		"parallelism", m.cfg.Parallelism,
		"field_mode", m.cfg.FieldMode.String(),
		"method_mode", m.cfg.MethodMode.String())

	var g errgroup.Group

	g.SetLimit(m.cfg.Parallelism)

	for _, task := range tasks {
		g.Go(func() error {
			_, err := m.mergeTopLevel(task.left, task.match, target)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		m.log.Error("merge failed", "error", err)
		return nil, err
	}

	rep := m.ctx.report()
	m.log.Info("merge finished",
		"classes", rep.Classes,
		"composed", rep.Composed,
		"left_only", rep.LeftOnly,
		"right_only", rep.RightOnly,
		"dropped", rep.Dropped,
		"warnings", len(rep.Diagnostics.Warnings),
		"duration", time.Since(start))

	return target, nil
}

// MergeTopLevelClass merges a single pair of top-level classes into target.
// A right class with the same obfuscated name as left is treated as a
// duplicate, any other as a continuation. Either side may be nil.
func (m *Merger) MergeTopLevelClass(left, right *model.ClassMapping, target *model.MappingSet) (*model.ClassMapping, error) {
	match := pairClass(left, right)
	return m.mergeTopLevel(left, match, target)
}

// MergeInnerClass merges a single pair of inner classes below target.
func (m *Merger) MergeInnerClass(left, right *model.ClassMapping, target *model.ClassMapping) (*model.ClassMapping, error) {
	match := pairClass(left, right)
	return m.mergeInner(left, match, target)
}

// MergeField merges a single pair of fields into target.
func (m *Merger) MergeField(left, right *model.FieldMapping, target *model.ClassMapping) (*model.FieldMapping, error) {
	var match Match[*model.FieldMapping]

	switch {
	case left != nil && right != nil && left.ObfuscatedName() == right.ObfuscatedName():
		match.Duplicate = right
	default:
		match.Continuation = right
	}

	return m.mergeField(left, match, target)
}

// MergeMethod merges a single pair of methods into target.
func (m *Merger) MergeMethod(left, right *model.MethodMapping, target *model.ClassMapping) (*model.MethodMapping, error) {
	var match Match[*model.MethodMapping]

	switch {
	case left != nil && right != nil && left.Signature().Equal(right.Signature()):
		match.Duplicate = right
	default:
		match.Continuation = right
	}

	return m.mergeMethod(left, match, target)
}

// MergeParameter merges a single pair of parameters into target.
func (m *Merger) MergeParameter(left, right *model.ParameterMapping, target *model.MethodMapping) (*model.ParameterMapping, error) {
	return m.handler.MergeParameter(left, right, target, m.ctx)
}

func pairClass(left, right *model.ClassMapping) Match[*model.ClassMapping] {
	if left != nil && right != nil && left.ObfuscatedName() == right.ObfuscatedName() {
		return Match[*model.ClassMapping]{Duplicate: right}
	}

	return Match[*model.ClassMapping]{Continuation: right}
}

type topLevelTask struct {
	left  *model.ClassMapping
	match Match[*model.ClassMapping]
}

// planTopLevel pairs every left class with its right candidates and appends
// the right classes no left class consumed.
func (m *Merger) planTopLevel() []topLevelTask {
	consumed := make(map[*model.ClassMapping]bool)

	var tasks []topLevelTask

	for _, left := range m.left.TopLevelClasses() {
		match := classMatch(left, m.right.TopLevelClass)
		for _, n := range match.nodes() {
			consumed[n] = true
		}

		tasks = append(tasks, topLevelTask{left: left, match: match})
	}

	for _, right := range m.right.TopLevelClasses() {
		if !consumed[right] {
			tasks = append(tasks, topLevelTask{match: Match[*model.ClassMapping]{Continuation: right}})
		}
	}

	return tasks
}

func classMatch(left *model.ClassMapping, lookup func(string) (*model.ClassMapping, bool)) Match[*model.ClassMapping] {
	var match Match[*model.ClassMapping]

	match.Continuation, _ = lookup(left.DeobfuscatedName())
	match.Duplicate, _ = lookup(left.ObfuscatedName())

	return match
}

func (m *Merger) mergeTopLevel(left *model.ClassMapping, match Match[*model.ClassMapping], target *model.MappingSet) (*model.ClassMapping, error) {
	name := classNameOf(left, match)

	res, err := m.handler.MergeTopLevelClass(left, match, target, m.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to merge class %s: %w", name, err)
	}

	if left == nil {
		m.ctx.Info(diagnostic.CodeRightOnly, "class only present in the right set", name, "")
	}

	return m.emitClass(left, res, name)
}

func (m *Merger) mergeInner(left *model.ClassMapping, match Match[*model.ClassMapping], target *model.ClassMapping) (*model.ClassMapping, error) {
	name := classNameOf(left, match)

	res, err := m.handler.MergeInnerClass(left, match, target, m.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to merge inner class %s: %w", name, err)
	}

	return m.emitClass(left, res, name)
}

func (m *Merger) emitClass(left *model.ClassMapping, res Result[*model.ClassMapping], name string) (*model.ClassMapping, error) {
	if res.Mapping == nil {
		m.drop(name, "")
		return nil, nil
	}

	m.ctx.stats.classes.Add(1)

	if len(res.Continue) == 0 {
		return res.Mapping, m.mergeClass(left, nil, res.Mapping)
	}

	for _, right := range res.Continue {
		if err := m.mergeClass(left, right, res.Mapping); err != nil {
			return nil, err
		}
	}

	return res.Mapping, nil
}

func classNameOf(left *model.ClassMapping, match Match[*model.ClassMapping]) string {
	if left != nil {
		return left.FullObfuscatedName()
	}

	for _, n := range match.nodes() {
		return n.FullObfuscatedName()
	}

	return ""
}

// mergeClass merges the children of left and right below target. Either
// side may be nil.
func (m *Merger) mergeClass(left, right, target *model.ClassMapping) error {
	if err := m.mergeInnerClasses(left, right, target); err != nil {
		return err
	}

	if err := m.mergeFields(left, right, target); err != nil {
		return err
	}

	return m.mergeMethods(left, right, target)
}

func (m *Merger) mergeInnerClasses(left, right, target *model.ClassMapping) error {
	consumed := make(map[*model.ClassMapping]bool)

	if left != nil {
		for _, inner := range left.InnerClasses() {
			var found Match[*model.ClassMapping]
			if right != nil {
				found = classMatch(inner, right.InnerClass)
			}

			for _, n := range found.nodes() {
				consumed[n] = true
			}

			if _, err := m.mergeInner(inner, found, target); err != nil {
				return err
			}
		}
	}

	if right == nil {
		return nil
	}

	for _, inner := range right.InnerClasses() {
		if consumed[inner] {
			continue
		}

		if _, err := m.mergeInner(nil, Match[*model.ClassMapping]{Continuation: inner}, target); err != nil {
			return err
		}
	}

	return nil
}

func (m *Merger) mergeFields(left, right, target *model.ClassMapping) error {
	consumed := make(map[*model.FieldMapping]bool)

	if left != nil {
		for _, field := range left.Fields() {
			var found Match[*model.FieldMapping]
			if right != nil {
				found = m.fieldMatch(field, right)
				if found.IsEmpty() {
					m.suggestField(field, right)
				}
			}

			for _, n := range found.nodes() {
				consumed[n] = true
			}

			if _, err := m.mergeField(field, found, target); err != nil {
				return err
			}
		}
	}

	if right == nil {
		return nil
	}

	for _, field := range right.Fields() {
		if consumed[field] {
			continue
		}

		if _, err := m.mergeField(nil, Match[*model.FieldMapping]{Continuation: field}, target); err != nil {
			return err
		}
	}

	return nil
}

func (m *Merger) fieldMatch(left *model.FieldMapping, right *model.ClassMapping) Match[*model.FieldMapping] {
	var match Match[*model.FieldMapping]

	match.Continuation, _ = right.Field(left.DeobfuscatedSignature())
	match.Duplicate, _ = right.Field(left.Signature())

	if m.cfg.FieldMode == Loose {
		class, member := right.FullObfuscatedName(), left.Signature().String()
		describe := func(f *model.FieldMapping) string { return f.Signature().String() }

		match.LooseContinuation = pickLoose(m, without(right.FieldsNamed(left.DeobfuscatedName()), match.Continuation), describe, class, member)
		match.LooseDuplicate = pickLoose(m, without(right.FieldsNamed(left.ObfuscatedName()), match.Duplicate), describe, class, member)
	}

	return match
}

func (m *Merger) mergeField(left *model.FieldMapping, match Match[*model.FieldMapping], target *model.ClassMapping) (*model.FieldMapping, error) {
	f, err := m.handler.MergeField(left, match, target, m.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to merge field %s: %w", memberNameOf(left, match, (*model.FieldMapping).FullObfuscatedName), err)
	}

	if f == nil {
		m.drop(target.FullObfuscatedName(), memberNameOf(left, match, (*model.FieldMapping).ObfuscatedName))
		return nil, nil
	}

	m.countMember(left != nil, match.IsEmpty())

	return f, nil
}

func (m *Merger) mergeMethods(left, right, target *model.ClassMapping) error {
	consumed := make(map[*model.MethodMapping]bool)

	if left != nil {
		for _, method := range left.Methods() {
			var found Match[*model.MethodMapping]
			if right != nil {
				found = m.methodMatch(method, right)
				if found.IsEmpty() {
					m.suggestMethod(method, right)
				}
			}

			for _, n := range found.nodes() {
				consumed[n] = true
			}

			if _, err := m.mergeMethod(method, found, target); err != nil {
				return err
			}
		}
	}

	if right == nil {
		return nil
	}

	for _, method := range right.Methods() {
		if consumed[method] {
			continue
		}

		if _, err := m.mergeMethod(nil, Match[*model.MethodMapping]{Continuation: method}, target); err != nil {
			return err
		}
	}

	return nil
}

func (m *Merger) methodMatch(left *model.MethodMapping, right *model.ClassMapping) Match[*model.MethodMapping] {
	var match Match[*model.MethodMapping]

	deobfSig := left.DeobfuscatedSignature()
	match.Continuation, _ = right.Method(deobfSig)
	match.Duplicate, _ = right.Method(left.Signature())

	if m.cfg.MethodMode == Loose {
		arity := left.Descriptor().Arity()
		candidates := common.Filter(right.MethodsNamed(deobfSig.Name), func(c *model.MethodMapping) bool {
			return c.Descriptor().Arity() == arity
		})

		match.LooseContinuation = pickLoose(m, without(candidates, match.Continuation),
			func(c *model.MethodMapping) string { return c.Signature().String() },
			right.FullObfuscatedName(), left.Signature().String())

		// the obfuscated name paired with the de-obfuscated descriptor
		dup, _ := right.Method(model.NewMethodSignature(left.ObfuscatedName(), deobfSig.Descriptor))
		if dup != match.Duplicate {
			match.LooseDuplicate = dup
		}
	}

	return match
}

func (m *Merger) mergeMethod(left *model.MethodMapping, match Match[*model.MethodMapping], target *model.ClassMapping) (*model.MethodMapping, error) {
	res, err := m.handler.MergeMethod(left, match, target, m.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to merge method %s: %w", memberNameOf(left, match, (*model.MethodMapping).FullObfuscatedName), err)
	}

	if res.Mapping == nil {
		m.drop(target.FullObfuscatedName(), memberNameOf(left, match, func(mm *model.MethodMapping) string { return mm.Signature().String() }))
		return nil, nil
	}

	m.countMember(left != nil, match.IsEmpty())

	if len(res.Continue) == 0 {
		return res.Mapping, m.mergeParameters(left, nil, res.Mapping)
	}

	for _, right := range res.Continue {
		if err := m.mergeParameters(left, right, res.Mapping); err != nil {
			return nil, err
		}
	}

	return res.Mapping, nil
}

func (m *Merger) mergeParameters(left, right, target *model.MethodMapping) error {
	seen := make(map[int]bool)

	if left != nil {
		for _, lp := range left.Parameters() {
			var rp *model.ParameterMapping
			if right != nil {
				rp, _ = right.Parameter(lp.Index())
			}

			if _, err := m.handler.MergeParameter(lp, rp, target, m.ctx); err != nil {
				return fmt.Errorf("failed to merge parameter %d of %s: %w", lp.Index(), target.FullObfuscatedName(), err)
			}

			seen[lp.Index()] = true
		}
	}

	if right == nil {
		return nil
	}

	for _, rp := range right.Parameters() {
		if seen[rp.Index()] {
			continue
		}

		if _, err := m.handler.MergeParameter(nil, rp, target, m.ctx); err != nil {
			return fmt.Errorf("failed to merge parameter %d of %s: %w", rp.Index(), target.FullObfuscatedName(), err)
		}
	}

	return nil
}

func (m *Merger) countMember(hasLeft, unmatched bool) {
	switch {
	case !hasLeft:
		m.ctx.stats.rightOnly.Add(1)
	case unmatched:
		m.ctx.stats.leftOnly.Add(1)
	default:
		m.ctx.stats.composed.Add(1)
	}
}

func (m *Merger) drop(class, member string) {
	m.ctx.stats.dropped.Add(1)
	m.ctx.Info(diagnostic.CodeDropped, "mapping dropped by merge handler", class, member)
}

func memberNameOf[T comparable](left T, match Match[T], name func(T) string) string {
	var zero T
	if left != zero {
		return name(left)
	}

	for _, n := range match.nodes() {
		return name(n)
	}

	return ""
}

// without returns candidates minus exclude.
func without[T comparable](candidates []T, exclude T) []T {
	return common.Filter(candidates, func(c T) bool { return c != exclude })
}

// pickLoose returns the first declared candidate, warning when several qualify.
func pickLoose[T comparable](m *Merger, candidates []T, describe func(T) string, class, member string) T {
	first, ok := common.First(candidates)
	if !ok || !common.IsMultiple(candidates) {
		return first
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, describe(c))
	}

	m.ctx.Warn(diagnostic.CodeLooseAmbiguous,
		fmt.Sprintf("%d right-side candidates, using the first declared", len(candidates)),
		class, member, names...)
	m.log.Debug("ambiguous loose match", "class", class, "member", member, "candidates", names)

	return first
}

// Limits for the near-miss suggestions attached to unmatched members.
const (
	suggestThreshold = 0.6
	maxSuggestions   = 3
)

// suggestField records the right fields whose names resemble the
// de-obfuscated name of an unmatched left field.
func (m *Merger) suggestField(left *model.FieldMapping, right *model.ClassMapping) {
	fields := right.Fields()
	if len(fields) == 0 {
		return
	}

	pool := make([]match.Subject, 0, len(fields))
	for _, f := range fields {
		pool = append(pool, match.Subject{Name: f.ObfuscatedName()})
	}

	target := match.Subject{Name: left.DeobfuscatedName()}
	m.suggest(target, pool, right.FullObfuscatedName(), left.Signature().String())
}

// suggestMethod records the right methods resembling an unmatched left
// method, scoring descriptors as well as names.
func (m *Merger) suggestMethod(left *model.MethodMapping, right *model.ClassMapping) {
	methods := right.Methods()
	if len(methods) == 0 {
		return
	}

	pool := make([]match.Subject, 0, len(methods))
	for _, rm := range methods {
		pool = append(pool, match.Subject{Name: rm.ObfuscatedName(), Descriptor: rm.Descriptor()})
	}

	target := match.Subject{Name: left.DeobfuscatedName(), Descriptor: left.DeobfuscatedDescriptor()}
	m.suggest(target, pool, right.FullObfuscatedName(), left.Signature().String())
}

func (m *Merger) suggest(target match.Subject, pool []match.Subject, class, member string) {
	labels := match.Rank(target, pool).Above(suggestThreshold).Labels(maxSuggestions)
	if len(labels) == 0 {
		return
	}

	m.ctx.Info(diagnostic.CodeUnmatched,
		fmt.Sprintf("no right-side match for %s", target.Label()),
		class, member, labels...)
}
