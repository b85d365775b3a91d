package merge

import (
	"sync"
	"sync/atomic"

	"github.com/CadixDev/Lorenz-sub001/internal/diagnostic"
	"github.com/CadixDev/Lorenz-sub001/model"
)

// Context is shared by every handler call of one merge.
type Context struct {
	left   *model.MappingSet
	right  *model.MappingSet
	config Config

	leftReversedOnce sync.Once
	leftReversed     *model.MappingSet

	mu          sync.Mutex
	diagnostics diagnostic.Diagnostics

	state sync.Map
	stats stats
}

type stats struct {
	classes   atomic.Int64
	composed  atomic.Int64
	leftOnly  atomic.Int64
	rightOnly atomic.Int64
	dropped   atomic.Int64
}

func newContext(left, right *model.MappingSet, cfg Config) *Context {
	return &Context{left: left, right: right, config: cfg}
}

// Left returns the A to B set.
func (c *Context) Left() *model.MappingSet { return c.left }

// Right returns the B to C set.
func (c *Context) Right() *model.MappingSet { return c.right }

// Config returns the merge configuration.
func (c *Context) Config() Config { return c.config }

// LeftReversed returns the left set reversed (B to A), computed on first use.
func (c *Context) LeftReversed() *model.MappingSet {
	c.leftReversedOnce.Do(func() {
		c.leftReversed = c.left.Reverse()
	})

	return c.leftReversed
}

// Warn records a warning diagnostic.
func (c *Context) Warn(code, message, class, member string, suggestions ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diagnostics.AddWarning(code, message, class, member, suggestions...)
}

// Info records an informational diagnostic.
func (c *Context) Info(code, message, class, member string, suggestions ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diagnostics.AddInfo(code, message, class, member, suggestions...)
}

// Diagnostics returns a snapshot of the diagnostics recorded so far.
func (c *Context) Diagnostics() diagnostic.Diagnostics {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out diagnostic.Diagnostics
	out.Merge(c.diagnostics)

	return out
}

// Load returns handler state stored under key.
func (c *Context) Load(key any) (any, bool) {
	return c.state.Load(key)
}

// Store saves handler state under key.
func (c *Context) Store(key, value any) {
	c.state.Store(key, value)
}

// Report summarises a finished merge.
type Report struct {
	// Classes counts the top-level and inner classes written to the result.
	Classes int
	// Composed counts members whose left entry met a right entry.
	Composed int
	// LeftOnly counts members that passed through from the left set.
	LeftOnly int
	// RightOnly counts members that only the right set knew.
	RightOnly int
	// Dropped counts nodes a handler chose not to emit.
	Dropped int
	// Diagnostics holds warnings and notes raised during the merge.
	Diagnostics diagnostic.Diagnostics
}

func (c *Context) report() *Report {
	return &Report{
		Classes:     int(c.stats.classes.Load()),
		Composed:    int(c.stats.composed.Load()),
		LeftOnly:    int(c.stats.leftOnly.Load()),
		RightOnly:   int(c.stats.rightOnly.Load()),
		Dropped:     int(c.stats.dropped.Load()),
		Diagnostics: c.Diagnostics(),
	}
}
