package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/internal/common"
)

// Sentinel validation errors.
var (
	ErrInvalidParallelism = errors.New("parallelism must be positive")
	ErrNilHandler         = errors.New("merge handler must not be nil")
	ErrUnknownMode        = errors.New("unknown signature mode")
)

// SignatureMode selects how a left member is paired with a right member.
type SignatureMode int

const (
	// Strict requires the full signature to match: name and type for fields,
	// name and descriptor for methods.
	Strict SignatureMode = iota
	// Loose matches fields by name and methods by name and parameter count.
	// When several right-side overloads qualify the first declared one wins.
	Loose
)

// String returns the configuration spelling of the mode.
func (m SignatureMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Loose:
		return "loose"
	default:
		return common.UnknownStr
	}
}

// ParseSignatureMode parses "strict" or "loose", ignoring case.
func ParseSignatureMode(s string) (SignatureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "loose":
		return Loose, nil
	default:
		return Strict, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Config holds configuration for a merge.
type Config struct {
	// Handler decides every merge step.
	Handler Handler
	// FieldMode is the signature mode used for fields.
	FieldMode SignatureMode
	// MethodMode is the signature mode used for methods.
	MethodMode SignatureMode
	// Parallelism bounds the number of top-level classes merged at once.
	Parallelism int
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the default merge configuration: loose fields,
// strict methods, sequential.
func DefaultConfig() Config {
	return Config{
		Handler:     DefaultHandler{},
		FieldMode:   Loose,
		MethodMode:  Strict,
		Parallelism: 1,
	}
}

// WithHandler returns a copy of the configuration using h.
func (c Config) WithHandler(h Handler) Config {
	c.Handler = h
	return c
}

// WithParallelism returns a copy of the configuration with the given parallelism.
func (c Config) WithParallelism(n int) Config {
	c.Parallelism = n
	return c
}

// WithModes returns a copy of the configuration with the given signature modes.
func (c Config) WithModes(fields, methods SignatureMode) Config {
	c.FieldMode = fields
	c.MethodMode = methods

	return c
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Handler == nil {
		return ErrNilHandler
	}

	if c.Parallelism < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidParallelism, c.Parallelism)
	}

	for _, mode := range []SignatureMode{c.FieldMode, c.MethodMode} {
		if mode != Strict && mode != Loose {
			return fmt.Errorf("%w: %d", ErrUnknownMode, mode)
		}
	}

	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.Logger
}
