package tsrg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/model"
)

// ErrMalformedLine is returned for lines that are not a class, field or
// method entry.
var ErrMalformedLine = errors.New("malformed TSRG line")

// LineError locates a read failure.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

const (
	classTokens  = 2
	fieldTokens  = 2
	methodTokens = 3
)

// Reader reads TSRG mappings.
type Reader struct {
	r io.Reader
}

// NewReader returns a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read adds every mapping in the input to into. On error into holds the
// lines read before the failing one.
func (r *Reader) Read(into *model.MappingSet) error {
	scanner := bufio.NewScanner(r.r)

	var current *model.ClassMapping

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		raw := scanner.Text()

		line := stripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		next, err := readLine(into, current, line)
		if err != nil {
			return &LineError{Line: lineNo, Text: raw, Err: err}
		}

		current = next
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read TSRG input: %w", err)
	}

	return nil
}

// Read parses TSRG text into a new mapping set.
func Read(r io.Reader) (*model.MappingSet, error) {
	set := model.NewMappingSet()
	if err := NewReader(r).Read(set); err != nil {
		return nil, err
	}

	return set, nil
}

// ReadString parses TSRG text held in s.
func ReadString(s string) (*model.MappingSet, error) {
	return Read(strings.NewReader(s))
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	return strings.TrimRight(line, " \t\r")
}

// readLine applies one line and returns the class later member lines attach to.
func readLine(into *model.MappingSet, current *model.ClassMapping, line string) (*model.ClassMapping, error) {
	member := strings.HasPrefix(line, "\t")
	tokens := strings.Fields(line)

	switch {
	case !member && len(tokens) == classTokens:
		if strings.HasSuffix(tokens[0], "/") {
			// package mapping
			return current, nil
		}

		return into.GetOrCreateClassMapping(tokens[0]).SetDeobfuscatedName(tokens[1]), nil

	case member && current == nil:
		return nil, fmt.Errorf("%w: member outside of a class", ErrMalformedLine)

	case member && len(tokens) == fieldTokens:
		current.GetOrCreateField(model.FieldSignature{Name: tokens[0]}).SetDeobfuscatedName(tokens[1])
		return current, nil

	case member && len(tokens) == methodTokens:
		sig, err := model.ParseMethodSignature(tokens[0], tokens[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedLine, err)
		}

		current.GetOrCreateMethod(sig).SetDeobfuscatedName(tokens[2])

		return current, nil

	default:
		return nil, fmt.Errorf("%w: expected %d or %d tokens, got %d", ErrMalformedLine, classTokens, methodTokens, len(tokens))
	}
}
