package output

import (
	"errors"
	"fmt"
	"strings"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("output")

// Escape starts a token in a format string.
const Escape = '%'

// customPrefix marks a format string that must not be resolved as layout name
const customPrefix = "fmt:"

// ErrUnknownToken is wrapped by every CompileError.
var ErrUnknownToken = errors.New("unknown token")

// CompileError reports a token of a format string that matches no registered token.
type CompileError struct {
	// Token is the escape character followed by the alphanumeric run after it
	Token string
	// Offset is the byte offset of the escape character in the format string
	Offset int
	// Format is the format string that failed to compile
	Format string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s %q at offset %d in format %q", ErrUnknownToken, e.Token, e.Offset, e.Format)
}

// Unwrap returns ErrUnknownToken
func (e *CompileError) Unwrap() error {
	return ErrUnknownToken
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func newCompileError(format string, offset int) *CompileError {
	end := offset + 1
	for end < len(format) && isAlnum(format[end]) {
		end++
	}
	return &CompileError{
		Token:  format[offset:end],
		Offset: offset,
		Format: format,
	}
}

// step is a single instruction of a plan. Steps with a nil token copy literal.
type step struct {
	literal []byte
	token   *Token
	plain   bool
}

// Plan is a compiled format. A plan is immutable and can be used concurrently.
type Plan struct {
	format  string
	layout  *Layout
	steps   []step
	plain   bool
	machine bool
}

// Format returns the format string this plan was compiled from.
func (p *Plan) Format() string {
	return p.format
}

// Layout returns the layout this plan was compiled from. Formats that don't correspond to a
// named layout return a layout without name.
func (p *Plan) Layout() Layout {
	return *p.layout
}

// Fields returns the tokens of the plan in order.
func (p *Plan) Fields() []*Token {
	var ret []*Token
	for _, s := range p.steps {
		if s.token != nil {
			ret = append(ret, s.token)
		}
	}
	return ret
}

// tokenize splits format into literal and field steps. Tokens are matched with longest match,
// i.e. %flg is never read as %fl followed by g.
func tokenize(format string, plain bool) ([]step, error) {
	var steps []step
	for i := 0; i < len(format); {
		if format[i] != Escape {
			end := strings.IndexByte(format[i:], Escape)
			if end < 0 {
				end = len(format)
			} else {
				end += i
			}
			steps = append(steps, step{literal: []byte(format[i:end])})
			i = end
			continue
		}
		tok, n := tokens.longestMatch(format[i+1:])
		if tok == nil {
			return nil, newCompileError(format, i)
		}
		steps = append(steps, step{token: tok, plain: plain})
		i += 1 + n
	}
	return steps, nil
}

// Compile compiles spec into a plan.
//
// spec can be the name of a layout, or a format string optionally prefixed with "fmt:". A prefixed
// format string is never interpreted as layout name. An empty spec selects DefaultFormat.
// A format string equal to the format of a layout compiles to the same plan as the layout name.
//
// If plain is set, counters, rates, and protocols are printed as raw numbers.
func Compile(spec string, plain bool) (*Plan, error) {
	explicit := strings.HasPrefix(spec, customPrefix)
	format := spec
	if explicit {
		format = spec[len(customPrefix):]
		if format == "" {
			return nil, fmt.Errorf("format %q: %w", spec, ErrEmptyFormat)
		}
	} else if format == "" {
		format = DefaultFormat
	}

	layout, ok := layouts[format]
	if ok && !explicit {
		format = layout.Format
	} else if layout, ok = byFormat[format]; !ok {
		layout = custom
	}

	if layout.Machine {
		plain = true
	}

	steps, err := tokenize(format, plain)
	if err != nil {
		var ce *CompileError
		if errors.As(err, &ce) && explicit {
			ce.Offset += len(customPrefix)
			ce.Format = spec
		}
		return nil, err
	}

	if layout.Name != "" {
		log.Debugf("compiled layout %s with %d steps", layout.Name, len(steps))
	} else {
		log.Debugf("compiled format %q with %d steps", format, len(steps))
	}

	return &Plan{
		format:  format,
		layout:  layout,
		steps:   steps,
		plain:   plain,
		machine: layout.Machine,
	}, nil
}

// MustCompile is like Compile but panics if the format can't be compiled.
func MustCompile(spec string, plain bool) *Plan {
	p, err := Compile(spec, plain)
	if err != nil {
		panic(err)
	}
	return p
}
