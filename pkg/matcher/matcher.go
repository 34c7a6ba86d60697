// Package matcher decides whether a script identifier satisfies a test.
//
// A Test is one of four variants:
//
//   - Literal: exact string equality
//   - Pattern: regular expression match (ECMAScript syntax)
//   - List: any element matches; an empty list matches nothing
//   - Predicate: a caller supplied func(string) bool
//
// Matches is a single case analysis over those variants and has no side effects.
package matcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single pattern evaluation.
const DefaultMatchTimeout = 100 * time.Millisecond

// Test is the closed set of match expressions.
type Test interface {
	isTest()
	fmt.Stringer
}

// Literal matches identifiers equal to itself.
type Literal string

// Pattern matches identifiers accepted by a compiled regular expression.
type Pattern struct {
	re *regexp2.Regexp
}

// List matches when any of its elements matches.
type List []Test

// Predicate matches when the function returns true.
type Predicate func(identifier string) bool

func (Literal) isTest()   {}
func (Pattern) isTest()   {}
func (List) isTest()      {}
func (Predicate) isTest() {}

func (l Literal) String() string { return string(l) }

func (p Pattern) String() string {
	if p.re == nil {
		return "//"
	}
	return "/" + p.re.String() + "/"
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (Predicate) String() string { return "<predicate>" }

// Matches reports whether identifier satisfies test. A nil test matches nothing.
func Matches(identifier string, test Test) bool {
	switch t := test.(type) {
	case Literal:
		return identifier == string(t)
	case Pattern:
		return t.MatchString(identifier)
	case List:
		for _, elem := range t {
			if Matches(identifier, elem) {
				return true
			}
		}
		return false
	case Predicate:
		return t != nil && t(identifier)
	default:
		return false
	}
}

// IsEmpty reports whether test can never match because it carries no
// expressions at all: nil or an empty list.
func IsEmpty(test Test) bool {
	switch t := test.(type) {
	case nil:
		return true
	case List:
		return len(t) == 0
	default:
		return false
	}
}

// MatchString runs the pattern against s. Evaluation errors, such as a
// timeout, count as no match and are logged.
func (p Pattern) MatchString(s string) bool {
	if p.re == nil {
		return false
	}
	ok, err := p.re.MatchString(s)
	if err != nil {
		logger := logging.GetLogger("matcher")
		logger.Warn().
			Err(err).
			Str("pattern", p.String()).
			Str("identifier", s).
			Msg("Pattern evaluation failed, treating as no match")
		return false
	}
	return ok
}

// CompilePattern compiles an ECMAScript regular expression. Supported flags
// are i (ignore case), m (multiline) and s (dot matches newline).
func CompilePattern(expr, flags string) (Pattern, error) {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			// ECMAScript mode rejects Singleline, so fall back to default syntax
			opts &^= regexp2.ECMAScript
			opts |= regexp2.Singleline
		case 'g', 'u', 'y':
			// stateful or unicode flags have no effect on a single test
		default:
			return Pattern{}, fmt.Errorf("unsupported pattern flag %q in /%s/%s", f, expr, flags)
		}
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern /%s/: %w", expr, err)
	}
	re.MatchTimeout = DefaultMatchTimeout
	return Pattern{re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(expr string) Pattern {
	p, err := CompilePattern(expr, "")
	if err != nil {
		panic(err)
	}
	return p
}

// Parse turns the textual form used in configuration files into a Test.
// "/expr/flags" becomes a Pattern, anything else a Literal. A leading slash
// followed by something that is not a flag set, as in "/static/app.js",
// stays a Literal.
func Parse(s string) (Test, error) {
	if strings.HasPrefix(s, "/") {
		if end := strings.LastIndex(s, "/"); end > 0 && isFlagSet(s[end+1:]) {
			return CompilePattern(s[1:end], s[end+1:])
		}
	}
	return Literal(s), nil
}

func isFlagSet(flags string) bool {
	for _, f := range flags {
		if !strings.ContainsRune("gimsuy", f) {
			return false
		}
	}
	return true
}

// ParseList parses every entry and returns them as a List.
func ParseList(values []string) (List, error) {
	list := make(List, 0, len(values))
	for _, v := range values {
		t, err := Parse(v)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, nil
}
