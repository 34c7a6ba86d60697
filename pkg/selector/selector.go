// Package selector chooses how a script is loaded: inlined, or referenced
// with one loading attribute, optionally as an ES module.
//
// Rules are checked in a fixed order:
//
//  1. inline wins outright
//  2. async, then defer; the first whose test or chunk rules match is used
//  3. otherwise the configured default attribute
//
// The module rule is checked independently and can combine with any attribute.
package selector

import (
	"github.com/arthur-debert/scriptext/pkg/chunks"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/identifier"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/matcher"
)

// Attribute is a script loading mode.
type Attribute string

const (
	Sync  Attribute = "sync"
	Async Attribute = "async"
	Defer Attribute = "defer"
)

// priorities lists the loading modes in preference order. Sync never carries
// a test, so the effective scan is async then defer.
var priorities = [...]Attribute{Sync, Async, Defer}

// Priorities returns the loading modes in preference order.
func Priorities() []Attribute {
	out := priorities
	return out[:]
}

// ParseAttribute validates a default attribute value.
func ParseAttribute(s string) (Attribute, error) {
	for _, a := range priorities {
		if string(a) == s {
			return a, nil
		}
	}
	return "", errors.ConfigurationError(s)
}

// Rule is a named attribute rule: a test plus chunk rules for multi-page
// builds. Only the async and defer rules consult their chunk rules.
type Rule struct {
	Test   matcher.Test
	Chunks []chunks.Rule
}

// IsEmpty reports whether the rule can never match anything.
func (r Rule) IsEmpty() bool {
	return matcher.IsEmpty(r.Test) && len(r.Chunks) == 0
}

// Config is the immutable per-build configuration.
type Config struct {
	DefaultAttribute Attribute

	Inline Rule
	Async  Rule
	Defer  Rule
	Module Rule

	// Identifier controls how src attributes become identifiers
	Identifier identifier.Options
}

// Validate checks the default attribute against the priority list.
func (c *Config) Validate() error {
	_, err := ParseAttribute(string(c.DefaultAttribute))
	return err
}

// rule returns the attribute rule scanned for a, if any.
func (c *Config) rule(a Attribute) (Rule, bool) {
	switch a {
	case Async:
		return c.Async, true
	case Defer:
		return c.Defer, true
	default:
		return Rule{}, false
	}
}

// Reasons a decision was taken
const (
	ReasonInline  = "inline"
	ReasonTest    = "test"
	ReasonChunk   = "chunk"
	ReasonDefault = "default"
)

// Decision is the outcome for one script.
type Decision struct {
	Inline    bool
	Attribute Attribute
	Module    bool

	// Reason records what selected the attribute: inline, test, chunk or default
	Reason string
}

// Flag returns the boolean attribute to emit, or "" for sync and inline.
func (d Decision) Flag() string {
	if d.Inline || d.Attribute == Sync {
		return ""
	}
	return string(d.Attribute)
}

// Select decides how identifier is loaded on outputFile.
func Select(id, outputFile string, cfg *Config) Decision {
	logger := logging.GetLogger("selector")

	if matcher.Matches(id, cfg.Inline.Test) {
		logger.Debug().Str("identifier", id).Msg("Script selected for inlining")
		return Decision{Inline: true, Reason: ReasonInline}
	}

	d := Decision{Attribute: cfg.DefaultAttribute, Reason: ReasonDefault}
	for _, a := range priorities {
		rule, ok := cfg.rule(a)
		if !ok {
			continue
		}
		if matcher.Matches(id, rule.Test) {
			d.Attribute, d.Reason = a, ReasonTest
			break
		}
		if chunks.DeepMatch(id, outputFile, rule.Chunks) {
			d.Attribute, d.Reason = a, ReasonChunk
			break
		}
	}

	d.Module = matcher.Matches(id, cfg.Module.Test)

	logger.Debug().
		Str("identifier", id).
		Str("outputFile", outputFile).
		Str("attribute", string(d.Attribute)).
		Str("reason", d.Reason).
		Bool("module", d.Module).
		Msg("Selected script attribute")

	return d
}
