// Package pipeline runs the script rewrite pass over a tag sequence.
//
// ShouldProcess lets the host skip the pass when nothing could change.
// ProcessAll resolves every tag independently and returns a new sequence of
// the same length and order. A failure on any tag aborts the pass and no
// partial output is returned; the input tags are never modified.
package pipeline

import (
	"github.com/arthur-debert/scriptext/pkg/assets"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/identifier"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/rewriter"
	"github.com/arthur-debert/scriptext/pkg/selector"
	"github.com/arthur-debert/scriptext/pkg/tags"
)

// ShouldProcess validates cfg and reports whether a rewrite pass could
// change anything. It is false only for a sync default with all four rules
// empty.
func ShouldProcess(cfg *selector.Config) (bool, error) {
	if cfg == nil {
		return false, errors.New(errors.ErrInvalidInput, "no configuration given")
	}
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	return !(cfg.DefaultAttribute == selector.Sync &&
		cfg.Inline.IsEmpty() &&
		cfg.Async.IsEmpty() &&
		cfg.Defer.IsEmpty() &&
		cfg.Module.IsEmpty()), nil
}

// Result pairs an output tag with the decision that produced it. Decision
// is nil for tags that are not scripts.
type Result struct {
	Tag        tags.Tag
	Identifier string
	Decision   *selector.Decision
}

// ProcessAll rewrites every tag for outputFile.
func ProcessAll(m assets.Map, cfg *selector.Config, in []tags.Tag, outputFile string) ([]tags.Tag, error) {
	results, err := Resolve(m, cfg, in, outputFile)
	if err != nil {
		return nil, err
	}
	return Tags(results), nil
}

// Tags extracts the output tags of results, in order.
func Tags(results []Result) []tags.Tag {
	out := make([]tags.Tag, len(results))
	for i, r := range results {
		out[i] = r.Tag
	}
	return out
}

// Resolve is ProcessAll keeping the per-tag decisions for reporting.
func Resolve(m assets.Map, cfg *selector.Config, in []tags.Tag, outputFile string) ([]Result, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration given")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.GetLogger("pipeline")
	done := logging.LogOperationStart(logger, "rewrite")
	defer done()

	results := make([]Result, len(in))
	for i, tag := range in {
		r, err := resolveOne(m, cfg, tag, outputFile)
		if err != nil {
			logger.Debug().Err(err).Int("index", i).Str("outputFile", outputFile).Msg("Rewrite aborted")
			return nil, err
		}
		results[i] = r
	}

	logger.Info().
		Str("outputFile", outputFile).
		Int("tagCount", len(in)).
		Msg("Processed tags")

	return results, nil
}

func resolveOne(m assets.Map, cfg *selector.Config, tag tags.Tag, outputFile string) (Result, error) {
	if !tag.IsScript() {
		return Result{Tag: tag}, nil
	}

	logger := logging.GetLogger("pipeline")
	logger.Debug().
		Str("tag", tag.Describe()).
		Msg("Processing <script> element")

	id := identifier.FromTag(tag, cfg.Identifier)
	d := selector.Select(id, outputFile, cfg)
	out, err := rewriter.Rewrite(tag, id, d, m)
	if err != nil {
		return Result{}, err
	}
	return Result{Tag: out, Identifier: id, Decision: &d}, nil
}
