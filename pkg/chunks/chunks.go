// Package chunks resolves script identifiers against per-output-file chunk
// rules. In multi-page builds a script's chunk name can differ from its src,
// so a rule scoped to one HTML output may name the chunk instead.
package chunks

import (
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/matcher"
)

// Rule ties a chunk name matcher to a single output file.
type Rule struct {
	// HTMLPath is the output file the rule applies to
	HTMLPath string

	// ChunkName is compared with the identifier. Literals compare by
	// equality, patterns by match, lists by any element, predicates are
	// invoked.
	ChunkName matcher.Test
}

// DeepMatch reports whether any rule scoped to outputFile accepts identifier.
// Rules for other output files are ignored; an empty rule list never matches.
func DeepMatch(identifier, outputFile string, rules []Rule) bool {
	if len(rules) == 0 {
		return false
	}

	logger := logging.GetLogger("chunks")
	result := false
	for _, rule := range Scoped(outputFile, rules) {
		matched := matcher.Matches(identifier, rule.ChunkName)
		logger.Trace().
			Str("identifier", identifier).
			Str("htmlPath", rule.HTMLPath).
			Str("chunkName", describe(rule.ChunkName)).
			Bool("matched", matched).
			Msg("Checked chunk rule")
		result = result || matched
	}
	return result
}

// Scoped returns the rules that apply to outputFile, in their original order.
func Scoped(outputFile string, rules []Rule) []Rule {
	var scoped []Rule
	for _, rule := range rules {
		if rule.HTMLPath == outputFile {
			scoped = append(scoped, rule)
		}
	}
	return scoped
}

func describe(t matcher.Test) string {
	if t == nil {
		return ""
	}
	return t.String()
}
