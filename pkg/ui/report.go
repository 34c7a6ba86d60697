package ui

import (
	"github.com/arthur-debert/scriptext/pkg/pipeline"
	"github.com/arthur-debert/scriptext/pkg/selector"
)

// Actions shown for each script
const (
	ActionInline    = "inline"
	ActionUntouched = "untouched"
)

// Entry describes what happened to one script tag.
type Entry struct {
	Index      int    `json:"index"`
	Identifier string `json:"identifier"`
	Action     string `json:"action"`
	Module     bool   `json:"module"`
	Reason     string `json:"reason"`
}

// Report summarizes one output file.
type Report struct {
	OutputFile string  `json:"outputFile"`
	Skipped    bool    `json:"skipped"`
	DryRun     bool    `json:"dryRun,omitempty"`
	TagCount   int     `json:"tagCount"`
	Entries    []Entry `json:"scripts"`
}

// NewReport builds a report from resolved results. Tags that are not
// scripts are counted but not listed.
func NewReport(outputFile string, results []pipeline.Result) Report {
	r := Report{OutputFile: outputFile, TagCount: len(results), Entries: []Entry{}}
	for i, res := range results {
		if res.Decision == nil {
			continue
		}
		r.Entries = append(r.Entries, NewEntry(i, res.Identifier, *res.Decision))
	}
	return r
}

// SkippedReport is the report for a file left alone because nothing is
// configured.
func SkippedReport(outputFile string) Report {
	return Report{OutputFile: outputFile, Skipped: true, Entries: []Entry{}}
}

// NewEntry describes a single decision.
func NewEntry(index int, id string, d selector.Decision) Entry {
	return Entry{
		Index:      index,
		Identifier: id,
		Action:     action(d),
		Module:     d.Module,
		Reason:     d.Reason,
	}
}

func action(d selector.Decision) string {
	if d.Inline {
		return ActionInline
	}
	if d.Attribute == selector.Sync {
		if d.Module {
			return string(selector.Sync)
		}
		return ActionUntouched
	}
	return string(d.Attribute)
}

// Counts tallies entries per action.
func (r Report) Counts() map[string]int {
	counts := map[string]int{}
	for _, e := range r.Entries {
		counts[e.Action]++
	}
	return counts
}
