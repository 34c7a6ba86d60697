// Package commands provides the command implementations behind the CLI.
//
// Each command lives in its own subdirectory:
//   - rewrite/   - Rewrite command, processes HTML files in place or to a directory
//   - explain/   - Explain command, shows the decision for one script
//   - genconfig/ - GenConfig command, renders a config file
//
// This file re-exports the command functions.
package commands

import (
	"github.com/arthur-debert/scriptext/pkg/commands/explain"
	"github.com/arthur-debert/scriptext/pkg/commands/genconfig"
	"github.com/arthur-debert/scriptext/pkg/commands/rewrite"
	"github.com/arthur-debert/scriptext/pkg/ui"
)

// RewriteOptions holds options for Rewrite
type RewriteOptions = rewrite.RewriteOptions

// Rewrite processes HTML files.
func Rewrite(opts RewriteOptions) ([]ui.Report, error) {
	return rewrite.Rewrite(opts)
}

// ExplainOptions holds options for Explain
type ExplainOptions = explain.ExplainOptions

// ExplainResult is returned by Explain
type ExplainResult = explain.ExplainResult

// Explain reports how a script would be loaded.
func Explain(opts ExplainOptions) (*ExplainResult, error) {
	return explain.Explain(opts)
}

// GenConfigOptions holds options for GenConfig
type GenConfigOptions = genconfig.GenConfigOptions

// GenConfigResult is returned by GenConfig
type GenConfigResult = genconfig.GenConfigResult

// GenConfig renders a configuration file.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
