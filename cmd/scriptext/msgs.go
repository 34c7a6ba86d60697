package scriptext

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rewrite script tags of built HTML files"
	MsgRewriteShort    = "Rewrite script tags in HTML files"
	MsgExplainShort    = "Show how one script would be loaded"
	MsgGenConfigShort  = "Print or write a configuration file"
	MsgGenConfigLong   = "Print the effective configuration (defaults, config file and environment merged) as TOML or YAML.\n\nWith --write the output goes to the given file, which is left alone if it exists."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoFiles       = "No HTML files found."
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, not overwritten\n"
	MsgVersionFormat = "scriptext %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrFormat     = "invalid --format: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default: scriptext.toml in --root, then the user config)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagRoot      = "Build output directory"
	MsgFlagAssets    = "Directory holding scripts to inline (default: --root)"
	MsgFlagOut       = "Write rewritten files here instead of in place"
	MsgFlagDryRun    = "Show decisions without writing files"
	MsgFlagHTMLPath  = "Output file the script appears on, relative to the build directory"
	MsgFlagGenFormat = "Config format: toml or yaml"
	MsgFlagWrite     = "Write the config to this file instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/rewrite-long.txt
	msgRewriteLongRaw string
	MsgRewriteLong    = strings.TrimSpace(msgRewriteLongRaw)

	//go:embed msgs/rewrite-example.txt
	msgRewriteExampleRaw string
	MsgRewriteExample    = strings.TrimRight(msgRewriteExampleRaw, "\n")

	//go:embed msgs/explain-long.txt
	msgExplainLongRaw string
	MsgExplainLong    = strings.TrimSpace(msgExplainLongRaw)

	//go:embed msgs/explain-example.txt
	msgExplainExampleRaw string
	MsgExplainExample    = strings.TrimRight(msgExplainExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
