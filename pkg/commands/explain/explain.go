package explain

import (
	"github.com/arthur-debert/scriptext/pkg/config"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/identifier"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/selector"
	"github.com/arthur-debert/scriptext/pkg/ui"
)

// ExplainOptions holds options for the explain command
type ExplainOptions struct {
	// Src is a script src attribute or a bare identifier
	Src string

	// HTMLPath is the output file the script would appear on
	HTMLPath string

	Config *config.File
}

// ExplainResult is the decision for one script
type ExplainResult struct {
	OutputFile string
	Entry      ui.Entry
}

// Explain reports how a script would be loaded without touching any file.
func Explain(opts ExplainOptions) (*ExplainResult, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration given")
	}
	if opts.Src == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no script given")
	}

	cfg, err := opts.Config.Compile()
	if err != nil {
		return nil, err
	}

	id := identifier.FromSrc(opts.Src, cfg.Identifier)
	d := selector.Select(id, opts.HTMLPath, cfg)

	logger := logging.GetLogger("commands.explain")
	logger.Debug().
		Str("src", opts.Src).
		Str("identifier", id).
		Msg("Explained script")

	return &ExplainResult{
		OutputFile: opts.HTMLPath,
		Entry:      ui.NewEntry(0, id, d),
	}, nil
}
