package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/scriptext/pkg/config"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/spf13/afero"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// Config is rendered, the built-in defaults when nil
	Config *config.File

	// Format is toml or yaml
	Format string

	// Path writes the result to a file instead of returning it only.
	// An existing file is left alone.
	Path string

	// Fs receives the written file, OsFs when nil
	Fs afero.Fs
}

// GenConfigResult holds the rendered configuration
type GenConfigResult struct {
	Content     string
	FileWritten string
}

// GenConfig renders a configuration file.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	f := config.Defaults()
	if opts.Config != nil {
		f = *opts.Config
	}
	content, err := config.Generate(f, opts.Format)
	if err != nil {
		return nil, err
	}

	result := &GenConfigResult{Content: content}
	if opts.Path == "" {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if exists, _ := afero.Exists(fsys, opts.Path); exists {
		logger.Warn().Str("path", opts.Path).Msg("Config file already exists, skipping")
		return result, nil
	}
	if err := fsys.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", filepath.Dir(opts.Path))
	}
	if err := afero.WriteFile(fsys, opts.Path, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", opts.Path).
			WithDetail("path", opts.Path)
	}

	logger.Info().Str("path", opts.Path).Msg("Written config file")
	result.FileWritten = opts.Path
	return result, nil
}
