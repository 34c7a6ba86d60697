package rewrite

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/scriptext/pkg/assets"
	"github.com/arthur-debert/scriptext/pkg/config"
	"github.com/arthur-debert/scriptext/pkg/document"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/pipeline"
	"github.com/arthur-debert/scriptext/pkg/selector"
	"github.com/arthur-debert/scriptext/pkg/ui"
	"github.com/spf13/afero"
)

// RewriteOptions holds options for the rewrite command
type RewriteOptions struct {
	// Fs holds the build output, OsFs when nil
	Fs afero.Fs

	// Root is the build output directory. HTML paths are reported and
	// matched against chunk rules relative to it.
	Root string

	// Files are the HTML files to rewrite. Relative paths are taken from Root.
	Files []string

	// AssetsDir holds the scripts available for inlining, Root when empty
	AssetsDir string

	// OutDir receives the rewritten files, Root (in place) when empty
	OutDir string

	DryRun bool

	Config *config.File
}

// Rewrite processes every file in opts.Files. A failing file aborts the
// run; files already written stay written.
func Rewrite(opts RewriteOptions) ([]ui.Report, error) {
	logger := logging.GetLogger("commands.rewrite")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration given")
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	cfg, err := opts.Config.Compile()
	if err != nil {
		return nil, err
	}
	process, err := pipeline.ShouldProcess(cfg)
	if err != nil {
		return nil, err
	}

	reports := make([]ui.Report, 0, len(opts.Files))
	if !process {
		logger.Info().Msg("Nothing configured, leaving files untouched")
		for _, f := range opts.Files {
			reports = append(reports, ui.SkippedReport(outputFile(opts.Root, f)))
		}
		return reports, nil
	}

	m, err := loadAssets(fsys, opts, cfg)
	if err != nil {
		return nil, err
	}

	for _, f := range opts.Files {
		rep, err := rewriteFile(fsys, opts, cfg, m, f)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// loadAssets reads the asset directory only when something can be inlined.
func loadAssets(fsys afero.Fs, opts RewriteOptions, cfg *selector.Config) (assets.Map, error) {
	if cfg.Inline.IsEmpty() {
		return assets.Map{}, nil
	}
	dir := opts.AssetsDir
	if dir == "" {
		dir = opts.Root
	}
	return assets.FromDir(fsys, dir)
}

func rewriteFile(fsys afero.Fs, opts RewriteOptions, cfg *selector.Config, m assets.Map, file string) (ui.Report, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.Root, path)
	}
	name := outputFile(opts.Root, file)
	logger := logging.WithFields(map[string]interface{}{
		"component":  "commands.rewrite",
		"outputFile": name,
	})

	doc, err := document.Load(fsys, path)
	if err != nil {
		return ui.Report{}, err
	}
	results, err := pipeline.Resolve(m, cfg, doc.Tags(), name)
	if err != nil {
		return ui.Report{}, errors.Wrapf(err, errors.GetErrorCode(err), "cannot rewrite %s", name).
			WithDetail("outputFile", name)
	}

	if err := doc.Apply(pipeline.Tags(results)); err != nil {
		return ui.Report{}, err
	}

	rep := ui.NewReport(name, results)
	rep.DryRun = opts.DryRun
	if opts.DryRun {
		logger.Info().Msg("Dry run, not writing")
		return rep, nil
	}

	target := path
	if opts.OutDir != "" {
		target = filepath.Join(opts.OutDir, filepath.FromSlash(name))
	}
	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return ui.Report{}, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", filepath.Dir(target))
	}
	if err := doc.Save(fsys, target); err != nil {
		return ui.Report{}, err
	}
	logger.Info().Str("path", target).Msg("Wrote rewritten file")
	return rep, nil
}

// outputFile is the slash-separated path of file relative to root, the
// form chunk rules are written in.
func outputFile(root, file string) string {
	path := file
	if root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if root == "" {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(file))
	}
	return filepath.ToSlash(rel)
}

// FindHTML lists the .html files below root, relative to it.
func FindHTML(fsys afero.Fs, root string) ([]string, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot list %s", root).WithDetail("path", root)
	}
	sort.Strings(files)
	return files, nil
}
