// Package assets provides the read-only asset map consulted when a script is
// inlined. The host pipeline owns the assets; this package only reads them.
package assets

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/spf13/afero"
)

// Asset materializes the source text of one build output.
type Asset interface {
	Source() (string, error)
}

// Map keys assets by script identifier.
type Map map[string]Asset

// Lookup returns the asset registered under identifier.
func (m Map) Lookup(identifier string) (Asset, bool) {
	a, ok := m[identifier]
	return a, ok && a != nil
}

// Static is an asset whose source is already in memory.
type Static string

// Source returns the string itself.
func (s Static) Source() (string, error) {
	return string(s), nil
}

// File is an asset read lazily from a filesystem.
type File struct {
	FS   afero.Fs
	Path string
}

// Source reads the file content.
func (f File) Source() (string, error) {
	data, err := afero.ReadFile(f.FS, f.Path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrAssetRead, "cannot read asset %s", f.Path)
	}
	return string(data), nil
}

// FromDir registers every regular file below root, keyed by its
// slash-separated path relative to root.
func FromDir(fsys afero.Fs, root string) (Map, error) {
	logger := logging.GetLogger("assets")
	m := Map{}

	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		m[filepath.ToSlash(rel)] = File{FS: fsys, Path: path}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot list assets in %s", root)
	}

	logger.Debug().
		Str("root", root).
		Int("assetCount", len(m)).
		Msg("Registered assets")

	return m, nil
}
