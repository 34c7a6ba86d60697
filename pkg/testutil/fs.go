package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// MemFS returns an in-memory filesystem holding files, keyed by path.
func MemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
	return fsys
}

// ReadFile returns the content of path, failing the test if it is missing.
func ReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// CreateFile creates a file with the given content in dir on disk and
// returns its path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// FailingFs wraps a filesystem and returns injected errors when given
// paths are opened.
type FailingFs struct {
	afero.Fs
	errorPaths map[string]error
}

// NewFailingFs wraps fsys.
func NewFailingFs(fsys afero.Fs) *FailingFs {
	return &FailingFs{Fs: fsys, errorPaths: map[string]error{}}
}

// FailOn makes every open of path return err.
func (f *FailingFs) FailOn(path string, err error) *FailingFs {
	f.errorPaths[filepath.Clean(path)] = err
	return f
}

func (f *FailingFs) injected(path string) error {
	return f.errorPaths[filepath.Clean(path)]
}

func (f *FailingFs) Open(name string) (afero.File, error) {
	if err := f.injected(name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.injected(name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FailingFs) Create(name string) (afero.File, error) {
	if err := f.injected(name); err != nil {
		return nil, &os.PathError{Op: "create", Path: name, Err: err}
	}
	return f.Fs.Create(name)
}

func (f *FailingFs) Name() string {
	return "FailingFs"
}
