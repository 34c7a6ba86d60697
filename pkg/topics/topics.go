// Package topics serves long-form help pages through the cobra help command.
package topics

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var builtin embed.FS

// Topic is one help page.
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Ext returns the file extension of the topic source.
func (t *Topic) Ext() string {
	return filepath.Ext(t.Path)
}

// Options configures a Manager
type Options struct {
	// Extensions considered as topics, [".txt", ".md"] when empty
	Extensions []string

	// Renderer formats topic content, PlainRenderer when nil
	Renderer Renderer
}

// Manager holds the topics found in a directory.
type Manager struct {
	fs         afero.Fs
	dir        string
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New creates a manager over dir in fsys. Call Scan to load topics.
func New(fsys afero.Fs, dir string, opts Options) *Manager {
	m := &Manager{
		fs:         fsys,
		dir:        dir,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	return m
}

// Builtin returns a manager loaded with the topics shipped in the binary.
func Builtin(opts Options) (*Manager, error) {
	sub, err := fs.Sub(builtin, "docs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot open builtin topics")
	}
	m := New(afero.FromIOFS{FS: sub}, ".", opts)
	if err := m.Scan(); err != nil {
		return nil, err
	}
	return m, nil
}

// Scan loads every topic file below the directory. A missing directory
// yields no topics.
func (m *Manager) Scan() error {
	if _, err := m.fs.Stat(m.dir); os.IsNotExist(err) {
		return nil
	}

	err := afero.Walk(m.fs, m.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !m.supported(filepath.Ext(path)) {
			return nil
		}
		content, err := afero.ReadFile(m.fs, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m.topics[name] = &Topic{Name: name, Path: path, Content: string(content)}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot scan topics in %s", m.dir)
	}
	return nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get retrieves a topic by name. Flag-style names such as --dry-run also
// resolve to an option-dry-run topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// List returns the sorted topic names.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the formatted content of t.
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, t.Ext())
}

// WriteIndex lists the available topics.
func (m *Manager) WriteIndex(w io.Writer, appName string) error {
	names := m.List()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, "--"+strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the help command and help function of root so that
// topics are served next to command help.
func (m *Manager) Install(root *cobra.Command) {
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				originalHelp(root, []string{})
				return nil
			}
			if args[0] == "topics" {
				return m.WriteIndex(cmd.OutOrStdout(), root.Name())
			}
			if t, ok := m.Get(args[0]); ok {
				_, err := io.WriteString(cmd.OutOrStdout(), m.Render(t))
				return err
			}
			if c, _, err := root.Find(args); err == nil {
				originalHelp(c, args)
				return nil
			}
			originalHelp(root, args)
			return nil
		},
	}

	root.SetHelpCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.Get(args[0]); ok {
				_, _ = io.WriteString(cmd.OutOrStdout(), m.Render(t))
				return
			}
		}
		originalHelp(cmd, args)
	})
}
