package config

import (
	"github.com/arthur-debert/scriptext/pkg/chunks"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/identifier"
	"github.com/arthur-debert/scriptext/pkg/matcher"
	"github.com/arthur-debert/scriptext/pkg/selector"
)

// RuleNames lists the configurable rules in file order.
var RuleNames = []string{"inline", "async", "defer", "module"}

// File is the configuration as written in a config file.
type File struct {
	DefaultAttribute string `koanf:"default_attribute" toml:"default_attribute" yaml:"default_attribute"`
	PublicPath       string `koanf:"public_path" toml:"public_path" yaml:"public_path"`
	StripQuery       bool   `koanf:"strip_query" toml:"strip_query" yaml:"strip_query"`

	Inline RuleFile `koanf:"inline" toml:"inline" yaml:"inline"`
	Async  RuleFile `koanf:"async" toml:"async" yaml:"async"`
	Defer  RuleFile `koanf:"defer" toml:"defer" yaml:"defer"`
	Module RuleFile `koanf:"module" toml:"module" yaml:"module"`
}

// RuleFile is one attribute rule.
type RuleFile struct {
	Test   []string    `koanf:"test" toml:"test" yaml:"test"`
	Chunks []ChunkFile `koanf:"chunks" toml:"chunks,omitempty" yaml:"chunks,omitempty"`
}

// ChunkFile scopes a chunk name to one output file.
type ChunkFile struct {
	HTMLPath  string   `koanf:"html_path" toml:"html_path" yaml:"html_path"`
	ChunkName []string `koanf:"chunk_name" toml:"chunk_name" yaml:"chunk_name"`
}

// Defaults returns the built-in configuration: sync, nothing matched.
func Defaults() File {
	return File{
		DefaultAttribute: string(selector.Sync),
		Inline:           RuleFile{Test: []string{}},
		Async:            RuleFile{Test: []string{}},
		Defer:            RuleFile{Test: []string{}},
		Module:           RuleFile{Test: []string{}},
	}
}

func (f *File) rule(name string) *RuleFile {
	switch name {
	case "inline":
		return &f.Inline
	case "async":
		return &f.Async
	case "defer":
		return &f.Defer
	case "module":
		return &f.Module
	}
	return nil
}

// Compile validates f and builds the selector configuration.
func (f *File) Compile() (*selector.Config, error) {
	def, err := selector.ParseAttribute(f.DefaultAttribute)
	if err != nil {
		return nil, err
	}

	cfg := &selector.Config{
		DefaultAttribute: def,
		Identifier: identifier.Options{
			PublicPath: f.PublicPath,
			StripQuery: f.StripQuery,
		},
	}
	targets := map[string]*selector.Rule{
		"inline": &cfg.Inline,
		"async":  &cfg.Async,
		"defer":  &cfg.Defer,
		"module": &cfg.Module,
	}

	for _, name := range RuleNames {
		compiled, err := compileRule(name, f.rule(name))
		if err != nil {
			return nil, err
		}
		*targets[name] = compiled
	}

	return cfg, nil
}

func compileRule(name string, rf *RuleFile) (selector.Rule, error) {
	test, err := matcher.ParseList(rf.Test)
	if err != nil {
		return selector.Rule{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid test in rule %s", name).
			WithDetail("rule", name)
	}

	rule := selector.Rule{Test: test}
	for i, cf := range rf.Chunks {
		if cf.HTMLPath == "" {
			return selector.Rule{}, errors.Newf(errors.ErrConfigParse, "chunk %d of rule %s has no html_path", i, name).
				WithDetail("rule", name)
		}
		chunkName, err := matcher.ParseList(cf.ChunkName)
		if err != nil {
			return selector.Rule{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid chunk_name in rule %s", name).
				WithDetail("rule", name)
		}
		var nameTest matcher.Test = chunkName
		if len(chunkName) == 1 {
			nameTest = chunkName[0]
		}
		rule.Chunks = append(rule.Chunks, chunks.Rule{HTMLPath: cf.HTMLPath, ChunkName: nameTest})
	}
	return rule, nil
}
