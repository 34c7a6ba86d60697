package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix marks environment variables read as configuration. A double
// underscore separates key levels: SCRIPTEXT_ASYNC__TEST=a.js,b.js
const EnvPrefix = "SCRIPTEXT_"

// UserConfigFile is the config path relative to the XDG config home.
const UserConfigFile = "scriptext/config.toml"

// SearchNames are tried in order inside the working directory.
var SearchNames = []string{"scriptext.toml", ".scriptext.toml", "scriptext.yaml", "scriptext.yml"}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions select where configuration comes from.
type LoadOptions struct {
	// Path is an explicit config file. It must exist.
	Path string

	// Dir is searched for SearchNames when Path is empty
	Dir string

	// SkipUserConfig disables the XDG user config fallback
	SkipUserConfig bool

	// SkipEnv disables SCRIPTEXT_ environment variables
	SkipEnv bool
}

// Find returns the config file Load would read, or "" for defaults only.
func Find(opts LoadOptions) string {
	if opts.Path != "" {
		return opts.Path
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range SearchNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	if !opts.SkipUserConfig {
		if path, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
			return path
		}
	}
	return ""
}

// Load merges embedded defaults, the config file and the environment.
func Load(opts LoadOptions) (*File, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load the config file if there is one
	path := Find(opts)
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot open config %s", path)
		}
		tempK := koanf.New(".")
		if err := tempK.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(confmap.Provider(normalizeRules(tempK.Raw(), false), "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge config %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Load env vars
	if !opts.SkipEnv {
		tempK := koanf.New(".")
		err := tempK.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
		if envMap := tempK.Raw(); len(envMap) > 0 {
			if err := k.Load(confmap.Provider(normalizeRules(envMap, true), "."), nil); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge env vars")
			}
			logger.Debug().Int("keys", len(envMap)).Msg("Loaded env vars")
		}
	}

	// 4. Unmarshal
	var f File
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &f,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &f, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &f, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return toml.Parser()
	}
}

// normalizeRules rewrites the short rule forms into {test = [...]}:
//
//	async = "a.js"          ->  async.test = ["a.js"]
//	async = ["a.js", "b"]   ->  async.test = ["a.js", "b"]
//	async.test = "a.js"     ->  async.test = ["a.js"]
//
// With splitLists, string tests are comma separated lists, as given in
// environment variables.
func normalizeRules(raw map[string]interface{}, splitLists bool) map[string]interface{} {
	for _, name := range RuleNames {
		v, ok := raw[name]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string, []interface{}:
			raw[name] = map[string]interface{}{"test": asList(val, splitLists)}
		case map[string]interface{}:
			if t, ok := val["test"]; ok {
				val["test"] = asList(t, splitLists)
			}
		}
	}
	return raw
}

func asList(v interface{}, split bool) []interface{} {
	switch val := v.(type) {
	case []interface{}:
		return val
	case string:
		if !split {
			return []interface{}{val}
		}
		var out []interface{}
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return []interface{}{v}
	}
}
