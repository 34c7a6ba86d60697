package config

import (
	"strings"

	"github.com/arthur-debert/scriptext/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats for Generate
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

const generatedHeader = `# scriptext configuration
#
# default_attribute: sync | async | defer
# Tests are literal identifiers or /patterns/flags. Chunk rules scope a
# chunk name to one output file:
#
#   [[defer.chunks]]
#   html_path = "index.html"
#   chunk_name = ["vendor.js"]
`

// Generate renders f as a config file in the given format.
func Generate(f File, format string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case FormatTOML, "":
		data, err = toml.Marshal(f)
	case FormatYAML, "yml":
		data, err = yaml.Marshal(f)
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format).
			WithDetail("format", format)
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return generatedHeader + "\n" + string(data), nil
}
