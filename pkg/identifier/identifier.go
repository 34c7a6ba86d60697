// Package identifier derives the key used to look a script up in the
// configuration and the asset map.
package identifier

import (
	"strings"

	"github.com/arthur-debert/scriptext/pkg/tags"
)

// Options control how a src attribute becomes an identifier.
type Options struct {
	// PublicPath is removed from the start of src once, when present
	PublicPath string

	// StripQuery drops a cache busting "?hash" suffix
	StripQuery bool
}

// FromTag returns the identifier of a script tag. Tags without a src yield "".
func FromTag(tag tags.Tag, opts Options) string {
	return FromSrc(tag.Src(), opts)
}

// FromSrc applies opts to a raw src value.
func FromSrc(src string, opts Options) string {
	name := src
	if prefix := normalizePublicPath(opts.PublicPath); prefix != "" {
		name = strings.TrimPrefix(name, prefix)
	}
	if opts.StripQuery {
		if i := strings.IndexByte(name, '?'); i >= 0 {
			name = name[:i]
		}
	}
	return name
}

func normalizePublicPath(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
