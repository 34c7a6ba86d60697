// Package rewriter applies a selector decision to a tag. It never changes the
// tag it is given: attribute updates are made on a clone and inline decisions
// produce a fresh node.
package rewriter

import (
	"github.com/arthur-debert/scriptext/pkg/assets"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/logging"
	"github.com/arthur-debert/scriptext/pkg/selector"
	"github.com/arthur-debert/scriptext/pkg/tags"
)

// Rewrite returns the tag that replaces tag once d is applied. id is the
// identifier d was selected for and keys the asset map for inline decisions.
// Non-script tags come back unchanged.
func Rewrite(tag tags.Tag, id string, d selector.Decision, m assets.Map) (tags.Tag, error) {
	if !tag.IsScript() {
		return tag, nil
	}
	if d.Inline {
		return inline(id, m)
	}
	return updateAttributes(tag, d), nil
}

func inline(id string, m assets.Map) (tags.Tag, error) {
	asset, ok := m.Lookup(id)
	if !ok {
		return tags.Tag{}, errors.MissingAssetError(id)
	}

	source, err := asset.Source()
	if err != nil {
		return tags.Tag{}, errors.Wrapf(err, errors.ErrAssetRead, "%s: cannot read asset '%s'", errors.Prefix, id).
			WithDetail("identifier", id)
	}

	replaced := tags.NewInlineScript(source)
	logger := logging.GetLogger("rewriter")
	logger.Debug().
		Str("identifier", id).
		Int("bytes", len(source)).
		Msg("Replaced by inline script")
	return replaced, nil
}

func updateAttributes(tag tags.Tag, d selector.Decision) tags.Tag {
	updated := tag.Clone()
	set := func(name string, value interface{}) {
		if updated.Attributes == nil {
			updated.Attributes = tags.Attributes{}
		}
		updated.Attributes[name] = value
	}

	if flag := d.Flag(); flag != "" {
		set(flag, true)
	}
	// possibly overwrite an existing type attribute
	if d.Module {
		set(tags.AttrType, tags.ModuleType)
	}

	logger := logging.GetLogger("rewriter")
	logger.Debug().
		Str("tag", updated.Describe()).
		Msg("Updated script attributes")
	return updated
}
