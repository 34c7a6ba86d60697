package pipeline

import (
	"testing"

	"github.com/arthur-debert/scriptext/pkg/assets"
	"github.com/arthur-debert/scriptext/pkg/chunks"
	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/identifier"
	"github.com/arthur-debert/scriptext/pkg/matcher"
	"github.com/arthur-debert/scriptext/pkg/selector"
	"github.com/arthur-debert/scriptext/pkg/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literals(values ...string) matcher.List {
	list := matcher.List{}
	for _, v := range values {
		list = append(list, matcher.Literal(v))
	}
	return list
}

func baseConfig() *selector.Config {
	return &selector.Config{
		DefaultAttribute: selector.Sync,
		Inline:           selector.Rule{Test: matcher.List{}},
		Async:            selector.Rule{Test: matcher.List{}},
		Defer:            selector.Rule{Test: matcher.List{}},
		Module:           selector.Rule{Test: matcher.List{}},
	}
}

func sampleTags() []tags.Tag {
	return []tags.Tag{
		{TagName: "link", Attributes: tags.Attributes{"href": "a.css", "rel": "stylesheet"}},
		{TagName: "script", Attributes: tags.Attributes{"src": "app.js"}},
		{TagName: "script", Attributes: tags.Attributes{"src": "vendor.js", "type": "text/javascript"}},
		{TagName: "script", CloseTag: true, InnerHTML: "window.x = 1"},
	}
}

func TestShouldProcessRejectsInvalidDefault(t *testing.T) {
	for _, def := range []string{"", "lazy", "module", "Sync"} {
		cfg := baseConfig()
		cfg.DefaultAttribute = selector.Attribute(def)

		ok, err := ShouldProcess(cfg)
		assert.False(t, ok)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "default %q", def)

		_, err = ProcessAll(nil, cfg, sampleTags(), "index.html")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "default %q", def)
	}
}

func TestShouldProcess(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *selector.Config)
		want   bool
	}{
		{"nothing configured", nil, false},
		{"nil tests count as empty", func(c *selector.Config) { *c = selector.Config{DefaultAttribute: selector.Sync} }, false},
		{"async default", func(c *selector.Config) { c.DefaultAttribute = selector.Async }, true},
		{"defer default", func(c *selector.Config) { c.DefaultAttribute = selector.Defer }, true},
		{"inline test", func(c *selector.Config) { c.Inline.Test = literals("a.js") }, true},
		{"async test", func(c *selector.Config) { c.Async.Test = literals("a.js") }, true},
		{"defer test", func(c *selector.Config) { c.Defer.Test = literals("a.js") }, true},
		{"module test", func(c *selector.Config) { c.Module.Test = literals("a.js") }, true},
		{"chunk rule only", func(c *selector.Config) {
			c.Defer.Chunks = []chunks.Rule{{HTMLPath: "index.html", ChunkName: matcher.Literal("a.js")}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			got, err := ShouldProcess(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldProcessNilConfig(t *testing.T) {
	_, err := ShouldProcess(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestProcessAllNoopWhenNothingConfigured(t *testing.T) {
	in := sampleTags()
	out, err := ProcessAll(nil, baseConfig(), in, "index.html")
	require.NoError(t, err)
	assert.Equal(t, sampleTags(), out)
}

func TestProcessAllIsIdempotentForAttributeOnlyConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.DefaultAttribute = selector.Defer
	cfg.Async.Test = literals("app.js")
	cfg.Module.Test = literals("app.js", "vendor.js")

	once, err := ProcessAll(nil, cfg, sampleTags(), "index.html")
	require.NoError(t, err)
	twice, err := ProcessAll(nil, cfg, once, "index.html")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestPriorityLaw(t *testing.T) {
	cfg := baseConfig()
	cfg.Async.Test = literals("app.js")
	cfg.Defer.Test = matcher.MustCompilePattern(`\.js$`)

	out, err := ProcessAll(nil, cfg, []tags.Tag{tags.NewScript("app.js")}, "index.html")
	require.NoError(t, err)
	assert.True(t, out[0].Flag("async"))
	assert.NotContains(t, out[0].Attributes, "defer")
}

func TestInlinePrecedenceLaw(t *testing.T) {
	cfg := baseConfig()
	cfg.Inline.Test = literals("app.js")
	cfg.Async.Test = literals("app.js")
	cfg.Defer.Test = literals("app.js")
	cfg.Module.Test = literals("app.js")
	m := assets.Map{"app.js": assets.Static("run()")}

	out, err := ProcessAll(m, cfg, []tags.Tag{tags.NewScript("app.js")}, "index.html")
	require.NoError(t, err)
	assert.Equal(t, tags.NewInlineScript("run()"), out[0])
	assert.Nil(t, out[0].Attributes)
}

func TestModuleOrthogonality(t *testing.T) {
	cfg := baseConfig()
	cfg.Defer.Test = literals("app.js")
	cfg.Module.Test = literals("app.js")

	out, err := ProcessAll(nil, cfg, []tags.Tag{tags.NewScript("app.js")}, "index.html")
	require.NoError(t, err)
	assert.Equal(t, tags.Attributes{"src": "app.js", "defer": true, "type": "module"}, out[0].Attributes)
}

func TestExampleAsyncAttribute(t *testing.T) {
	cfg := baseConfig()
	cfg.Async.Test = literals("app.js")

	out, err := ProcessAll(nil, cfg, []tags.Tag{{TagName: "script", Attributes: tags.Attributes{"src": "app.js"}}}, "index.html")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, true, out[0].Attributes["async"])
}

func TestExampleInlineReplacement(t *testing.T) {
	cfg := baseConfig()
	cfg.Inline.Test = literals("app.js")
	m := assets.Map{"app.js": assets.Static("console.log(1)")}

	out, err := ProcessAll(m, cfg, []tags.Tag{{TagName: "script", Attributes: tags.Attributes{"src": "app.js"}}}, "index.html")
	require.NoError(t, err)
	assert.Equal(t, []tags.Tag{{TagName: "script", CloseTag: true, InnerHTML: "console.log(1)"}}, out)
}

func TestExampleMissingAsset(t *testing.T) {
	cfg := baseConfig()
	cfg.Inline.Test = literals("missing.js")

	out, err := ProcessAll(assets.Map{}, cfg, []tags.Tag{tags.NewScript("missing.js")}, "index.html")
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAssetMissing))
	assert.Equal(t, "missing.js", errors.GetErrorDetails(err)["identifier"])
}

func TestExampleNonScriptPassThrough(t *testing.T) {
	link := tags.Tag{TagName: "link", Attributes: tags.Attributes{"href": "a.css"}}
	configs := []*selector.Config{baseConfig(), func() *selector.Config {
		c := baseConfig()
		c.DefaultAttribute = selector.Async
		c.Inline.Test = matcher.Predicate(func(string) bool { return true })
		c.Module.Test = matcher.Predicate(func(string) bool { return true })
		return c
	}()}

	for _, cfg := range configs {
		out, err := ProcessAll(nil, cfg, []tags.Tag{link}, "index.html")
		require.NoError(t, err)
		assert.Equal(t, []tags.Tag{link}, out)
	}
}

func TestProcessAllIsAtomic(t *testing.T) {
	cfg := baseConfig()
	cfg.Async.Test = literals("app.js")
	cfg.Inline.Test = literals("missing.js")
	in := []tags.Tag{tags.NewScript("app.js"), tags.NewScript("missing.js")}

	out, err := ProcessAll(assets.Map{}, cfg, in, "index.html")
	require.Error(t, err)
	assert.Nil(t, out)
	assert.NotContains(t, in[0].Attributes, "async", "tags before the failure keep their original attributes")
}

func TestProcessAllPreservesOrderAndLength(t *testing.T) {
	cfg := baseConfig()
	cfg.DefaultAttribute = selector.Defer
	in := sampleTags()

	out, err := ProcessAll(nil, cfg, in, "index.html")
	require.NoError(t, err)
	require.Len(t, out, len(in))
	assert.Equal(t, "link", out[0].TagName)
	assert.Equal(t, "app.js", out[1].Src())
	assert.Equal(t, "vendor.js", out[2].Src())
	assert.Equal(t, "window.x = 1", out[3].InnerHTML)
	assert.True(t, out[1].Flag("defer"))
}

func TestProcessAllUsesChunkRulesForOutputFile(t *testing.T) {
	cfg := baseConfig()
	cfg.Defer.Chunks = []chunks.Rule{{HTMLPath: "admin.html", ChunkName: matcher.Literal("vendor.js")}}
	in := []tags.Tag{tags.NewScript("vendor.js")}

	out, err := ProcessAll(nil, cfg, in, "admin.html")
	require.NoError(t, err)
	assert.True(t, out[0].Flag("defer"))

	out, err = ProcessAll(nil, cfg, in, "index.html")
	require.NoError(t, err)
	assert.False(t, out[0].Flag("defer"))
}

func TestProcessAllDerivesIdentifiers(t *testing.T) {
	cfg := baseConfig()
	cfg.Identifier = identifier.Options{PublicPath: "/static/", StripQuery: true}
	cfg.Inline.Test = literals("runtime.js")
	m := assets.Map{"runtime.js": assets.Static("boot()")}

	results, err := Resolve(m, cfg, []tags.Tag{
		tags.NewScript("/static/runtime.js?v=3"),
		{TagName: "meta"},
	}, "index.html")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "runtime.js", results[0].Identifier)
	require.NotNil(t, results[0].Decision)
	assert.True(t, results[0].Decision.Inline)
	assert.Equal(t, "boot()", results[0].Tag.InnerHTML)
	assert.Nil(t, results[1].Decision)
}
