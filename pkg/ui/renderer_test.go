package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/selector"
	"github.com/arthur-debert/scriptext/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &ui.TerminalRenderer{}, ui.NewRenderer(ui.FormatTerminal, &buf))
	assert.IsType(t, &ui.JSONRenderer{}, ui.NewRenderer(ui.FormatJSON, &buf))
	assert.IsType(t, &ui.TextRenderer{}, ui.NewRenderer(ui.FormatText, &buf))
	assert.IsType(t, &ui.TextRenderer{}, ui.NewRenderer(ui.FormatAuto, &buf))
}

func TestTextRendererReports(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatText, &buf)

	reports := []ui.Report{
		ui.NewReport("index.html", sampleResults()),
		ui.SkippedReport("about.html"),
	}
	require.NoError(t, r.RenderReports(reports))

	out := buf.String()
	assert.Contains(t, out, "index.html: 6 tags, 5 scripts\n")
	assert.Contains(t, out, "  [1] runtime.js: inline (inline)\n")
	assert.Contains(t, out, "  [2] app.js: async, module (test)\n")
	assert.Contains(t, out, "  [3] vendor.js: defer (chunk)\n")
	assert.Contains(t, out, "about.html: skipped, nothing configured\n")
}

func TestTextRendererDryRun(t *testing.T) {
	var buf bytes.Buffer
	rep := ui.NewReport("index.html", nil)
	rep.DryRun = true
	require.NoError(t, ui.NewRenderer(ui.FormatText, &buf).RenderReports([]ui.Report{rep}))
	assert.Equal(t, "index.html: 0 tags, 0 scripts (dry run)\n", buf.String())
}

func TestTextRendererEntry(t *testing.T) {
	var buf bytes.Buffer
	e := ui.NewEntry(0, "app.js", selector.Decision{Attribute: selector.Defer, Reason: selector.ReasonTest})
	require.NoError(t, ui.NewRenderer(ui.FormatText, &buf).RenderEntry("index.html", e))
	assert.Equal(t, "app.js on index.html: defer (test)\n", buf.String())
}

func TestTerminalRendererReports(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatTerminal, &buf)

	require.NoError(t, r.RenderReports([]ui.Report{
		ui.NewReport("index.html", sampleResults()),
		ui.SkippedReport("about.html"),
	}))

	out := buf.String()
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "runtime.js")
	assert.Contains(t, out, "vendor.js")
	assert.Contains(t, out, "Script")
	assert.Contains(t, out, "nothing configured")
}

func TestJSONRendererReports(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, r.RenderReports([]ui.Report{ui.NewReport("index.html", sampleResults())}))

	var decoded []ui.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "index.html", decoded[0].OutputFile)
	assert.Len(t, decoded[0].Entries, 5)
	assert.Equal(t, "app.js", decoded[0].Entries[1].Identifier)
}

func TestJSONRendererEmptyReports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatJSON, &buf).RenderReports(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONRendererError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.MissingAssetError("app.js")
	require.NoError(t, ui.NewRenderer(ui.FormatJSON, &buf).RenderError(err))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded["error"], "scriptext: no asset with href 'app.js'")
	assert.Equal(t, "ASSET_MISSING", decoded["code"])
	assert.Equal(t, map[string]interface{}{"identifier": "app.js"}, decoded["details"])
}

func TestTextRendererError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatText, &buf).RenderError(errors.ConfigurationError("eager")))
	assert.Contains(t, buf.String(), "Error: ")
	assert.Contains(t, buf.String(), `scriptext: invalid default attribute "eager"`)
}

func TestGetStyleUnknown(t *testing.T) {
	assert.Equal(t, "plain", ui.GetStyle("NoSuchStyle").Render("plain"))
}

func TestLoadStylesFromDataRejectsBadYAML(t *testing.T) {
	assert.Error(t, ui.LoadStylesFromData([]byte("colors: [")))
}
