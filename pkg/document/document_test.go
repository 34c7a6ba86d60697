package document

import (
	"testing"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/arthur-debert/scriptext/pkg/tags"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html>
<head>
<title>Demo</title>
<link rel="stylesheet" href="a.css"/>
<script src="runtime.js"></script>
</head>
<body>
<div id="root"></div>
<script src="app.js" type="text/javascript" async="async"></script>
</body>
</html>`

func TestParseCollectsHeadThenBody(t *testing.T) {
	d, err := Parse([]byte(page))
	require.NoError(t, err)

	got := d.Tags()
	require.Len(t, got, 5)

	names := []string{}
	for _, tag := range got {
		names = append(names, tag.TagName)
	}
	assert.Equal(t, []string{"title", "link", "script", "div", "script"}, names)

	assert.Equal(t, "Demo", got[0].InnerHTML)
	assert.Equal(t, tags.Attributes{"rel": "stylesheet", "href": "a.css"}, got[1].Attributes)
	assert.Equal(t, "runtime.js", got[2].Src())
	assert.True(t, got[2].CloseTag)
	assert.True(t, got[4].Flag("async"), "boolean attributes are read as flags")
	assert.Equal(t, "text/javascript", got[4].Value("type"))
}

func TestTagsReturnsCopies(t *testing.T) {
	d, err := Parse([]byte(page))
	require.NoError(t, err)

	first := d.Tags()
	first[2].Attributes["defer"] = true
	assert.NotContains(t, d.Tags()[2].Attributes, "defer")
}

func TestApply(t *testing.T) {
	d, err := Parse([]byte(page))
	require.NoError(t, err)

	out := d.Tags()
	out[2] = tags.NewInlineScript("boot()")
	out[4].Attributes["defer"] = true
	out[4].Attributes["type"] = "module"
	require.NoError(t, d.Apply(out))

	data, err := d.Bytes()
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<script><![CDATA[boot()]]></script>")
	assert.NotContains(t, html, `src="runtime.js"`)
	assert.Contains(t, html, `defer="defer"`)
	assert.Contains(t, html, `type="module"`)
	assert.Contains(t, html, `<div id="root"></div>`)

	reparsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, out, reparsed.Tags())
}

func TestApplyInlineSourceWithCDATAEnd(t *testing.T) {
	sources := []string{
		"if(x[y[i]]>0){run()}",
		"]]>",
		"a]]>b]]>c",
		"a]]]>",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			d, err := Parse([]byte(page))
			require.NoError(t, err)

			out := d.Tags()
			out[2] = tags.NewInlineScript(source)
			require.NoError(t, d.Apply(out))

			data, err := d.Bytes()
			require.NoError(t, err)

			reparsed, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, source, reparsed.Tags()[2].InnerHTML)
		})
	}
}

func TestCDATASections(t *testing.T) {
	assert.Nil(t, cdataSections(""))
	assert.Equal(t, []string{"boot()"}, cdataSections("boot()"))
	assert.Equal(t, []string{"x[y[i]]", ">0"}, cdataSections("x[y[i]]>0"))
}

func TestApplyLengthMismatch(t *testing.T) {
	d, err := Parse([]byte(page))
	require.NoError(t, err)

	err = d.Apply(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestLoadAndSave(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/dist/index.html", []byte(page), 0644))

	d, err := Load(fsys, "/dist/index.html")
	require.NoError(t, err)

	out := d.Tags()
	out[2].Attributes["async"] = true
	require.NoError(t, d.Apply(out))
	require.NoError(t, d.Save(fsys, "/out/index.html"))

	saved, err := afero.ReadFile(fsys, "/out/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(saved), `async="async"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.html")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}
