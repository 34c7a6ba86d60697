package matcher

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		test       Test
		want       bool
	}{
		{"literal equal", "app.js", Literal("app.js"), true},
		{"literal is not a substring match", "vendor/app.js", Literal("app.js"), false},
		{"pattern match", "chunk-1a2b.js", MustCompilePattern(`^chunk-\w+\.js$`), true},
		{"pattern miss", "app.js", MustCompilePattern(`^chunk-`), false},
		{"pattern is unanchored", "static/runtime.js", MustCompilePattern(`runtime`), true},
		{"list any element", "b.js", List{Literal("a.js"), Literal("b.js")}, true},
		{"list none", "c.js", List{Literal("a.js"), Literal("b.js")}, false},
		{"empty list matches nothing", "a.js", List{}, false},
		{"nested list", "b.js", List{List{Literal("b.js")}}, true},
		{"predicate true", "a.mjs", Predicate(func(s string) bool { return s == "a.mjs" }), true},
		{"predicate false", "a.js", Predicate(func(string) bool { return false }), false},
		{"nil predicate", "a.js", Predicate(nil), false},
		{"nil test", "a.js", nil, false},
		{"zero pattern", "a.js", Pattern{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.identifier, tt.test))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(List{}))
	assert.True(t, IsEmpty(List(nil)))
	assert.False(t, IsEmpty(List{Literal("a.js")}))
	assert.False(t, IsEmpty(Literal("")))
	assert.False(t, IsEmpty(Predicate(func(string) bool { return false })))
}

func TestParse(t *testing.T) {
	t.Run("plain string is literal", func(t *testing.T) {
		test, err := Parse("app.js")
		require.NoError(t, err)
		assert.Equal(t, Literal("app.js"), test)
	})

	t.Run("slashes make a pattern", func(t *testing.T) {
		test, err := Parse(`/\.mjs$/`)
		require.NoError(t, err)
		require.IsType(t, Pattern{}, test)
		assert.True(t, Matches("main.mjs", test))
		assert.False(t, Matches("main.js", test))
		assert.Equal(t, `/\.mjs$/`, test.String())
	})

	t.Run("ignore case flag", func(t *testing.T) {
		test, err := Parse("/^APP/i")
		require.NoError(t, err)
		assert.True(t, Matches("app.js", test))
	})

	t.Run("absolute path stays literal", func(t *testing.T) {
		test, err := Parse("/static/app.js")
		require.NoError(t, err)
		assert.Equal(t, Literal("/static/app.js"), test)
	})

	t.Run("bad pattern fails", func(t *testing.T) {
		_, err := Parse("/(unclosed/")
		assert.Error(t, err)
	})
}

func TestCompilePatternFlags(t *testing.T) {
	tests := []struct {
		flags      string
		identifier string
		want       bool
	}{
		{"", "APP.js", false},
		{"i", "APP.js", true},
		{"m", "x\napp.js", true},
		{"s", "app\n.js", true},
		{"gu", "app.js", true},
	}

	for _, tt := range tests {
		t.Run("flags "+tt.flags, func(t *testing.T) {
			expr := `^app.js`
			if tt.flags == "s" {
				expr = `^app.\.js$`
			}
			p, err := CompilePattern(expr, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.MatchString(tt.identifier))
		})
	}
}

func TestPatternTimeoutIsLoggedAsNoMatch(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() { log.Logger = saved }()

	p, err := CompilePattern(`^(a+)+$`, "")
	require.NoError(t, err)
	p.re.MatchTimeout = time.Millisecond

	assert.False(t, p.MatchString(strings.Repeat("a", 40)+"b"))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"component":"matcher"`)
	assert.Contains(t, buf.String(), "Pattern evaluation failed")
}

func TestCompilePatternRejectsUnknownFlag(t *testing.T) {
	_, err := CompilePattern("a", "x")
	assert.ErrorContains(t, err, "unsupported pattern flag")
}

func TestParseList(t *testing.T) {
	list, err := ParseList([]string{"a.js", "/^b/"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, Matches("a.js", list))
	assert.True(t, Matches("b.js", list))
	assert.False(t, Matches("c.js", list))
	assert.Equal(t, "[a.js, /^b/]", list.String())

	_, err = ParseList([]string{"ok.js", "/[/"})
	assert.Error(t, err)
}
