// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gfyalova/granfondo/internal/platform/sanitize"
)

/*
TestRichText verifies the allow-list keeps legitimate markup and removes
scripts, event handlers, and dangerous URL schemes entirely.
*/
func TestRichText(t *testing.T) {
	t.Run("keeps allowed markup", func(t *testing.T) {
		input := `<h2>Parkur</h2><p>Start <strong>Yalova</strong> meydanı.</p><ul><li>140 km</li></ul>`
		assert.Equal(t, input, sanitize.RichText(input))
	})

	t.Run("strips script tags", func(t *testing.T) {
		output := sanitize.RichText(`<p>hello</p><script>alert('x')</script>`)
		assert.Equal(t, "<p>hello</p>", output)
		assert.NotContains(t, output, "script")
	})

	t.Run("strips event handlers", func(t *testing.T) {
		output := sanitize.RichText(`<p onclick="steal()">hello</p>`)
		assert.Equal(t, "<p>hello</p>", output)
	})

	t.Run("strips javascript hrefs", func(t *testing.T) {
		output := sanitize.RichText(`<a href="javascript:alert(1)">link</a>`)
		assert.NotContains(t, output, "javascript")
	})

	t.Run("keeps https links", func(t *testing.T) {
		input := `<a href="https://granfondoyalova.com" title="site">site</a>`
		assert.Contains(t, sanitize.RichText(input), `href="https://granfondoyalova.com"`)
	})

	t.Run("removes iframes and forms", func(t *testing.T) {
		output := sanitize.RichText(`<iframe src="https://evil.example"></iframe><form action="/x"><input></form>`)
		assert.NotContains(t, output, "iframe")
		assert.NotContains(t, output, "form")
	})
}

/*
TestPlainText verifies all markup is removed and surrounding whitespace
trimmed.
*/
func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain passes through", "Ahmet Yılmaz", "Ahmet Yılmaz"},
		{"tags stripped", "<b>Ahmet</b> <i>Yılmaz</i>", "Ahmet Yılmaz"},
		{"script stripped", `hi<script>alert(1)</script>`, "hi"},
		{"whitespace trimmed", "  Ahmet  ", "Ahmet"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.PlainText(tt.input))
		})
	}
}

func TestEscapeForDisplay(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", sanitize.EscapeForDisplay("<b>hi</b>"))
	assert.Equal(t, "a &amp; b", sanitize.EscapeForDisplay("a & b"))
}

/*
TestApplyTemplate verifies placeholder substitution sanitizes values and
leaves unknown placeholders intact.
*/
func TestApplyTemplate(t *testing.T) {
	t.Run("substitutes variables", func(t *testing.T) {
		output := sanitize.ApplyTemplate("<p>Merhaba {{name}}</p>", map[string]string{"name": "Ayşe"})
		assert.Equal(t, "<p>Merhaba Ayşe</p>", output)
	})

	t.Run("sanitizes injected values", func(t *testing.T) {
		output := sanitize.ApplyTemplate("<p>{{name}}</p>", map[string]string{
			"name": `<script>alert(1)</script>Ayşe`,
		})
		assert.Equal(t, "<p>Ayşe</p>", output)
	})

	t.Run("leaves unknown placeholders", func(t *testing.T) {
		output := sanitize.ApplyTemplate("<p>{{missing}}</p>", map[string]string{"name": "x"})
		assert.Equal(t, "<p>{{missing}}</p>", output)
	})

	t.Run("handles spaced placeholders", func(t *testing.T) {
		output := sanitize.ApplyTemplate("{{ name }}", map[string]string{"name": "Ayşe"})
		assert.Equal(t, "Ayşe", output)
	})
}

/*
TestURL covers scheme allow-listing, the dangerous-scheme blocklist, and
the production HTTPS requirement.
*/
func TestURL(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		requireHTTPS bool
		want         string
		ok           bool
	}{
		{"https accepted", "https://granfondoyalova.com/kayit", false, "https://granfondoyalova.com/kayit", true},
		{"http accepted when allowed", "http://localhost:3000", false, "http://localhost:3000", true},
		{"http rejected when https required", "http://granfondoyalova.com", true, "", false},
		{"https accepted when required", "https://granfondoyalova.com", true, "https://granfondoyalova.com", true},
		{"javascript scheme", "javascript:alert(1)", false, "", false},
		{"data scheme", "data:text/html,<script>1</script>", false, "", false},
		{"file scheme", "file:///etc/passwd", false, "", false},
		{"uppercase scheme blocked", "JAVASCRIPT:alert(1)", false, "", false},
		{"ftp rejected", "ftp://host/file", false, "", false},
		{"missing host", "https://", false, "", false},
		{"empty", "", false, "", false},
		{"whitespace only", "   ", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sanitize.URL(tt.raw, tt.requireHTTPS)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestFilename covers traversal stripping, character restriction, and the
length cap.
*/
func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "rota.pdf", "rota.pdf"},
		{"unix traversal", "../../etc/passwd", "passwd"},
		{"windows traversal", `..\..\windows\system32\cmd.exe`, "cmd.exe"},
		{"embedded traversal", "a..b.txt", "ab.txt"},
		{"unsafe chars replaced", "yol haritası.png", "yol_haritas_.png"},
		{"leading dots trimmed", ".hidden", "hidden"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.Filename(tt.input))
		})
	}

	t.Run("caps length", func(t *testing.T) {
		long := strings.Repeat("a", 300) + ".pdf"
		got := sanitize.Filename(long)
		assert.Len(t, got, sanitize.MaxFilenameLength)
	})
}

/*
TestBuildNotification verifies the shared layout wraps the body and
substitutes sanitized variables in one pass.
*/
func TestBuildNotification(t *testing.T) {
	output := sanitize.BuildNotification(
		`<p>Başvurunuz <strong>alındı</strong>.</p><script>x()</script>`,
		map[string]string{"name": "<i>Ayşe</i>", "year": "2026"},
	)

	assert.Contains(t, output, "Merhaba Ayşe,")
	assert.Contains(t, output, "<strong>alındı</strong>")
	assert.Contains(t, output, "— 2026")
	assert.NotContains(t, output, "script")
	assert.NotContains(t, output, "<i>")
}
