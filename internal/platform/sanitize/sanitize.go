// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package sanitize normalizes user-supplied text before it reaches storage,
email rendering, or any other sink.

It wraps bluemonday allow-list policies behind a small, failure-free API.

Contract:

  - Sanitization never fails. Every function returns a safe (possibly
    empty) string instead of an error — its job is defensive
    normalization, not gatekeeping.
  - Plain-text contexts strip ALL markup. Rich contexts (news bodies,
    email templates) keep only a fixed tag/attribute allow-list.
  - Content must pass through exactly one sanitization pass appropriate to
    its context before persistence or rendering.
*/
package sanitize

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxFilenameLength is the cap applied by [Filename].
const MaxFilenameLength = 100

var (
	// richPolicy keeps the markup needed by news bodies and email layouts.
	richPolicy = newRichPolicy()

	// strictPolicy strips every tag and attribute.
	strictPolicy = bluemonday.StrictPolicy()

	// templateVarRegex matches {{key}} placeholders in email templates.
	templateVarRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

	// filenameAllowed keeps only characters safe across filesystems.
	filenameAllowed = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

	// dangerousSchemes are rejected by [URL] even if they would parse.
	// Checked as prefixes after lowercasing and trimming.
	dangerousSchemes = []string{
		"javascript:", "data:", "vbscript:", "file:", "blob:", "about:",
	}
)

// newRichPolicy builds the allow-list used for rich HTML content.
func newRichPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	// Headings, paragraphs, inline formatting
	policy.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr",
		"b", "strong", "i", "em", "u", "s", "sub", "sup", "blockquote", "pre", "code",
	)

	// Lists and tables
	policy.AllowElements("ul", "ol", "li", "table", "thead", "tbody", "tfoot", "tr", "th", "td")

	// Basic layout containers
	policy.AllowElements("div", "span")

	// Anchors and images with a restricted attribute set
	policy.AllowAttrs("href", "title").OnElements("a")
	policy.AllowAttrs("src", "alt", "title", "width", "height", "align").OnElements("img")

	// Shared presentational attributes
	policy.AllowAttrs("class", "style").Globally()
	policy.AllowAttrs("width", "height", "align").OnElements("table", "th", "td", "div")

	// Safe URI schemes only; data: URIs stay disallowed by default.
	policy.AllowURLSchemes("http", "https", "mailto", "tel")
	policy.RequireParseableURLs(true)

	return policy
}

// RichText filters HTML down to the fixed allow-list.
//
// Script tags, event handler attributes, and unknown elements are removed
// entirely — not escaped — so the output is safe to render as HTML.
func RichText(input string) string {
	return richPolicy.Sanitize(input)
}

// PlainText strips all markup from a string.
//
// Used for names and free-text fields destined for storage or non-HTML
// contexts.
func PlainText(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// EscapeForDisplay escapes the five HTML metacharacters for safe
// interpolation into markup.
func EscapeForDisplay(input string) string {
	return html.EscapeString(input)
}

// ApplyTemplate substitutes {{key}} placeholders in an HTML template with
// sanitized variable values.
//
// Variable values are passed through [PlainText] before substitution, so a
// value can never introduce new tags into the otherwise-trusted template.
// Unknown placeholders are left untouched.
func ApplyTemplate(template string, variables map[string]string) string {
	return templateVarRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := templateVarRegex.FindStringSubmatch(match)[1]
		value, ok := variables[key]
		if !ok {
			return match
		}
		return PlainText(value)
	})
}

// URL validates and cleans a user-supplied URL.
//
// It returns ("", false) — never an error — for anything rejected:
// unparseable input, a scheme on the dangerous blocklist, a non-http(s)
// scheme, or plain http when requireHTTPS is set (production posture).
func URL(raw string, requireHTTPS bool) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	lowered := strings.ToLower(trimmed)
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lowered, scheme) {
			return "", false
		}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", false
	}

	switch parsed.Scheme {
	case "https":
	case "http":
		if requireHTTPS {
			return "", false
		}
	default:
		return "", false
	}

	if parsed.Host == "" {
		return "", false
	}

	return parsed.String(), true
}

// Filename strips path separators and traversal sequences from a filename,
// restricts it to a safe character set, and truncates it to
// [MaxFilenameLength].
func Filename(name string) string {
	cleaned := strings.ReplaceAll(name, "\\", "/")

	// Keep only the final path element, then drop any remaining traversal dots.
	if index := strings.LastIndex(cleaned, "/"); index >= 0 {
		cleaned = cleaned[index+1:]
	}
	cleaned = strings.ReplaceAll(cleaned, "..", "")

	cleaned = filenameAllowed.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "._")

	if len(cleaned) > MaxFilenameLength {
		cleaned = cleaned[:MaxFilenameLength]
	}
	return cleaned
}

// # Email Templates

// NotificationLayout is the shared HTML frame for outbound notifications.
// Variable values substituted into it must go through [ApplyTemplate].
const NotificationLayout = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #1a5632;">GranFondo Yalova</h2>
<p>Merhaba {{name}},</p>
%s
<hr>
<p style="color: #888; font-size: 12px;">GranFondo Yalova — {{year}}</p>
</div>`

// BuildNotification renders a notification body into the shared layout and
// substitutes sanitized variables in a single pass.
func BuildNotification(bodyHTML string, variables map[string]string) string {
	return ApplyTemplate(fmt.Sprintf(NotificationLayout, RichText(bodyHTML)), variables)
}
