package catalog

import (
	"regexp"
	"strings"
)

var (
	// a run of <br> and block tags (p, div, lists, headings), with the
	// whitespace around them, becomes a single line break
	breakTags = regexp.MustCompile(`(?i)\s*(?:(?:<br\s*/?>|</?(?:p|div|ul|ol|li|h[1-6])(?:\s[^>]*)?>)\s*)+`)
	anyTag    = regexp.MustCompile(`<[^>]*>`)

	// The provider sometimes appends a translated copy of the text after
	// the primary one. Everything from the first such heading on is dropped.
	localeMarker = regexp.MustCompile(`(?im)^[ \t]*(?:español|espanol|spanish)\b`)

	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// NormalizeDescription turns the provider's description fields into plain
// text. rich is the HTML field and wins when it has content; raw is the
// plain fallback. It returns nil when nothing is left.
func NormalizeDescription(rich, raw string) *string {
	text := rich
	if strings.TrimSpace(text) == "" {
		text = raw
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = breakTags.ReplaceAllString(text, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = entities.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	if loc := localeMarker.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[:loc[0]])
	}
	if text == "" {
		return nil
	}
	return &text
}
