package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// Text holds the two views every parser works against. Raw keeps line
// structure for box/column patterns, Normalized is a single line for
// free-flowing sentence patterns.
type Text struct {
	Raw        string
	Normalized string
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	inlineSpace   = regexp.MustCompile(`[ \t]+`)

	ocrReplacer = strings.NewReplacer(
		"\u2018", "'", "\u2019", "'", "\u201c", `"`, "\u201d", `"`,
		"\u2013", "-", "\u2014", "-", "\u00a0", " ",
		"\ufb01", "fi", "\ufb02", "fl", "\u2022", " ",
		"|", " ",
	)
)

// NormalizeText cleans one document's text. Empty input gives empty views.
func NormalizeText(raw string) Text {
	if raw == "" {
		return Text{}
	}

	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = ocrReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)

	// DO NOT collapse '\n' in the raw view; table patterns need line structure
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(inlineSpace.ReplaceAllString(l, " "))
	}
	rawView := strings.TrimSpace(strings.Join(lines, "\n"))

	return Text{
		Raw:        rawView,
		Normalized: strings.TrimSpace(whitespaceRun.ReplaceAllString(rawView, " ")),
	}
}

// NormalizePages joins per-page text with a newline before normalizing.
func NormalizePages(pages []string) Text {
	return NormalizeText(strings.Join(pages, "\n"))
}

// Lines returns the non-empty lines of the raw view.
func (t Text) Lines() []string {
	if t.Raw == "" {
		return nil
	}
	rawLines := strings.Split(t.Raw, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
