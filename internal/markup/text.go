// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// FRAGMENT INSPECTION
// =============================================================================

// Text returns the text content of a formatted fragment. Line breaks become
// newlines and list items end with one.
func Text(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "li" {
				b.WriteByte('\n')
			}
		}
	}
}

// Links returns the data-href of every link span in a fragment, in order.
func Links(fragment string) []string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var links []string
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return links
		}
		if tt != html.StartTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "span" {
			continue
		}
		var isLink bool
		var href string
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			switch string(key) {
			case "class":
				isLink = hasClass(string(val), "link")
			case "data-href":
				href = string(val)
			}
		}
		if isLink && href != "" {
			links = append(links, href)
		}
	}
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

// =============================================================================
// TERMINAL PRE-PASS
// =============================================================================

// Segment is a run of raw message text, either prose or fenced code.
type Segment struct {
	Code bool
	Text string
}

// SplitFenced decodes raw and splits it into prose and fenced code runs.
// Code runs are trimmed; empty prose runs are dropped.
func SplitFenced(raw string) []Segment {
	s := Unescape(unwrap(raw))
	var segs []Segment
	last := 0
	for _, loc := range fencedRe.FindAllStringSubmatchIndex(s, -1) {
		if prose := s[last:loc[0]]; strings.TrimSpace(prose) != "" {
			segs = append(segs, Segment{Text: prose})
		}
		segs = append(segs, Segment{Code: true, Text: strings.TrimSpace(unescapeCode(s[loc[2]:loc[3]]))})
		last = loc[1]
	}
	if prose := s[last:]; strings.TrimSpace(prose) != "" {
		segs = append(segs, Segment{Text: prose})
	}
	return segs
}

// Plain applies emoticon substitution to prose, skipping inline code and
// URLs. The result is markdown-ish text for terminal rendering.
func Plain(prose string) string {
	var b strings.Builder
	last := 0
	for _, loc := range keepRe.FindAllStringIndex(prose, -1) {
		b.WriteString(ReplaceEmoticons(norm.NFC.String(prose[last:loc[0]])))
		b.WriteString(prose[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(ReplaceEmoticons(norm.NFC.String(prose[last:])))
	return b.String()
}
