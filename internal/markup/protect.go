// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// =============================================================================
// PROTECTED REGIONS
// =============================================================================

// Generated markup is wrapped in these private-use runes. Stages rewrite only
// the text between protected regions. The unescape stage strips any that
// arrive in user input.
const (
	protOpen  = '\uE000'
	protClose = '\uE001'
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes &, < and > only. Output is text content, so quotes
// are left alone.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// protect marks generated markup so later stages skip it.
func protect(markup string) string {
	return string(protOpen) + markup + string(protClose)
}

// unwrap removes all sentinel runes.
func unwrap(s string) string {
	return strings.Map(func(r rune) rune {
		if r == protOpen || r == protClose {
			return -1
		}
		return r
	}, s)
}

// eachText applies fn to every unprotected run of s and copies protected
// regions through unchanged. An unbalanced open sentinel protects the rest.
func eachText(s string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexRune(s, protOpen)
		if i < 0 {
			b.WriteString(fn(s))
			break
		}
		if i > 0 {
			b.WriteString(fn(s[:i]))
		}
		j := strings.IndexRune(s[i:], protClose)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		end := i + j + utf8.RuneLen(protClose)
		b.WriteString(s[i:end])
		s = s[end:]
	}
	return b.String()
}

// rewriteText runs re over the decoded text of every unprotected run.
// Unmatched text is re-escaped; each match is replaced by repl, which
// receives the decoded submatches and must return escaped or protected
// output.
func rewriteText(s string, re *regexp.Regexp, repl func(m []string) string) string {
	return eachText(s, func(seg string) string {
		raw := html.UnescapeString(seg)
		locs := re.FindAllStringSubmatchIndex(raw, -1)
		if len(locs) == 0 {
			return seg
		}

		var b strings.Builder
		last := 0
		for _, loc := range locs {
			b.WriteString(escapeHTML(raw[last:loc[0]]))
			groups := make([]string, len(loc)/2)
			for g := range groups {
				if loc[2*g] >= 0 {
					groups[g] = raw[loc[2*g]:loc[2*g+1]]
				}
			}
			b.WriteString(repl(groups))
			last = loc[1]
		}
		b.WriteString(escapeHTML(raw[last:]))
		return b.String()
	})
}

// splitOutside splits s on newlines that are not inside a protected region.
func splitOutside(s string) []string {
	var lines []string
	var cur strings.Builder
	inside := false
	for _, r := range s {
		switch {
		case r == protOpen:
			inside = true
		case r == protClose:
			inside = false
		case r == '\n' && !inside:
			lines = append(lines, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(lines, cur.String())
}
