// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// UNESCAPE
// =============================================================================

// Unescape decodes literal \n, \" and \\ sequences. When the text is not a
// valid JSON string body it falls back to plain substitution.
func Unescape(s string) string {
	if !strings.Contains(s, `\n`) && !strings.Contains(s, `\"`) {
		return s
	}
	return decodeEscapes(s)
}

func decodeEscapes(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, `\\`, `\`)
}

// unescapeCode is the variant used on fenced code, which also triggers on
// a lone \\ and substitutes backslashes first when falling back.
func unescapeCode(s string) string {
	if !strings.Contains(s, `\"`) && !strings.Contains(s, `\n`) && !strings.Contains(s, `\\`) {
		return s
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, `\n`, "\n")
}

func unescapeStage(s string) string {
	return Unescape(unwrap(s))
}

// =============================================================================
// CODE
// =============================================================================

var (
	fencedRe = regexp.MustCompile("(?s)```(.*?)```")
	inlineRe = regexp.MustCompile("`([^`]+)`")
)

func fencedCodeStage(s string) string {
	return rewriteText(s, fencedRe, func(m []string) string {
		code := strings.TrimSpace(escapeHTML(unescapeCode(m[1])))
		return protect(`<pre class="code-block"><code>` + code + `</code></pre>`)
	})
}

func inlineCodeStage(s string) string {
	return rewriteText(s, inlineRe, func(m []string) string {
		return protect(`<code class="inline-code">` + escapeHTML(m[1]) + `</code>`)
	})
}

// =============================================================================
// EMPHASIS
// =============================================================================

var (
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	quoteBoxRe = regexp.MustCompile(`'([^']+)'`)
)

// wrapText encloses m[1] in protected tags, leaving the inner text open to
// later stages.
func wrapText(open, close string) func(m []string) string {
	return func(m []string) string {
		return protect(open) + escapeHTML(m[1]) + protect(close)
	}
}

func boldStage(s string) string {
	return rewriteText(s, boldRe, wrapText("<b>", "</b>"))
}

func quoteBoxStage(s string) string {
	return rewriteText(s, quoteBoxRe, wrapText(`<span class="box">`, "</span>"))
}

// =============================================================================
// LISTS
// =============================================================================

func bulletListStage(s string) string {
	lines := splitOutside(s)

	triggered := false
	for _, line := range lines {
		if strings.HasPrefix(line, "- ") {
			triggered = true
			break
		}
	}
	if !triggered {
		return s
	}

	var b strings.Builder
	inList := false
	for i, line := range lines {
		// Runs of blank lines collapse; only a leading or trailing one survives.
		if line == "" && i != 0 && i != len(lines)-1 {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			if !inList {
				b.WriteString(protect(`<ul class="msg-list">`))
				inList = true
			}
			b.WriteString(protect("<li>") + trimmed[2:] + protect("</li>"))
			continue
		}
		if inList {
			b.WriteString(protect("</ul>"))
			inList = false
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if inList {
		b.WriteString(protect("</ul>"))
	}
	return b.String()
}

// =============================================================================
// LINKS
// =============================================================================

var (
	linkRe  = regexp.MustCompile(`(?i)\b(?:https?|ftp)://[-A-Z0-9+&@#/%?=~_|!:,.;]*[-A-Z0-9+&@#/%=~_|]`)
	imageRe = regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|webp)$`)

	// keepRe matches runs that emoticon substitution must leave alone.
	keepRe = regexp.MustCompile(inlineRe.String() + "|" + linkRe.String())
)

// LinkStyle is the inline style carried by link spans.
const LinkStyle = "color:#00bfff; text-decoration:underline; cursor:pointer;"

// IsImageURL reports whether url ends in a displayable image extension.
func IsImageURL(url string) bool {
	return imageRe.MatchString(url)
}

func linksStage(s string) string {
	var images []string
	out := rewriteText(s, linkRe, func(m []string) string {
		url := html.EscapeString(m[0])
		if IsImageURL(m[0]) {
			images = append(images, `<img src="`+url+`" class="message-image" loading="lazy">`)
		}
		return protect(`<span class="link" data-href="` + url + `" style="` + LinkStyle + `">` + url + `</span>`)
	})
	if len(images) > 0 {
		out += protect(`<div class="message-images">` + strings.Join(images, "") + `</div>`)
	}
	return out
}

// =============================================================================
// EMOTICONS AND EMOJI
// =============================================================================

func emoticonStage(s string) string {
	return eachText(s, func(seg string) string {
		return escapeHTML(ReplaceEmoticons(norm.NFC.String(html.UnescapeString(seg))))
	})
}

func emojiStage(s string) string {
	return eachText(s, func(seg string) string {
		if strings.IndexFunc(seg, IsEmoji) < 0 {
			return seg
		}
		var b strings.Builder
		for _, r := range seg {
			if IsEmoji(r) {
				b.WriteString(protect(`<span class="emoji">` + string(r) + `</span>`))
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	})
}

// =============================================================================
// NEWLINES
// =============================================================================

func newlineStage(s string) string {
	return eachText(s, func(seg string) string {
		return strings.ReplaceAll(seg, "\n", protect("<br>"))
	})
}
