// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello there", "hello there"},
		{"bold and emoticon", "Hello **world** :)", `Hello <b>world</b> <span class="emoji">😊</span>`},
		{"escaped newline", `line1\nline2`, "line1<br>line2"},
		{"real newline", "line1\nline2", "line1<br>line2"},
		{"malformed escape", `bad \x \n end`, `bad \x <br> end`},
		{"inline code keeps emoticon", "use `a :) b` now", `use <code class="inline-code">a :) b</code> now`},
		{"quote box", "say 'hi' now", `say <span class="box">hi</span> now`},
		{"ampersand", "a & b", "a &amp; b"},
		{
			"fenced code",
			"look:\n```\n<b>x</b> :)\n```",
			`look:<br><pre class="code-block"><code>&lt;b&gt;x&lt;/b&gt; :)</code></pre>`,
		},
		{
			"bullet list",
			"Items:\n- one\n- two\nend",
			`Items:<br><ul class="msg-list"><li>one</li><li>two</li></ul>end<br>`,
		},
		{
			"image link",
			"visit https://example.com/x.png",
			`visit <span class="link" data-href="https://example.com/x.png" style="` + LinkStyle + `">https://example.com/x.png</span>` +
				`<div class="message-images"><img src="https://example.com/x.png" class="message-image" loading="lazy"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_EscapesMarkupCharacters(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script> & more",
		"**<i>bold</i>**",
		"'<img src=x>'",
		"- <b>item</b>\n- two",
		"```\n</code></pre><script>\n```",
		"`<tag>`",
	}

	for _, in := range inputs {
		out := Format(in)
		z := html.NewTokenizer(strings.NewReader(out))
		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				break
			}
			if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
				name, _ := z.TagName()
				switch string(name) {
				case "b", "br", "span", "code", "pre", "ul", "li":
				default:
					t.Errorf("Format(%q) produced <%s>: %s", in, name, out)
				}
			}
		}
	}
}

func TestFormat_FencedCodeRoundTrip(t *testing.T) {
	code := "if a < b && c > d {\n\treturn \"x\"\n}"
	out := Format("before\n```\n  " + code + "  \n```\nafter")

	const open = `<pre class="code-block"><code>`
	start := strings.Index(out, open)
	require.GreaterOrEqual(t, start, 0, out)
	end := strings.Index(out, "</code></pre>")
	require.Greater(t, end, start)

	inner := out[start+len(open) : end]
	assert.Equal(t, code, html.UnescapeString(inner))
	assert.NotContains(t, inner, "<")
}

func TestFormat_EscapedCode(t *testing.T) {
	out := Format("```" + `say \"hi\"\nbye` + "```")
	assert.Equal(t, `<pre class="code-block"><code>say "hi"`+"\n"+`bye</code></pre>`, out)
}

func TestFormat_LinksSkipEmoticons(t *testing.T) {
	out := Format("port https://example.com/a:3 here")
	assert.Contains(t, out, `data-href="https://example.com/a:3"`)
	assert.NotContains(t, out, "😺")
}

func TestFormat_Emoticons(t *testing.T) {
	assert.Contains(t, Format("love <3"), `<span class="emoji">❤</span>`)
	assert.Contains(t, Format("sad :'("), `<span class="emoji">😢</span>`)
	assert.Contains(t, Format("**:D**"), `<b><span class="emoji">😄</span></b>`)
}

func TestFormat_ImageExtensionCaseInsensitive(t *testing.T) {
	out := Format("https://x.io/A.PNG and https://x.io/page")
	assert.Equal(t, 1, strings.Count(out, `<img `))
	assert.Equal(t, 2, strings.Count(out, `class="link"`))
	assert.True(t, strings.HasSuffix(out, "</div>"))
}

func TestFormat_StripsSentinels(t *testing.T) {
	out := Format("a\uE000<b>\uE001b")
	assert.Equal(t, "a&lt;b&gt;b", out)
	assert.NotContains(t, out, string(protOpen))
	assert.NotContains(t, out, string(protClose))
}

func TestFormat_FencedCodeKeepsBytes(t *testing.T) {
	code := "cafe\u0301 = 1"
	out := Format("```" + code + "```")
	assert.Equal(t, `<pre class="code-block"><code>`+code+`</code></pre>`, out)

	segs := SplitFenced("see\n```" + code + "```")
	require.Len(t, segs, 2)
	assert.True(t, segs[1].Code)
	assert.Equal(t, code, segs[1].Text)
}

func TestFormat_InlineCodeKeepsBytes(t *testing.T) {
	out := Format("e\u0301 `x\u0301`")
	assert.Contains(t, out, "<code class=\"inline-code\">x\u0301</code>")
}

// =============================================================================
// STAGE TESTS
// =============================================================================

func TestBoldStage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a **b** c", "a <b>b</b> c"},
		{"**x &amp; y**", "<b>x &amp; y</b>"},
		{"no bold *here*", "no bold *here*"},
	}
	for _, tt := range tests {
		if got := unwrap(boldStage(tt.in)); got != tt.want {
			t.Errorf("boldStage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteBoxStage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"say 'hi' now", `say <span class="box">hi</span> now`},
		{"it's", "it's"},
		{"'a' and 'b'", `<span class="box">a</span> and <span class="box">b</span>`},
	}
	for _, tt := range tests {
		if got := unwrap(quoteBoxStage(tt.in)); got != tt.want {
			t.Errorf("quoteBoxStage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBulletListStage(t *testing.T) {
	got := unwrap(bulletListStage("intro\n- one\n- two\nend"))
	assert.Equal(t, "intro\n"+`<ul class="msg-list"><li>one</li><li>two</li></ul>`+"end\n", got)

	// Without a list line the text passes through untouched.
	assert.Equal(t, "a\n-b", bulletListStage("a\n-b"))
}

// =============================================================================
// PIPELINE TESTS
// =============================================================================

func TestDefaultPipelineOrder(t *testing.T) {
	assert.Equal(t, []string{
		StageUnescape, StageEscape, StageFencedCode, StageInlineCode, StageBold,
		StageQuoteBox, StageBulletList, StageLinks, StageEmoticons, StageEmoji, StageNewlines,
	}, Default().Names())
}

func TestNewPipeline_RejectsMisordering(t *testing.T) {
	stages := DefaultStages()
	// Move emoticons ahead of link detection.
	var reordered []Stage
	var emoticons Stage
	for _, st := range stages {
		if st.Name == StageEmoticons {
			emoticons = st
			continue
		}
		if st.Name == StageLinks {
			reordered = append(reordered, emoticons)
		}
		reordered = append(reordered, st)
	}

	_, err := NewPipeline(reordered...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStageOrder))
}

func TestNewPipeline_RejectsDuplicates(t *testing.T) {
	st := Stage{Name: "x", Apply: strings.ToUpper}
	_, err := NewPipeline(st, st)
	assert.ErrorIs(t, err, ErrDuplicateStage)
}

func TestNewPipeline_RejectsIncomplete(t *testing.T) {
	_, err := NewPipeline(Stage{Name: "x"})
	assert.Error(t, err)
}

func TestMustPipeline_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustPipeline(Stage{Name: "b", After: []string{"a"}, Apply: strings.ToLower})
	})
}
