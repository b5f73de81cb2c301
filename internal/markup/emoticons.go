// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"regexp"
)

// =============================================================================
// EMOTICON TABLE
// =============================================================================

// Emoticon maps a typed token to its emoji.
type Emoticon struct {
	Token string
	Emoji string
}

// Emoticons is applied in order, one token at a time. Order matters where
// one token contains another (":'(" before ":(" would change results), so
// this is a slice, not a map.
var Emoticons = []Emoticon{
	{":)", "😊"},
	{":-)", "😊"},
	{":(", "😞"},
	{":-(", "😞"},
	{":D", "😄"},
	{":-D", "😄"},
	{":P", "😛"},
	{":-P", "😛"},
	{";)", "😉"},
	{";-)", "😉"},
	{":O", "😮"},
	{":-O", "😮"},
	{":-/", "😕"},
	{":|", "😐"},
	{":*", "😘"},
	{":-*", "😘"},
	{"<3", "❤️"},
	{"T_T", "😭"},
	{":'(", "😢"},
	{"XD", "😆"},
	{":3", "😺"},
	{">:(", "😠"},
	{"O:)", "😇"},
	{"O:-)", "😇"},
	{":^)", "🙂"},
	{":-}", "😏"},
	{":-{", "😒"},
	{"D:", "😧"},
	{">:O", "😡"},
	{":v", "😎"},
	{"UwU", "🥰"},
	{"owo", "🥺"},
	{">_<", "😣"},
	{"^_^", "😄"},
	{"^-^", "😄"},
	{"x_x", "😵"},
	{"-_-", "😑"},
	{"o_O", "😳"},
	{"O_o", "😳"},
	{":>", "😏"},
	{":}", "😏"},
	{":S", "😖"},
	{":X", "🤐"},
	{">:3", "😼"},
	{">:D", "😈"},
	{";3", "😼"},
	{"=)", "😊"},
	{"=(", "😞"},
	{":'D", "😂"},
	{"D-:", "😧"},
	{"3:)", "😈"},
	{`<("<)`, "🐧"},
	{"(*_*)", "😍"},
	{"x3", "😸"},
	{":c", "😞"},
	{":|]", "🤖"},
	{"^_^;", "😅"},
	{"-.-", "😑"},
	{"¬_¬", "😒"},
	{"°_°", "😳"},
	{"ಠ_ಠ", "😒"},
	{"ಠ‿ಠ", "😏"},
	{"ಠ︵ಠ", "😠"},
	{"ಥ_ಥ", "😭"},
	{"(>_<)", "😣"},
	{"(T_T)", "😭"},
	{"(^o^)", "😄"},
	{"(^_^)/", "👋"},
	{"(^_~)", "😉"},
	{"(^_-)-☆", "😉"},
	{"(^з^)-☆", "😘"},
	{"(o^-^o)", "😊"},
	{"(o_o)", "😳"},
	{"(-.-)Zzz", "😴"},
	{"(•_•)", "😐"},
	{"(•_•)>⌐■-■", "😎"},
	{"(⌐■_■)", "😎"},
	{"(~_~)", "😴"},
	{"(=_=)", "😑"},
	{"(^3^)", "😘"},
	{"(^_^*)", "😊"},
	{"(~_^*)", "😉"},
	{"(o^^o)", "😊"},
	{"(>_>)", "😏"},
	{"(<_<)", "😏"},
	{"(-_-;)", "😅"},
	{"(;_;)", "😢"},
	{"m(_ _)m", "🙏"},
	{"(^_^)b", "👍"},
	{"(^_^)v", "✌️"},
	{"(-_-)/~~", "😣"},
}

type emoticonRule struct {
	re    *regexp.Regexp
	emoji string
}

// emoticonRules holds one compiled pattern per token, tokens quoted so
// regex metacharacters in them match literally.
var emoticonRules = compileEmoticons(Emoticons)

func compileEmoticons(table []Emoticon) []emoticonRule {
	rules := make([]emoticonRule, 0, len(table))
	for _, e := range table {
		rules = append(rules, emoticonRule{
			re:    regexp.MustCompile(regexp.QuoteMeta(e.Token)),
			emoji: e.Emoji,
		})
	}
	return rules
}

// ReplaceEmoticons substitutes every known token in raw (unescaped) text.
func ReplaceEmoticons(raw string) string {
	for _, rule := range emoticonRules {
		raw = rule.re.ReplaceAllLiteralString(raw, rule.emoji)
	}
	return raw
}
