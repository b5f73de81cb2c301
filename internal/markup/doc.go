// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup converts raw chat text into the HTML fragment shown inside a
// message card.
//
// Formatting runs as an ordered Pipeline of named string stages. Markup that
// one stage produces is wrapped in private-use sentinel runes so that later
// stages only ever see plain text; the final stage strips the sentinels.
//
// # Stages
//
//	unescape     decode literal \n, \" and \\ sequences
//	escape       HTML-escape &, < and >
//	fenced-code  ```code``` to <pre><code>
//	inline-code  `code` to <code>
//	bold         **text** to <b>
//	quote-box    'text' to a boxed span
//	bullet-list  "- " lines to <ul>
//	links        http/https/ftp URLs to link spans, images appended
//	emoticons    :) to 😊 and friends
//	emoji        wrap emoji runes for font rendering
//	newlines     \n to <br>
//
// # Usage
//
//	fragment := markup.Format("Hello **world** :)")
//	text := markup.Text(fragment) // textContent of the fragment
package markup
