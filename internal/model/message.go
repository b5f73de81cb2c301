// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// =============================================================================
// USER TYPE
// =============================================================================

// UserType identifies which side of the conversation authored a message.
type UserType string

const (
	UserYou   UserType = "you"
	UserOther UserType = "other"
)

// String returns the string representation of the user type.
func (u UserType) String() string {
	return string(u)
}

// ParseUserType normalizes a host-supplied user type. Anything that is not
// "you" (case-insensitive) is treated as the other party.
func ParseUserType(s string) UserType {
	if strings.EqualFold(strings.TrimSpace(s), string(UserYou)) {
		return UserYou
	}
	return UserOther
}

// =============================================================================
// CARD STATE
// =============================================================================

// CardState is the delivery lifecycle of a rendered message.
type CardState int

const (
	StateSent    CardState = iota // Confirmed by the host
	StateSending                  // Optimistic, awaiting confirmation
	StateFailed                   // Send failed, pending removal
)

// String returns the CSS-style class name of the state.
func (s CardState) String() string {
	switch s {
	case StateSending:
		return "sending"
	case StateFailed:
		return "failed"
	default:
		return "sent"
	}
}

// =============================================================================
// MESSAGE RECORD
// =============================================================================

// GiftEpsilon is the smallest gift amount that is displayed. Amounts at or
// below it are float noise from the host.
const GiftEpsilon = 0.0001

// MessageRecord is one chat message as supplied by the host.
// Timestamp is the identity key for lookup, edit and removal.
type MessageRecord struct {
	UserType        UserType `json:"user_type"`
	Username        string   `json:"username"`
	Content         string   `json:"content"`
	Timestamp       string   `json:"timestamp"`
	EditedTimestamp string   `json:"edited_timestamp,omitempty"`

	// Amount is kept as the host formatted it so the tag shows the exact
	// figure; GiftAmount parses it.
	Amount string `json:"amount,omitempty"`

	RepliedUsername string `json:"replied_username,omitempty"`
	RepliedContent  string `json:"replied_content,omitempty"`
}

// GiftAmount returns the parsed gift amount, or 0 when absent or malformed.
func (r MessageRecord) GiftAmount() float64 {
	s := strings.TrimSpace(r.Amount)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// HasGift reports whether the gift tag should be shown.
func (r MessageRecord) HasGift() bool {
	return r.GiftAmount() > GiftEpsilon
}

// GiftLabel returns the amount as displayed in the gift tag.
func (r MessageRecord) GiftLabel() string {
	return strings.TrimSpace(r.Amount)
}

// IsEdited reports whether the record carries an edit timestamp.
func (r MessageRecord) IsEdited() bool {
	return strings.TrimSpace(r.EditedTimestamp) != ""
}

// HasReply reports whether the reply-reference block should be rendered.
// Both the replied-to username and content must be present.
func (r MessageRecord) HasReply() bool {
	return strings.TrimSpace(r.RepliedUsername) != "" && strings.TrimSpace(r.RepliedContent) != ""
}

// IsOwn reports whether the author is the local user. The host sends the
// display name "You" for own messages, so the check is on the username.
func (r MessageRecord) IsOwn() bool {
	return strings.EqualFold(strings.TrimSpace(r.Username), "you")
}

// =============================================================================
// PRICE POINT
// =============================================================================

var errBadPricePair = errors.New("price point pair must have exactly two elements")

// PricePoint is one sample of the market chart: a unix-millisecond
// timestamp and a price in the quote currency.
type PricePoint struct {
	TimeMs int64   `json:"t"`
	Price  float64 `json:"p"`
}

// UnmarshalJSON accepts both the object form and the [t, p] pair form the
// market API returns.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, "[") {
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return errBadPricePair
		}
		p.TimeMs = int64(pair[0])
		p.Price = pair[1]
		return nil
	}
	type plain PricePoint
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PricePoint(v)
	return nil
}
