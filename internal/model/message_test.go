// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// MESSAGE RECORD TESTS
// =============================================================================

func TestMessageRecord_HasGift(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"", false},
		{"0", false},
		{"0.0001", false},
		{"0.00011", true},
		{"12.5", true},
		{"-3", false},
		{"abc", false},
	}

	for _, tc := range tests {
		r := MessageRecord{Amount: tc.amount}
		if got := r.HasGift(); got != tc.want {
			t.Errorf("HasGift(%q) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

func TestMessageRecord_HasReply(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		content string
		want    bool
	}{
		{"both present", "alice", "hi", true},
		{"missing user", "", "hi", false},
		{"missing content", "alice", "", false},
		{"blank content", "alice", "   ", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := MessageRecord{RepliedUsername: tc.user, RepliedContent: tc.content}
			if got := r.HasReply(); got != tc.want {
				t.Errorf("HasReply() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMessageRecord_IsOwn(t *testing.T) {
	if !(MessageRecord{Username: "You"}).IsOwn() {
		t.Error("username You should be own")
	}
	if !(MessageRecord{Username: "YOU"}).IsOwn() {
		t.Error("ownership check should be case-insensitive")
	}
	if (MessageRecord{Username: "alice"}).IsOwn() {
		t.Error("alice should not be own")
	}
}

func TestParseUserType(t *testing.T) {
	if ParseUserType(" You ") != UserYou {
		t.Error("expected UserYou")
	}
	if ParseUserType("other") != UserOther {
		t.Error("expected UserOther")
	}
	if ParseUserType("") != UserOther {
		t.Error("empty user type should default to other")
	}
}

func TestCardState_String(t *testing.T) {
	if StateSending.String() != "sending" || StateFailed.String() != "failed" || StateSent.String() != "sent" {
		t.Error("unexpected state names")
	}
}

// =============================================================================
// PRICE POINT TESTS
// =============================================================================

func TestPricePoint_UnmarshalJSON(t *testing.T) {
	var points []PricePoint
	data := `[[1700000000000, 0.000042], {"t": 1700000060000, "p": 0.000043}]`
	if err := json.Unmarshal([]byte(data), &points); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].TimeMs != 1700000000000 || points[0].Price != 0.000042 {
		t.Errorf("pair form decoded as %+v", points[0])
	}
	if points[1].TimeMs != 1700000060000 || points[1].Price != 0.000043 {
		t.Errorf("object form decoded as %+v", points[1])
	}
}

func TestPricePoint_UnmarshalJSON_BadPair(t *testing.T) {
	var p PricePoint
	if err := json.Unmarshal([]byte(`[1, 2, 3]`), &p); err == nil {
		t.Error("expected error for three-element pair")
	}
}
