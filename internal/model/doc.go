// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data records pushed into the wallet views.
//
// This package defines the plain data types shared by the card builder, the
// timeline controller, the panels and the host dispatcher. None of them carry
// UI state; rendering state lives in package card.
//
// # Key Types
//
//   - MessageRecord: One chat message as supplied by the host
//   - UserType: Author side ("you" or "other")
//   - CardState: Delivery lifecycle of a rendered card
//   - PricePoint: One sample of the market chart series
//
// # Usage
//
//	rec := model.MessageRecord{
//	    UserType:  model.UserYou,
//	    Username:  "You",
//	    Content:   "hello :)",
//	    Timestamp: "2025-01-02 10:04:05",
//	}
//	if rec.HasGift() {
//	    fmt.Println(rec.GiftLabel())
//	}
package model
