// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/btczview/internal/model"
)

// =============================================================================
// PARAMS
// =============================================================================

// Text is a lenient string parameter. The host sends numbers, strings and
// null interchangeably for display values; all of them become a string and
// null becomes "".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*t = Text(data)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("not a scalar: %s", data)
		}
		*t = Text(data)
	}
	return nil
}

// messageParams carries the fields of addMessage, insertMessage and
// addPendingMessage.
type messageParams struct {
	Index           *int `json:"index"`
	UserType        Text `json:"user_type"`
	Username        Text `json:"username"`
	Content         Text `json:"content"`
	Timestamp       Text `json:"timestamp"`
	EditedTimestamp Text `json:"edited_timestamp"`
	Amount          Text `json:"amount"`
	RepliedUsername Text `json:"replied_username"`
	RepliedContent  Text `json:"replied_content"`
}

func (p messageParams) record() model.MessageRecord {
	return model.MessageRecord{
		UserType:        model.ParseUserType(string(p.UserType)),
		Username:        string(p.Username),
		Content:         string(p.Content),
		Timestamp:       strings.TrimSpace(string(p.Timestamp)),
		EditedTimestamp: string(p.EditedTimestamp),
		Amount:          string(p.Amount),
		RepliedUsername: string(p.RepliedUsername),
		RepliedContent:  string(p.RepliedContent),
	}
}

type timestampParams struct {
	Timestamp Text `json:"timestamp"`
}

type editParams struct {
	Timestamp       Text `json:"timestamp"`
	Content         Text `json:"content"`
	EditedTimestamp Text `json:"edited_timestamp"`
}

type valueParams struct {
	Value Text `json:"value"`
}

type balancesParams struct {
	Total       Text `json:"total"`
	Transparent Text `json:"transparent"`
	Shielded    Text `json:"shielded"`
}

type chartParams struct {
	Prices   []model.PricePoint `json:"prices"`
	Currency Text               `json:"currency"`
}
