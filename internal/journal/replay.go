// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"log"
	"time"

	"github.com/jeranaias/btczview/internal/host"
)

// ReplayResult summarizes a replay.
type ReplayResult struct {
	Dispatched int
	Failed     int
}

// Replay dispatches the session's calls in order. speed scales the
// recorded gaps between calls; 0 replays as fast as possible. A call that
// fails is logged and skipped.
func (j *Journal) Replay(ctx context.Context, sessionID string, d *host.Dispatcher, speed float64) (ReplayResult, error) {
	entries, err := j.Entries(ctx, sessionID, DirectionIn)
	if err != nil {
		return ReplayResult{}, err
	}

	var res ReplayResult
	var prev time.Time
	for i, e := range entries {
		if speed > 0 && i > 0 {
			if err := sleep(ctx, time.Duration(float64(e.At.Sub(prev))/speed)); err != nil {
				return res, err
			}
		}
		prev = e.At

		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := d.DispatchJSON(e.Payload); err != nil {
			res.Failed++
			log.Printf("REPLAY_CALL_FAILED | entry=%d err=%v", e.ID, err)
			continue
		}
		res.Dispatched++
	}
	log.Printf("REPLAY_DONE | session=%s dispatched=%d failed=%d", sessionID, res.Dispatched, res.Failed)
	return res, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
