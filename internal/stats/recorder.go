// Package stats persists match history from the event journal. The
// Recorder subscribes to the match bus and translates lifecycle events
// into storage writes; aggregate queries live on the storage side.
package stats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/zanzibar/internal/event"
	"github.com/louisbranch/zanzibar/internal/storage"
)

// Recorder writes match events into a history store.
type Recorder struct {
	store storage.Store
}

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store storage.Store) *Recorder {
	return &Recorder{store: store}
}

// HandleEvent implements event.Subscriber. Events that do not affect
// history (item use, achievements) are ignored.
func (r *Recorder) HandleEvent(ctx context.Context, evt event.Event) error {
	if r == nil || r.store == nil {
		return nil
	}
	switch evt.Type {
	case event.TypeMatchStarted:
		return r.matchStarted(ctx, evt)
	case event.TypeRoundResolved:
		return r.roundResolved(ctx, evt)
	case event.TypeMatchFinished:
		return r.matchFinished(ctx, evt)
	}
	return nil
}

func (r *Recorder) matchStarted(ctx context.Context, evt event.Event) error {
	var payload event.MatchStartedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		return fmt.Errorf("decode match started payload: %w", err)
	}
	return r.store.RecordMatchStarted(ctx, storage.MatchRecord{
		ID:            evt.MatchID,
		Players:       payload.Players,
		StartingChips: payload.StartingChips,
		StartedAt:     evt.Timestamp,
	})
}

func (r *Recorder) roundResolved(ctx context.Context, evt event.Event) error {
	var payload event.RoundResolvedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		return fmt.Errorf("decode round resolved payload: %w", err)
	}
	record := storage.RoundRecord{
		MatchID:   evt.MatchID,
		Round:     payload.Round,
		Winner:    payload.Winner,
		Loser:     payload.Loser,
		Payout:    payload.Payout,
		RollLimit: payload.RollLimit,
		CreatedAt: evt.Timestamp,
	}
	for _, hand := range payload.Hands {
		handRecord := storage.HandRecord{
			Player:     hand.Player,
			Category:   hand.Category,
			Label:      hand.Label,
			RollsTaken: hand.RollsTaken,
			ChipDelta:  payload.ChipDeltas[hand.Player],
		}
		if len(hand.Roll) != len(handRecord.Roll) {
			return fmt.Errorf("hand for %q has %d dice", hand.Player, len(hand.Roll))
		}
		copy(handRecord.Roll[:], hand.Roll)
		record.Hands = append(record.Hands, handRecord)
	}
	return r.store.RecordRound(ctx, record)
}

func (r *Recorder) matchFinished(ctx context.Context, evt event.Event) error {
	var payload event.MatchFinishedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		return fmt.Errorf("decode match finished payload: %w", err)
	}
	return r.store.RecordMatchFinished(ctx, evt.MatchID, payload.Winner, payload.Rounds, evt.Timestamp)
}
