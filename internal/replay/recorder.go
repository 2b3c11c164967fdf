package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/zanzibar/internal/event"
)

// Recorder accumulates a match's events into a Replay. It implements
// event.Subscriber and expects events in publication order.
type Recorder struct {
	replay Replay
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleEvent implements event.Subscriber.
func (r *Recorder) HandleEvent(_ context.Context, evt event.Event) error {
	if r == nil {
		return nil
	}
	if r.replay.MatchID == "" {
		r.replay.MatchID = evt.MatchID
		r.replay.StartedAt = evt.Timestamp
	}
	if evt.MatchID != r.replay.MatchID {
		return fmt.Errorf("recorder for match %q received event for %q", r.replay.MatchID, evt.MatchID)
	}

	switch evt.Type {
	case event.TypeMatchStarted:
		var payload event.MatchStartedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode match started payload: %w", err)
		}
		r.replay.Players = payload.Players
		r.replay.StartingChips = payload.StartingChips
	case event.TypeMatchFinished:
		var payload event.MatchFinishedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode match finished payload: %w", err)
		}
		r.replay.Metadata.Winner = payload.Winner
		r.replay.Metadata.Rounds = payload.Rounds
		r.replay.Metadata.DurationMS = evt.Timestamp.Sub(r.replay.StartedAt).Milliseconds()
	}

	r.replay.Entries = append(r.replay.Entries, Entry{
		OffsetMS: evt.Timestamp.Sub(r.replay.StartedAt).Milliseconds(),
		Seq:      evt.Seq,
		Type:     evt.Type,
		Actor:    evt.Actor,
		Payload:  json.RawMessage(evt.PayloadJSON),
	})
	return nil
}

// Replay returns a copy of the journal recorded so far.
func (r *Recorder) Replay() Replay {
	if r == nil {
		return Replay{}
	}
	return r.replay
}

// Save writes the journal to dir as <match-id>.json, creating dir if
// needed. Saving an empty journal is an error.
func (r *Recorder) Save(dir string) (string, error) {
	if r == nil || r.replay.MatchID == "" {
		return "", fmt.Errorf("nothing recorded yet")
	}
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("replay directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create replay directory: %w", err)
	}
	raw, err := json.MarshalIndent(r.replay, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode replay: %w", err)
	}
	path := filepath.Join(dir, r.replay.MatchID+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write replay: %w", err)
	}
	return path, nil
}

// Load reads a replay journal from disk.
func Load(path string) (*Replay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	var replay Replay
	if err := json.Unmarshal(raw, &replay); err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", path, err)
	}
	if replay.MatchID == "" {
		return nil, fmt.Errorf("replay %s has no match id", path)
	}
	return &replay, nil
}
