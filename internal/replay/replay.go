// Package replay records a match's event journal to a JSON file and
// plays it back. A replay is self-contained: the table, the starting
// chips and every event with its offset from the match start, so a
// viewer can reconstruct the match without the engine.
package replay

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/zanzibar/internal/event"
)

// Entry is one journaled event with its offset from the match start.
type Entry struct {
	OffsetMS int64           `json:"offset_ms"`
	Seq      uint64          `json:"seq"`
	Type     event.Type      `json:"type"`
	Actor    string          `json:"actor,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// Metadata summarizes a finished match.
type Metadata struct {
	Rounds     int    `json:"rounds"`
	Winner     string `json:"winner"`
	DurationMS int64  `json:"duration_ms"`
}

// Replay is a complete match journal.
type Replay struct {
	MatchID       string    `json:"match_id"`
	Players       []string  `json:"players"`
	StartingChips int       `json:"starting_chips"`
	StartedAt     time.Time `json:"started_at"`
	Metadata      Metadata  `json:"metadata"`
	Entries       []Entry   `json:"entries"`
}

// Finished reports whether the journal saw the match finish.
func (r *Replay) Finished() bool {
	return r != nil && r.Metadata.Winner != ""
}
