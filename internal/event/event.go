// Package event defines the immutable facts a Zanzibar match emits and a
// synchronous bus that fans them out to subscribers (achievements, stats,
// replays, presentation). The engine only publishes; nothing in here ever
// mutates game state.
package event

import "time"

// Type identifies the kind of a match event.
type Type string

// Match lifecycle events.
const (
	// TypeMatchStarted records a new match opening with its table.
	TypeMatchStarted Type = "match.started"
	// TypeMatchFinished records a match ending with a winner.
	TypeMatchFinished Type = "match.finished"
)

// Round events. Events represent facts that have occurred, not commands.
const (
	// TypeTurnRolled records one player's final hand for the round.
	TypeTurnRolled Type = "turn.rolled"
	// TypeRoundResolved records a fully resolved round: every final hand,
	// the payout and the chip movement.
	TypeRoundResolved Type = "round.resolved"
)

// Item events.
const (
	// TypeItemPurchased records a shop purchase paid in chips.
	TypeItemPurchased Type = "item.purchased"
	// TypeItemUsed records an item being consumed.
	TypeItemUsed Type = "item.used"
)

// Achievement events.
const (
	// TypeAchievementUnlocked records a first-time achievement unlock.
	TypeAchievementUnlocked Type = "achievement.unlocked"
)

// Event is one immutable fact in a match's journal.
type Event struct {
	// MatchID identifies the match this event belongs to.
	MatchID string
	// Seq is the event sequence number within the match (starts at 1).
	Seq uint64
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// Actor is the player the event concerns, empty for table-wide events.
	Actor string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}
