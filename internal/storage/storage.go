// Package storage defines persistence interfaces and records for match
// history and player statistics. Implementations live in subpackages.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a lookup for a record that does not exist.
var ErrNotFound = errors.New("record not found")

// MatchRecord is one durable match.
type MatchRecord struct {
	ID            string
	Players       []string
	StartingChips int
	// Winner is empty until the match finishes.
	Winner     string
	Rounds     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// HandRecord is one player's final hand in a round.
type HandRecord struct {
	Player     string
	Roll       [3]int
	Category   string
	Label      string
	RollsTaken int
	ChipDelta  int
}

// RoundRecord is one durable resolved round with every final hand.
type RoundRecord struct {
	MatchID   string
	Round     int
	Winner    string
	Loser     string
	Payout    int
	RollLimit int
	Hands     []HandRecord
	CreatedAt time.Time
}

// PlayerStats aggregates a player's history across all recorded matches.
type PlayerStats struct {
	Name          string
	MatchesPlayed int
	MatchesWon    int
	RoundsPlayed  int
	RoundsWon     int
	RoundsLost    int
	// HighestRollTotal is the best face sum the player ever held.
	HighestRollTotal int
	// ChipsCollected counts penalty chips taken as a round loser;
	// ChipsPaid counts chips handed over as a payer.
	ChipsCollected int
	ChipsPaid      int
	// FavoriteHand is the hand category the player lands most often.
	FavoriteHand string
}

// Store persists match history and serves aggregate statistics.
type Store interface {
	RecordMatchStarted(ctx context.Context, match MatchRecord) error
	RecordMatchFinished(ctx context.Context, matchID, winner string, rounds int, finishedAt time.Time) error
	RecordRound(ctx context.Context, round RoundRecord) error

	PlayerStats(ctx context.Context, name string) (PlayerStats, error)
	ListPlayerStats(ctx context.Context) ([]PlayerStats, error)
	// LongestMatch and QuickestWin report record finished matches; both
	// return ErrNotFound when no match has finished yet.
	LongestMatch(ctx context.Context) (MatchRecord, error)
	QuickestWin(ctx context.Context) (MatchRecord, error)
}
