// Package sqlite provides SQLite-backed match history persistence.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/zanzibar/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/zanzibar/internal/storage"
	"github.com/louisbranch/zanzibar/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed match history persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a match history store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordMatchStarted persists a new match and its seating order.
func (s *Store) RecordMatchStarted(ctx context.Context, match storage.MatchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	match.ID = strings.TrimSpace(match.ID)
	if match.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if len(match.Players) < 2 {
		return fmt.Errorf("a match requires at least two players")
	}
	if match.StartedAt.IsZero() {
		match.StartedAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin match transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO matches (id, starting_chips, started_at) VALUES (?, ?, ?)
`, match.ID, match.StartingChips, match.StartedAt.UnixMilli()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert match: %w", err)
	}
	for seat, player := range match.Players {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO match_players (match_id, seat, player) VALUES (?, ?, ?)
`, match.ID, seat, player); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert match player: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match: %w", err)
	}
	return nil
}

// RecordMatchFinished marks a match as finished with its winner.
func (s *Store) RecordMatchFinished(ctx context.Context, matchID, winner string, rounds int, finishedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("match id is required")
	}
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE matches SET winner = ?, rounds = ?, finished_at = ? WHERE id = ?
`, winner, rounds, finishedAt.UnixMilli(), matchID)
	if err != nil {
		return fmt.Errorf("finish match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish match rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RecordRound persists a resolved round and all of its hands atomically.
func (s *Store) RecordRound(ctx context.Context, round storage.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	round.MatchID = strings.TrimSpace(round.MatchID)
	if round.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if round.Round < 1 {
		return fmt.Errorf("round number must be at least 1")
	}
	if len(round.Hands) == 0 {
		return fmt.Errorf("a round requires at least one hand")
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin round transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO rounds (match_id, round, winner, loser, payout, roll_limit, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, round.MatchID, round.Round, round.Winner, round.Loser, round.Payout, round.RollLimit, round.CreatedAt.UnixMilli()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert round: %w", err)
	}
	for _, hand := range round.Hands {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO hands (match_id, round, player, die1, die2, die3, category, label, rolls_taken, chip_delta)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, round.MatchID, round.Round, hand.Player, hand.Roll[0], hand.Roll[1], hand.Roll[2],
			hand.Category, hand.Label, hand.RollsTaken, hand.ChipDelta); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert hand: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
UPDATE matches SET rounds = MAX(rounds, ?) WHERE id = ?
`, round.Round, round.MatchID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update match rounds: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round: %w", err)
	}
	return nil
}

// PlayerStats aggregates one player's recorded history. Unknown players
// yield storage.ErrNotFound.
func (s *Store) PlayerStats(ctx context.Context, name string) (storage.PlayerStats, error) {
	if err := ctx.Err(); err != nil {
		return storage.PlayerStats{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PlayerStats{}, fmt.Errorf("storage is not configured")
	}

	stats := storage.PlayerStats{Name: name}

	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM match_players WHERE player = ?
`, name).Scan(&stats.MatchesPlayed); err != nil {
		return storage.PlayerStats{}, fmt.Errorf("count matches: %w", err)
	}
	if stats.MatchesPlayed == 0 {
		return storage.PlayerStats{}, storage.ErrNotFound
	}

	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM matches WHERE winner = ? AND finished_at IS NOT NULL
`, name).Scan(&stats.MatchesWon); err != nil {
		return storage.PlayerStats{}, fmt.Errorf("count match wins: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(MAX(die1 + die2 + die3), 0),
    COALESCE(SUM(CASE WHEN chip_delta > 0 THEN chip_delta ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN chip_delta < 0 THEN -chip_delta ELSE 0 END), 0)
FROM hands WHERE player = ?
`, name).Scan(&stats.RoundsPlayed, &stats.HighestRollTotal, &stats.ChipsCollected, &stats.ChipsPaid); err != nil {
		return storage.PlayerStats{}, fmt.Errorf("aggregate hands: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM rounds WHERE winner = ?
`, name).Scan(&stats.RoundsWon); err != nil {
		return storage.PlayerStats{}, fmt.Errorf("count round wins: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM rounds WHERE loser = ?
`, name).Scan(&stats.RoundsLost); err != nil {
		return storage.PlayerStats{}, fmt.Errorf("count round losses: %w", err)
	}

	err := s.sqlDB.QueryRowContext(ctx, `
SELECT category FROM hands WHERE player = ?
GROUP BY category ORDER BY COUNT(*) DESC, category ASC LIMIT 1
`, name).Scan(&stats.FavoriteHand)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storage.PlayerStats{}, fmt.Errorf("favorite hand: %w", err)
	}

	return stats, nil
}

// ListPlayerStats aggregates every recorded player, ordered by name.
func (s *Store) ListPlayerStats(ctx context.Context) ([]storage.PlayerStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT DISTINCT player FROM match_players ORDER BY player ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}

	stats := make([]storage.PlayerStats, 0, len(names))
	for _, name := range names {
		playerStats, err := s.PlayerStats(ctx, name)
		if err != nil {
			return nil, err
		}
		stats = append(stats, playerStats)
	}
	return stats, nil
}

// LongestMatch returns the finished match with the most rounds.
func (s *Store) LongestMatch(ctx context.Context) (storage.MatchRecord, error) {
	return s.matchByRounds(ctx, "DESC")
}

// QuickestWin returns the finished match with the fewest rounds.
func (s *Store) QuickestWin(ctx context.Context) (storage.MatchRecord, error) {
	return s.matchByRounds(ctx, "ASC")
}

func (s *Store) matchByRounds(ctx context.Context, direction string) (storage.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.MatchRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MatchRecord{}, fmt.Errorf("storage is not configured")
	}

	var (
		match      storage.MatchRecord
		startedAt  int64
		finishedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, fmt.Sprintf(`
SELECT id, starting_chips, winner, rounds, started_at, finished_at
FROM matches WHERE finished_at IS NOT NULL
ORDER BY rounds %s, finished_at ASC LIMIT 1
`, direction)).Scan(&match.ID, &match.StartingChips, &match.Winner, &match.Rounds, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.MatchRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.MatchRecord{}, fmt.Errorf("query match: %w", err)
	}
	match.StartedAt = time.UnixMilli(startedAt).UTC()
	match.FinishedAt = time.UnixMilli(finishedAt).UTC()

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT player FROM match_players WHERE match_id = ? ORDER BY seat ASC
`, match.ID)
	if err != nil {
		return storage.MatchRecord{}, fmt.Errorf("query match players: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return storage.MatchRecord{}, fmt.Errorf("scan match player: %w", err)
		}
		match.Players = append(match.Players, player)
	}
	if err := rows.Err(); err != nil {
		return storage.MatchRecord{}, fmt.Errorf("iterate match players: %w", err)
	}
	return match, nil
}
