package domain

import "errors"

var (
	// ErrInvalidRoll indicates a roll that does not contain exactly three
	// faces in the 1..6 range.
	ErrInvalidRoll = errors.New("roll must contain exactly three dice with faces between 1 and 6")

	// ErrInvalidMaxRolls indicates a turn simulated with a reroll allowance
	// below one.
	ErrInvalidMaxRolls = errors.New("max rolls must be at least 1")

	// ErrInsufficientPlayers indicates a round with fewer than two players.
	ErrInsufficientPlayers = errors.New("a round requires at least two players")

	// ErrDuplicatePlayer indicates two players sharing a name; names are the
	// unique key for chip transfers.
	ErrDuplicatePlayer = errors.New("player names must be unique")
)
