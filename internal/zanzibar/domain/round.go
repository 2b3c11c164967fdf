package domain

import "math/rand"

// Player is one seat at the table. Chips are penalty markers: the round
// loser collects them and the first player to shed all of theirs wins the
// match. Chip counts may reach zero or go negative; there is no floor.
type Player struct {
	Name  string
	Chips int
}

// PlayerResult is one player's final hand for a round.
type PlayerResult struct {
	Name       string
	Roll       Roll
	Score      Score
	RollsTaken int
}

// RoundOutcome describes a fully resolved round.
type RoundOutcome struct {
	// Results are listed in the turn order the round was played.
	Results []PlayerResult
	Winner  string
	Loser   string
	// Payout is the per-player chip rate set by the winning hand.
	Payout int
	// RollLimit is the reroll cap the opening player fixed for the table.
	RollLimit int
	// ChipDeltas records each player's net chip change; the deltas sum to
	// zero.
	ChipDeltas map[string]int
}

// RoundOptions carries collaborator-supplied turn adjustments.
type RoundOptions struct {
	// Modifiers maps player names to roll modifiers applied before scoring.
	Modifiers map[string]RollModifier
}

// PlayRound runs one complete round over the table.
//
// The first player in turn order rolls with the full allowance of
// MaxRollsPerTurn; the number of rolls they actually take becomes the cap
// for everyone else this round. Every final hand is scored, the lowest hand
// loses and the highest wins, with ties on either side broken in favor of
// the earliest seat in turn order.
//
// The loser then collects the winning hand's payout from every other
// player: chips here are penalties, so the round loser is the one whose
// stack grows. Transfers are staged and applied only after the whole round
// has resolved, so an error leaves every chip count untouched. Finally the
// slice is rotated in place so the winner holds seat zero next round.
func PlayRound(players []*Player, rng *rand.Rand, opts RoundOptions) (RoundOutcome, error) {
	if err := validatePlayers(players); err != nil {
		return RoundOutcome{}, err
	}

	results := make([]PlayerResult, 0, len(players))

	opener := players[0]
	first, err := SimulateTurn(rng, MaxRollsPerTurn, opts.Modifiers[opener.Name])
	if err != nil {
		return RoundOutcome{}, err
	}
	results = append(results, PlayerResult{
		Name:       opener.Name,
		Roll:       first.Roll,
		Score:      first.Score,
		RollsTaken: first.RollsTaken,
	})

	rollLimit := first.RollsTaken
	for _, player := range players[1:] {
		turn, err := SimulateTurn(rng, rollLimit, opts.Modifiers[player.Name])
		if err != nil {
			return RoundOutcome{}, err
		}
		results = append(results, PlayerResult{
			Name:       player.Name,
			Roll:       turn.Roll,
			Score:      turn.Score,
			RollsTaken: turn.RollsTaken,
		})
	}

	winnerIdx, loserIdx := 0, 0
	for i := 1; i < len(results); i++ {
		if results[i].Score.Rank.Compare(results[winnerIdx].Score.Rank) > 0 {
			winnerIdx = i
		}
		if results[i].Score.Rank.Compare(results[loserIdx].Score.Rank) < 0 {
			loserIdx = i
		}
	}

	winner := results[winnerIdx]
	loser := results[loserIdx]
	payout := winner.Score.Payout

	// Stage the transfer before touching any chip count.
	deltas := make(map[string]int, len(players))
	for _, result := range results {
		if result.Name == loser.Name {
			deltas[result.Name] = payout * (len(players) - 1)
			continue
		}
		deltas[result.Name] = -payout
	}
	for _, player := range players {
		player.Chips += deltas[player.Name]
	}

	rotateToFront(players, winnerIdx)

	return RoundOutcome{
		Results:    results,
		Winner:     winner.Name,
		Loser:      loser.Name,
		Payout:     payout,
		RollLimit:  rollLimit,
		ChipDeltas: deltas,
	}, nil
}

func validatePlayers(players []*Player) error {
	if len(players) < 2 {
		return ErrInsufficientPlayers
	}
	seen := make(map[string]struct{}, len(players))
	for _, player := range players {
		if _, dup := seen[player.Name]; dup {
			return ErrDuplicatePlayer
		}
		seen[player.Name] = struct{}{}
	}
	return nil
}

// rotateToFront moves players[idx] to seat zero, preserving cyclic order.
func rotateToFront(players []*Player, idx int) {
	if idx == 0 {
		return
	}
	rotated := make([]*Player, 0, len(players))
	rotated = append(rotated, players[idx:]...)
	rotated = append(rotated, players[:idx]...)
	copy(players, rotated)
}
