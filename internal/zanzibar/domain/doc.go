// Package domain provides the core rules evaluation and dice mechanics for
// the Zanzibar round engine.
//
// Zanzibar is a three-die chip game. Each round every player rolls for a
// hand, hands are ranked, and the round loser collects penalty chips from
// the rest of the table at the rate set by the winning hand.
//
// # Hand Ranking
//
// Hands are ordered by a (major, minor) rank tuple, highest wins:
//   - Zanzibar (4-5-6): rank (4,0), payout 4.
//   - Three of a kind: rank (3, 7-v) so that triple 1s outrank triple 6s,
//     payout 3.
//   - Low run (1-2-3): rank (2,0), payout 2.
//   - Points: rank (1, total), payout 1, where a 1 counts 100 points and a
//     6 counts 60; other faces count their pip value.
//
// # Turn Simulation
//
// A turn is an initial roll plus up to a fixed number of rerolls. The
// simulated player stops as soon as the hand is better than plain points,
// otherwise it keeps an exact pair when one exists (or the single highest
// die) and rerolls the rest.
//
// # Round Resolution
//
// The first player in turn order rolls with the full reroll allowance; the
// number of rolls they actually take caps every other player's turn that
// round. Chip transfers are staged and applied atomically, and the turn
// order rotates so the round winner rolls first next round.
//
// # Determinism
//
// All rolling goes through an injected *rand.Rand, so outcomes are
// reproducible given a seed. Evaluation is a pure function of its input.
package domain
