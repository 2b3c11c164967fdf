package domain

import "math/rand"

// MaxRollsPerTurn is the reroll allowance for the player opening a round.
const MaxRollsPerTurn = 3

// RollModifier adjusts a roll before it is scored. Modifiers are supplied
// by collaborators (consumable item effects and the like); the turn
// simulator itself knows nothing about where they come from. The modifier
// runs on every roll of a turn, intermediate rolls included, so the
// keep/stop heuristic always sees the dice the player actually holds and
// an active effect acts on each roll attempt. A nil modifier leaves rolls
// untouched.
type RollModifier func(Roll) Roll

// TurnResult is the outcome of one simulated turn.
type TurnResult struct {
	Roll       Roll
	Score      Score
	RollsTaken int
}

// SimulateTurn plays a single turn: an initial roll followed by up to
// maxRolls-1 rerolls using a fixed keep/reroll heuristic. The modifier is
// applied to each roll before that roll is scored.
//
// The simulator stops as soon as the hand beats plain points (any triple,
// the 1-2-3 run, or Zanzibar itself). A 1-2-3 therefore ends the turn
// immediately even though a points hand could be worth more under some
// house rules. Otherwise it keeps a face that appears exactly twice, or
// failing that the single highest die, and rerolls the rest.
//
// SimulateTurn never takes more than maxRolls rolls and always returns a
// three-die roll.
func SimulateTurn(rng *rand.Rand, maxRolls int, modify RollModifier) (TurnResult, error) {
	if maxRolls < 1 {
		return TurnResult{}, ErrInvalidMaxRolls
	}

	current := RollDice(rng)
	for rollNum := 1; ; rollNum++ {
		if modify != nil {
			current = modify(current)
		}

		score, err := Evaluate(current)
		if err != nil {
			return TurnResult{}, err
		}

		if score.Rank.Major > 1 || current.IsTriple() {
			return TurnResult{Roll: current, Score: score, RollsTaken: rollNum}, nil
		}
		if rollNum == maxRolls {
			// Forced stop: the hand stands regardless of quality.
			return TurnResult{Roll: current, Score: score, RollsTaken: rollNum}, nil
		}

		current = reroll(rng, current)
	}
}

// reroll keeps the most promising dice from the roll and draws fresh faces
// for the rest.
func reroll(rng *rand.Rand, roll Roll) Roll {
	kept := keepDice(roll)
	next := make(Roll, 0, DiceCount)
	next = append(next, kept...)
	for len(next) < DiceCount {
		next = append(next, rollDie(rng))
	}
	return next
}

// keepDice selects the dice worth holding: an exact pair when one exists,
// otherwise the single highest face.
func keepDice(roll Roll) Roll {
	var counts [FaceMax + 1]int
	for _, face := range roll {
		counts[face]++
	}
	for face := FaceMin; face <= FaceMax; face++ {
		if counts[face] == 2 {
			return Roll{face, face}
		}
	}

	highest := FaceMin
	for _, face := range roll {
		if face > highest {
			highest = face
		}
	}
	return Roll{highest}
}
