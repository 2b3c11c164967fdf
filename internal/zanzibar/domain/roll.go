package domain

import (
	"math/rand"
	"sort"
)

const (
	// DiceCount is the number of dice in a Zanzibar hand.
	DiceCount = 3
	// FaceMin and FaceMax bound the value of a single die.
	FaceMin = 1
	FaceMax = 6
)

// Roll holds the faces produced by one turn. Order is irrelevant for
// scoring; a Roll is treated as immutable once scored.
type Roll []int

// Validate reports whether the roll is a legal Zanzibar hand.
func (r Roll) Validate() error {
	if len(r) != DiceCount {
		return ErrInvalidRoll
	}
	for _, face := range r {
		if face < FaceMin || face > FaceMax {
			return ErrInvalidRoll
		}
	}
	return nil
}

// Sorted returns a copy of the roll with faces in ascending order.
func (r Roll) Sorted() Roll {
	sorted := make(Roll, len(r))
	copy(sorted, r)
	sort.Ints(sorted)
	return sorted
}

// IsTriple reports whether all three dice show the same face.
func (r Roll) IsTriple() bool {
	return len(r) == DiceCount && r[0] == r[1] && r[1] == r[2]
}

// RollDice produces a fresh three-die roll from the provided random source.
func RollDice(rng *rand.Rand) Roll {
	roll := make(Roll, DiceCount)
	for i := range roll {
		roll[i] = rollDie(rng)
	}
	return roll
}

// rollDie rolls a single six-sided die.
func rollDie(rng *rand.Rand) int {
	return rng.Intn(FaceMax) + 1
}
