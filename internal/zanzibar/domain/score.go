package domain

import "fmt"

// Category identifies the kind of hand a roll scored as.
type Category string

const (
	// CategoryZanzibar is the 4-5-6 hand, the best in the game.
	CategoryZanzibar Category = "zanzibar"
	// CategoryThreeOfAKind is any triple; lower faces outrank higher ones.
	CategoryThreeOfAKind Category = "three_of_a_kind"
	// CategoryLowRun is the 1-2-3 hand.
	CategoryLowRun Category = "low_run"
	// CategoryPoints is any other hand, ranked by its point total.
	CategoryPoints Category = "points"
)

// Rank orders hands. Ranks compare by Major first, then Minor; the higher
// tuple wins.
type Rank struct {
	Major int
	Minor int
}

// Compare returns -1, 0 or 1 as r sorts before, equal to or after other.
func (r Rank) Compare(other Rank) int {
	if r.Major != other.Major {
		if r.Major < other.Major {
			return -1
		}
		return 1
	}
	if r.Minor != other.Minor {
		if r.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// Score is the evaluation of a single roll.
type Score struct {
	Category Category
	Rank     Rank
	// Payout is the chip rate the hand commands when it wins the round.
	Payout int
	// Label is a human-readable hand description for the presentation layer.
	Label string
}

// Evaluate scores a three-die roll.
//
// Evaluation is total over [1,6]^3 and deterministic: the same roll always
// produces the same Score. Invalid rolls fail with ErrInvalidRoll rather
// than being clamped.
func Evaluate(roll Roll) (Score, error) {
	if err := roll.Validate(); err != nil {
		return Score{}, err
	}

	sorted := roll.Sorted()

	if sorted[0] == 4 && sorted[1] == 5 && sorted[2] == 6 {
		return Score{
			Category: CategoryZanzibar,
			Rank:     Rank{Major: 4},
			Payout:   4,
			Label:    "Zanzibar!",
		}, nil
	}

	if roll.IsTriple() {
		face := sorted[0]
		return Score{
			Category: CategoryThreeOfAKind,
			// Inverting the face makes triple 1s the strongest triple.
			Rank:   Rank{Major: 3, Minor: 7 - face},
			Payout: 3,
			Label:  fmt.Sprintf("Three of a kind (%ds)", face),
		}, nil
	}

	if sorted[0] == 1 && sorted[1] == 2 && sorted[2] == 3 {
		return Score{
			Category: CategoryLowRun,
			Rank:     Rank{Major: 2},
			Payout:   2,
			Label:    "1-2-3",
		}, nil
	}

	total := 0
	for _, face := range roll {
		total += pipValue(face)
	}
	return Score{
		Category: CategoryPoints,
		Rank:     Rank{Major: 1, Minor: total},
		Payout:   1,
		Label:    fmt.Sprintf("Points total (%d)", total),
	}, nil
}

// pipValue maps a face to its point contribution: 1s count 100, 6s count
// 60, every other face counts itself.
func pipValue(face int) int {
	switch face {
	case 1:
		return 100
	case 6:
		return 60
	default:
		return face
	}
}
