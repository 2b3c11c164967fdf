package domain

// CategoryCount pairs a hand category with its frequency across the full
// roll space.
type CategoryCount struct {
	Category Category
	Count    int
}

// ProbabilityResult describes the distribution of hand categories across
// every ordered three-die roll.
type ProbabilityResult struct {
	TotalOutcomes  int
	CategoryCounts []CategoryCount
}

// HandProbability enumerates all 6^3 ordered rolls and counts how many land
// in each hand category. Useful for balancing payouts and for sanity
// checks on the evaluator.
func HandProbability() (ProbabilityResult, error) {
	counts := make(map[Category]int)
	total := 0

	for a := FaceMin; a <= FaceMax; a++ {
		for b := FaceMin; b <= FaceMax; b++ {
			for c := FaceMin; c <= FaceMax; c++ {
				score, err := Evaluate(Roll{a, b, c})
				if err != nil {
					return ProbabilityResult{}, err
				}
				counts[score.Category]++
				total++
			}
		}
	}

	ordered := []Category{
		CategoryZanzibar,
		CategoryThreeOfAKind,
		CategoryLowRun,
		CategoryPoints,
	}
	categoryCounts := make([]CategoryCount, 0, len(ordered))
	for _, category := range ordered {
		categoryCounts = append(categoryCounts, CategoryCount{
			Category: category,
			Count:    counts[category],
		})
	}

	return ProbabilityResult{
		TotalOutcomes:  total,
		CategoryCounts: categoryCounts,
	}, nil
}
