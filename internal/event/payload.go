package event

// MatchStartedPayload captures the payload for match.started events.
type MatchStartedPayload struct {
	Players       []string `json:"players"`
	StartingChips int      `json:"starting_chips"`
}

// PlayerHandPayload is one player's final hand inside a round payload.
type PlayerHandPayload struct {
	Player     string `json:"player"`
	Roll       []int  `json:"roll"`
	Category   string `json:"category"`
	Label      string `json:"label"`
	RollsTaken int    `json:"rolls_taken"`
}

// TurnRolledPayload captures the payload for turn.rolled events.
type TurnRolledPayload struct {
	Round int `json:"round"`
	PlayerHandPayload
}

// RoundResolvedPayload captures the payload for round.resolved events.
type RoundResolvedPayload struct {
	Round      int                 `json:"round"`
	Winner     string              `json:"winner"`
	Loser      string              `json:"loser"`
	Payout     int                 `json:"payout"`
	RollLimit  int                 `json:"roll_limit"`
	Hands      []PlayerHandPayload `json:"hands"`
	ChipDeltas map[string]int      `json:"chip_deltas"`
	ChipTotals map[string]int      `json:"chip_totals"`
}

// MatchFinishedPayload captures the payload for match.finished events.
type MatchFinishedPayload struct {
	Winner string `json:"winner"`
	Rounds int    `json:"rounds"`
}

// ItemPurchasedPayload captures the payload for item.purchased events.
type ItemPurchasedPayload struct {
	Item string `json:"item"`
	Cost int    `json:"cost"`
}

// ItemUsedPayload captures the payload for item.used events.
type ItemUsedPayload struct {
	Item    string   `json:"item"`
	Effects []string `json:"effects,omitempty"`
}

// AchievementUnlockedPayload captures the payload for achievement.unlocked
// events.
type AchievementUnlockedPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
