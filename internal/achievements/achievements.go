// Package achievements tracks session achievements for a Zanzibar table.
//
// The manager consumes match events, fed directly by the table or
// subscribed to an event bus, and unlocks achievements at most once per
// session. It never reaches back into game state: everything it knows
// arrives as events. Popups and sounds are the concern of the
// Notifier the caller supplies.
package achievements

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/louisbranch/zanzibar/internal/event"
)

// Achievement is one unlockable goal.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Unlocked    bool
}

// Notifier receives first-time unlocks, typically to render a popup.
type Notifier interface {
	Notify(a Achievement)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Achievement) {}

func catalog() []Achievement {
	return []Achievement{
		{ID: "first_win", Title: "First Win", Description: "Win your first round."},
		{ID: "lucky_strike", Title: "Lucky Strike", Description: "Win two rounds in a row."},
		{ID: "triple_threat", Title: "Triple Threat", Description: "Win three rounds in a row."},
		{ID: "unstoppable", Title: "Unstoppable", Description: "Win five rounds in a row."},
		{ID: "champion", Title: "Champion", Description: "Win a match by shedding every chip."},
		{ID: "zanzibar", Title: "Zanzibar!", Description: "Roll the legendary 4-5-6."},
		{ID: "snake_eyes", Title: "Snake Eyes", Description: "Roll three ones."},
		{ID: "perfect_roll", Title: "Perfect Roll", Description: "Roll three sixes."},
		{ID: "unlucky_roll", Title: "Unlucky Roll", Description: "Roll the cursed 1-2-3."},
		{ID: "straight_shooter", Title: "Straight Shooter", Description: "Roll any straight."},
		{ID: "big_roller", Title: "Big Roller", Description: "Score a points hand worth 200 or more."},
		{ID: "high_roller", Title: "High Roller", Description: "Sit on 50 penalty chips at any point."},
		{ID: "chip_baron", Title: "Chip Baron", Description: "Sit on 100 penalty chips at any point."},
		{ID: "collector", Title: "Collector", Description: "Buy 10 items from the shop."},
		{ID: "big_spender", Title: "Big Spender", Description: "Spend 100 chips in the shop."},
		{ID: "item_user", Title: "Item User", Description: "Use 15 items in a single match."},
		{ID: "strategist", Title: "Strategist", Description: "Use 3 different items in one match."},
		{ID: "party_starter", Title: "Party Starter", Description: "Start a match with 4 or more players."},
		{ID: "lone_wolf", Title: "Lone Wolf", Description: "Play a head-to-head match."},
		{ID: "dedicated", Title: "Dedicated", Description: "Play 50 rounds total."},
		{ID: "marathon_player", Title: "Marathon Player", Description: "Play a match lasting 30 or more rounds."},
		{ID: "early_bird", Title: "Early Bird", Description: "Win a match in under 10 rounds."},
	}
}

// Manager tracks unlock state for one play session.
type Manager struct {
	achievements map[string]*Achievement
	notifier     Notifier
	fresh        []Achievement

	// Session-wide counters.
	totalRounds int
	purchases   int
	chipsSpent  int

	// Per-match counters, reset on match.started.
	winStreaks    map[string]int
	itemUses      int
	distinctItems map[string]struct{}
}

// NewManager creates a manager with the default achievement catalog. A nil
// notifier is replaced with NopNotifier.
func NewManager(notifier Notifier) *Manager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	m := &Manager{
		achievements:  make(map[string]*Achievement),
		notifier:      notifier,
		winStreaks:    make(map[string]int),
		distinctItems: make(map[string]struct{}),
	}
	for _, a := range catalog() {
		copy := a
		m.achievements[a.ID] = &copy
	}
	return m
}

// All returns every achievement with its unlock state, ordered by ID.
func (m *Manager) All() []Achievement {
	all := make([]Achievement, 0, len(m.achievements))
	for _, a := range m.achievements {
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// IsUnlocked reports whether the achievement has been unlocked this session.
func (m *Manager) IsUnlocked(id string) bool {
	a, ok := m.achievements[id]
	return ok && a.Unlocked
}

// Drain returns the achievements unlocked since the previous call.
func (m *Manager) Drain() []Achievement {
	fresh := m.fresh
	m.fresh = nil
	return fresh
}

// ResetSession clears all unlock state and counters.
func (m *Manager) ResetSession() {
	for _, a := range m.achievements {
		a.Unlocked = false
	}
	m.fresh = nil
	m.totalRounds = 0
	m.purchases = 0
	m.chipsSpent = 0
	m.resetMatch()
}

func (m *Manager) resetMatch() {
	m.winStreaks = make(map[string]int)
	m.itemUses = 0
	m.distinctItems = make(map[string]struct{})
}

// HandleEvent implements event.Subscriber.
func (m *Manager) HandleEvent(ctx context.Context, evt event.Event) error {
	switch evt.Type {
	case event.TypeMatchStarted:
		var payload event.MatchStartedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode match.started payload: %w", err)
		}
		m.observeMatchStart(payload)
	case event.TypeRoundResolved:
		var payload event.RoundResolvedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode round.resolved payload: %w", err)
		}
		m.observeRound(payload)
	case event.TypeMatchFinished:
		var payload event.MatchFinishedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode match.finished payload: %w", err)
		}
		m.observeMatchEnd(payload)
	case event.TypeItemPurchased:
		var payload event.ItemPurchasedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode item.purchased payload: %w", err)
		}
		m.observePurchase(payload)
	case event.TypeItemUsed:
		var payload event.ItemUsedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode item.used payload: %w", err)
		}
		m.observeItemUse(payload)
	}
	return nil
}

func (m *Manager) observeMatchStart(payload event.MatchStartedPayload) {
	m.resetMatch()
	if len(payload.Players) >= 4 {
		m.unlock("party_starter")
	}
	if len(payload.Players) == 2 {
		m.unlock("lone_wolf")
	}
}

func (m *Manager) observeRound(payload event.RoundResolvedPayload) {
	m.totalRounds++
	if m.totalRounds >= 50 {
		m.unlock("dedicated")
	}

	for _, hand := range payload.Hands {
		m.observeHand(hand)
	}

	for name := range m.winStreaks {
		if name != payload.Winner {
			m.winStreaks[name] = 0
		}
	}
	m.winStreaks[payload.Winner]++
	m.unlock("first_win")
	streak := m.winStreaks[payload.Winner]
	if streak >= 2 {
		m.unlock("lucky_strike")
	}
	if streak >= 3 {
		m.unlock("triple_threat")
	}
	if streak >= 5 {
		m.unlock("unstoppable")
	}

	for _, chips := range payload.ChipTotals {
		if chips >= 50 {
			m.unlock("high_roller")
		}
		if chips >= 100 {
			m.unlock("chip_baron")
		}
	}
}

func (m *Manager) observeHand(hand event.PlayerHandPayload) {
	if len(hand.Roll) != 3 {
		return
	}
	sorted := []int{hand.Roll[0], hand.Roll[1], hand.Roll[2]}
	sort.Ints(sorted)

	switch {
	case sorted[0] == 4 && sorted[1] == 5 && sorted[2] == 6:
		m.unlock("zanzibar")
		m.unlock("straight_shooter")
	case sorted[0] == 1 && sorted[1] == 1 && sorted[2] == 1:
		m.unlock("snake_eyes")
	case sorted[0] == 6 && sorted[1] == 6 && sorted[2] == 6:
		m.unlock("perfect_roll")
	case sorted[0] == 1 && sorted[1] == 2 && sorted[2] == 3:
		m.unlock("unlucky_roll")
		m.unlock("straight_shooter")
	case sorted[1] == sorted[0]+1 && sorted[2] == sorted[1]+1:
		m.unlock("straight_shooter")
	}

	// Points hands carry their total in the label-independent pip scale:
	// a hand with two ones and a six is already worth 260.
	if total := pointsTotal(hand.Roll); total >= 200 && hand.Category == "points" {
		m.unlock("big_roller")
	}
}

func pointsTotal(roll []int) int {
	total := 0
	for _, face := range roll {
		switch face {
		case 1:
			total += 100
		case 6:
			total += 60
		default:
			total += face
		}
	}
	return total
}

func (m *Manager) observeMatchEnd(payload event.MatchFinishedPayload) {
	m.unlock("champion")
	if payload.Rounds < 10 {
		m.unlock("early_bird")
	}
	if payload.Rounds >= 30 {
		m.unlock("marathon_player")
	}
}

func (m *Manager) observePurchase(payload event.ItemPurchasedPayload) {
	m.purchases++
	m.chipsSpent += payload.Cost
	if m.purchases >= 10 {
		m.unlock("collector")
	}
	if m.chipsSpent >= 100 {
		m.unlock("big_spender")
	}
}

func (m *Manager) observeItemUse(payload event.ItemUsedPayload) {
	m.itemUses++
	m.distinctItems[payload.Item] = struct{}{}
	if m.itemUses >= 15 {
		m.unlock("item_user")
	}
	if len(m.distinctItems) >= 3 {
		m.unlock("strategist")
	}
}

// unlock marks the achievement and notifies on first unlock only.
func (m *Manager) unlock(id string) {
	a, ok := m.achievements[id]
	if !ok || a.Unlocked {
		return
	}
	a.Unlocked = true
	m.fresh = append(m.fresh, *a)
	m.notifier.Notify(*a)
}
