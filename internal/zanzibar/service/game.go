package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/zanzibar/internal/achievements"
	"github.com/louisbranch/zanzibar/internal/event"
	"github.com/louisbranch/zanzibar/internal/id"
	"github.com/louisbranch/zanzibar/internal/items"
	"github.com/louisbranch/zanzibar/internal/random"
	"github.com/louisbranch/zanzibar/internal/zanzibar/domain"
)

// Table defaults and effect tuning.
const (
	// DefaultStartingChips is the penalty stack each player begins with.
	DefaultStartingChips = 20
	// EnergyMax caps a player's energy.
	EnergyMax = 100
	// energyPerRound is the energy a round costs.
	energyPerRound = 5
	// luckChance is the per-die probability a luck boost bumps the face.
	luckChance = 0.3
	// focusMinFace is the lowest face a focused player can roll.
	focusMinFace = 2
)

var (
	// ErrMatchFinished indicates play on a match that already has a winner.
	ErrMatchFinished = errors.New("the match has already finished")
	// ErrUnknownPlayer indicates an operation for a player not at the table.
	ErrUnknownPlayer = errors.New("player is not seated at this table")
	// ErrUnknownItem indicates an item the table's catalog does not stock.
	ErrUnknownItem = errors.New("item is not in the catalog")
	// ErrInsufficientChips indicates a purchase the buyer cannot cover.
	ErrInsufficientChips = errors.New("not enough chips to cover the purchase")
)

// Options configures a new Game. The zero value is usable: it plays with
// the default catalog, default chips and a crypto-seeded RNG.
type Options struct {
	// StartingChips overrides DefaultStartingChips when positive.
	StartingChips int
	// Registry is the item catalog; defaults to the stock catalog.
	Registry *items.Registry
	// Bus receives every match event. Nil disables eventing.
	Bus *event.Bus
	// Achievements, when set, observes every match event directly and its
	// fresh unlocks are echoed to the bus as achievement.unlocked events.
	// The Game never subscribes it to Bus, so a manager and bus can be
	// shared across consecutive games without double delivery.
	Achievements *achievements.Manager
	// Rng drives every die. Defaults to a crypto-seeded source.
	Rng *rand.Rand
	// Clock stamps events; defaults to time.Now.
	Clock func() time.Time
}

// PlayerState is a caller-facing snapshot of one seat.
type PlayerState struct {
	Name      string
	Chips     int
	Energy    int
	WinStreak int
	Items     map[string]int
	Effects   []items.Effect
}

// RoundReport is the result of one played round plus match-level outcome.
type RoundReport struct {
	Round   int
	Outcome domain.RoundOutcome
	// Finished is true when this round decided the match.
	Finished bool
	// MatchWinner is set only when Finished is true.
	MatchWinner string
}

type playerState struct {
	energy    int
	winStreak int
	inventory *items.Inventory
}

// Game is one stateful Zanzibar match.
type Game struct {
	matchID      string
	players      []*domain.Player
	states       map[string]*playerState
	registry     *items.Registry
	bus          *event.Bus
	achievements *achievements.Manager
	rng          *rand.Rand
	now          func() time.Time
	tracer       trace.Tracer

	seq      uint64
	round    int
	started  bool
	finished bool
	winner   string
}

// NewGame seats the named players with full energy and empty inventories.
// At least two distinct, non-blank names are required.
func NewGame(names []string, opts Options) (*Game, error) {
	players := make([]*domain.Player, 0, len(names))
	states := make(map[string]*playerState, len(names))

	chips := opts.StartingChips
	if chips <= 0 {
		chips = DefaultStartingChips
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("player names must not be blank")
		}
		if _, dup := states[name]; dup {
			return nil, domain.ErrDuplicatePlayer
		}
		players = append(players, &domain.Player{Name: name, Chips: chips})
		states[name] = &playerState{
			energy:    EnergyMax,
			inventory: items.NewInventory(),
		}
	}
	if len(players) < 2 {
		return nil, domain.ErrInsufficientPlayers
	}

	matchID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate match id: %w", err)
	}

	rng := opts.Rng
	if rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed rng: %w", err)
		}
		rng = rand.New(rand.NewSource(seed))
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	registry := opts.Registry
	if registry == nil {
		registry = items.NewRegistry()
	}

	return &Game{
		matchID:      matchID,
		players:      players,
		states:       states,
		registry:     registry,
		bus:          opts.Bus,
		achievements: opts.Achievements,
		rng:          rng,
		now:          clock,
		tracer:       otel.Tracer("zanzibar/service"),
	}, nil
}

// MatchID returns the match's identifier.
func (g *Game) MatchID() string { return g.matchID }

// Round returns how many rounds have been played.
func (g *Game) Round() int { return g.round }

// Finished reports whether the match has a winner.
func (g *Game) Finished() bool { return g.finished }

// Winner returns the match winner, empty while play continues.
func (g *Game) Winner() string { return g.winner }

// Players returns a snapshot of every seat in current turn order.
func (g *Game) Players() []PlayerState {
	snapshot := make([]PlayerState, 0, len(g.players))
	for _, player := range g.players {
		state := g.states[player.Name]
		snapshot = append(snapshot, PlayerState{
			Name:      player.Name,
			Chips:     player.Chips,
			Energy:    state.energy,
			WinStreak: state.winStreak,
			Items:     state.inventory.Holdings(),
			Effects:   state.inventory.ActiveEffects(),
		})
	}
	return snapshot
}

// PlayRound plays one complete round and publishes its events. The first
// round also publishes match.started; the deciding round publishes
// match.finished and freezes the table.
func (g *Game) PlayRound(ctx context.Context) (RoundReport, error) {
	if g.finished {
		return RoundReport{}, ErrMatchFinished
	}
	if err := g.ensureStarted(ctx); err != nil {
		return RoundReport{}, err
	}

	ctx, span := g.tracer.Start(ctx, "zanzibar.play_round", trace.WithAttributes(
		attribute.String("match.id", g.matchID),
		attribute.Int("match.round", g.round+1),
	))
	defer span.End()

	outcome, err := domain.PlayRound(g.players, g.rng, domain.RoundOptions{
		Modifiers: g.roundModifiers(),
	})
	if err != nil {
		span.RecordError(err)
		return RoundReport{}, err
	}
	g.round++

	for name, state := range g.states {
		if name == outcome.Winner {
			state.winStreak++
		} else {
			state.winStreak = 0
		}
		// Energy boosts keep a player fresh; everyone else tires.
		if !state.inventory.HasEffect(items.EffectEnergyBoost) {
			state.energy = max(0, state.energy-energyPerRound)
		}
		state.inventory.Tick()
	}

	span.SetAttributes(
		attribute.String("round.winner", outcome.Winner),
		attribute.String("round.loser", outcome.Loser),
		attribute.Int("round.payout", outcome.Payout),
		attribute.Int("round.roll_limit", outcome.RollLimit),
	)

	roundPayload := g.roundPayload(outcome)
	for _, hand := range roundPayload.Hands {
		err := g.publish(ctx, event.TypeTurnRolled, hand.Player, event.TurnRolledPayload{
			Round:             g.round,
			PlayerHandPayload: hand,
		})
		if err != nil {
			return RoundReport{}, err
		}
	}
	if err := g.publish(ctx, event.TypeRoundResolved, "", roundPayload); err != nil {
		return RoundReport{}, err
	}

	report := RoundReport{Round: g.round, Outcome: outcome}
	if winner, over := g.matchWinner(); over {
		g.finished = true
		g.winner = winner
		report.Finished = true
		report.MatchWinner = winner
		span.SetAttributes(attribute.String("match.winner", winner))
		err := g.publish(ctx, event.TypeMatchFinished, winner, event.MatchFinishedPayload{
			Winner: winner,
			Rounds: g.round,
		})
		if err != nil {
			return RoundReport{}, err
		}
	}
	return report, nil
}

// GrantItem places quantity copies of a catalog item into a player's
// inventory without payment.
func (g *Game) GrantItem(player, itemName string, quantity int) error {
	state, ok := g.states[player]
	if !ok {
		return ErrUnknownPlayer
	}
	item, ok := g.registry.Get(itemName)
	if !ok {
		return ErrUnknownItem
	}
	state.inventory.Add(item, quantity)
	return nil
}

// PurchaseItem buys one copy of a catalog item with the player's chips.
// A purchase may not clear the stack: the match is won at the table, not
// at the shop, so the buyer must keep at least one chip.
func (g *Game) PurchaseItem(ctx context.Context, player, itemName string) error {
	if g.finished {
		return ErrMatchFinished
	}
	state, ok := g.states[player]
	if !ok {
		return ErrUnknownPlayer
	}
	item, ok := g.registry.Get(itemName)
	if !ok {
		return ErrUnknownItem
	}
	seat := g.seat(player)
	if seat.Chips-item.Cost < 1 {
		return ErrInsufficientChips
	}
	if err := g.ensureStarted(ctx); err != nil {
		return err
	}

	seat.Chips -= item.Cost
	state.inventory.Add(item, 1)

	return g.publish(ctx, event.TypeItemPurchased, player, event.ItemPurchasedPayload{
		Item: item.Name,
		Cost: item.Cost,
	})
}

// UseItem consumes one copy of an item from the player's inventory,
// restoring energy and activating its timed effects.
func (g *Game) UseItem(ctx context.Context, player, itemName string) error {
	if g.finished {
		return ErrMatchFinished
	}
	state, ok := g.states[player]
	if !ok {
		return ErrUnknownPlayer
	}
	item, ok := g.registry.Get(itemName)
	if !ok {
		return ErrUnknownItem
	}
	if err := g.ensureStarted(ctx); err != nil {
		return err
	}
	if err := state.inventory.Use(item); err != nil {
		return err
	}
	state.energy = min(EnergyMax, state.energy+item.EnergyValue)

	effects := make([]string, 0, len(item.Effects))
	for _, effect := range item.Effects {
		effects = append(effects, string(effect))
	}
	return g.publish(ctx, event.TypeItemUsed, player, event.ItemUsedPayload{
		Item:    item.Name,
		Effects: effects,
	})
}

// Energy returns a player's current energy level.
func (g *Game) Energy(player string) (int, error) {
	state, ok := g.states[player]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	return state.energy, nil
}

func (g *Game) ensureStarted(ctx context.Context) error {
	if g.started {
		return nil
	}
	g.started = true

	names := make([]string, 0, len(g.players))
	for _, player := range g.players {
		names = append(names, player.Name)
	}
	startingChips := DefaultStartingChips
	if len(g.players) > 0 {
		startingChips = g.players[0].Chips
	}
	return g.publish(ctx, event.TypeMatchStarted, "", event.MatchStartedPayload{
		Players:       names,
		StartingChips: startingChips,
	})
}

// matchWinner finds the first player to shed their stack: chips at or
// below zero, lowest stack first, earliest seat breaking ties.
func (g *Game) matchWinner() (string, bool) {
	winner := ""
	best := 1
	for _, player := range g.players {
		if player.Chips <= 0 && player.Chips < best {
			winner = player.Name
			best = player.Chips
		}
	}
	return winner, winner != ""
}

func (g *Game) roundModifiers() map[string]domain.RollModifier {
	modifiers := make(map[string]domain.RollModifier)
	for name, state := range g.states {
		luck := state.inventory.HasEffect(items.EffectLuckBoost)
		focus := state.inventory.HasEffect(items.EffectFocusBoost)
		if !luck && !focus {
			continue
		}
		modifiers[name] = g.newModifier(luck, focus)
	}
	return modifiers
}

func (g *Game) newModifier(luck, focus bool) domain.RollModifier {
	return func(roll domain.Roll) domain.Roll {
		adjusted := make(domain.Roll, len(roll))
		copy(adjusted, roll)
		for i, face := range adjusted {
			if focus && face < focusMinFace {
				face = focusMinFace
			}
			if luck && face < domain.FaceMax && g.rng.Float64() < luckChance {
				face++
			}
			adjusted[i] = face
		}
		return adjusted
	}
}

func (g *Game) roundPayload(outcome domain.RoundOutcome) event.RoundResolvedPayload {
	hands := make([]event.PlayerHandPayload, 0, len(outcome.Results))
	for _, result := range outcome.Results {
		hands = append(hands, event.PlayerHandPayload{
			Player:     result.Name,
			Roll:       append([]int(nil), result.Roll...),
			Category:   string(result.Score.Category),
			Label:      result.Score.Label,
			RollsTaken: result.RollsTaken,
		})
	}
	totals := make(map[string]int, len(g.players))
	for _, player := range g.players {
		totals[player.Name] = player.Chips
	}
	return event.RoundResolvedPayload{
		Round:      g.round,
		Winner:     outcome.Winner,
		Loser:      outcome.Loser,
		Payout:     outcome.Payout,
		RollLimit:  outcome.RollLimit,
		Hands:      hands,
		ChipDeltas: outcome.ChipDeltas,
		ChipTotals: totals,
	}
}

func (g *Game) seat(name string) *domain.Player {
	for _, player := range g.players {
		if player.Name == name {
			return player
		}
	}
	return nil
}

// publish emits one event to the achievements manager and the bus, then
// echoes any achievements the event unlocked.
func (g *Game) publish(ctx context.Context, typ event.Type, actor string, payload any) error {
	if g.bus == nil && g.achievements == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", typ, err)
	}
	g.seq++
	evt := event.Event{
		MatchID:     g.matchID,
		Seq:         g.seq,
		Timestamp:   g.now(),
		Type:        typ,
		Actor:       actor,
		PayloadJSON: raw,
	}
	if g.achievements != nil {
		if err := g.achievements.HandleEvent(ctx, evt); err != nil {
			return err
		}
	}
	if g.bus != nil {
		if err := g.bus.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return g.publishUnlocks(ctx)
}

func (g *Game) publishUnlocks(ctx context.Context) error {
	if g.achievements == nil {
		return nil
	}
	for _, unlocked := range g.achievements.Drain() {
		raw, err := json.Marshal(event.AchievementUnlockedPayload{
			ID:    unlocked.ID,
			Title: unlocked.Title,
		})
		if err != nil {
			return fmt.Errorf("encode achievement payload: %w", err)
		}
		g.seq++
		evt := event.Event{
			MatchID:     g.matchID,
			Seq:         g.seq,
			Timestamp:   g.now(),
			Type:        event.TypeAchievementUnlocked,
			PayloadJSON: raw,
		}
		if err := g.bus.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}
