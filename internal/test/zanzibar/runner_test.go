//go:build scenario

package zanzibar

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/louisbranch/zanzibar/internal/achievements"
	"github.com/louisbranch/zanzibar/internal/event"
	"github.com/louisbranch/zanzibar/internal/items"
	"github.com/louisbranch/zanzibar/internal/zanzibar/service"
)

const scenarioLuaGlob = "scenarios/*.lua"

func TestScenarioScripts(t *testing.T) {
	paths, err := filepath.Glob(scenarioLuaGlob)
	if err != nil {
		t.Fatalf("glob scenarios: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no scenario scripts found")
	}

	for _, path := range paths {
		scenario, err := loadScenarioFromFile(path)
		if err != nil {
			t.Fatalf("load scenario %s: %v", path, err)
		}
		t.Run(scenario.Name, func(t *testing.T) {
			runScenario(t, scenario)
		})
	}
}

func runScenario(t *testing.T, scenario *Scenario) {
	t.Helper()
	ctx := context.Background()

	game, err := service.NewGame(scenario.Players, service.Options{
		StartingChips: scenario.Chips,
		Bus:           event.NewBus(),
		Achievements:  achievements.NewManager(nil),
		Rng:           rand.New(rand.NewSource(scenario.Seed)),
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	for i, step := range scenario.Steps {
		if err := applyStep(t, ctx, game, step); err != nil {
			t.Fatalf("step %d (%s): %v", i+1, step.Kind, err)
		}
	}
}

func applyStep(t *testing.T, ctx context.Context, game *service.Game, step Step) error {
	t.Helper()
	switch step.Kind {
	case "grant":
		return game.GrantItem(step.Args["player"].(string), step.Args["item"].(string), step.Args["quantity"].(int))
	case "use":
		return game.UseItem(ctx, step.Args["player"].(string), step.Args["item"].(string))
	case "purchase":
		return game.PurchaseItem(ctx, step.Args["player"].(string), step.Args["item"].(string))
	case "rounds":
		for i := 0; i < step.Args["count"].(int); i++ {
			if _, err := game.PlayRound(ctx); err != nil {
				return err
			}
		}
	case "play_until_finished":
		for i := 0; i < step.Args["cap"].(int) && !game.Finished(); i++ {
			if _, err := game.PlayRound(ctx); err != nil {
				return err
			}
		}
		if !game.Finished() {
			t.Errorf("match still running after %d rounds", step.Args["cap"].(int))
		}
	case "expect_chips":
		player := step.Args["player"].(string)
		want := step.Args["chips"].(int)
		if got := seatChips(game, player); got != want {
			t.Errorf("%s chips = %d, want %d", player, got, want)
		}
	case "expect_energy":
		player := step.Args["player"].(string)
		want := step.Args["energy"].(int)
		got, err := game.Energy(player)
		if err != nil {
			return err
		}
		if got != want {
			t.Errorf("%s energy = %d, want %d", player, got, want)
		}
	case "expect_effect":
		player := step.Args["player"].(string)
		effect := items.Effect(step.Args["effect"].(string))
		if !hasEffect(game, player, effect) {
			t.Errorf("%s should have effect %s", player, effect)
		}
	case "expect_finished":
		if !game.Finished() {
			t.Error("match should be finished")
		}
	case "expect_playing":
		if game.Finished() {
			t.Error("match should still be running")
		}
	default:
		t.Fatalf("unknown step kind %q", step.Kind)
	}
	return nil
}

func seatChips(game *service.Game, name string) int {
	for _, player := range game.Players() {
		if player.Name == name {
			return player.Chips
		}
	}
	return 0
}

func hasEffect(game *service.Game, name string, effect items.Effect) bool {
	for _, player := range game.Players() {
		if player.Name != name {
			continue
		}
		for _, active := range player.Effects {
			if active == effect {
				return true
			}
		}
	}
	return false
}
