//go:build scenario

package zanzibar

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/zanzibar/internal/zanzibar/service"
)

const scenarioTypeName = "scenario"

// Scenario is a table-level script: a seeded match plus an ordered list
// of actions and expectations.
type Scenario struct {
	Name    string
	Players []string
	Chips   int
	Seed    int64
	Steps   []Step
}

// Step is one scripted action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

func loadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(scenario.Players) < 2 {
		return nil, fmt.Errorf("scenario %s needs at least two players", scenario.Name)
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "grant", Function: stepGrant},
	{Name: "use", Function: stepUse},
	{Name: "purchase", Function: stepPurchase},
	{Name: "rounds", Function: stepRounds},
	{Name: "play_until_finished", Function: stepPlayUntilFinished},
	{Name: "expect_chips", Function: stepExpectChips},
	{Name: "expect_energy", Function: stepExpectEnergy},
	{Name: "expect_effect", Function: stepExpectEffect},
	{Name: "expect_finished", Function: stepExpectFinished},
	{Name: "expect_playing", Function: stepExpectPlaying},
}

func scenarioNew(state *lua.State) int {
	lua.CheckType(state, 1, lua.TypeTable)

	scenario := &Scenario{Chips: service.DefaultStartingChips, Seed: 1}

	state.Field(1, "name")
	if name, ok := state.ToString(-1); ok {
		scenario.Name = name
	}
	state.Pop(1)

	state.Field(1, "chips")
	if chips, ok := state.ToInteger(-1); ok {
		scenario.Chips = chips
	}
	state.Pop(1)

	state.Field(1, "seed")
	if seed, ok := state.ToInteger(-1); ok {
		scenario.Seed = int64(seed)
	}
	state.Pop(1)

	state.Field(1, "players")
	if state.TypeOf(-1) == lua.TypeTable {
		for i := 1; ; i++ {
			state.RawGetInt(-1, i)
			if state.TypeOf(-1) == lua.TypeNil {
				state.Pop(1)
				break
			}
			if player, ok := state.ToString(-1); ok {
				scenario.Players = append(scenario.Players, player)
			}
			state.Pop(1)
		}
	}
	state.Pop(1)

	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

func checkScenario(state *lua.State) *Scenario {
	scenario, ok := state.ToUserData(1).(*Scenario)
	if !ok || scenario == nil {
		lua.Errorf(state, "expected scenario userdata")
	}
	return scenario
}

// chain pushes the receiver back so script steps compose fluently.
func chain(state *lua.State) int {
	state.PushValue(1)
	return 1
}

func stepGrant(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "grant", Args: map[string]any{
		"player":   lua.CheckString(state, 2),
		"item":     lua.CheckString(state, 3),
		"quantity": lua.OptInteger(state, 4, 1),
	}})
	return chain(state)
}

func stepUse(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "use", Args: map[string]any{
		"player": lua.CheckString(state, 2),
		"item":   lua.CheckString(state, 3),
	}})
	return chain(state)
}

func stepPurchase(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "purchase", Args: map[string]any{
		"player": lua.CheckString(state, 2),
		"item":   lua.CheckString(state, 3),
	}})
	return chain(state)
}

func stepRounds(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "rounds", Args: map[string]any{
		"count": lua.OptInteger(state, 2, 1),
	}})
	return chain(state)
}

func stepPlayUntilFinished(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "play_until_finished", Args: map[string]any{
		"cap": lua.OptInteger(state, 2, 1000),
	}})
	return chain(state)
}

func stepExpectChips(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "expect_chips", Args: map[string]any{
		"player": lua.CheckString(state, 2),
		"chips":  lua.CheckInteger(state, 3),
	}})
	return chain(state)
}

func stepExpectEnergy(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "expect_energy", Args: map[string]any{
		"player": lua.CheckString(state, 2),
		"energy": lua.CheckInteger(state, 3),
	}})
	return chain(state)
}

func stepExpectEffect(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "expect_effect", Args: map[string]any{
		"player": lua.CheckString(state, 2),
		"effect": lua.CheckString(state, 3),
	}})
	return chain(state)
}

func stepExpectFinished(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "expect_finished"})
	return chain(state)
}

func stepExpectPlaying(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{Kind: "expect_playing"})
	return chain(state)
}
