package scenario

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const duelTypeName = "duel"

// Scenario is an ordered list of steps loaded from a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scenario instruction with its decoded arguments.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs a scenario script and returns the Duel it builds.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newDSLState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScenarioChunk(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenarioFromString runs a scenario script held in memory.
func LoadScenarioFromString(src string) (*Scenario, error) {
	state := newDSLState()
	if err := lua.LoadString(state, src); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return runScenarioChunk(state)
}

func newDSLState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)

	lua.NewMetaTable(state, duelTypeName)
	state.NewTable()
	lua.SetFunctions(state, duelMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, duelConstructor, 0)
	state.SetGlobal("Duel")
	return state
}

func runScenarioChunk(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, errors.New("scenario script must return a Duel")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, errors.New("scenario script returned an invalid Duel")
	}
	return scenario, nil
}

var duelConstructor = []lua.RegistryFunction{
	{Name: "new", Function: duelNew},
}

func duelNew(state *lua.State) int {
	scenario := &Scenario{Name: lua.OptString(state, 1, "")}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, duelTypeName)
	return 1
}

var duelMethods = []lua.RegistryFunction{
	{Name: "active", Function: playerStep("set_active")},
	{Name: "set_active", Function: playerStep("set_active")},
	{Name: "deck", Function: cardListStep("deck")},
	{Name: "hand", Function: cardListStep("hand")},
	{Name: "place", Function: placementStep("place")},
	{Name: "play", Function: placementStep("play")},
	{Name: "damage", Function: duelDamage},
	{Name: "draw", Function: playerStep("draw")},
	{Name: "broadcast", Function: duelBroadcast},
	{Name: "expect_scale", Function: duelExpectScale},
	{Name: "expect_hand", Function: countExpectation("expect_hand")},
	{Name: "expect_deck", Function: countExpectation("expect_deck")},
	{Name: "expect_card", Function: duelExpectCard},
	{Name: "expect_empty", Function: duelExpectEmpty},
	{Name: "expect_starve", Function: duelExpectStarve},
}

func playerStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkDuel(state)
		appendStep(scenario, kind, map[string]any{"player": lua.CheckString(state, 2)})
		state.PushValue(1)
		return 1
	}
}

func cardListStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkDuel(state)
		player := lua.CheckString(state, 2)
		lua.CheckType(state, 3, lua.TypeTable)
		appendStep(scenario, kind, map[string]any{"player": player, "cards": tableToGo(state, 3)})
		state.PushValue(1)
		return 1
	}
}

func placementStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkDuel(state)
		appendStep(scenario, kind, map[string]any{
			"player": lua.CheckString(state, 2),
			"lane":   lua.CheckInteger(state, 3),
			"card":   lua.CheckString(state, 4),
		})
		state.PushValue(1)
		return 1
	}
}

func duelDamage(state *lua.State) int {
	scenario := checkDuel(state)
	appendStep(scenario, "damage", map[string]any{
		"player": lua.CheckString(state, 2),
		"lane":   lua.CheckInteger(state, 3),
		"amount": lua.CheckInteger(state, 4),
	})
	state.PushValue(1)
	return 1
}

func duelBroadcast(state *lua.State) int {
	scenario := checkDuel(state)
	data := map[string]any{"event": lua.CheckString(state, 2)}
	for key, value := range optionalTable(state, 3) {
		data[key] = value
	}
	appendStep(scenario, "broadcast", data)
	state.PushValue(1)
	return 1
}

func duelExpectScale(state *lua.State) int {
	scenario := checkDuel(state)
	appendStep(scenario, "expect_scale", map[string]any{"value": lua.CheckInteger(state, 2)})
	state.PushValue(1)
	return 1
}

func countExpectation(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkDuel(state)
		appendStep(scenario, kind, map[string]any{
			"player": lua.CheckString(state, 2),
			"count":  lua.CheckInteger(state, 3),
		})
		state.PushValue(1)
		return 1
	}
}

func duelExpectCard(state *lua.State) int {
	scenario := checkDuel(state)
	data := map[string]any{
		"player": lua.CheckString(state, 2),
		"lane":   lua.CheckInteger(state, 3),
	}
	for key, value := range optionalTable(state, 4) {
		data[key] = value
	}
	appendStep(scenario, "expect_card", data)
	state.PushValue(1)
	return 1
}

func duelExpectEmpty(state *lua.State) int {
	scenario := checkDuel(state)
	appendStep(scenario, "expect_empty", map[string]any{
		"player": lua.CheckString(state, 2),
		"lane":   lua.CheckInteger(state, 3),
	})
	state.PushValue(1)
	return 1
}

func duelExpectStarve(state *lua.State) int {
	scenario := checkDuel(state)
	data := map[string]any{}
	if !state.IsNoneOrNil(2) {
		data["player"] = lua.CheckString(state, 2)
	}
	appendStep(scenario, "expect_starve", data)
	state.PushValue(1)
	return 1
}

func checkDuel(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, duelTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "duel expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}
	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo decodes a sequence as []any and anything else as a map.
func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}
	index = state.AbsIndex(index)
	length := state.RawLength(index)
	if length == 0 {
		if m := tableToMap(state, index); len(m) > 0 {
			return m
		}
		return []any{}
	}
	result := make([]any, 0, length)
	for i := 1; i <= length; i++ {
		state.RawGetInt(index, i)
		result = append(result, luaToGo(state, -1))
		state.Pop(1)
	}
	return result
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
