package luasigil

import (
	"errors"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Shopify/go-lua"
)

const (
	cardTypeName  = "leshy.card"
	fightTypeName = "leshy.fight"
)

// activation bounds the lifetime of the handles given to one Lua call.
type activation struct {
	done bool
}

type cardHandle struct {
	card *fight.Card[string]
	act  *activation
}

type fightHandle struct {
	m   *fight.Manager[string]
	act *activation
}

func registerHandleTypes(state *lua.State) {
	lua.NewMetaTable(state, cardTypeName)
	state.NewTable()
	lua.SetFunctions(state, cardMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	lua.NewMetaTable(state, fightTypeName)
	state.NewTable()
	lua.SetFunctions(state, fightMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func pushCard(state *lua.State, card *fight.Card[string], act *activation) {
	if card == nil {
		state.PushNil()
		return
	}
	state.PushUserData(&cardHandle{card: card, act: act})
	lua.SetMetaTableNamed(state, cardTypeName)
}

func pushFight(state *lua.State, m *fight.Manager[string], act *activation) {
	state.PushUserData(&fightHandle{m: m, act: act})
	lua.SetMetaTableNamed(state, fightTypeName)
}

func checkCard(state *lua.State, index int) *cardHandle {
	ud := lua.CheckUserData(state, index, cardTypeName)
	handle, ok := ud.(*cardHandle)
	if !ok || handle == nil {
		lua.ArgumentError(state, index, "card expected")
		return nil
	}
	if handle.act.done {
		lua.Errorf(state, "%s", ErrHandleExpired.Error())
	}
	return handle
}

func checkFight(state *lua.State) *fightHandle {
	ud := lua.CheckUserData(state, 1, fightTypeName)
	handle, ok := ud.(*fightHandle)
	if !ok || handle == nil {
		lua.ArgumentError(state, 1, "fight expected")
		return nil
	}
	if handle.act.done {
		lua.Errorf(state, "%s", ErrHandleExpired.Error())
	}
	return handle
}

func checkPlayer(state *lua.State, index int) fight.PlayerID {
	id, err := ParsePlayer(lua.CheckString(state, index))
	if err != nil {
		lua.ArgumentError(state, index, err.Error())
	}
	return id
}

func checkLane(state *lua.State, index int) int {
	lane := lua.CheckInteger(state, index)
	if lane < 0 || lane >= fight.Lanes {
		lua.ArgumentError(state, index, "lane out of range")
	}
	return lane
}

var cardMethods = []lua.RegistryFunction{
	{Name: "name", Function: cardName},
	{Name: "power", Function: cardPower},
	{Name: "health", Function: cardHealth},
	{Name: "owner", Function: cardOwner},
	{Name: "dead", Function: cardDead},
	{Name: "add_power", Function: cardAddPower},
	{Name: "add_health", Function: cardAddHealth},
	{Name: "has_sigil", Function: cardHasSigil},
	{Name: "add_sigil", Function: cardAddSigil},
	{Name: "remove_sigil", Function: cardRemoveSigil},
	{Name: "sigils", Function: cardSigils},
	{Name: "is", Function: cardIs},
}

func cardName(state *lua.State) int {
	state.PushString(checkCard(state, 1).card.Name())
	return 1
}

func cardPower(state *lua.State) int {
	state.PushInteger(checkCard(state, 1).card.Power())
	return 1
}

func cardHealth(state *lua.State) int {
	state.PushInteger(checkCard(state, 1).card.Health())
	return 1
}

func cardOwner(state *lua.State) int {
	state.PushString(checkCard(state, 1).card.Owner.String())
	return 1
}

func cardDead(state *lua.State) int {
	state.PushBoolean(checkCard(state, 1).card.Dead())
	return 1
}

func cardAddPower(state *lua.State) int {
	handle := checkCard(state, 1)
	handle.card.PowerMod += lua.CheckInteger(state, 2)
	return 0
}

func cardAddHealth(state *lua.State) int {
	handle := checkCard(state, 1)
	handle.card.HealthMod += lua.CheckInteger(state, 2)
	return 0
}

func cardHasSigil(state *lua.State) int {
	handle := checkCard(state, 1)
	state.PushBoolean(handle.card.HasSigil(lua.CheckString(state, 2)))
	return 1
}

func cardAddSigil(state *lua.State) int {
	handle := checkCard(state, 1)
	handle.card.AddSigil(lua.CheckString(state, 2))
	return 0
}

func cardRemoveSigil(state *lua.State) int {
	handle := checkCard(state, 1)
	state.PushBoolean(handle.card.RemoveSigil(lua.CheckString(state, 2)))
	return 1
}

func cardSigils(state *lua.State) int {
	sigils := checkCard(state, 1).card.Sigils()
	state.CreateTable(len(sigils), 0)
	for i, sigil := range sigils {
		state.PushString(sigil)
		state.RawSetInt(-2, i+1)
	}
	return 1
}

func cardIs(state *lua.State) int {
	handle := checkCard(state, 1)
	if state.IsNoneOrNil(2) {
		state.PushBoolean(false)
		return 1
	}
	other := checkCard(state, 2)
	state.PushBoolean(handle.card == other.card)
	return 1
}

var fightMethods = []lua.RegistryFunction{
	{Name: "scale", Function: fightScale},
	{Name: "tip", Function: fightTip},
	{Name: "active", Function: fightActive},
	{Name: "hand_size", Function: fightHandSize},
	{Name: "deck_size", Function: fightDeckSize},
	{Name: "draw", Function: fightDraw},
	{Name: "broadcast", Function: fightBroadcast},
	{Name: "card_at", Function: fightCardAt},
	{Name: "opposing", Function: fightOpposing},
}

func fightScale(state *lua.State) int {
	state.PushInteger(checkFight(state).m.Scale)
	return 1
}

// fightTip moves the scale by n, in favour of the given player or of First when
// no player is named.
func fightTip(state *lua.State) int {
	handle := checkFight(state)
	n := lua.CheckInteger(state, 2)
	id := fight.First
	if !state.IsNoneOrNil(3) {
		id = checkPlayer(state, 3)
	}
	handle.m.Tip(id, n)
	return 0
}

func fightActive(state *lua.State) int {
	state.PushString(checkFight(state).m.Active().String())
	return 1
}

func fightHandSize(state *lua.State) int {
	handle := checkFight(state)
	state.PushInteger(len(handle.m.Player(checkPlayer(state, 2)).Hand))
	return 1
}

func fightDeckSize(state *lua.State) int {
	handle := checkFight(state)
	state.PushInteger(len(handle.m.Player(checkPlayer(state, 2)).Deck))
	return 1
}

func fightDraw(state *lua.State) int {
	handle := checkFight(state)
	err := handle.m.Draw(checkPlayer(state, 2))
	if err != nil && !errors.Is(err, fight.ErrPlayerStarve) {
		lua.Errorf(state, "%s", err.Error())
	}
	state.PushBoolean(err == nil)
	return 1
}

func fightBroadcast(state *lua.State) int {
	handle := checkFight(state)
	evt, err := ParseEvent(lua.CheckString(state, 2))
	if err != nil {
		lua.ArgumentError(state, 2, err.Error())
	}
	var causing *fight.Card[string]
	if !state.IsNoneOrNil(3) {
		causing = checkCard(state, 3).card
	}
	handle.m.HandleSigils(evt, causing)
	return 0
}

func fightCardAt(state *lua.State) int {
	handle := checkFight(state)
	id := checkPlayer(state, 2)
	lane := checkLane(state, 3)
	pushCard(state, handle.m.Board.At(id, lane), handle.act)
	return 1
}

func fightOpposing(state *lua.State) int {
	handle := checkFight(state)
	id := checkPlayer(state, 2)
	lane := checkLane(state, 3)
	pushCard(state, handle.m.Board.Opposing(id, lane), handle.act)
	return 1
}
