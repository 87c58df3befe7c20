package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "player.first", "First")
	message.SetString(lang, "player.second", "Second")
	message.SetString(lang, "board.active", "Active: %s")
	message.SetString(lang, "board.scale.even", "Scale: even")
	message.SetString(lang, "board.scale.favours", "Scale: %d in favour of %s")
	message.SetString(lang, "board.row", "%s row")
	message.SetString(lang, "board.empty", "empty")
	message.SetString(lang, "board.counts", "%s: %d in hand, %d in deck")
	message.SetString(lang, "fight.starved", "%s could not draw: deck is empty")
}
