package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, "player.first", "Primeiro")
	message.SetString(lang, "player.second", "Segundo")
	message.SetString(lang, "board.active", "Ativo: %s")
	message.SetString(lang, "board.scale.even", "Balança: equilibrada")
	message.SetString(lang, "board.scale.favours", "Balança: %d a favor de %s")
	message.SetString(lang, "board.row", "Fileira: %s")
	message.SetString(lang, "board.empty", "vazio")
	message.SetString(lang, "board.counts", "%s: %d na mão, %d no baralho")
	message.SetString(lang, "fight.starved", "%s não pôde comprar: o baralho está vazio")
}
