// Package fight is the rule-engine core for a two-player lane duel.
//
// A Manager owns the board, both players, the scale, and the active player.
// Every action it performs broadcasts an Event to the sigils on the board in a
// deterministic activation order: the active player's lanes 0 through 3, then
// the other player's lanes 0 through 3. Each occupied slot hands its sigils, one
// at a time, to the embedding game's Handler.
//
// The package never interprets a sigil. Handlers receive every event and decide
// for themselves what to do, mutating cards, the board, the players, or the
// scale through the Manager they are given. Handlers may dispatch nested passes;
// a nested pass runs to completion before the outer pass resumes.
package fight
