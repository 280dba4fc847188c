// Package game implements the small poker variants the solver trains on:
// Kuhn poker (one card each, one betting round) and Leduc poker (one private
// card, one board card, two betting rounds), each for two or three players.
//
// # Basic Usage
//
// Describe a variant with Settings, then build a root state from a deal:
//
//	settings := game.LeducSettings(2)
//	root, err := game.NewState(settings, game.DefaultDeck(settings))
//	next, err := root.Add(root.Turn(), game.Raise)
//	if next.IsTerminal() {
//	    payoffs, _ := next.Payoff()
//	}
//
// # Information Sets
//
// InfoSet returns a label that identifies everything the acting seat can
// observe: its own rank, the visible board rank, and the public action
// history. Suits never appear in labels, so deals that differ only by suit
// share information sets.
//
// # Architecture
//
// States are immutable values. Add copies the betting state and returns a new
// State, which lets tree traversals branch freely without undo bookkeeping.
// Betting rules live in bettingRound and are shared by both variants; the
// variants differ only in labelling and hand evaluation.
package game
