package solver

import (
	"context"
	"runtime"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

// Deals returns every ordered assignment of settings.NumCards() distinct
// cards drawn from cards.
func Deals(settings game.Settings, cards []poker.Card) ([][]poker.Card, error) {
	if err := settings.ValidateDeck(cards); err != nil {
		return nil, err
	}
	perms := combin.Permutations(len(cards), settings.NumCards())
	deals := make([][]poker.Card, len(perms))
	for i, perm := range perms {
		deal := make([]poker.Card, len(perm))
		for j, idx := range perm {
			deal[j] = cards[idx]
		}
		deals[i] = deal
	}
	return deals, nil
}

// ExpectedUtility returns each player's expected payoff when every player
// follows the average strategy in nodes, averaged over all deals of cards.
// Deals are evaluated concurrently; nodes must not be written meanwhile.
func ExpectedUtility(ctx context.Context, nodes *NodeMap, settings game.Settings, cards []poker.Card) ([]float64, error) {
	deals, err := Deals(settings, cards)
	if err != nil {
		return nil, err
	}

	results := make([][]float64, len(deals))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, deal := range deals {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := game.NewState(settings, deal)
			if err != nil {
				return err
			}
			u, err := averageValue(root, nodes, nil)
			if err != nil {
				return err
			}
			results[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make([]float64, settings.NumPlayers)
	for _, u := range results {
		floats.Add(total, u)
	}
	floats.Scale(1/float64(len(deals)), total)
	return total, nil
}

// averageValue returns the utility of state when everyone plays the average
// strategy, optionally reshaped by bias. Branches the strategy never takes are
// skipped; any other info set absent from nodes is an error, since training
// never reached it.
func averageValue(state game.State, nodes *NodeMap, bias *leafBias) ([]float64, error) {
	if state.IsTerminal() {
		return state.Payoff()
	}
	actor, label := state.Turn(), state.InfoSet()
	node, ok := nodes.Lookup(actor, label)
	if !ok {
		return nil, &UnreachedInfoSetError{Player: actor, Label: label}
	}
	actions := state.ValidActions()
	probs := node.AverageStrategy(actions)
	if bias != nil && bias.player == actor {
		probs = bias.apply(probs, actions)
	}

	var value []float64
	for i, a := range actions {
		if probs[i] == 0 {
			continue
		}
		child, err := state.Add(actor, a)
		if err != nil {
			return nil, err
		}
		u, err := averageValue(child, nodes, bias)
		if err != nil {
			return nil, err
		}
		if value == nil {
			value = make([]float64, len(u))
		}
		floats.AddScaled(value, probs[i], u)
	}
	return value, nil
}
