package solver

import (
	"github.com/lox/pokercfr/internal/game"
)

// Report summarises a trained strategy profile.
type Report struct {
	Utilities []float64
	Actions   []game.Action
	Players   []PlayerReport
}

// PlayerReport lists one player's info sets in label order.
type PlayerReport struct {
	Player   int
	Utility  float64
	InfoSets []InfoSetReport
}

// InfoSetReport is the average strategy at one info set. Strategy is aligned
// with Report.Actions; actions not legal at the set are zero.
type InfoSetReport struct {
	Label    string
	Strategy []float64
}

// NewReport builds a report over alphabet from nodes. utilities may be nil
// when no evaluation was run.
func NewReport(nodes *NodeMap, alphabet []game.Action, utilities []float64) *Report {
	r := &Report{Utilities: utilities, Actions: alphabet}
	for _, player := range nodes.Players() {
		pr := PlayerReport{Player: player}
		if player < len(utilities) {
			pr.Utility = utilities[player]
		}
		for _, label := range nodes.Labels(player) {
			node, _ := nodes.Lookup(player, label)
			avg := node.AverageStrategy(node.Actions)
			row := make([]float64, len(alphabet))
			for i, a := range node.Actions {
				for j, b := range alphabet {
					if a == b {
						row[j] = avg[i]
					}
				}
			}
			pr.InfoSets = append(pr.InfoSets, InfoSetReport{Label: label, Strategy: row})
		}
		r.Players = append(r.Players, pr)
	}
	return r
}

// Lookup returns the reported strategy for (player, label).
func (r *Report) Lookup(player int, label string) (map[game.Action]float64, bool) {
	for _, pr := range r.Players {
		if pr.Player != player {
			continue
		}
		for _, is := range pr.InfoSets {
			if is.Label == label {
				out := make(map[game.Action]float64, len(r.Actions))
				for i, a := range r.Actions {
					out[a] = is.Strategy[i]
				}
				return out, true
			}
		}
	}
	return nil, false
}
