package solver

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/lox/pokercfr/internal/game"
)

// InfoSet accumulates regrets and strategy sums for one information set.
// Both tables are keyed by exactly the actions legal at the set.
type InfoSet struct {
	Actions     []game.Action
	RegretSum   map[game.Action]float64
	StrategySum map[game.Action]float64
	Frozen      bool
}

// NewInfoSet returns an info set with zeroed tables over actions.
func NewInfoSet(actions []game.Action) *InfoSet {
	s := &InfoSet{
		Actions:     slices.Clone(actions),
		RegretSum:   make(map[game.Action]float64, len(actions)),
		StrategySum: make(map[game.Action]float64, len(actions)),
	}
	for _, a := range actions {
		s.RegretSum[a] = 0
		s.StrategySum[a] = 0
	}
	return s
}

// Strategy returns the current regret-matching distribution over valid, in
// the order given. It is recomputed on every call.
func (s *InfoSet) Strategy(valid []game.Action) []float64 {
	strat := make([]float64, len(valid))
	total := 0.0
	for i, a := range valid {
		if r := s.RegretSum[a]; r > 0 {
			strat[i] = r
			total += r
		}
	}
	return normalise(strat, total)
}

// AverageStrategy returns the normalised strategy sum over valid. Regrets
// play no part.
func (s *InfoSet) AverageStrategy(valid []game.Action) []float64 {
	strat := make([]float64, len(valid))
	total := 0.0
	for i, a := range valid {
		strat[i] = s.StrategySum[a]
		total += strat[i]
	}
	return normalise(strat, total)
}

func normalise(strat []float64, total float64) []float64 {
	if total <= 0 {
		// Uniform fallback
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// AddRegret accumulates regret for a.
func (s *InfoSet) AddRegret(a game.Action, v float64) error {
	if s.Frozen {
		return ErrFrozenInfoSet
	}
	s.RegretSum[a] += v
	return nil
}

// AddStrategy accumulates strategy weight for a.
func (s *InfoSet) AddStrategy(a game.Action, w float64) error {
	if s.Frozen {
		return ErrFrozenInfoSet
	}
	s.StrategySum[a] += w
	return nil
}

// Scale multiplies every regret and strategy entry by d.
func (s *InfoSet) Scale(d float64) error {
	if s.Frozen {
		return ErrFrozenInfoSet
	}
	for a := range s.RegretSum {
		s.RegretSum[a] *= d
	}
	for a := range s.StrategySum {
		s.StrategySum[a] *= d
	}
	return nil
}

// NodeMap holds info sets per player keyed by label. Lookups are safe to run
// concurrently with each other; writes are serialised.
type NodeMap struct {
	mu      sync.RWMutex
	players map[int]map[string]*InfoSet
}

// NewNodeMap returns an empty node map.
func NewNodeMap() *NodeMap {
	return &NodeMap{players: make(map[int]map[string]*InfoSet)}
}

// GetOrCreate returns the info set for (player, label), creating it over
// actions when missing.
func (m *NodeMap) GetOrCreate(player int, label string, actions []game.Action) *InfoSet {
	m.mu.RLock()
	node, ok := m.players[player][label]
	m.mu.RUnlock()
	if ok {
		return node
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	labels, ok := m.players[player]
	if !ok {
		labels = make(map[string]*InfoSet)
		m.players[player] = labels
	}
	if node, ok = labels[label]; ok {
		return node
	}
	node = NewInfoSet(actions)
	labels[label] = node
	return node
}

// Lookup returns the info set for (player, label) without creating it.
func (m *NodeMap) Lookup(player int, label string) (*InfoSet, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.players[player][label]
	return node, ok
}

// Players returns the players that own at least one info set, ascending.
func (m *NodeMap) Players() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.players))
}

// Labels returns a player's labels sorted by length, then lexicographically.
func (m *NodeMap) Labels(player int) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	labels := slices.Collect(maps.Keys(m.players[player]))
	slices.SortFunc(labels, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(a, b))
	})
	return labels
}

// Len returns the total number of info sets across all players.
func (m *NodeMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, labels := range m.players {
		n += len(labels)
	}
	return n
}

// Freeze marks (player, label) as frozen, creating it over actions if needed.
func (m *NodeMap) Freeze(player int, label string, actions []game.Action) *InfoSet {
	node := m.GetOrCreate(player, label, actions)
	node.Frozen = true
	return node
}

// Discount scales every non-frozen info set by d.
func (m *NodeMap) Discount(d float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for player, labels := range m.players {
		for label, node := range labels {
			if node.Frozen {
				continue
			}
			if err := node.Scale(d); err != nil {
				return fmt.Errorf("discount %d/%s: %w", player, label, err)
			}
		}
	}
	return nil
}
