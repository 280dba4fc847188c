package poker

// HandRank orders showdown hands; higher is better.
type HandRank uint16

// pairBonus lifts any pair with the board above every unpaired rank.
const pairBonus HandRank = 1 << 8

// EvaluateKuhn ranks a Kuhn hand: the highest card wins.
func EvaluateKuhn(hole Card, _ []Card) HandRank {
	return HandRank(hole.Rank())
}

// EvaluateLeduc ranks a Leduc hand. Pairing the board beats any unpaired
// hand; otherwise the higher hole card wins.
func EvaluateLeduc(hole Card, board []Card) HandRank {
	rank := HandRank(hole.Rank())
	for _, b := range board {
		if b.Rank() == hole.Rank() {
			return pairBonus + rank
		}
	}
	return rank
}

// Evaluator ranks a hole card against the board.
type Evaluator func(hole Card, board []Card) HandRank

// Winners returns the seats holding the best rank among live seats.
func Winners(ranks []HandRank, live []bool) []int {
	var best HandRank
	var winners []int
	for seat, r := range ranks {
		if !live[seat] {
			continue
		}
		cmp := CompareHands(r, best)
		switch {
		case len(winners) == 0 || cmp > 0:
			best = r
			winners = append(winners[:0], seat)
		case cmp == 0:
			winners = append(winners, seat)
		}
	}
	return winners
}

// CompareHands returns -1 if a < b, 0 if equal, 1 if a > b
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
