package poker

import (
	"testing"

	"github.com/lox/pokercfr/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	kingSpades := NewCard(King, Spades)
	assert.Equal(t, King, kingSpades.Rank())
	assert.Equal(t, Spades, kingSpades.Suit())
	assert.Equal(t, "Ks", kingSpades.String())
	assert.Equal(t, "K", kingSpades.RankString())

	jackHearts := NewCard(Jack, Hearts)
	assert.Equal(t, "Jh", jackHearts.String())
	assert.Equal(t, "??", Card(0).String())
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "Js", want: NewCard(Jack, Spades)},
		{input: "qh", want: NewCard(Queen, Hearts)},
		{input: "AS", want: NewCard(Ace, Spades)},
		{input: "Tc", want: NewCard(Ten, Clubs)},
		{input: "Xs", wantErr: true},
		{input: "Jx", wantErr: true},
		{input: "J", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistinct(t *testing.T) {
	t.Parallel()
	js, qs := NewCard(Jack, Spades), NewCard(Queen, Spades)
	assert.True(t, Distinct([]Card{js, qs}))
	assert.False(t, Distinct([]Card{js, qs, js}))
	assert.True(t, NewHand(js).Contains(js))
	assert.False(t, NewHand(js).Contains(qs))
}

func TestDeckShuffleDeterministic(t *testing.T) {
	t.Parallel()
	cards := []Card{
		NewCard(Jack, Spades), NewCard(Queen, Spades), NewCard(King, Spades),
		NewCard(Jack, Hearts), NewCard(Queen, Hearts), NewCard(King, Hearts),
	}
	a := NewDeck(cards, randutil.New(42))
	b := NewDeck(cards, randutil.New(42))
	for range 5 {
		a.Shuffle()
		b.Shuffle()
		assert.Equal(t, a.Deal(len(cards)), b.Deal(len(cards)))
	}
	a.Shuffle()
	assert.ElementsMatch(t, cards, a.Deal(len(cards)))

	a.Shuffle()
	require.Len(t, a.Deal(4), 4)
	assert.Nil(t, a.Deal(3))
	assert.Len(t, a.Deal(2), 2)
}

func TestEvaluators(t *testing.T) {
	t.Parallel()
	jack, queen, king := NewCard(Jack, Spades), NewCard(Queen, Spades), NewCard(King, Spades)
	jackH := NewCard(Jack, Hearts)

	assert.Equal(t, 1, CompareHands(EvaluateKuhn(king, nil), EvaluateKuhn(queen, nil)))

	// Pair with the board beats a higher unpaired card.
	board := []Card{jackH}
	assert.Equal(t, 1, CompareHands(EvaluateLeduc(jack, board), EvaluateLeduc(king, board)))
	assert.Equal(t, -1, CompareHands(EvaluateLeduc(queen, board), EvaluateLeduc(king, board)))

	ranks := []HandRank{EvaluateLeduc(queen, board), EvaluateLeduc(NewCard(Queen, Hearts), board), EvaluateLeduc(king, board)}
	assert.Equal(t, []int{2}, Winners(ranks, []bool{true, true, true}))
	assert.Equal(t, []int{0, 1}, Winners(ranks, []bool{true, true, false}))
}
