package deck

import (
	"github.com/stretchr/testify/assert"
	"pokerroom-server/internal/rng"
	"testing"
)

func TestNewDeck(t *testing.T) {
	a := assert.New(t)
	d := New()

	a.Equal(52, d.CardsLeft())
	a.Equal(Card{Rank: 2, Suit: Clubs}, d.cards[0])
	a.Equal(Card{Rank: 14, Suit: Spades}, d.cards[51])

	seen := make(map[Card]bool)
	for _, c := range d.cards {
		a.True(c.IsValid())
		seen[c] = true
	}
	a.Len(seen, 52, "every card is unique")
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	unshuffled := New().cards

	d1 := NewShuffled(rng.NewSeeded(1))
	d2 := NewShuffled(rng.NewSeeded(1))
	d3 := NewShuffled(rng.NewSeeded(2))

	a.Equal(52, d1.CardsLeft())
	a.NotEqual(unshuffled, d1.cards)
	a.Equal(d1.cards, d2.cards, "same seed, same order")
	a.NotEqual(d1.cards, d3.cards)

	seen := make(map[Card]bool)
	for _, c := range d1.cards {
		seen[c] = true
	}
	a.Len(seen, 52, "shuffle must not lose or duplicate cards")
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)
	d := New()

	a.True(d.canDraw(52))
	a.False(d.canDraw(53))

	for i := 0; i < 52; i++ {
		before := d.CardsLeft()
		card, err := d.Draw()
		a.NoError(err)
		a.True(card.IsValid())
		a.Equal(before-1, d.CardsLeft())
	}

	a.False(d.canDraw(1))

	card, err := d.Draw()
	a.Equal(Card{}, card)
	a.Equal(ErrEndOfDeck, err)
	a.Equal(ErrEndOfDeck, d.Burn())
}

func TestDeck_DrawN(t *testing.T) {
	a := assert.New(t)
	d := New()

	cards, err := d.DrawN(3)
	a.NoError(err)
	a.Equal("2c,3c,4c", CardsToString(cards))
	a.Equal(49, d.CardsLeft())

	a.NoError(d.Burn())
	a.Equal(48, d.CardsLeft())

	cards, err = d.DrawN(49)
	a.Equal(ErrEndOfDeck, err)
	a.Nil(cards)
	a.Equal(48, d.CardsLeft(), "a failed DrawN draws nothing")
}

func TestDeck_Stack(t *testing.T) {
	a := assert.New(t)
	d := NewShuffled(rng.NewSeeded(7))
	d.Stack(MustCardsFromString("14s,14h")...)

	a.Equal(52, d.CardsLeft())

	cards, err := d.DrawN(2)
	a.NoError(err)
	a.Equal("14s,14h", CardsToString(cards))
}
