package deck

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", Card{Rank: 2, Suit: Hearts}.String())
	assert.Equal(t, "J♣", Card{Rank: 11, Suit: Clubs}.String())
	assert.Equal(t, "Q♢", Card{Rank: 12, Suit: Diamonds}.String())
	assert.Equal(t, "K♠", Card{Rank: 13, Suit: Spades}.String())
	assert.Equal(t, "A♠", Card{Rank: 14, Suit: Spades}.String())
}

func TestCard_IsValid(t *testing.T) {
	assert.True(t, Card{Rank: 2, Suit: Hearts}.IsValid())
	assert.True(t, Card{Rank: Ace, Suit: Spades}.IsValid())
	assert.False(t, Card{Rank: 1, Suit: Spades}.IsValid())
	assert.False(t, Card{Rank: 15, Suit: Spades}.IsValid())
	assert.False(t, Card{Rank: 5, Suit: "stars"}.IsValid())
	assert.False(t, Card{}.IsValid())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card, err := CardFromString("14c")
	a.NoError(err)
	a.Equal(Card{Rank: Ace, Suit: Clubs}, card)

	card, err = CardFromString("10H")
	a.NoError(err)
	a.Equal(Card{Rank: 10, Suit: Hearts}, card)

	_, err = CardFromString("15c")
	a.EqualError(err, "could not parse card: 15c")

	_, err = CardFromString("")
	a.Error(err)
}

func TestCardsToString(t *testing.T) {
	cards := MustCardsFromString("2c,13d,14s,10h")
	assert.Equal(t, "2c,13d,14s,10h", CardsToString(cards))
	assert.Equal(t, []Card{}, MustCardsFromString(""))
	assert.Panics(t, func() {
		MustCardsFromString("2c,xx")
	})
}

func TestCardsFromString(t *testing.T) {
	cards, err := CardsFromString("14s,9d")
	assert.NoError(t, err)
	assert.Equal(t, []Card{{Rank: Ace, Suit: Spades}, {Rank: 9, Suit: Diamonds}}, cards)

	cards, err = CardsFromString("14s,zz")
	assert.EqualError(t, err, "could not parse card: zz")
	assert.Nil(t, cards)
}
