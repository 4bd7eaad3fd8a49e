package deck

import (
	"errors"
	"pokerroom-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a playing deck
// Cards are drawn from the top and never returned, a new deck is built for every hand
type Deck struct {
	cards []Card
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return &Deck{cards: cards}
}

// NewShuffled builds a fresh deck and shuffles it with the generator
func NewShuffled(gen rng.Generator) *Deck {
	d := New()
	d.Shuffle(gen)
	return d
}

// Shuffle performs a Fisher-Yates shuffle of the remaining cards
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with an empty card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]

	return card, nil
}

// DrawN draws n cards, or none if the deck can't cover them
func (d *Deck) DrawN(n int) ([]Card, error) {
	if !d.canDraw(n) {
		return nil, ErrEndOfDeck
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]

	return cards, nil
}

// Burn discards the top card
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

func (d *Deck) canDraw(want int) bool {
	return len(d.cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// Stack places cards on top of the deck in the given order. Tests use this to rig a hand.
func (d *Deck) Stack(cards ...Card) {
	stacked := Hand(cards)
	rest := make([]Card, 0, len(d.cards))
	for _, c := range d.cards {
		if !stacked.HasCard(c) {
			rest = append(rest, c)
		}
	}

	d.cards = append(append(make([]Card, 0, Size), cards...), rest...)
}
