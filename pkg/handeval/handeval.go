// Package handeval ranks poker hands. The table engine only relies on the
// Evaluator interface: a total order over rankings plus a display name.
package handeval

import (
	"errors"
	"fmt"
	"pokerroom-server/pkg/deck"

	"github.com/paulhankin/poker"
)

// ErrWrongCardCount is returned when the evaluator is not given exactly seven cards
var ErrWrongCardCount = errors.New("exactly seven cards are required")

// Ranking is the result of evaluating a set of cards
// A higher Strength beats a lower one, equal strengths tie
type Ranking struct {
	Strength int
	Name     string
}

// Evaluator ranks a combined set of hole and community cards
type Evaluator interface {
	Evaluate(cards []deck.Card) (Ranking, error)
}

// SevenCard evaluates Texas Hold'em hands (two hole cards plus five community cards)
type SevenCard struct{}

var _ Evaluator = SevenCard{}

// New returns the default evaluator
func New() SevenCard {
	return SevenCard{}
}

// Evaluate ranks seven cards
func (SevenCard) Evaluate(cards []deck.Card) (Ranking, error) {
	if len(cards) != 7 {
		return Ranking{}, ErrWrongCardCount
	}

	var hand [7]poker.Card
	seen := make(map[deck.Card]bool, 7)
	for i, c := range cards {
		if seen[c] {
			return Ranking{}, fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true

		pc, err := toPokerCard(c)
		if err != nil {
			return Ranking{}, err
		}

		hand[i] = pc
	}

	name, err := poker.Describe(hand[:])
	if err != nil {
		return Ranking{}, err
	}

	return Ranking{
		Strength: int(poker.Eval7(&hand)),
		Name:     name,
	}, nil
}

func toPokerCard(c deck.Card) (poker.Card, error) {
	var zero poker.Card
	if !c.IsValid() {
		return zero, fmt.Errorf("invalid card: %+v", c)
	}

	var suit poker.Suit
	switch c.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	}

	// the library ranks aces as 1
	rank := c.Rank
	if rank == deck.Ace {
		rank = 1
	}

	card, err := poker.MakeCard(suit, poker.Rank(rank))
	if err != nil {
		return zero, fmt.Errorf("invalid card %s: %w", c, err)
	}

	return card, nil
}
