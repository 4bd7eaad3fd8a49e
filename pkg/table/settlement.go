package table

import (
	"fmt"
	"pokerroom-server/internal/metrics"
	"pokerroom-server/pkg/deck"
	"pokerroom-server/pkg/protocol"
	"time"

	"github.com/sirupsen/logrus"
)

// Payout is a single seat's winnings from a hand
type Payout struct {
	SeatID   string `json:"seatId"`
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	HandName string `json:"handName,omitempty"`
}

// HandResult describes a settled hand
type HandResult struct {
	RoomID      string      `json:"roomId"`
	HandID      string      `json:"handId"`
	HandNumber  int         `json:"handNumber"`
	Community   []deck.Card `json:"community"`
	Pot         int         `json:"pot"`
	Payouts     []Payout    `json:"payouts"`
	Unallocated int         `json:"unallocated"`
	ByFold      bool        `json:"byFold"`
	EndedAt     time.Time   `json:"endedAt"`
}

// HandEndHook is called on the table's goroutine after a hand settles
// Hooks that do slow work must hand it off.
type HandEndHook func(result HandResult)

// settleFold awards the whole pot to the last seat standing
func (t *Table) settleFold(winner *Seat) {
	t.cancelTurnTimer()

	amount := t.pot
	winner.Chips += amount
	t.pot = 0
	t.stage = StageShowdown

	t.notifier.Send(winner.ID, &protocol.Response{
		Key: protocol.KeyGameResult,
		Data: protocol.GameResult{
			Message: fmt.Sprintf("Everyone else folded, you won %d chips", amount),
			Amount:  amount,
		},
	})

	t.logger.WithFields(logrus.Fields{
		"hand":   t.handID,
		"seat":   winner.ID,
		"amount": amount,
	}).Info("hand won uncontested")

	t.finishHand(HandResult{
		Pot:     amount,
		Payouts: []Payout{{SeatID: winner.ID, Name: winner.Name, Amount: amount}},
		ByFold:  true,
	})
}

// settleAbandoned ends a hand nobody is left to win
func (t *Table) settleAbandoned() {
	t.cancelTurnTimer()

	amount := t.pot
	t.unallocated += amount
	t.pot = 0
	t.stage = StageShowdown

	t.logger.WithFields(logrus.Fields{
		"hand":   t.handID,
		"amount": amount,
	}).Warn("hand ended without an active seat")

	t.finishHand(HandResult{
		Pot:         amount,
		Unallocated: amount,
		ByFold:      true,
	})
}

type contender struct {
	seat     *Seat
	strength int
	name     string
}

// settleShowdown ranks every active seat and splits the pot between the best hands
// The odd chips of a split are not awarded.
func (t *Table) settleShowdown() {
	t.cancelTurnTimer()
	t.stage = StageShowdown

	var winners []contender
	for _, seat := range t.seats {
		if seat.Status != StatusActive {
			continue
		}

		ranking, err := t.evaluator.Evaluate(seat.Hole.Combine(t.community...))
		if err != nil {
			t.logger.WithError(err).WithField("seat", seat.ID).Error("could not evaluate hand")
			continue
		}

		c := contender{seat: seat, strength: ranking.Strength, name: ranking.Name}
		switch {
		case len(winners) == 0 || c.strength > winners[0].strength:
			winners = []contender{c}
		case c.strength == winners[0].strength:
			winners = append(winners, c)
		}
	}

	amount := t.pot
	t.pot = 0

	if len(winners) == 0 {
		t.unallocated += amount
		t.logger.WithFields(logrus.Fields{
			"hand":   t.handID,
			"amount": amount,
		}).Error("no hand could be evaluated, pot is unallocated")

		t.finishHand(HandResult{Pot: amount, Unallocated: amount})
		return
	}

	share := amount / len(winners)
	remainder := amount % len(winners)
	t.unallocated += remainder

	payouts := make([]Payout, 0, len(winners))
	for _, w := range winners {
		w.seat.Chips += share
		payouts = append(payouts, Payout{
			SeatID:   w.seat.ID,
			Name:     w.seat.Name,
			Amount:   share,
			HandName: w.name,
		})

		t.notifier.Send(w.seat.ID, &protocol.Response{
			Key: protocol.KeyGameResult,
			Data: protocol.GameResult{
				Message:  fmt.Sprintf("You won %d chips with %s", share, w.name),
				Amount:   share,
				HandName: w.name,
			},
		})
	}

	t.logger.WithFields(logrus.Fields{
		"hand":      t.handID,
		"winners":   len(winners),
		"share":     share,
		"remainder": remainder,
		"community": deck.CardsToString(t.community),
	}).Info("showdown settled")

	t.finishHand(HandResult{
		Pot:         amount,
		Payouts:     payouts,
		Unallocated: remainder,
	})
}

// finishHand publishes the settled state, runs the hooks and queues the next hand
func (t *Table) finishHand(result HandResult) {
	result.RoomID = t.RoomID
	result.HandID = t.handID
	result.HandNumber = t.handNumber
	result.Community = t.community.Clone()
	result.EndedAt = t.now()

	outcome := "showdown"
	if result.ByFold {
		outcome = "fold"
	}
	metrics.Metrics.HandEnded(outcome)

	t.broadcastState()
	for _, hook := range t.hooks {
		hook(result)
	}

	t.scheduleNextHand()
}
