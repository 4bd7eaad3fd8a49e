package table

import (
	"pokerroom-server/internal/metrics"
	"pokerroom-server/internal/util"
	"pokerroom-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

func (t *Table) maybeStartHand() {
	if t.stage != StageWaiting || t.eligibleCount() < 2 {
		return
	}

	t.startHand()
}

// startHand sweeps abandoned seats, rotates the button, posts the blinds and
// deals two cards to every seat in the hand
func (t *Table) startHand() {
	t.cancelNextHand()
	t.cancelTurnTimer()
	t.sweepDisconnected()

	t.community = make(deck.Hand, 0, 5)
	t.pot = 0
	t.minBet = 0
	t.acted = make(map[string]bool)
	t.lastAggressor = ""

	for _, seat := range t.seats {
		seat.Hole = make(deck.Hand, 0, 2)
		seat.CurrentBet = 0
		seat.Roles = 0
		seat.resumeStatus = ""
		if seat.Status == StatusDisconnected {
			// not dealt in, so a reconnect during this hand sits out
			seat.resumeStatus = StatusSitout
			continue
		}

		if seat.Chips > 0 {
			seat.Status = StatusActive
		} else {
			seat.Status = StatusSitout
		}
	}

	if t.eligibleCount() < 2 {
		t.stage = StageWaiting
		t.turnIndex = 0
		if i := t.nextActiveIndex(-1); i >= 0 {
			t.turnIndex = i
		}

		t.broadcastState()
		return
	}

	t.handNumber++
	t.handID = util.NewID()
	t.stage = StagePreflop
	t.deck = t.newDeck(t.rng)

	t.dealerIndex = t.nextActiveIndex(t.dealerIndex)
	sb := t.nextActiveIndex(t.dealerIndex)
	bb := t.nextActiveIndex(sb)

	t.seats[t.dealerIndex].Roles |= RoleDealer
	t.postBlind(t.seats[sb], t.options.SmallBlind, RoleSmallBlind)
	t.postBlind(t.seats[bb], t.options.BigBlind, RoleBigBlind)
	t.minBet = t.options.BigBlind

	if err := t.dealHoleCards(); err != nil {
		t.logger.WithError(err).Error("could not deal hole cards")
	}

	metrics.Metrics.HandStarted()
	t.logger.WithFields(logrus.Fields{
		"hand":   t.handID,
		"number": t.handNumber,
		"dealer": t.seats[t.dealerIndex].ID,
		"seats":  len(t.activeSeats()),
		"deck":   t.deck.CardsLeft(),
	}).Info("hand started")

	t.beginTurn(t.nextActiveIndex(bb))
}

func (t *Table) postBlind(seat *Seat, amount int, role Role) {
	seat.Roles |= role
	t.pot += seat.pay(amount)
}

func (t *Table) dealHoleCards() error {
	for round := 0; round < 2; round++ {
		for _, seat := range t.seats {
			if seat.Status != StatusActive {
				continue
			}

			card, err := t.deck.Draw()
			if err != nil {
				return err
			}

			seat.Hole.AddCard(card)
		}
	}

	return nil
}

func (t *Table) dealCommunity(n int) error {
	if err := t.deck.Burn(); err != nil {
		return err
	}

	cards, err := t.deck.DrawN(n)
	if err != nil {
		return err
	}

	t.community = append(t.community, cards...)
	return nil
}

// nextStage closes the betting round and moves to the next street
func (t *Table) nextStage() {
	t.cancelTurnTimer()
	for _, seat := range t.seats {
		seat.CurrentBet = 0
	}

	t.minBet = 0
	t.acted = make(map[string]bool)
	t.lastAggressor = ""

	var err error
	switch t.stage {
	case StagePreflop:
		t.stage = StageFlop
		err = t.dealCommunity(3)
	case StageFlop:
		t.stage = StageTurn
		err = t.dealCommunity(1)
	case StageTurn:
		t.stage = StageRiver
		err = t.dealCommunity(1)
	case StageRiver:
		t.settleShowdown()
		return
	default:
		return
	}

	if err != nil {
		t.logger.WithError(err).WithField("stage", t.stage).Error("could not deal community cards")
	}

	t.logger.WithFields(logrus.Fields{
		"hand":      t.handID,
		"stage":     t.stage,
		"community": deck.CardsToString(t.community),
		"deck":      t.deck.CardsLeft(),
	}).Debug("advanced stage")

	t.beginTurn(t.nextActiveIndex(t.dealerIndex))
}
