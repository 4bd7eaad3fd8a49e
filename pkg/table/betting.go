package table

import (
	"pokerroom-server/internal/metrics"
	"pokerroom-server/pkg/action"
	"pokerroom-server/pkg/protocol"

	"github.com/sirupsen/logrus"
)

// YourTurn is sent to the seat that must act
type YourTurn struct {
	SeatID  string `json:"seatId"`
	ToCall  int    `json:"toCall"`
	MinBet  int    `json:"minBet"`
	Timeout int    `json:"timeoutSeconds"`
}

// SubmitAction applies a betting action for the seat on turn
// Anything that is not a legal action by the seat on turn is ignored.
func (t *Table) SubmitAction(seatID string, a action.Action) {
	seat := t.currentSeat()
	if seat == nil || seat.ID != seatID || seat.Status != StatusActive {
		t.logger.WithFields(logrus.Fields{
			"seat":   seatID,
			"action": a,
		}).Debug("ignoring action from a seat that is not on turn")
		return
	}

	toCall := t.minBet - seat.CurrentBet
	if toCall < 0 {
		toCall = 0
	}

	paid := 0
	switch a {
	case action.Fold:
		t.cancelTurnTimer()
		seat.Status = StatusFolded
	case action.Check, action.Call:
		t.cancelTurnTimer()
		paid = seat.pay(toCall)
	case action.Raise:
		// a raise always moves exactly one big blind, even from below the call target
		raiseBy := t.options.BigBlind
		if seat.Chips < raiseBy {
			t.logger.WithFields(logrus.Fields{
				"seat":  seatID,
				"chips": seat.Chips,
				"need":  raiseBy,
			}).Debug("ignoring raise the seat cannot afford")
			return
		}

		t.cancelTurnTimer()
		paid = seat.pay(raiseBy)
		t.minBet = seat.CurrentBet
		t.lastAggressor = seat.ID
	default:
		t.logger.WithField("action", a).Debug("ignoring unknown action")
		return
	}

	t.pot += paid
	seat.LastActive = t.now()
	t.acted[seat.ID] = true

	metrics.Metrics.ActionTaken(a.String())
	t.logger.WithFields(logrus.Fields{
		"hand":  t.handID,
		"seat":  seat.ID,
		"stage": t.stage,
	}).Debug(a.LogMessage(seat.CurrentBet))

	t.afterAction()
}

// afterAction settles the hand, closes the round or passes the turn
func (t *Table) afterAction() {
	active := t.activeSeats()
	switch {
	case len(active) == 1:
		t.settleFold(active[0])
	case len(active) == 0:
		t.settleAbandoned()
	case t.roundClosed():
		t.nextStage()
	default:
		t.advanceTurn()
	}
}

// roundClosed is true when every active seat has acted since the last raise
// and has matched the bet or is all-in
func (t *Table) roundClosed() bool {
	for _, seat := range t.seats {
		if seat.Status != StatusActive {
			continue
		}

		if !t.acted[seat.ID] {
			return false
		}

		if seat.CurrentBet < t.minBet && !seat.IsAllIn() {
			return false
		}
	}

	return true
}

func (t *Table) advanceTurn() {
	next := t.nextActiveIndex(t.turnIndex)
	if next < 0 {
		return
	}

	t.beginTurn(next)
}

// beginTurn hands the turn to the seat at index i and starts its clock
func (t *Table) beginTurn(i int) {
	if i < 0 {
		return
	}

	t.turnIndex = i
	seat := t.seats[i]

	toCall := t.minBet - seat.CurrentBet
	if toCall < 0 {
		toCall = 0
	}

	t.notifier.Send(seat.ID, &protocol.Response{
		Key: protocol.KeyYourTurn,
		Data: YourTurn{
			SeatID:  seat.ID,
			ToCall:  toCall,
			MinBet:  t.minBet,
			Timeout: int(t.options.TurnTimeout.Seconds()),
		},
	})

	t.broadcastState()
	t.startTurnTimer(seat)
}
