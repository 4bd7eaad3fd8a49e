package table

import (
	"pokerroom-server/internal/metrics"
	"pokerroom-server/pkg/action"

	"github.com/sirupsen/logrus"
)

// turnTimer is the clock of the seat on turn
// A callback only acts if the hand and turn it was armed for are still current.
type turnTimer struct {
	seatID string
	hand   int
	seq    int
	timer  Timer
}

func (t *Table) startTurnTimer(seat *Seat) {
	t.cancelTurnTimer()

	t.turnSeq++
	pending := &turnTimer{
		seatID: seat.ID,
		hand:   t.handNumber,
		seq:    t.turnSeq,
	}

	pending.timer = t.scheduler.AfterFunc(t.options.TurnTimeout, func() {
		t.turnExpired(pending)
	})

	t.turnTimer = pending
}

func (t *Table) cancelTurnTimer() {
	if t.turnTimer == nil {
		return
	}

	t.turnTimer.timer.Stop()
	t.turnTimer = nil
}

func (t *Table) turnExpired(pending *turnTimer) {
	if t.turnTimer != pending || pending.hand != t.handNumber || pending.seq != t.turnSeq {
		return
	}

	seat := t.currentSeat()
	if seat == nil || seat.ID != pending.seatID {
		return
	}

	metrics.Metrics.TurnTimedOut()
	t.logger.WithFields(logrus.Fields{
		"hand": t.handID,
		"seat": seat.ID,
	}).Info("turn timed out, calling")

	t.SubmitAction(seat.ID, action.Call)
}

func (t *Table) scheduleNextHand() {
	t.cancelNextHand()

	hand := t.handNumber
	t.nextHand = t.scheduler.AfterFunc(t.options.NextHandDelay, func() {
		if t.handNumber != hand || t.stage != StageShowdown {
			return
		}

		t.nextHand = nil
		t.stage = StageWaiting
		t.startHand()
	})
}

func (t *Table) cancelNextHand() {
	if t.nextHand == nil {
		return
	}

	t.nextHand.Stop()
	t.nextHand = nil
}
