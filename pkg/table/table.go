package table

import (
	"pokerroom-server/internal/metrics"
	"pokerroom-server/internal/rng"
	"pokerroom-server/internal/util"
	"pokerroom-server/pkg/deck"
	"pokerroom-server/pkg/handeval"
	"pokerroom-server/pkg/protocol"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Table is a single No-Limit Hold'em table
// A Table is not safe for concurrent use, every method and every scheduled
// callback must run on one goroutine.
type Table struct {
	RoomID string

	options   Options
	logger    logrus.FieldLogger
	notifier  Notifier
	scheduler Scheduler
	evaluator handeval.Evaluator
	rng       rng.Generator
	newDeck   func(rng.Generator) *deck.Deck
	now       func() time.Time

	seats  []*Seat
	hostID string

	deck          *deck.Deck
	community     deck.Hand
	pot           int
	stage         Stage
	dealerIndex   int
	turnIndex     int
	minBet        int
	acted         map[string]bool
	lastAggressor string

	handNumber int
	handID     string
	turnSeq    int
	turnTimer  *turnTimer
	nextHand   Timer

	// chips that left the table outside of a seat's stack
	unallocated int
	abandoned   int

	hooks []HandEndHook
}

// New returns a new table in the waiting stage
func New(logger logrus.FieldLogger, roomID string, opts Options, notifier Notifier, scheduler Scheduler, evaluator handeval.Evaluator) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Table{
		RoomID:    roomID,
		options:   opts,
		logger:    logger.WithField("room", roomID),
		notifier:  notifier,
		scheduler: scheduler,
		evaluator: evaluator,
		rng:       rng.Crypto{},
		newDeck:   deck.NewShuffled,
		now:       time.Now,
		seats:     make([]*Seat, 0, opts.MaxSeats),
		community: make(deck.Hand, 0, 5),
		stage:     StageWaiting,
		acted:     make(map[string]bool),
	}, nil
}

// OnHandEnd registers a hook that is called after every settled hand
func (t *Table) OnHandEnd(hook HandEndHook) {
	t.hooks = append(t.hooks, hook)
}

// Stage returns the current stage
func (t *Table) Stage() Stage {
	return t.stage
}

// Pot returns the chips in the middle
func (t *Table) Pot() int {
	return t.pot
}

// HostID returns the ID of the seat that may kick other seats
func (t *Table) HostID() string {
	return t.hostID
}

// Seat returns a seat by its ID or nil
func (t *Table) Seat(seatID string) *Seat {
	if i := t.indexOf(seatID); i >= 0 {
		return t.seats[i]
	}

	return nil
}

// SeatCount returns the number of occupied seats
func (t *Table) SeatCount() int {
	return len(t.seats)
}

// Join seats a new participant
// Returns false when the table is full or the ID is already seated. A seat
// that joins during a hand sits out until the next one.
func (t *Table) Join(seatID, name string) bool {
	if len(t.seats) >= t.options.MaxSeats {
		t.logger.WithField("seat", seatID).Info("table is full")
		return false
	}

	if t.indexOf(seatID) >= 0 {
		return false
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = util.GetRandomName()
	}

	status := StatusActive
	if t.stage.IsBetting() {
		status = StatusSitout
	}

	t.seats = append(t.seats, &Seat{
		ID:         seatID,
		Name:       name,
		Chips:      t.options.StartingStack,
		Hole:       make(deck.Hand, 0, 2),
		Status:     status,
		LastActive: t.now(),
	})

	if t.hostID == "" {
		t.hostID = seatID
	}

	metrics.Metrics.SeatJoined()
	t.logger.WithFields(logrus.Fields{
		"seat": seatID,
		"name": name,
	}).Info("seat joined")

	t.broadcastState()
	t.maybeStartHand()
	return true
}

// Disconnect marks a seat as disconnected
// If the seat holds the turn it is folded and play moves on.
func (t *Table) Disconnect(seatID string) {
	i := t.indexOf(seatID)
	if i < 0 {
		return
	}

	seat := t.seats[i]
	if seat.Status == StatusDisconnected {
		return
	}

	onTurn := t.stage.IsBetting() && i == t.turnIndex && seat.Status == StatusActive

	seat.resumeStatus = seat.Status
	if onTurn {
		seat.resumeStatus = StatusFolded
	}

	seat.Status = StatusDisconnected
	seat.LastActive = t.now()
	t.logger.WithField("seat", seatID).Info("seat disconnected")

	if onTurn {
		t.cancelTurnTimer()
		t.acted[seat.ID] = true
		t.afterAction()
		return
	}

	if t.stage.IsBetting() {
		if active := t.activeSeats(); len(active) == 1 {
			t.settleFold(active[0])
			return
		}
	}

	t.broadcastState()
}

// Reconnect restores a disconnected seat
// Mid-hand the seat resumes the status it had, a seat that was folded by its
// disconnect stays folded and a seat that was not dealt in sits out until the
// next hand.
func (t *Table) Reconnect(seatID string) bool {
	seat := t.Seat(seatID)
	if seat == nil {
		return false
	}

	seat.LastActive = t.now()
	if seat.Status != StatusDisconnected {
		// nothing changed for the rest of the room
		t.SendState(seatID)
		return true
	}

	status := StatusActive
	if t.stage.IsBetting() {
		if seat.resumeStatus != "" {
			status = seat.resumeStatus
		}

		// a seat without cards cannot play the hand in progress
		if status == StatusActive && len(seat.Hole) == 0 {
			status = StatusSitout
		}
	}

	seat.Status = status
	seat.resumeStatus = ""
	t.logger.WithFields(logrus.Fields{
		"seat":   seatID,
		"status": status,
	}).Info("seat reconnected")

	t.broadcastState()
	t.maybeStartHand()
	return true
}

// Kick removes targetID from the table on behalf of requesterID
// Only the host may kick, and never themselves. The removed seat's chips are
// forfeited.
func (t *Table) Kick(requesterID, targetID string) error {
	requester := t.Seat(requesterID)
	targetIndex := t.indexOf(targetID)
	if requester == nil || targetIndex < 0 {
		return ErrSeatNotFound
	}

	if requesterID != t.hostID {
		return ErrNotHost
	}

	if requesterID == targetID {
		return ErrKickSelf
	}

	target := t.seats[targetIndex]
	t.notifier.Send(target.ID, &protocol.Response{
		Key: protocol.KeyKicked,
		Data: protocol.Kicked{
			Reason:     "you were removed from the table by the host",
			KickerName: requester.Name,
		},
	})
	t.notifier.Disconnect(target.ID, "kicked")

	metrics.Metrics.SeatKicked()
	t.logger.WithFields(logrus.Fields{
		"seat":   target.ID,
		"kicker": requesterID,
		"chips":  target.Chips,
	}).Info("seat kicked")

	wasTurn := t.removeSeat(targetIndex)

	if t.stage.IsBetting() {
		active := t.activeSeats()
		if len(active) == 1 {
			t.settleFold(active[0])
			return nil
		}

		if wasTurn {
			if t.roundClosed() {
				t.nextStage()
			} else {
				t.advanceTurn()
			}

			return nil
		}
	}

	t.broadcastState()
	return nil
}

// removeSeat drops the seat at index i and keeps the dealer, turn and host
// pointing at seats that still exist
// Returns true if the removed seat held the turn.
func (t *Table) removeSeat(i int) bool {
	seat := t.seats[i]
	wasTurn := t.stage.IsBetting() && i == t.turnIndex

	t.abandoned += seat.Chips
	seat.Chips = 0

	t.seats = append(t.seats[:i], t.seats[i+1:]...)
	delete(t.acted, seat.ID)
	if t.lastAggressor == seat.ID {
		t.lastAggressor = ""
	}

	if wasTurn {
		t.cancelTurnTimer()
	}

	n := len(t.seats)
	if i <= t.dealerIndex {
		t.dealerIndex--
	}

	// the turn pointer sits just before the removed seat so the next scan
	// lands on its successor
	if i <= t.turnIndex {
		t.turnIndex--
	}

	if n == 0 {
		t.dealerIndex = 0
		t.turnIndex = 0
	} else {
		if t.dealerIndex < 0 {
			t.dealerIndex = n - 1
		}

		if t.turnIndex < 0 {
			t.turnIndex = n - 1
		}
	}

	if t.hostID == seat.ID {
		t.hostID = ""
		if n > 0 {
			t.hostID = t.seats[0].ID
		}
	}

	return wasTurn
}

// sweepDisconnected removes seats that have been gone longer than the retention window
func (t *Table) sweepDisconnected() {
	cutoff := t.now().Add(-t.options.DisconnectRetention)
	for i := len(t.seats) - 1; i >= 0; i-- {
		seat := t.seats[i]
		if seat.Status != StatusDisconnected || !seat.LastActive.Before(cutoff) {
			continue
		}

		t.logger.WithFields(logrus.Fields{
			"seat":  seat.ID,
			"chips": seat.Chips,
		}).Info("removing abandoned seat")
		t.removeSeat(i)
	}
}

func (t *Table) indexOf(seatID string) int {
	for i, seat := range t.seats {
		if seat.ID == seatID {
			return i
		}
	}

	return -1
}

func (t *Table) activeSeats() []*Seat {
	active := make([]*Seat, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.Status == StatusActive {
			active = append(active, seat)
		}
	}

	return active
}

// eligible seats can be dealt into the next hand
func (t *Table) eligibleCount() int {
	count := 0
	for _, seat := range t.seats {
		if seat.Chips > 0 && seat.Status != StatusDisconnected {
			count++
		}
	}

	return count
}

// nextActiveIndex returns the first active seat after from, wrapping around
// The seat at from is considered last. Returns -1 if no seat is active.
func (t *Table) nextActiveIndex(from int) int {
	n := len(t.seats)
	for step := 1; step <= n; step++ {
		i := ((from+step)%n + n) % n
		if t.seats[i].Status == StatusActive {
			return i
		}
	}

	return -1
}

func (t *Table) currentSeat() *Seat {
	if !t.stage.IsBetting() || t.turnIndex < 0 || t.turnIndex >= len(t.seats) {
		return nil
	}

	return t.seats[t.turnIndex]
}
