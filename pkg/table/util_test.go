package table

import (
	"pokerroom-server/internal/rng"
	"pokerroom-server/pkg/deck"
	"pokerroom-server/pkg/handeval"
	"pokerroom-server/pkg/protocol"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	broadcasts   []*protocol.Response
	sent         map[string][]*protocol.Response
	disconnected map[string]string
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{
		sent:         make(map[string][]*protocol.Response),
		disconnected: make(map[string]string),
	}
}

func (s *stubNotifier) Broadcast(msg *protocol.Response) {
	s.broadcasts = append(s.broadcasts, msg)
}

func (s *stubNotifier) Send(seatID string, msg *protocol.Response) {
	s.sent[seatID] = append(s.sent[seatID], msg)
}

func (s *stubNotifier) Disconnect(seatID string, reason string) {
	s.disconnected[seatID] = reason
}

// messages returns the messages sent to seatID with the given key
func (s *stubNotifier) messages(seatID, key string) []*protocol.Response {
	var found []*protocol.Response
	for _, msg := range s.sent[seatID] {
		if msg.Key == key {
			found = append(found, msg)
		}
	}

	return found
}

func (s *stubNotifier) lastState() *State {
	for i := len(s.broadcasts) - 1; i >= 0; i-- {
		if s.broadcasts[i].Key == protocol.KeyGameState {
			return s.broadcasts[i].Data.(*State)
		}
	}

	return nil
}

type manualTimer struct {
	after   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (m *manualTimer) Stop() bool {
	wasPending := !m.stopped && !m.fired
	m.stopped = true
	return wasPending
}

type manualScheduler struct {
	timers []*manualTimer
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	timer := &manualTimer{after: d, fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

func (m *manualScheduler) pending() []*manualTimer {
	var pending []*manualTimer
	for _, timer := range m.timers {
		if !timer.stopped && !timer.fired {
			pending = append(pending, timer)
		}
	}

	return pending
}

// fire runs the oldest pending timer armed with duration d
func (m *manualScheduler) fire(d time.Duration) bool {
	for _, timer := range m.pending() {
		if timer.after == d {
			timer.fired = true
			timer.fn()
			return true
		}
	}

	return false
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

type testTable struct {
	*Table
	notifier  *stubNotifier
	scheduler *manualScheduler
	clock     *fakeClock
}

func setupTable(t *testing.T, opts Options) *testTable {
	t.Helper()

	notifier := newStubNotifier()
	scheduler := &manualScheduler{}
	clock := &fakeClock{now: time.Date(2020, 1, 1, 20, 0, 0, 0, time.UTC)}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	tbl, err := New(logger, "room1", opts, notifier, scheduler, handeval.New())
	require.NoError(t, err)

	tbl.rng = rng.NewSeeded(1)
	tbl.now = clock.Now

	return &testTable{
		Table:     tbl,
		notifier:  notifier,
		scheduler: scheduler,
		clock:     clock,
	}
}

// rigDeck makes every following hand deal the given cards first
func (tt *testTable) rigDeck(cards string) {
	stacked := deck.MustCardsFromString(cards)
	tt.newDeck = func(rng.Generator) *deck.Deck {
		d := deck.New()
		d.Stack(stacked...)
		return d
	}
}

// seatPlayers seats every ID before a hand can start
func (tt *testTable) seatPlayers(ids ...string) {
	for _, id := range ids {
		tt.seats = append(tt.seats, &Seat{
			ID:         id,
			Name:       "Player " + id,
			Chips:      tt.options.StartingStack,
			Hole:       make(deck.Hand, 0, 2),
			Status:     StatusActive,
			LastActive: tt.now(),
		})

		if tt.hostID == "" {
			tt.hostID = id
		}
	}

	tt.maybeStartHand()
}

func (tt *testTable) turnID() string {
	if seat := tt.currentSeat(); seat != nil {
		return seat.ID
	}

	return ""
}

func (tt *testTable) chips(seatID string) int {
	return tt.Seat(seatID).Chips
}

// totalChips is every chip the table is accountable for
func (tt *testTable) totalChips() int {
	total := tt.pot + tt.unallocated + tt.abandoned
	for _, seat := range tt.seats {
		total += seat.Chips
	}

	return total
}

type stubEvaluator struct {
	// keyed by the first card of the seven, which is the seat's first hole card
	strength map[string]int
}

func (s stubEvaluator) Evaluate(cards []deck.Card) (handeval.Ranking, error) {
	key := deck.CardToString(cards[0])
	strength, ok := s.strength[key]
	if !ok {
		return handeval.Ranking{}, errStubUnknownCard
	}

	return handeval.Ranking{Strength: strength, Name: "Stub " + key}, nil
}

const errStubUnknownCard = UserError("stub cannot evaluate")
