package room

import (
	"errors"
	"pokerroom-server/internal/metrics"
	"pokerroom-server/pkg/action"
	"pokerroom-server/pkg/protocol"
	"pokerroom-server/pkg/table"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	errTableFull       = errors.New("the table is full")
	errAlreadySeated   = errors.New("you are already seated")
	errSeatNotFound    = errors.New("there is no seat to reconnect to")
	errSeatInUse       = errors.New("that seat is connected elsewhere")
	errMissingTarget   = errors.New("targetId is required")
	errUnknownAction   = errors.New("unknown action")
	errDealerNotActive = errors.New("dealer is not active")
)

// Dealer runs a single room
// Every table operation, timer and next-hand callback is executed on the
// dealer's run loop.
type Dealer struct {
	roomID  string
	pitBoss *PitBoss
	table   *table.Table
	logger  logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	// seat ID to the client acting as that seat, run loop only
	seats map[string]*Client

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, roomID string) (*Dealer, error) {
	d := &Dealer{
		roomID:        roomID,
		pitBoss:       pitBoss,
		logger:        pitBoss.logger.WithField("room", roomID),
		clients:       make(map[*Client]bool),
		seats:         make(map[string]*Client),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	tbl, err := table.New(pitBoss.logger, roomID, pitBoss.options, d, d, pitBoss.evaluator)
	if err != nil {
		return nil, err
	}

	for _, hook := range pitBoss.hooks {
		tbl.OnHandEnd(hook)
	}

	d.table = tbl
	return d, nil
}

// RoomID returns the ID of the room
func (d *Dealer) RoomID() string {
	return d.roomID
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// exec queues fn on the run loop
// Returns false if the dealer has ended its shift.
func (d *Dealer) exec(fn func()) bool {
	select {
	case <-d.close:
		return false
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// execAndWait runs fn on the run loop and waits for it to finish
func (d *Dealer) execAndWait(fn func()) error {
	done := make(chan bool)
	if !d.exec(func() {
		fn()
		close(done)
	}) {
		return errDealerNotActive
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return errDealerNotActive
	}
}

// State returns a copy of the table's projection
func (d *Dealer) State() (*table.State, error) {
	var state *table.State
	err := d.execAndWait(func() {
		state = d.table.State()
	})

	return state, err
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	metrics.Metrics.ClientConnected()
	d.exec(func() {
		client.Send(&protocol.Response{
			Key:  protocol.KeyGameState,
			Data: d.table.State(),
		})
	})
}

// RemoveClient removes a client, marking its seat as disconnected
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	metrics.Metrics.ClientDisconnected()
	d.exec(func() {
		if d.seats[client.seatID] != client {
			return
		}

		delete(d.seats, client.seatID)
		d.table.Disconnect(client.seatID)
	})

	return nClients == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *protocol.PayloadIn) {
	d.exec(func() {
		d.handleMessage(c, msg)
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(c *Client, msg *protocol.PayloadIn) {
	log := d.logger.WithFields(logrus.Fields{
		"seat":   c.seatID,
		"action": msg.Action,
	})

	switch msg.Action {
	case protocol.ActionJoin:
		if d.table.Seat(c.seatID) != nil {
			c.Send(protocol.NewErrorResponse(msg.Context, errAlreadySeated))
			return
		}

		if bound, ok := d.seats[c.seatID]; ok && bound != c {
			c.Send(protocol.NewErrorResponse(msg.Context, errSeatInUse))
			return
		}

		name, _ := msg.AdditionalData.GetString("name")

		// bind first so the seat receives its turn if the join starts a hand
		d.seats[c.seatID] = c
		if !d.table.Join(c.seatID, name) {
			delete(d.seats, c.seatID)
			c.Send(protocol.NewErrorResponse(msg.Context, errTableFull))
			return
		}

		c.Send(&protocol.Response{
			Key:     protocol.KeyJoined,
			Data:    protocol.Joined{SeatID: c.seatID, RoomID: d.roomID},
			Context: msg.Context,
		})
	case protocol.ActionReconnect:
		if bound, ok := d.seats[c.seatID]; ok && bound != c {
			c.Send(protocol.NewErrorResponse(msg.Context, errSeatInUse))
			return
		}

		if d.table.Seat(c.seatID) == nil {
			c.Send(protocol.NewErrorResponse(msg.Context, errSeatNotFound))
			return
		}

		d.seats[c.seatID] = c
		c.Send(&protocol.Response{
			Key:     protocol.KeyJoined,
			Data:    protocol.Joined{SeatID: c.seatID, RoomID: d.roomID},
			Context: msg.Context,
		})
		d.table.Reconnect(c.seatID)
	case protocol.ActionAction:
		if d.seats[c.seatID] != c {
			log.Debug("ignoring action from an unseated client")
			return
		}

		kind, err := action.FromString(msg.Subject)
		if err != nil {
			log.WithError(err).Debug("ignoring action")
			return
		}

		d.table.SubmitAction(c.seatID, kind)
	case protocol.ActionKick:
		targetID, _ := msg.AdditionalData.GetString("targetId")
		if targetID == "" {
			c.Send(protocol.NewErrorResponse(msg.Context, errMissingTarget))
			return
		}

		result := protocol.KickResult{Success: true, Message: "player removed"}
		if d.seats[c.seatID] != c {
			result = protocol.KickResult{Message: table.ErrSeatNotFound.Error()}
		} else if err := d.table.Kick(c.seatID, targetID); err != nil {
			result = protocol.KickResult{Message: err.Error()}
		}

		c.Send(&protocol.Response{
			Key:     protocol.KeyKickResult,
			Data:    result,
			Context: msg.Context,
		})
	default:
		log.Warn("unknown message")
		c.Send(protocol.NewErrorResponse(msg.Context, errUnknownAction))
	}
}

// Broadcast sends a message to every client in the room
// NOTE: must only be called from the run loop
func (d *Dealer) Broadcast(msg *protocol.Response) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// Send sends a message to the client acting as seatID
// NOTE: must only be called from the run loop
func (d *Dealer) Send(seatID string, msg *protocol.Response) {
	if client, ok := d.seats[seatID]; ok {
		client.Send(msg)
	}
}

// Disconnect closes the connection of the client acting as seatID
// NOTE: must only be called from the run loop
func (d *Dealer) Disconnect(seatID string, reason string) {
	client, ok := d.seats[seatID]
	if !ok {
		return
	}

	delete(d.seats, seatID)
	client.RequestClose(reason)
}

// AfterFunc schedules fn on the run loop after the duration elapses
func (d *Dealer) AfterFunc(after time.Duration, fn func()) table.Timer {
	return time.AfterFunc(after, func() {
		d.exec(fn)
	})
}
