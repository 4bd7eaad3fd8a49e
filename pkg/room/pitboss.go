package room

import (
	"pokerroom-server/internal/metrics"
	"pokerroom-server/pkg/handeval"
	"pokerroom-server/pkg/table"
	"sync"

	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to rooms
// Rooms live for the lifetime of the process.
type PitBoss struct {
	logger    logrus.FieldLogger
	options   table.Options
	evaluator handeval.Evaluator
	hooks     []table.HandEndHook

	dealers map[string]*Dealer
	lock    sync.Mutex
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, options table.Options, evaluator handeval.Evaluator) *PitBoss {
	return &PitBoss{
		logger:    logger,
		options:   options,
		evaluator: evaluator,
		dealers:   make(map[string]*Dealer),
	}
}

// OnHandEnd registers a hook on every table created after this call
func (p *PitBoss) OnHandEnd(hook table.HandEndHook) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.hooks = append(p.hooks, hook)
}

// GetOrCreate returns the dealer for roomID, starting one if needed
func (p *PitBoss) GetOrCreate(roomID string) (*Dealer, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if dealer, found := p.dealers[roomID]; found {
		return dealer, nil
	}

	dealer, err := NewDealer(p, roomID)
	if err != nil {
		return nil, err
	}

	dealer.StartShift()
	p.dealers[roomID] = dealer

	metrics.Metrics.SetRoomsOpen(len(p.dealers))
	p.logger.WithField("room", roomID).Info("opened room")
	return dealer, nil
}

// Rooms returns the number of open rooms
func (p *PitBoss) Rooms() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.dealers)
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) error {
	logrus.WithField("client", client.String()).Debug("client connected")
	dealer, err := p.GetOrCreate(client.RoomID)
	if err != nil {
		return err
	}

	dealer.AddClient(client)
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	logrus.WithField("client", client.String()).Debug("client disconnected")
	if client.dealer == nil {
		logrus.WithField("room", client.RoomID).WithField("type", "exception").Error("room not found")
		return
	}

	client.dealer.RemoveClient(client)
}

// EndShift stops every room's run loop
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for roomID, dealer := range p.dealers {
		dealer.EndShift()
		delete(p.dealers, roomID)
	}

	metrics.Metrics.SetRoomsOpen(0)
}
