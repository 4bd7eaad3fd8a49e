package table

import (
	"pokerroom-server/pkg/deck"
	"pokerroom-server/pkg/protocol"
)

// SeatState is the public view of a seat
type SeatState struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Chips        int         `json:"chips"`
	Status       Status      `json:"status"`
	CurrentBet   int         `json:"currentBet"`
	IsDealer     bool        `json:"isDealer"`
	IsSmallBlind bool        `json:"isSmallBlind"`
	IsBigBlind   bool        `json:"isBigBlind"`
	IsHost       bool        `json:"isHost"`
	Hand         []deck.Card `json:"hand"`
}

// State is the projection of the table sent to clients
type State struct {
	RoomID           string       `json:"roomId"`
	Stage            Stage        `json:"stage"`
	Pot              int          `json:"pot"`
	MinBet           int          `json:"minBet"`
	CommunityCards   []deck.Card  `json:"communityCards"`
	DealerIndex      int          `json:"dealerIdx"`
	CurrentTurnIndex int          `json:"currentTurnIdx"`
	Players          []*SeatState `json:"players"`
}

// State returns the current projection
// Every seat's hole cards are included.
func (t *Table) State() *State {
	players := make([]*SeatState, len(t.seats))
	for i, seat := range t.seats {
		players[i] = &SeatState{
			ID:           seat.ID,
			Name:         seat.Name,
			Chips:        seat.Chips,
			Status:       seat.Status,
			CurrentBet:   seat.CurrentBet,
			IsDealer:     seat.Roles.Has(RoleDealer),
			IsSmallBlind: seat.Roles.Has(RoleSmallBlind),
			IsBigBlind:   seat.Roles.Has(RoleBigBlind),
			IsHost:       seat.ID == t.hostID,
			Hand:         seat.Hole.Clone(),
		}
	}

	return &State{
		RoomID:           t.RoomID,
		Stage:            t.stage,
		Pot:              t.pot,
		MinBet:           t.minBet,
		CommunityCards:   t.community.Clone(),
		DealerIndex:      t.dealerIndex,
		CurrentTurnIndex: t.turnIndex,
		Players:          players,
	}
}

// SendState sends the projection to a single seat
func (t *Table) SendState(seatID string) {
	t.notifier.Send(seatID, &protocol.Response{
		Key:  protocol.KeyGameState,
		Data: t.State(),
	})
}

func (t *Table) broadcastState() {
	t.notifier.Broadcast(&protocol.Response{
		Key:  protocol.KeyGameState,
		Data: t.State(),
	})
}

// ChipsOffTable reports chips that left play without landing in a stack
// unallocated holds undistributed split remainders, abandoned holds the stacks
// of removed seats.
func (t *Table) ChipsOffTable() (unallocated, abandoned int) {
	return t.unallocated, t.abandoned
}
