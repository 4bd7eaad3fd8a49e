package room

import (
	"pokerroom-server/pkg/protocol"
	"pokerroom-server/pkg/table"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitBoss_GetOrCreate(t *testing.T) {
	p := setupPitBoss()

	d1, err := p.GetOrCreate("room1")
	require.NoError(t, err)
	d2, err := p.GetOrCreate("room1")
	require.NoError(t, err)
	assert.Same(t, d1, d2)
	assert.Equal(t, "room1", d1.RoomID())

	_, err = p.GetOrCreate("room2")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Rooms())

	p.EndShift()
	assert.Equal(t, 0, p.Rooms())
}

func TestPitBoss_ConcurrentGetOrCreate(t *testing.T) {
	p := setupPitBoss()
	defer p.EndShift()

	dealers := make(chan *Dealer, 20)
	for i := 0; i < 20; i++ {
		go func() {
			d, err := p.GetOrCreate("shared")
			if err != nil {
				dealers <- nil
				return
			}

			dealers <- d
		}()
	}

	first := <-dealers
	require.NotNil(t, first)
	for i := 1; i < 20; i++ {
		assert.Same(t, first, <-dealers)
	}

	assert.Equal(t, 1, p.Rooms())
}

func TestPitBoss_HandEndHook(t *testing.T) {
	p := setupPitBoss()
	defer p.EndShift()

	ended := make(chan string, 1)
	p.OnHandEnd(func(result table.HandResult) {
		ended <- result.RoomID
	})

	a := connect(t, p, "a")
	b := connect(t, p, "b")
	send(a, protocol.ActionJoin, "", nil)
	waitFor(t, a, protocol.KeyJoined)
	send(b, protocol.ActionJoin, "", nil)
	waitFor(t, a, protocol.KeyYourTurn)

	send(a, protocol.ActionAction, "fold", nil)
	res := waitFor(t, b, protocol.KeyGameResult)
	assert.Equal(t, 150, res.Data.(protocol.GameResult).Amount)

	select {
	case roomID := <-ended:
		assert.Equal(t, "room1", roomID)
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called")
	}

	p.ClientDisconnected(NewClient(nil, "room1", "ghost"))
}
