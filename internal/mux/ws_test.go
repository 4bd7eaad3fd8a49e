package mux

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"pokerroom-server/pkg/protocol"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsMessage struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

func dial(t *testing.T, ts *httptest.Server, query url.Values) *websocket.Conn {
	t.Helper()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// readUntil reads frames until one with key arrives
func readUntil(t *testing.T, conn *websocket.Conn, key string) wsMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", key, err)
		}

		if msg.Key == key {
			return msg
		}
	}
}

func join(t *testing.T, conn *websocket.Conn, name string) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(protocol.PayloadIn{
		Action:         protocol.ActionJoin,
		AdditionalData: protocol.AdditionalData{"name": name},
		Context:        "join",
	}))
}

func TestWS_JoinStartsHand(t *testing.T) {
	ts, pitBoss := setupServer(t)

	alice := dial(t, ts, url.Values{"seatId": {"alice"}})
	readUntil(t, alice, protocol.KeyGameState)
	assert.Equal(t, 1, pitBoss.Rooms())

	join(t, alice, "Alice")
	msg := readUntil(t, alice, protocol.KeyJoined)
	assert.Equal(t, "join", msg.Context)

	var joined protocol.Joined
	require.NoError(t, json.Unmarshal(msg.Data, &joined))
	assert.Equal(t, protocol.Joined{SeatID: "alice", RoomID: "room1"}, joined)

	bob := dial(t, ts, url.Values{"seatId": {"bob"}, "roomId": {"room1"}})
	readUntil(t, bob, protocol.KeyGameState)
	join(t, bob, "Bob")
	readUntil(t, bob, protocol.KeyJoined)

	// the second seat starts the first hand
	for {
		msg := readUntil(t, bob, protocol.KeyGameState)

		var state struct {
			Stage   string `json:"stage"`
			Pot     int    `json:"pot"`
			Players []struct {
				ID string `json:"id"`
			} `json:"players"`
		}
		require.NoError(t, json.Unmarshal(msg.Data, &state))
		if state.Stage == "preflop" {
			assert.Equal(t, 150, state.Pot)
			assert.Len(t, state.Players, 2)
			break
		}
	}
}

func TestWS_SeparateRooms(t *testing.T) {
	ts, pitBoss := setupServer(t)

	a := dial(t, ts, url.Values{"roomId": {"one"}})
	readUntil(t, a, protocol.KeyGameState)
	b := dial(t, ts, url.Values{"roomId": {"two"}})
	readUntil(t, b, protocol.KeyGameState)

	assert.Equal(t, 2, pitBoss.Rooms())
}

func TestWS_MalformedMessage(t *testing.T) {
	ts, _ := setupServer(t)

	conn := dial(t, ts, nil)
	readUntil(t, conn, protocol.KeyGameState)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := readUntil(t, conn, protocol.KeyError)
	assert.Equal(t, errMalformedMessage.Error(), msg.Value)

	// the connection survives a bad frame
	require.NoError(t, conn.WriteJSON(protocol.PayloadIn{Action: "dance"}))
	msg = readUntil(t, conn, protocol.KeyError)
	assert.Equal(t, "unknown action", msg.Value)
}

func TestWS_InvalidIDs(t *testing.T) {
	ts, _ := setupServer(t)

	var res errorResponse
	assertGet(t, ts, "/ws?roomId="+url.QueryEscape("a room"), &res, 400)
	assert.Equal(t, errInvalidRoomID.Error(), res.Message)

	res = errorResponse{}
	assertGet(t, ts, "/ws?seatId="+strings.Repeat("x", 65), &res, 400)
	assert.Equal(t, errInvalidSeatID.Error(), res.Message)
}
