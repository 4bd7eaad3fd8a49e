package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"pokerroom-server/pkg/protocol"
	"pokerroom-server/pkg/room"
	"regexp"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var errInvalidRoomID = errors.New("roomId must be 1-64 letters, digits, dashes or underscores")
var errMalformedMessage = errors.New("message must be a JSON object")
var errInvalidSeatID = errors.New("seatId must be 1-64 letters, digits, dashes or underscores")

func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.FormValue("roomId")
		if roomID == "" {
			roomID = m.defaultRoom
		}

		if !validID.MatchString(roomID) {
			writeJSONError(w, r, http.StatusBadRequest, errInvalidRoomID)
			return
		}

		seatID := r.FormValue("seatId")
		if seatID != "" && !validID.MatchString(seatID) {
			writeJSONError(w, r, http.StatusBadRequest, errInvalidSeatID)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn, roomID, seatID)
		if err := m.pitBoss.ClientConnected(client); err != nil {
			logrus.WithError(err).WithField("client", client.String()).Error("could not seat client in room")
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "room unavailable"))
			_ = conn.Close()
			return
		}

		waitForCloseFrame := make(chan bool)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			_ = conn.Close()
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(client, waitForCloseFrame)
		m.webSocketReadLoop(client)
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	send := client.SendChan()
	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			// flush whatever was queued before the close, e.g. a kicked notice
			for drained := false; !drained; {
				select {
				case msg := <-send:
					_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = client.Conn.WriteJSON(msg)
				default:
					drained = true
				}
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg, ok := <-send:
			if !ok {
				return
			}

			if logrus.IsLevelEnabled(logrus.TraceLevel) {
				msgBytes, _ := json.Marshal(msg)
				logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(client *room.Client) {
	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Warn("unexpected close")
			} else {
				logrus.WithError(err).WithField("client", client.String()).Debug("read loop ended")
			}

			client.CloseError = err
			return
		}

		var msg protocol.PayloadIn
		if err := json.Unmarshal(data, &msg); err != nil {
			client.Send(protocol.NewErrorResponse("", errMalformedMessage))
			continue
		}

		client.ReceivedMessage(&msg)
	}
}
