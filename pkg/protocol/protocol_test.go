package protocol

import (
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestOK(t *testing.T) {
	assert.Equal(t, &Response{Key: "status", Value: "OK"}, OK())
	assert.Equal(t, &Response{Key: "status", Value: "OK", Context: "abc"}, OK("abc"))
}

func TestNewErrorResponse(t *testing.T) {
	res := NewErrorResponse("ctx", errors.New("room is full"))
	assert.Equal(t, &Response{Key: "error", Value: "room is full", Context: "ctx"}, res)
}

func TestPayloadIn_decode(t *testing.T) {
	a := assert.New(t)

	var msg PayloadIn
	err := json.Unmarshal([]byte(`{"action":"kick","additionalData":{"targetId":"abc","n":3,"b":true},"context":"1"}`), &msg)
	a.NoError(err)
	a.Equal("kick", msg.Action)
	a.Equal("1", msg.Context)

	s, ok := msg.AdditionalData.GetString("targetId")
	a.True(ok)
	a.Equal("abc", s)

	n, ok := msg.AdditionalData.GetInt("n")
	a.True(ok)
	a.Equal(3, n)

	b, ok := msg.AdditionalData.GetBool("b")
	a.True(ok)
	a.True(b)

	_, ok = msg.AdditionalData.GetString("missing")
	a.False(ok)
	_, ok = msg.AdditionalData.GetInt("targetId")
	a.False(ok)

	var empty AdditionalData
	_, ok = empty.GetString("name")
	a.False(ok)
}

func TestResponse_omitEmpty(t *testing.T) {
	b, err := json.Marshal(&Response{Key: KeyYourTurn})
	assert.NoError(t, err)
	assert.Equal(t, `{"key":"your_turn"}`, string(b))
}
