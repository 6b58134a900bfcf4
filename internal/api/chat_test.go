package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChatDefaultsMode(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		var body ChatInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ChatModeChat, body.Mode)
		assert.Equal(t, "who is ada?", body.Message)
		w.Write(jsonResponse(map[string]any{"reply": "A friend from school."}))
	})

	reply, err := client.SendChat(ChatInput{Message: "who is ada?"})
	require.NoError(t, err)
	assert.Equal(t, "A friend from school.", reply.Reply)
}

func TestSendChatAddModeReturnsCreated(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body ChatInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ChatModeAdd, body.Mode)
		w.Write(jsonResponse(map[string]any{
			"reply":   "Added 1 entity.",
			"created": []map[string]any{{"id": "ent-9", "name": "Gym", "type": "goal"}},
		}))
	})

	reply, err := client.SendChat(ChatInput{Message: "goal: gym 3x a week", Mode: ChatModeAdd})
	require.NoError(t, err)
	require.Len(t, reply.Created, 1)
	assert.Equal(t, "goal", reply.Created[0].Type)
}

func TestSendChatRejectsBlankMessage(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	_, err := client.SendChat(ChatInput{Message: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is required")
}
