package api

import (
	"fmt"
	"strings"
)

// SendChat posts a message to the assistant. Mode defaults to chat.
func (c *Client) SendChat(input ChatInput) (*ChatReply, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}
	if input.Mode == "" {
		input.Mode = ChatModeChat
	}
	data, err := c.post("/api/chat", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[ChatReply](data)
}
