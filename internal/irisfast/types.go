package irisfast

import "strings"

// Message is one inbound chat event pushed by Iris.
type Message struct {
	Msg    string       `json:"msg"`
	Room   *string      `json:"room,omitempty"`
	Sender *string      `json:"sender,omitempty"`
	JSON   *MessageJSON `json:"json,omitempty"`
}

type MessageJSON struct {
	UserID  string `json:"user_id,omitempty"`
	ChatID  string `json:"chat_id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (m *Message) Text() string {
	if m == nil {
		return ""
	}
	if strings.TrimSpace(m.Msg) == "" && m.JSON != nil {
		return strings.TrimSpace(m.JSON.Message)
	}
	return strings.TrimSpace(m.Msg)
}

// RoomID prefers the chat id in the raw payload over the display room name.
func (m *Message) RoomID() string {
	if m == nil {
		return ""
	}
	if m.JSON != nil && strings.TrimSpace(m.JSON.ChatID) != "" {
		return strings.TrimSpace(m.JSON.ChatID)
	}
	return deref(m.Room)
}

func (m *Message) SenderName() string {
	if m == nil {
		return ""
	}
	return deref(m.Sender)
}

func (m *Message) UserID() string {
	if m == nil || m.JSON == nil {
		return ""
	}
	return strings.TrimSpace(m.JSON.UserID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ReplyRequest is the body of POST /reply and of outbound WS frames.
type ReplyRequest struct {
	Type string `json:"type"` // text | image
	Room string `json:"room"`
	Data string `json:"data"`
}

type WebSocketState int

const (
	WSStateDisconnected WebSocketState = iota
	WSStateConnecting
	WSStateConnected
	WSStateReconnecting
	WSStateFailed
)

func (s WebSocketState) String() string {
	switch s {
	case WSStateConnecting:
		return "connecting"
	case WSStateConnected:
		return "connected"
	case WSStateReconnecting:
		return "reconnecting"
	case WSStateFailed:
		return "failed"
	default:
		return "disconnected"
	}
}
