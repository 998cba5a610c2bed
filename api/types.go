package api

import "encoding/json"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DisplayMessage is one transcript entry. User messages never carry blocks;
// the chat controller enforces this on the client side.
type DisplayMessage struct {
	Role    string  `json:"role"`
	Content string  `json:"content"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Block is a structured rendering unit attached to an assistant message.
// Blocks are rebuilt from every response and never persisted client-side.
type Block struct {
	Type    string          `json:"type"`
	Title   string          `json:"title,omitempty"`
	Columns []string        `json:"columns,omitempty"`
	Rows    [][]string      `json:"rows,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Actions []Action        `json:"actions,omitempty"`
}

// Action types a block can emit.
const (
	ActionQuery    = "query"
	ActionRoute    = "route"
	ActionDownload = "download"
	ActionMutation = "mutation"
	ActionConfirm  = "confirm"
)

// Action is a tagged instruction emitted when the user interacts with a
// rendered block.
type Action struct {
	Type     string         `json:"type"`
	Label    string         `json:"label,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
	Target   string         `json:"target,omitempty"`
	Endpoint string         `json:"endpoint,omitempty"`
}

// Conversation is a stored conversation and its transcript.
type Conversation struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	DisplayMessages []DisplayMessage `json:"display_messages"`
}

// SendResult is the backend's reply to a sent message. ConversationID names
// the conversation the exchange landed in, which is newly assigned when the
// send created one.
type SendResult struct {
	Response       string  `json:"response"`
	Blocks         []Block `json:"blocks,omitempty"`
	ConversationID string  `json:"conversation_id"`
}
