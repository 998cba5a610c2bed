// Package updates propagates conversation-updated signals between running
// client instances through a shared spool file. The envelope is a trigger
// only: receivers match on the conversation id and re-fetch authoritative
// state, never trusting the payload beyond identity.
package updates

import "time"

// EventKey is the shared channel entry name.
const EventKey = "chat_update_event"

// EventConversationUpdated is the only event type on the channel.
const EventConversationUpdated = "conversation_updated"

// removeAfter is how long a broadcast stays on disk before it is deleted.
// A delete is itself observed as a change by other instances, so the
// envelope only needs to outlive the read.
const removeAfter = 100 * time.Millisecond

// Event is the signaling envelope.
type Event struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
	Timestamp      int64  `json:"timestamp"`
}
