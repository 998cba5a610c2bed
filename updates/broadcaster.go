package updates

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Broadcaster writes transient conversation-updated envelopes to the shared
// channel directory.
type Broadcaster struct {
	dir         string
	removeAfter time.Duration
}

func NewBroadcaster(dataDir string) (*Broadcaster, error) {
	dir := filepath.Join(dataDir, "events")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Broadcaster{dir: dir, removeAfter: removeAfter}, nil
}

// ConversationUpdated writes the envelope and schedules its removal.
// Broadcast failures are logged, not surfaced: signaling is best effort and
// every receiver re-fetches its own state anyway.
func (b *Broadcaster) ConversationUpdated(conversationID string) {
	ev := Event{
		Type:           EventConversationUpdated,
		ConversationID: conversationID,
		Timestamp:      time.Now().UnixMilli(),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to encode update event", "conversationId", conversationID, "error", err)
		return
	}

	path := filepath.Join(b.dir, EventKey)
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Error("failed to broadcast conversation update", "conversationId", conversationID, "error", err)
		return
	}

	time.AfterFunc(b.removeAfter, func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Debug("failed to clear update event", "error", err)
		}
	})
}
