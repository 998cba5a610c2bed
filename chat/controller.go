// Package chat owns the client-side conversation lifecycle: loading a
// transcript, optimistic message dispatch with rollback, redirect on first
// send, and propagation of updates to other running instances.
package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shulechat/client/api"
	"github.com/shulechat/client/drafts"
	"github.com/shulechat/client/route"
)

// Service is the conversation backend boundary consumed by the controller.
type Service interface {
	GetConversation(ctx context.Context, id string) (api.Conversation, error)
	SendMessage(ctx context.Context, text string, conversationID string) (api.SendResult, error)
}

// Broadcaster signals other running instances that a conversation changed.
type Broadcaster interface {
	ConversationUpdated(conversationID string)
}

// DraftStore supplies a stashed first message exactly once.
type DraftStore interface {
	Take(key string) (text string, ok bool, err error)
}

// sendFailureMessage replaces the assistant reply when a send fails. The
// optimistic user entry is rolled back first so the transcript never claims
// a message was accepted when it was not.
const sendFailureMessage = "Sorry, I couldn't process that message. Please try again."

// loadFailureMessage is the retryable error shown when a transcript cannot
// be fetched.
const loadFailureMessage = "Failed to load this conversation. Retry, or start a new chat."

// Controller holds the in-memory conversation state for one chat surface.
type Controller struct {
	svc       Service
	nav       route.Navigator
	broadcast Broadcaster
	drafts    DraftStore

	mu           sync.Mutex
	chatID       string
	conversation *api.Conversation
	messages     []api.DisplayMessage
	busy         bool
	loading      bool
	loadErr      string
}

func NewController(svc Service, nav route.Navigator, broadcast Broadcaster, draftStore DraftStore) *Controller {
	return &Controller{
		svc:       svc,
		nav:       nav,
		broadcast: broadcast,
		drafts:    draftStore,
	}
}

// ChatID returns the conversation id the controller currently addresses.
func (c *Controller) ChatID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatID
}

// Messages returns a copy of the transcript in display order.
func (c *Controller) Messages() []api.DisplayMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.DisplayMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Conversation returns the loaded conversation metadata, if any.
func (c *Controller) Conversation() (api.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conversation == nil {
		return api.Conversation{}, false
	}
	return *c.conversation, true
}

// Busy reports whether a send is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Loading reports whether a transcript fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LoadError returns the retryable load failure message, or "".
func (c *Controller) LoadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Load prepares the controller for the conversation addressed by chatID.
// The draft marker and malformed ids reset to empty draft state and consume
// any stashed first message; valid ids fetch the stored transcript. Load
// tolerates concurrent re-entry (mount plus a cross-instance event): both
// runs converge on the fetched state.
func (c *Controller) Load(ctx context.Context, chatID string) {
	c.mu.Lock()
	c.chatID = chatID
	c.mu.Unlock()

	if chatID == route.DraftID || !IsValidUUID(chatID) {
		c.mu.Lock()
		c.loading = false
		c.loadErr = ""
		c.conversation = nil
		c.messages = nil
		c.mu.Unlock()
		c.sendStashed(ctx, chatID)
		return
	}

	c.mu.Lock()
	c.loading = true
	c.loadErr = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	conv, err := c.svc.GetConversation(ctx, chatID)
	if err != nil {
		switch {
		case api.IsNotFound(err):
			c.nav.Replace(route.ChatNew)
		case api.IsUnauthorized(err):
			c.nav.Replace(route.Login(route.Chat(chatID)))
		default:
			slog.Error("failed to load conversation", "chatId", chatID, "error", err)
			c.mu.Lock()
			c.loadErr = loadFailureMessage
			c.mu.Unlock()
		}
		return
	}

	c.mu.Lock()
	c.conversation = &conv
	c.messages = append([]api.DisplayMessage(nil), conv.DisplayMessages...)
	c.mu.Unlock()
}

// sendStashed consumes a pending initial message left by a referring
// surface: the generic draft slot first, then the per-id slot.
func (c *Controller) sendStashed(ctx context.Context, chatID string) {
	if c.drafts == nil {
		return
	}
	for _, key := range []string{drafts.GenericKey, drafts.Key(chatID)} {
		text, ok, err := c.drafts.Take(key)
		if err != nil {
			slog.Error("failed to read stashed message", "key", key, "error", err)
			continue
		}
		if ok {
			c.Send(ctx, text)
			return
		}
	}
}

// Send dispatches text to the assistant. The user entry is appended before
// the network call and either confirmed by the reply or rolled back. A call
// made while a send is in flight is dropped, not queued.
func (c *Controller) Send(ctx context.Context, text string) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return
	}
	c.busy = true
	c.messages = append(c.messages, api.DisplayMessage{Role: api.RoleUser, Content: text})

	chatID := c.chatID
	onDraftRoute := chatID == route.DraftID || !IsValidUUID(chatID)
	hadConversation := c.conversation != nil

	// Send against the loaded conversation when there is one, else the
	// route id when it is concrete; otherwise the backend creates one.
	targetID := ""
	if hadConversation {
		targetID = c.conversation.ID
	} else if !onDraftRoute {
		targetID = chatID
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	res, err := c.svc.SendMessage(ctx, text, targetID)
	if err != nil {
		if api.IsUnauthorized(err) {
			// The optimistic entry stays; the user lands back here after
			// signing in again.
			c.nav.Replace(route.Login(route.Chat(chatID)))
			return
		}
		slog.Error("failed to send message", "chatId", chatID, "error", err)
		c.mu.Lock()
		if n := len(c.messages); n > 0 {
			c.messages = c.messages[:n-1]
		}
		c.messages = append(c.messages, api.DisplayMessage{Role: api.RoleAssistant, Content: sendFailureMessage})
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.messages = append(c.messages, api.DisplayMessage{
		Role:    api.RoleAssistant,
		Content: res.Response,
		Blocks:  res.Blocks,
	})
	c.mu.Unlock()

	switch {
	case res.ConversationID != "" && !hadConversation && onDraftRoute:
		// First exchange created the conversation: tell the other
		// instances, then settle on the canonical route. Details load on
		// navigation, so no extra fetch here.
		c.broadcast.ConversationUpdated(res.ConversationID)
		c.nav.Replace(route.Chat(res.ConversationID))
	case res.ConversationID != "" && !hadConversation:
		c.adoptConversation(ctx, res.ConversationID)
	case hadConversation:
		c.broadcast.ConversationUpdated(targetID)
	}
}

// adoptConversation backfills conversation metadata when a send produced an
// id while the route already pointed at one. A failed fetch is logged and
// swallowed: the transcript is already correct, only metadata such as the
// title lags until the next reload.
func (c *Controller) adoptConversation(ctx context.Context, id string) {
	conv, err := c.svc.GetConversation(ctx, id)
	if err != nil {
		slog.Warn("failed to fetch conversation details after send", "conversationId", id, "error", err)
		return
	}

	c.mu.Lock()
	c.conversation = &conv
	c.mu.Unlock()

	c.broadcast.ConversationUpdated(id)
}
