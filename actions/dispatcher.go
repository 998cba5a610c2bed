// Package actions interprets the instructions emitted by structured message
// blocks and performs the matching client-side effect.
package actions

import (
	"context"
	"log/slog"

	"github.com/shulechat/client/api"
	"github.com/shulechat/client/route"
)

// Sender re-enters the chat controller for query actions.
type Sender interface {
	Send(ctx context.Context, text string)
}

// MutationRunner performs the side-effecting call named by mutation actions.
type MutationRunner interface {
	RunMutation(ctx context.Context, endpoint string) error
}

// Opener hands a resource to an external browsing context so the
// conversation is not lost.
type Opener interface {
	Open(endpoint string) error
}

// Confirmer asks the user to approve before an action proceeds.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Dispatcher routes block actions to their effectors.
type Dispatcher struct {
	sender    Sender
	nav       route.Navigator
	mutations MutationRunner
	opener    Opener
	confirmer Confirmer
}

func NewDispatcher(sender Sender, nav route.Navigator, mutations MutationRunner, opener Opener, confirmer Confirmer) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		nav:       nav,
		mutations: mutations,
		opener:    opener,
		confirmer: confirmer,
	}
}

// Dispatch performs the effect for a single action. Unknown action types
// are logged and ignored: the backend's action vocabulary evolves
// independently of this client and must never crash it. Actions missing
// their required field are silently skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, a api.Action) {
	switch a.Type {
	case api.ActionQuery:
		text, _ := a.Payload["message"].(string)
		if text == "" {
			return
		}
		d.sender.Send(ctx, text)

	case api.ActionRoute:
		if a.Target == "" {
			return
		}
		d.nav.Push(route.ForTarget(a.Target))

	case api.ActionDownload:
		if a.Endpoint == "" {
			return
		}
		if err := d.opener.Open(a.Endpoint); err != nil {
			slog.Error("failed to open download", "endpoint", a.Endpoint, "error", err)
		}

	case api.ActionMutation:
		if a.Endpoint == "" {
			return
		}
		if err := d.mutations.RunMutation(ctx, a.Endpoint); err != nil {
			slog.Error("mutation action failed", "endpoint", a.Endpoint, "error", err)
		}

	case api.ActionConfirm:
		prompt, _ := a.Payload["message"].(string)
		if prompt == "" {
			prompt = a.Label
		}
		if !d.confirmer.Confirm(prompt) {
			return
		}
		// A confirm action carrying an endpoint guards a mutation; one
		// without an endpoint only records the user's approval.
		if a.Endpoint != "" {
			if err := d.mutations.RunMutation(ctx, a.Endpoint); err != nil {
				slog.Error("confirmed action failed", "endpoint", a.Endpoint, "error", err)
			}
		}

	default:
		slog.Warn("unrecognized block action type", "type", a.Type)
	}
}
