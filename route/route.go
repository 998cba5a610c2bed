// Package route defines the client's route shapes and the navigation
// contract used by controllers and the action dispatcher.
package route

import (
	"net/url"
	"strings"
)

// DraftID is the pseudo-identifier marking a conversation that exists only
// as client-local draft state.
const DraftID = "new"

const (
	LoginPath = "/login"
	ChatNew   = "/chat/new"
	Dashboard = "/dashboard"
)

// Navigator performs route transitions on behalf of controllers.
// Push records a new history entry; Replace swaps the current one.
type Navigator interface {
	Push(path string)
	Replace(path string)
}

// Chat returns the canonical route for a conversation id.
func Chat(id string) string {
	return "/chat/" + id
}

// Login builds the universal unauthenticated-redirect target. next is the
// originally requested path and query, percent-encoded so arbitrary
// characters round-trip.
func Login(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// Next extracts the post-login return path from a login route. Returns ""
// when raw carries no next parameter or cannot be parsed.
func Next(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("next")
}

// ChatID extracts the conversation id segment from a chat route. Returns ""
// for any other path.
func ChatID(path string) string {
	rest, ok := strings.CutPrefix(path, "/chat/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// SplitTarget splits a route action target on the first colon into a
// section and an optional view.
func SplitTarget(target string) (section, view string) {
	section, view, _ = strings.Cut(target, ":")
	return section, view
}

// ForTarget returns the path a route action navigates to: /section, or
// /section/view when the target carries a view.
func ForTarget(target string) string {
	section, view := SplitTarget(target)
	if view == "" {
		return "/" + section
	}
	return "/" + section + "/" + view
}

// Tab reads the tab query parameter admin sections use to restore their
// sub-view selection. Returns "" when absent or unparseable.
func Tab(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("tab")
}
