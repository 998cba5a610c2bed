package auth

import (
	"github.com/shulechat/client/authstore"
	"github.com/shulechat/client/route"
)

// RequireAuth is the guard for surfaces that only need a signed-in user.
// While stored state hydrates, pending is true and callers must render
// nothing. Once loaded, an unauthenticated caller gets a login redirect
// carrying the originally requested path for post-login return.
func RequireAuth(snap authstore.Snapshot, current string) (redirect string, pending, ok bool) {
	if !snap.Loaded {
		return "", true, false
	}
	if snap.Token == "" {
		return route.Login(current), false, false
	}
	return "", false, true
}
