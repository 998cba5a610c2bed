package auth

import (
	"github.com/shulechat/client/authstore"
	"github.com/shulechat/client/route"
)

// Decision is the outcome of evaluating a gate.
type Decision int

const (
	// DecisionPending means stored state is still hydrating; render nothing.
	DecisionPending Decision = iota
	// DecisionAllow lets the surface proceed.
	DecisionAllow
	// DecisionLogin redirects the unauthenticated caller to the login route.
	DecisionLogin
	// DecisionFallback sends an authenticated but unpermitted caller to the
	// requirement's fallback route.
	DecisionFallback
)

// Session is the auth context a gate evaluates against.
type Session struct {
	Loaded        bool
	Authenticated bool
	User          User
}

// Requirement describes who may enter a gated surface. The role and
// capability lists use OR semantics: matching any single entry suffices.
type Requirement struct {
	Roles        []string
	Capabilities []string
	AllowAll     bool   // any authenticated user passes
	Fallback     string // route for rejected callers
}

// Evaluate decides whether the surface may proceed for the given session.
func (r Requirement) Evaluate(s Session) Decision {
	if !s.Loaded {
		return DecisionPending
	}
	if !s.Authenticated {
		return DecisionLogin
	}
	if r.AllowAll {
		return DecisionAllow
	}
	if s.User.HasAnyRole(r.Roles) {
		return DecisionAllow
	}
	for _, name := range r.Capabilities {
		if s.User.HasPermission(name) {
			return DecisionAllow
		}
	}
	return DecisionFallback
}

// FallbackRoute is where rejected callers are sent.
func (r Requirement) FallbackRoute() string {
	if r.Fallback == "" {
		return route.Dashboard
	}
	return r.Fallback
}

// SessionFrom builds the gate context from stored auth state, decoding the
// user record when a token is present.
func SessionFrom(snap authstore.Snapshot) Session {
	s := Session{
		Loaded:        snap.Loaded,
		Authenticated: snap.Loaded && snap.Token != "",
	}
	if !s.Authenticated {
		return s
	}
	user, err := DecodeUser(snap.Token)
	if err != nil {
		// An undecodable token cannot prove anything; treat as signed out.
		s.Authenticated = false
		return s
	}
	s.User = user
	return s
}
