package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shulechat/client/authstore"
)

func makeToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestDecodeUser(t *testing.T) {
	token := makeToken(t, Claims{
		Name:        "Asha",
		SchoolID:    "school-1",
		Roles:       []string{RoleAdmin},
		Permissions: map[string]bool{CapManageConfigurations: true},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-1",
		},
	})

	user, err := DecodeUser(token)
	if err != nil {
		t.Fatalf("DecodeUser failed: %v", err)
	}

	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %q", user.ID)
	}
	if user.SchoolID != "school-1" {
		t.Errorf("expected school-1, got %q", user.SchoolID)
	}
	if !user.HasAnyRole([]string{RoleAdmin}) {
		t.Error("expected admin role")
	}
	if !user.HasPermission(CapManageConfigurations) {
		t.Error("expected manage_configurations capability")
	}
}

func TestDecodeUser_Garbage(t *testing.T) {
	if _, err := DecodeUser("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestHasPermission_UnknownNameIsFalse(t *testing.T) {
	user := User{Permissions: map[string]bool{"launch_rockets": true}}
	if user.HasPermission("launch_rockets") {
		t.Error("unknown capability must evaluate to false even when present")
	}
}

func TestHasPermission_KnownButNotGranted(t *testing.T) {
	user := User{Permissions: map[string]bool{}}
	if user.HasPermission(CapViewRankings) {
		t.Error("expected false for ungranted capability")
	}
}

func TestRequirement_Evaluate(t *testing.T) {
	admin := Session{Loaded: true, Authenticated: true, User: User{Roles: []string{RoleAdmin}}}
	tester := Session{Loaded: true, Authenticated: true, User: User{
		Roles:       []string{RoleTester},
		Permissions: map[string]bool{CapReviewConversations: true},
	}}
	teacher := Session{Loaded: true, Authenticated: true, User: User{Roles: []string{RoleTeacher}}}

	req := Requirement{
		Roles:        []string{RoleAdmin, RoleOwner},
		Capabilities: []string{CapReviewConversations},
		Fallback:     "/dashboard",
	}

	tests := []struct {
		name    string
		session Session
		req     Requirement
		want    Decision
	}{
		{"pending while loading", Session{}, req, DecisionPending},
		{"login when unauthenticated", Session{Loaded: true}, req, DecisionLogin},
		{"role match", admin, req, DecisionAllow},
		{"capability match", tester, req, DecisionAllow},
		{"no match falls back", teacher, req, DecisionFallback},
		{"allow all passes anyone", teacher, Requirement{AllowAll: true}, DecisionAllow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Evaluate(tt.session); got != tt.want {
				t.Errorf("expected decision %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	redirect, pending, ok := RequireAuth(authstore.Snapshot{}, "/chat/new")
	if !pending || ok || redirect != "" {
		t.Errorf("expected pending while not loaded, got redirect=%q pending=%v ok=%v", redirect, pending, ok)
	}

	redirect, pending, ok = RequireAuth(authstore.Snapshot{Loaded: true}, "/chat/new?x=1")
	if pending || ok {
		t.Errorf("expected redirect when signed out, got pending=%v ok=%v", pending, ok)
	}
	if redirect != "/login?next=%2Fchat%2Fnew%3Fx%3D1" {
		t.Errorf("unexpected redirect %q", redirect)
	}

	_, pending, ok = RequireAuth(authstore.Snapshot{Loaded: true, Token: "tok"}, "/chat/new")
	if pending || !ok {
		t.Errorf("expected ok when signed in, got pending=%v ok=%v", pending, ok)
	}
}

func TestSessionFrom_UndecodableToken(t *testing.T) {
	s := SessionFrom(authstore.Snapshot{Loaded: true, Token: "garbage"})
	if s.Authenticated {
		t.Error("expected undecodable token to be treated as signed out")
	}
}
