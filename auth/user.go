// Package auth decodes the user record carried by the session token and
// decides whether gated surfaces may proceed.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role tags recognized by this client.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleTester  = "tester"
)

// User is the decoded user record.
type User struct {
	ID          string
	Name        string
	SchoolID    string
	Roles       []string
	Permissions map[string]bool
}

// Claims is the token payload issued by the auth service.
type Claims struct {
	Name        string          `json:"name"`
	SchoolID    string          `json:"school_id"`
	Roles       []string        `json:"roles"`
	Permissions map[string]bool `json:"permissions"`
	jwt.RegisteredClaims
}

// DecodeUser extracts the user record from a bearer token without verifying
// the signature. The backend is the authority on token validity; the client
// only reads claims to decide which surfaces to offer.
func DecodeUser(token string) (User, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return User{}, fmt.Errorf("decode token: %w", err)
	}

	return User{
		ID:          claims.Subject,
		Name:        claims.Name,
		SchoolID:    claims.SchoolID,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
	}, nil
}

// HasAnyRole reports whether the user carries at least one of the given
// role tags.
func (u User) HasAnyRole(roles []string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
