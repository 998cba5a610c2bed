package auth

import "log/slog"

// Capability names recognized by this client. The backend vocabulary can
// grow independently; names outside this set never grant access.
const (
	CapManageConfigurations = "manage_configurations"
	CapReviewConversations  = "review_conversations"
	CapViewRankings         = "view_rankings"
	CapManageBilling        = "manage_billing"
)

// HasPermission reports whether the user holds the named capability.
// Unknown names are logged and evaluate to false so that vocabulary drift
// between client and backend surfaces early instead of granting access.
func (u User) HasPermission(name string) bool {
	switch name {
	case CapManageConfigurations,
		CapReviewConversations,
		CapViewRankings,
		CapManageBilling:
		return u.Permissions[name]
	default:
		slog.Warn("unknown capability name", "name", name)
		return false
	}
}
