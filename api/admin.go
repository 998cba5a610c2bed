package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// School is a tenant the signed-in user belongs to.
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListSchools returns the schools available to the signed-in user.
func (c *Client) ListSchools(ctx context.Context) ([]School, error) {
	var res struct {
		Schools []School `json:"schools"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/schools", nil, &res); err != nil {
		return nil, err
	}
	return res.Schools, nil
}

// IntentConfigVersion is one version of the assistant's intent configuration.
type IntentConfigVersion struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Active    bool      `json:"active"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListIntentConfigs returns all intent-configuration versions.
func (c *Client) ListIntentConfigs(ctx context.Context) ([]IntentConfigVersion, error) {
	var res struct {
		Versions []IntentConfigVersion `json:"versions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/intent-configs", nil, &res); err != nil {
		return nil, err
	}
	return res.Versions, nil
}

// ActivateIntentConfig makes the given version the live configuration.
func (c *Client) ActivateIntentConfig(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/intent-configs/"+url.PathEscape(id)+"/activate", nil, nil)
}

// ReviewItem is a conversation flagged for review.
type ReviewItem struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	FlaggedAt      time.Time `json:"flagged_at"`
}

// ListReviewQueue returns flagged conversations, optionally filtered by
// status (e.g. "pending", "resolved").
func (c *Client) ListReviewQueue(ctx context.Context, status string) ([]ReviewItem, error) {
	path := "/api/admin/reviews"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var res struct {
		Items []ReviewItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// TesterRank is one leaderboard entry.
type TesterRank struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}

// ListTesterRankings returns the tester contribution leaderboard.
func (c *Client) ListTesterRankings(ctx context.Context) ([]TesterRank, error) {
	var res struct {
		Rankings []TesterRank `json:"rankings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/rankings", nil, &res); err != nil {
		return nil, err
	}
	return res.Rankings, nil
}
