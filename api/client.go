// Package api is the client for the school assistant's REST backend:
// conversations, authentication and the admin/tester surfaces.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TokenSource supplies the bearer token and tenant context for each request.
type TokenSource interface {
	Token() string
	ActiveSchoolID() string
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetConversation fetches a conversation and its transcript by id.
func (c *Client) GetConversation(ctx context.Context, id string) (Conversation, error) {
	var conv Conversation
	err := c.do(ctx, http.MethodGet, "/api/conversations/"+url.PathEscape(id), nil, &conv)
	return conv, err
}

// CreateConversation creates an empty conversation with the given title.
func (c *Client) CreateConversation(ctx context.Context, title string) (Conversation, error) {
	var conv Conversation
	body := map[string]string{"title": title}
	err := c.do(ctx, http.MethodPost, "/api/conversations", body, &conv)
	return conv, err
}

// SendMessage sends text to the assistant. conversationID may be empty, in
// which case the backend creates a new conversation and returns its id.
func (c *Client) SendMessage(ctx context.Context, text string, conversationID string) (SendResult, error) {
	body := map[string]string{"message": text}
	if conversationID != "" {
		body["conversation_id"] = conversationID
	}

	var res SendResult
	err := c.do(ctx, http.MethodPost, "/api/chat", body, &res)
	return res, err
}

// RunMutation performs the side-effecting call named by a mutation action.
func (c *Client) RunMutation(ctx context.Context, endpoint string) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if school := c.tokens.ActiveSchoolID(); school != "" {
			req.Header.Set("X-School-ID", school)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	// Error bodies are {"error": "..."} when present; the status alone is
	// enough when they are not.
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
