package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens struct {
	token  string
	school string
}

func (s staticTokens) Token() string          { return s.token }
func (s staticTokens) ActiveSchoolID() string { return s.school }

func TestClient_GetConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/conversations/abc" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("X-School-ID"); got != "school-1" {
			t.Errorf("unexpected school header %q", got)
		}
		json.NewEncoder(w).Encode(Conversation{
			ID:    "abc",
			Title: "Enrollment questions",
			DisplayMessages: []DisplayMessage{
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, Content: "hello"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{token: "tok-1", school: "school-1"}, 0)

	conv, err := client.GetConversation(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if conv.Title != "Enrollment questions" {
		t.Errorf("unexpected title %q", conv.Title)
	}
	if len(conv.DisplayMessages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(conv.DisplayMessages))
	}
}

func TestClient_GetConversation_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such conversation"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{}, 0)

	_, err := client.GetConversation(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
	if IsUnauthorized(err) {
		t.Error("404 must not read as unauthorized")
	}
}

func TestClient_CreateConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/conversations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "Term planning" {
			t.Errorf("unexpected title %q", body["title"])
		}
		json.NewEncoder(w).Encode(Conversation{ID: "conv-9", Title: "Term planning"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{}, 0)

	conv, err := client.CreateConversation(context.Background(), "Term planning")
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if conv.ID != "conv-9" {
		t.Errorf("unexpected id %q", conv.ID)
	}
}

func TestClient_SendMessage_NewConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["message"] != "hello" {
			t.Errorf("unexpected message %q", body["message"])
		}
		if _, ok := body["conversation_id"]; ok {
			t.Error("conversation_id must be omitted when empty")
		}
		json.NewEncoder(w).Encode(SendResult{
			Response:       "hi",
			ConversationID: "123e4567-e89b-42d3-a456-426614174000",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{token: "tok"}, 0)

	res, err := client.SendMessage(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if res.ConversationID == "" {
		t.Error("expected a conversation id")
	}
}

func TestClient_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL, staticTokens{}, 0)
		_, err := client.SendMessage(context.Background(), "hi", "")
		if !IsUnauthorized(err) {
			t.Errorf("status %d: expected unauthorized error, got %v", status, err)
		}
		srv.Close()
	}
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login must not carry a bearer token, got %q", got)
		}
		w.Write([]byte(`{"token":"issued-token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{}, 0)

	token, err := client.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "issued-token" {
		t.Errorf("unexpected token %q", token)
	}
}

func TestClient_ListReviewQueue_StatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("expected status=pending, got %q", got)
		}
		w.Write([]byte(`{"items":[{"conversation_id":"c1","title":"t","status":"pending"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{token: "tok"}, 0)

	items, err := client.ListReviewQueue(context.Background(), "pending")
	if err != nil {
		t.Fatalf("ListReviewQueue failed: %v", err)
	}
	if len(items) != 1 || items[0].ConversationID != "c1" {
		t.Errorf("unexpected items %+v", items)
	}
}
