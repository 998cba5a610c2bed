package route

import "testing"

func TestLogin_EncodesNext(t *testing.T) {
	got := Login("/chat/abc?tab=x&y=1")
	want := "/login?next=%2Fchat%2Fabc%3Ftab%3Dx%26y%3D1"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogin_NoNext(t *testing.T) {
	if got := Login(""); got != "/login" {
		t.Errorf("expected /login, got %q", got)
	}
}

func TestNext_RoundTrips(t *testing.T) {
	original := "/admin/configuration?tab=versions&page=2"
	got := Next(Login(original))
	if got != original {
		t.Errorf("expected %q, got %q", original, got)
	}
}

func TestChatID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/chat/new", "new"},
		{"/chat/123e4567-e89b-42d3-a456-426614174000", "123e4567-e89b-42d3-a456-426614174000"},
		{"/chat/", ""},
		{"/chat/a/b", ""},
		{"/dashboard", ""},
	}
	for _, tt := range tests {
		if got := ChatID(tt.path); got != tt.want {
			t.Errorf("ChatID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestForTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"admin:configuration", "/admin/configuration"},
		{"dashboard", "/dashboard"},
		{"admin:reviews:extra", "/admin/reviews:extra"},
	}
	for _, tt := range tests {
		if got := ForTarget(tt.target); got != tt.want {
			t.Errorf("ForTarget(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestTab(t *testing.T) {
	if got := Tab("/admin/configuration?tab=versions"); got != "versions" {
		t.Errorf("expected versions, got %q", got)
	}
	if got := Tab("/admin/configuration"); got != "" {
		t.Errorf("expected empty tab, got %q", got)
	}
}
