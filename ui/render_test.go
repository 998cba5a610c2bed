package ui

import (
	"strings"
	"testing"

	"github.com/shulechat/client/api"
)

func TestRenderMessage_User(t *testing.T) {
	out := RenderMessage(api.DisplayMessage{Role: api.RoleUser, Content: "enroll Jane in 5A"})
	if !strings.Contains(out, "enroll Jane in 5A") {
		t.Errorf("expected content in output, got %q", out)
	}
	if !strings.Contains(out, "you") {
		t.Errorf("expected role label, got %q", out)
	}
}

func TestRenderMessage_AssistantWithTableBlock(t *testing.T) {
	out := RenderMessage(api.DisplayMessage{
		Role:    api.RoleAssistant,
		Content: "Here are the classes:",
		Blocks: []api.Block{{
			Type:    "table",
			Title:   "Classes",
			Columns: []string{"Name", "Students"},
			Rows:    [][]string{{"5A", "24"}, {"5B", "22"}},
			Actions: []api.Action{{Type: api.ActionQuery, Label: "Show 5A"}},
		}},
	})

	for _, want := range []string{"Here are the classes:", "Classes", "5A", "24", "[1] Show 5A"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"ID", "Name"}, [][]string{{"1", "Mathematics"}, {"234", "Art"}})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	// Name column starts at the same offset on every line
	idx := strings.Index(lines[0], "Name")
	for _, line := range lines[1:] {
		if len(line) < idx {
			t.Errorf("row too short for aligned columns: %q", line)
		}
	}
}
