package drafts

import "testing"

func TestStore_TakeConsumesOnce(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Put(GenericKey, "hello there"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	text, ok, err := store.Take(GenericKey)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if !ok || text != "hello there" {
		t.Errorf("expected stashed text, got ok=%v text=%q", ok, text)
	}

	// Second take finds nothing
	_, ok, err = store.Take(GenericKey)
	if err != nil {
		t.Fatalf("second Take failed: %v", err)
	}
	if ok {
		t.Error("expected slot to be empty after first take")
	}
}

func TestStore_TakeEmptySlot(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	_, ok, err := store.Take(Key("123e4567-e89b-42d3-a456-426614174000"))
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if ok {
		t.Error("expected empty slot")
	}
}

func TestKey(t *testing.T) {
	if got := Key("abc"); got != "chat-abc-initial" {
		t.Errorf("unexpected key %q", got)
	}
	if got := Key("new"); got != GenericKey {
		t.Errorf("expected the per-id key for the draft marker to equal the generic key, got %q", got)
	}
}
