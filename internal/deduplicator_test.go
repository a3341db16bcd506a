package internal

import (
	"testing"
	"time"
)

func TestDeduplicateDropsIdenticalContent(t *testing.T) {
	a := CreateTestConversation("export-a", []TestMessage{
		{Sender: "alice", Text: "hi"},
		{Sender: "bob", Text: "hey", Offset: time.Minute},
	})
	// Same content exported under a different id.
	b := CreateTestConversation("export-b", []TestMessage{
		{Sender: "alice", Text: "hi"},
		{Sender: "bob", Text: "hey", Offset: time.Minute},
	})
	c := CreateTestConversation("export-c", []TestMessage{
		{Sender: "alice", Text: "something else"},
	})

	got := NewDeduplicator().Deduplicate([]*Conversation{a, b, c})
	if len(got) != 2 {
		t.Fatalf("Deduplicate() kept %d conversations, want 2", len(got))
	}
	if got[0].ID != "export-a" {
		t.Errorf("first occurrence should win, got %s", got[0].ID)
	}
}

func TestDeduplicateKeepsNearDuplicates(t *testing.T) {
	a := CreateTestConversation("a", []TestMessage{{Sender: "alice", Text: "hi"}})
	b := CreateTestConversation("b", []TestMessage{{Sender: "alice", Text: "hi!"}})
	shifted := CreateTestConversation("c", []TestMessage{{Sender: "alice", Text: "hi", Offset: time.Second}})

	got := NewDeduplicator().Deduplicate([]*Conversation{a, b, shifted})
	if len(got) != 3 {
		t.Errorf("Deduplicate() kept %d conversations, want 3", len(got))
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	if got := NewDeduplicator().Deduplicate(nil); len(got) != 0 {
		t.Errorf("Deduplicate(nil) = %v, want empty", got)
	}
}
