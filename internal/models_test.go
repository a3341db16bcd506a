package internal

import (
	"testing"
	"time"
)

func TestMessageHasText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain text", "hello", true},
		{"empty", "", false},
		{"whitespace only", " \t\n\r ", false},
		{"leading whitespace", "  hi", true},
		{"unicode", "héllo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{Text: tt.text}
			if got := m.HasText(); got != tt.want {
				t.Errorf("HasText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestConversationDateRange(t *testing.T) {
	empty := &Conversation{ID: "c1"}
	if _, _, ok := empty.DateRange(); ok {
		t.Error("DateRange() on empty conversation reported ok")
	}

	conv := CreateTestConversation("c2", []TestMessage{
		{Sender: "alice", Text: "first"},
		{Sender: "bob", Text: "last", Offset: 2 * time.Hour},
	})
	first, last, ok := conv.DateRange()
	if !ok {
		t.Fatal("DateRange() reported not ok")
	}
	if last.Sub(first) != 2*time.Hour {
		t.Errorf("range = %v, want 2h", last.Sub(first))
	}
}

func TestConversationLookups(t *testing.T) {
	conv := CreateTestConversation("c1", []TestMessage{
		{Sender: "bob", Text: "hi"},
		{Sender: "alice", Text: ""},
	})

	if p := conv.Participant("alice"); p == nil || p.ID != "alice" {
		t.Errorf("Participant(alice) = %v", p)
	}
	if p := conv.Participant("ghost"); p != nil {
		t.Errorf("Participant(ghost) = %v, want nil", p)
	}
	if got := conv.ParticipantIDs(); got[0] != "alice" || got[1] != "bob" {
		t.Errorf("ParticipantIDs() = %v, want sorted [alice bob]", got)
	}
	if got := conv.TextMessageCount(); got != 1 {
		t.Errorf("TextMessageCount() = %d, want 1", got)
	}
}
