package internal

import (
	"errors"
	"testing"
	"time"
)

func TestBuilderBuildsValidConversation(t *testing.T) {
	conv, err := NewConversationBuilder("c1", "Chat", "test").
		AddParticipant(Participant{ID: "alice"}).
		AddParticipant(Participant{ID: "bob"}).
		AddMessage(Message{ID: "m1", Sender: "alice", Timestamp: testEpoch, Text: "hi"}).
		AddMessage(Message{ID: "m2", Sender: "bob", Timestamp: testEpoch.Add(time.Minute), Text: "hey", ReplyTo: "m1"}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2", conv.MessageCount())
	}
	if got := conv.ParticipantIDs(); len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Errorf("ParticipantIDs() = %v, want [alice bob]", got)
	}
}

func TestBuilderIntegrityViolations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (*Conversation, error)
		wantKind IntegrityKind
		wantID   string
	}{
		{
			name: "duplicate message id",
			build: func() (*Conversation, error) {
				return NewConversationBuilder("c1", "", "test").
					AddParticipant(Participant{ID: "alice"}).
					AddMessage(Message{ID: "m1", Sender: "alice", Timestamp: testEpoch}).
					AddMessage(Message{ID: "m1", Sender: "alice", Timestamp: testEpoch}).
					Build()
			},
			wantKind: IntegrityDuplicateID,
			wantID:   "m1",
		},
		{
			name: "unknown sender",
			build: func() (*Conversation, error) {
				return NewConversationBuilder("c1", "", "test").
					AddParticipant(Participant{ID: "alice"}).
					AddMessage(Message{ID: "m1", Sender: "ghost", Timestamp: testEpoch}).
					Build()
			},
			wantKind: IntegrityDanglingSender,
			wantID:   "ghost",
		},
		{
			name: "reply to unknown message",
			build: func() (*Conversation, error) {
				return NewConversationBuilder("c1", "", "test").
					AddParticipant(Participant{ID: "alice"}).
					AddMessage(Message{ID: "m1", Sender: "alice", Timestamp: testEpoch, ReplyTo: "nope"}).
					Build()
			},
			wantKind: IntegrityDanglingReply,
			wantID:   "nope",
		},
		{
			name: "reaction from unknown participant",
			build: func() (*Conversation, error) {
				return NewConversationBuilder("c1", "", "test").
					AddParticipant(Participant{ID: "alice"}).
					AddMessage(Message{ID: "m1", Sender: "alice", Timestamp: testEpoch,
						Reactions: []Reaction{{Participant: "ghost", Emoji: "👍"}}}).
					Build()
			},
			wantKind: IntegrityDanglingSender,
			wantID:   "ghost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if err == nil {
				t.Fatal("Build() succeeded, want integrity error")
			}
			var ie *ModelIntegrityError
			if !errors.As(err, &ie) {
				t.Fatalf("Build() error = %v, want *ModelIntegrityError", err)
			}
			if ie.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", ie.Kind, tt.wantKind)
			}
			if ie.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", ie.ID, tt.wantID)
			}
		})
	}
}

func TestBuilderAddParticipantIdempotent(t *testing.T) {
	conv, err := NewConversationBuilder("c1", "", "test").
		AddParticipant(Participant{ID: "alice", DisplayName: "Alice"}).
		AddParticipant(Participant{ID: "alice", DisplayName: "Someone Else"}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(conv.Participants) != 1 {
		t.Fatalf("got %d participants, want 1", len(conv.Participants))
	}
	if conv.Participants[0].DisplayName != "Alice" {
		t.Errorf("first registration should win, got %q", conv.Participants[0].DisplayName)
	}
}

func TestBuilderSortsByTimestamp(t *testing.T) {
	conv, err := NewConversationBuilder("c1", "", "test").
		AddParticipant(Participant{ID: "alice"}).
		AddMessage(Message{ID: "late", Sender: "alice", Timestamp: testEpoch.Add(time.Hour)}).
		AddMessage(Message{ID: "early", Sender: "alice", Timestamp: testEpoch}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if conv.Messages[0].ID != "early" || conv.Messages[1].ID != "late" {
		t.Errorf("messages not sorted: got [%s %s]", conv.Messages[0].ID, conv.Messages[1].ID)
	}
}

func TestSortMessagesStableAndIdempotent(t *testing.T) {
	msgs := []Message{
		{ID: "a", Timestamp: testEpoch},
		{ID: "b", Timestamp: testEpoch}, // equal timestamp keeps order
		{ID: "c", Timestamp: testEpoch.Add(-time.Minute)},
	}
	SortMessages(msgs)
	first := []string{msgs[0].ID, msgs[1].ID, msgs[2].ID}
	SortMessages(msgs)
	second := []string{msgs[0].ID, msgs[1].ID, msgs[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("first sort = %v, want %v", first, want)
		}
		if second[i] != first[i] {
			t.Fatalf("second sort changed order: %v vs %v", second, first)
		}
	}
}
