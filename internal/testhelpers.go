package internal

import (
	"fmt"
	"time"
)

// TestMessage is shorthand input for building test conversations.
type TestMessage struct {
	Sender string
	Text   string
	Offset time.Duration // offset from the conversation start
}

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// CreateTestConversation builds a valid conversation from shorthand
// messages, registering participants and assigning sequential ids.
func CreateTestConversation(id string, msgs []TestMessage) *Conversation {
	b := NewConversationBuilder(id, "Test Conversation", "test")
	for i, tm := range msgs {
		b.AddParticipant(Participant{ID: tm.Sender, DisplayName: tm.Sender})
		b.AddMessage(Message{
			ID:        fmt.Sprintf("m%d", i+1),
			Sender:    tm.Sender,
			Timestamp: testEpoch.Add(tm.Offset),
			Text:      tm.Text,
		})
	}
	conv, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("test conversation %s: %v", id, err))
	}
	return conv
}
