package internal

import "sort"

// ConversationBuilder is the single construction path for a Conversation.
// It checks message id uniqueness and cross-reference integrity, then sorts
// messages by timestamp with adapter insertion order breaking ties. A
// violation is a construction-time defect surfaced as *ModelIntegrityError,
// never silently repaired.
type ConversationBuilder struct {
	id           string
	title        string
	platform     string
	messages     []Message
	participants []Participant
}

// NewConversationBuilder creates a builder for one conversation.
func NewConversationBuilder(id, title, platform string) *ConversationBuilder {
	return &ConversationBuilder{id: id, title: title, platform: platform}
}

// AddParticipant registers a participant. Re-adding an id is a no-op so
// adapters can register senders as they encounter them.
func (b *ConversationBuilder) AddParticipant(p Participant) *ConversationBuilder {
	for i := range b.participants {
		if b.participants[i].ID == p.ID {
			return b
		}
	}
	b.participants = append(b.participants, p)
	return b
}

// AddMessage appends a message in adapter insertion order.
func (b *ConversationBuilder) AddMessage(m Message) *ConversationBuilder {
	b.messages = append(b.messages, m)
	return b
}

// Build validates and assembles the Conversation. The builder must not be
// reused after a successful Build.
func (b *ConversationBuilder) Build() (*Conversation, error) {
	ids := make(map[string]struct{}, len(b.messages))
	for i := range b.messages {
		id := b.messages[i].ID
		if _, dup := ids[id]; dup {
			return nil, &ModelIntegrityError{Kind: IntegrityDuplicateID, ID: id}
		}
		ids[id] = struct{}{}
	}

	known := make(map[string]struct{}, len(b.participants))
	for i := range b.participants {
		known[b.participants[i].ID] = struct{}{}
	}
	for i := range b.messages {
		m := &b.messages[i]
		if _, ok := known[m.Sender]; !ok {
			return nil, &ModelIntegrityError{Kind: IntegrityDanglingSender, ID: m.Sender, MessageID: m.ID}
		}
		if m.ReplyTo != "" {
			if _, ok := ids[m.ReplyTo]; !ok {
				return nil, &ModelIntegrityError{Kind: IntegrityDanglingReply, ID: m.ReplyTo, MessageID: m.ID}
			}
		}
		for _, r := range m.Reactions {
			if _, ok := known[r.Participant]; !ok {
				return nil, &ModelIntegrityError{Kind: IntegrityDanglingSender, ID: r.Participant, MessageID: m.ID}
			}
		}
	}

	SortMessages(b.messages)

	return &Conversation{
		ID:           b.id,
		Title:        b.title,
		Platform:     b.platform,
		Messages:     b.messages,
		Participants: b.participants,
	}, nil
}

// SortMessages orders messages by non-decreasing timestamp. Equal timestamps
// keep their existing relative order, so applying the sort twice is a no-op.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}
