package internal

import (
	"sort"
	"time"
)

// AttachmentKind identifies the media type of an attachment.
type AttachmentKind string

const (
	AttachmentImage    AttachmentKind = "image"
	AttachmentVideo    AttachmentKind = "video"
	AttachmentAudio    AttachmentKind = "audio"
	AttachmentFile     AttachmentKind = "file"
	AttachmentSticker  AttachmentKind = "sticker"
	AttachmentLocation AttachmentKind = "location"
)

// Participant is one identity within a conversation. Participants are
// created by the adapter and never change afterwards.
type Participant struct {
	ID          string            `json:"id" yaml:"id"`
	DisplayName string            `json:"display_name" yaml:"display_name"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Attachment is a media or file reference owned by exactly one message.
type Attachment struct {
	Kind     AttachmentKind `json:"kind" yaml:"kind"`
	Filename string         `json:"filename,omitempty" yaml:"filename,omitempty"`
	URL      string         `json:"url,omitempty" yaml:"url,omitempty"`
	Caption  string         `json:"caption,omitempty" yaml:"caption,omitempty"`
	MimeType string         `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
}

// Reaction is an emoji response to a message, attributed to a participant.
type Reaction struct {
	Emoji       string    `json:"emoji" yaml:"emoji"`
	Participant string    `json:"participant" yaml:"participant"`
	Timestamp   time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Edit is one entry in a message's append-only edit history.
type Edit struct {
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Message is the central unit of the normalized model. The sender field is
// a lookup into the owning conversation's participants; ReplyTo, when set,
// must name another message id in the same conversation. Analyzers never
// write into a Message, they keep derived data in side tables keyed by ID.
type Message struct {
	ID          string            `json:"id" yaml:"id"`
	Sender      string            `json:"sender" yaml:"sender"`
	Timestamp   time.Time         `json:"timestamp" yaml:"timestamp"`
	Text        string            `json:"text,omitempty" yaml:"text,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	Reactions   []Reaction        `json:"reactions,omitempty" yaml:"reactions,omitempty"`
	ReplyTo     string            `json:"reply_to,omitempty" yaml:"reply_to,omitempty"`
	EditHistory []Edit            `json:"edit_history,omitempty" yaml:"edit_history,omitempty"`
	Deleted     bool              `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasText reports whether the message carries scoreable text.
func (m *Message) HasText() bool {
	for _, r := range m.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// Conversation is one ordered set of messages plus the participants they
// reference. It is built once by a ConversationBuilder and immutable for
// the lifetime of an analysis pass.
type Conversation struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Platform     string        `json:"platform,omitempty" yaml:"platform,omitempty"`
	Messages     []Message     `json:"messages" yaml:"messages"`
	Participants []Participant `json:"participants" yaml:"participants"`
}

// Participant returns the participant with the given id, or nil.
func (c *Conversation) Participant(id string) *Participant {
	for i := range c.Participants {
		if c.Participants[i].ID == id {
			return &c.Participants[i]
		}
	}
	return nil
}

// ParticipantIDs returns participant ids in stable (sorted) order.
func (c *Conversation) ParticipantIDs() []string {
	ids := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids
}

// DateRange returns the timestamps of the first and last message. The
// second return value is false for an empty conversation.
func (c *Conversation) DateRange() (time.Time, time.Time, bool) {
	if len(c.Messages) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return c.Messages[0].Timestamp, c.Messages[len(c.Messages)-1].Timestamp, true
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// TextMessageCount returns the number of messages with extractable text.
func (c *Conversation) TextMessageCount() int {
	n := 0
	for i := range c.Messages {
		if c.Messages[i].HasText() {
			n++
		}
	}
	return n
}
