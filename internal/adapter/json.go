package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iksnae/chatlens/internal"
)

// JSONAdapter parses the toolkit's generic JSON export shape: a top-level
// object with a "messages" array and optional "participants". Sources that
// omit ids or participants get adapter-assigned values.
type JSONAdapter struct{}

// NewJSONAdapter creates a JSONAdapter.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

func (a *JSONAdapter) Name() string { return "json" }

type jsonEnvelope struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Platform     string            `json:"platform"`
	Participants []jsonParticipant `json:"participants"`
	Messages     []jsonMessage     `json:"messages"`
}

type jsonParticipant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type jsonMessage struct {
	ID          string           `json:"id"`
	Sender      string           `json:"sender"`
	Timestamp   string           `json:"timestamp"`
	Text        string           `json:"text"`
	Content     string           `json:"content"`
	ReplyTo     string           `json:"reply_to"`
	Deleted     bool             `json:"deleted"`
	Attachments []jsonAttachment `json:"attachments"`
	Reactions   []jsonReaction   `json:"reactions"`
}

type jsonAttachment struct {
	Kind     string `json:"kind"`
	Type     string `json:"type"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Caption  string `json:"caption"`
}

type jsonReaction struct {
	Emoji       string `json:"emoji"`
	Participant string `json:"participant"`
	User        string `json:"user"`
}

// Detect returns 0.9 for a JSON object with a messages array, 0.3 for any
// other valid JSON object, 0 otherwise.
func (a *JSONAdapter) Detect(src []byte) float64 {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(src, &env); err != nil {
		return 0
	}
	raw, ok := env["messages"]
	if !ok {
		return 0.3
	}
	var msgs []json.RawMessage
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return 0.3
	}
	return 0.9
}

// Parse converts the JSON export into a Conversation.
func (a *JSONAdapter) Parse(src []byte) (*internal.Conversation, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(src, &env); err != nil {
		kind := internal.ParseMalformed
		// A cut-off export fails with "unexpected end of JSON input".
		var syn *json.SyntaxError
		if errors.As(err, &syn) && int(syn.Offset) >= len(src) {
			kind = internal.ParseTruncated
		}
		return nil, &internal.ParseError{Adapter: a.Name(), Kind: kind, Err: err}
	}
	if len(env.Messages) == 0 {
		return nil, &internal.ParseError{
			Adapter: a.Name(),
			Kind:    internal.ParseUnsupportedVariant,
			Err:     errors.New("no messages array"),
		}
	}

	id := env.ID
	if id == "" {
		id = uuid.NewString()
	}
	platform := env.Platform
	if platform == "" {
		platform = "json"
	}
	b := internal.NewConversationBuilder(id, env.Title, platform)

	for _, p := range env.Participants {
		name := p.DisplayName
		if name == "" {
			name = p.Name
		}
		pid := p.ID
		if pid == "" {
			pid = name
		}
		b.AddParticipant(internal.Participant{ID: pid, DisplayName: name})
	}

	for i, jm := range env.Messages {
		text := jm.Text
		if text == "" {
			text = jm.Content
		}
		if jm.Sender == "" {
			return nil, &internal.ParseError{
				Adapter: a.Name(),
				Kind:    internal.ParseMalformed,
				Err:     fmt.Errorf("message %d has no sender", i),
			}
		}
		ts, err := parseTimestamp(jm.Timestamp)
		if err != nil {
			return nil, &internal.ParseError{
				Adapter: a.Name(),
				Kind:    internal.ParseMalformed,
				Err:     fmt.Errorf("message %d: %w", i, err),
			}
		}

		// Sources without a participant list: register senders on the fly.
		b.AddParticipant(internal.Participant{ID: jm.Sender, DisplayName: jm.Sender})

		mid := jm.ID
		if mid == "" {
			mid = uuid.NewString()
		}
		m := internal.Message{
			ID:        mid,
			Sender:    jm.Sender,
			Timestamp: ts,
			Text:      text,
			ReplyTo:   jm.ReplyTo,
			Deleted:   jm.Deleted,
		}
		for _, ja := range jm.Attachments {
			kind := ja.Kind
			if kind == "" {
				kind = ja.Type
			}
			m.Attachments = append(m.Attachments, internal.Attachment{
				Kind:     internal.AttachmentKind(kind),
				Filename: ja.Filename,
				URL:      ja.URL,
				Caption:  ja.Caption,
			})
		}
		for _, jr := range jm.Reactions {
			who := jr.Participant
			if who == "" {
				who = jr.User
			}
			b.AddParticipant(internal.Participant{ID: who, DisplayName: who})
			m.Reactions = append(m.Reactions, internal.Reaction{Emoji: jr.Emoji, Participant: who})
		}
		b.AddMessage(m)
	}

	conv, err := b.Build()
	if err != nil {
		return nil, &internal.ParseError{Adapter: a.Name(), Kind: internal.ParseMalformed, Err: err}
	}
	return conv, nil
}

// parseTimestamp accepts RFC3339 or unix seconds/milliseconds.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	var unix int64
	if _, err := fmt.Sscanf(s, "%d", &unix); err == nil {
		if unix > 1e12 {
			return time.UnixMilli(unix).UTC(), nil
		}
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
