package adapter

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iksnae/chatlens/internal"
)

// WhatsAppAdapter parses WhatsApp plain-text exports. Both common layouts
// are handled:
//
//	iOS:     [DD/MM/YY, HH:MM:SS] Sender: text
//	Android: DD/MM/YY, HH:MM - Sender: text
//
// Lines that match neither pattern continue the previous message.
type WhatsAppAdapter struct{}

// NewWhatsAppAdapter creates a WhatsAppAdapter.
func NewWhatsAppAdapter() *WhatsAppAdapter {
	return &WhatsAppAdapter{}
}

var (
	waIOSPattern     = regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),\s*(\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)\]\s*([^:]+):\s*(.*)$`)
	waAndroidPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),\s*(\d{1,2}:\d{2}(?:\s*[AP]M)?)\s*-\s*([^:]+):\s*(.*)$`)
)

const waMediaOmitted = "<Media omitted>"

func (a *WhatsAppAdapter) Name() string { return "whatsapp" }

// Detect scans the first lines for a WhatsApp message header.
func (a *WhatsAppAdapter) Detect(src []byte) float64 {
	lines := strings.Split(string(src), "\n")
	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	matched := 0
	nonEmpty := 0
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		nonEmpty++
		if waIOSPattern.MatchString(line) || waAndroidPattern.MatchString(line) {
			matched++
		}
	}
	if nonEmpty == 0 || matched == 0 {
		return 0
	}
	return float64(matched) / float64(nonEmpty)
}

type waLine struct {
	date, clock, sender, text string
}

// Parse converts a WhatsApp text export into a Conversation.
func (a *WhatsAppAdapter) Parse(src []byte) (*internal.Conversation, error) {
	lines := strings.Split(string(src), "\n")

	var parsed []waLine
	current := -1
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if l, ok := matchWALine(line); ok {
			parsed = append(parsed, l)
			current = len(parsed) - 1
			continue
		}
		if current >= 0 {
			parsed[current].text += "\n" + line
		}
		// Leading junk before the first header is ignored, matching the
		// tolerant behavior of the exports themselves.
	}

	if len(parsed) == 0 {
		return nil, &internal.ParseError{
			Adapter: a.Name(),
			Kind:    internal.ParseUnsupportedVariant,
			Err:     errors.New("no lines match a known WhatsApp header format"),
		}
	}

	senders := map[string]struct{}{}
	for _, l := range parsed {
		senders[l.sender] = struct{}{}
	}
	names := make([]string, 0, len(senders))
	for s := range senders {
		names = append(names, s)
	}
	sort.Strings(names)

	b := internal.NewConversationBuilder(uuid.NewString(), "WhatsApp Chat", "whatsapp")
	for _, name := range names {
		b.AddParticipant(internal.Participant{ID: name, DisplayName: name})
	}

	for i, l := range parsed {
		ts, err := parseWATimestamp(l.date, l.clock)
		if err != nil {
			return nil, &internal.ParseError{
				Adapter: a.Name(),
				Kind:    internal.ParseMalformed,
				Err:     fmt.Errorf("line %d: %w", i+1, err),
			}
		}
		m := internal.Message{
			ID:        fmt.Sprintf("wa-%d", i+1),
			Sender:    l.sender,
			Timestamp: ts,
		}
		if strings.TrimSpace(l.text) == waMediaOmitted {
			m.Attachments = []internal.Attachment{{Kind: internal.AttachmentFile}}
		} else {
			m.Text = l.text
		}
		b.AddMessage(m)
	}

	conv, err := b.Build()
	if err != nil {
		return nil, &internal.ParseError{Adapter: a.Name(), Kind: internal.ParseMalformed, Err: err}
	}
	return conv, nil
}

func matchWALine(line string) (waLine, bool) {
	if m := waIOSPattern.FindStringSubmatch(line); m != nil {
		return waLine{date: m[1], clock: m[2], sender: strings.TrimSpace(m[3]), text: m[4]}, true
	}
	if m := waAndroidPattern.FindStringSubmatch(line); m != nil {
		return waLine{date: m[1], clock: m[2], sender: strings.TrimSpace(m[3]), text: m[4]}, true
	}
	return waLine{}, false
}

// parseWATimestamp interprets dates as DD/MM/YY(YY), the layout WhatsApp
// uses in most locales. Clock may be HH:MM, HH:MM:SS, or 12-hour with AM/PM.
func parseWATimestamp(date, clock string) (time.Time, error) {
	clock = strings.ToUpper(strings.TrimSpace(clock))
	dateLayouts := []string{"2/1/2006", "2/1/06"}
	clockLayouts := []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM", "3:04:05PM", "3:04PM"}
	for _, dl := range dateLayouts {
		for _, cl := range clockLayouts {
			if ts, err := time.Parse(dl+" "+cl, date+" "+clock); err == nil {
				return ts.UTC(), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q %q", date, clock)
}
