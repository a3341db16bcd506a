package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Deduplicator removes duplicate conversations. Chat exports frequently
// contain the same thread twice (re-exports, overlapping backups), so batch
// runs dedupe on content before analysis.
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate removes duplicate conversations based on content hash,
// keeping the first occurrence.
func (d *Deduplicator) Deduplicate(conversations []*Conversation) []*Conversation {
	seen := make(map[string]bool)
	var unique []*Conversation

	for _, conv := range conversations {
		hash := d.hashContent(conv)
		if !seen[hash] {
			seen[hash] = true
			unique = append(unique, conv)
		}
	}

	return unique
}

// hashContent creates a content-based hash for a conversation. Ids are
// deliberately excluded: two exports of the same thread get fresh
// adapter-assigned ids but identical senders, text, and timestamps.
func (d *Deduplicator) hashContent(conv *Conversation) string {
	h := sha256.New()

	for i := range conv.Messages {
		m := &conv.Messages[i]
		h.Write([]byte(m.Sender))
		h.Write([]byte(m.Text))
		h.Write([]byte(strconv.FormatInt(m.Timestamp.UnixNano(), 10)))
	}

	return hex.EncodeToString(h.Sum(nil))
}
