package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteExporter writes the report into a relational snapshot: one row per
// conversation, message, and analyzer annotation. SQLite has no streaming
// writer, so the database is built in a temp file and copied to w.
type SQLiteExporter struct{}

const sqliteSchema = `
CREATE TABLE conversations (
	id TEXT PRIMARY KEY,
	title TEXT,
	platform TEXT,
	message_count INTEGER NOT NULL,
	participant_count INTEGER NOT NULL
);
CREATE TABLE participants (
	conversation_id TEXT NOT NULL REFERENCES conversations(id),
	id TEXT NOT NULL,
	display_name TEXT,
	PRIMARY KEY (conversation_id, id)
);
CREATE TABLE messages (
	conversation_id TEXT NOT NULL REFERENCES conversations(id),
	id TEXT NOT NULL,
	sender TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	text TEXT,
	reply_to TEXT,
	deleted INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (conversation_id, id)
);
CREATE TABLE annotations (
	conversation_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	analyzer TEXT NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (conversation_id, message_id, analyzer)
);
CREATE TABLE analysis (
	conversation_id TEXT PRIMARY KEY,
	result TEXT NOT NULL
);
`

// Export exports a report to SQLite format
func (e *SQLiteExporter) Export(report *Report, w io.Writer) error {
	dir, err := os.MkdirTemp("", "chatlens-sqlite-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "report.db")
	if err := e.writeDatabase(report, path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy database: %w", err)
	}
	return nil
}

func (e *SQLiteExporter) writeDatabase(report *Report, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	conv := report.Conversation
	if _, err := tx.Exec(
		"INSERT INTO conversations (id, title, platform, message_count, participant_count) VALUES (?, ?, ?, ?, ?)",
		conv.ID, conv.Title, conv.Platform, conv.MessageCount(), len(conv.Participants),
	); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	for _, p := range conv.Participants {
		if _, err := tx.Exec(
			"INSERT INTO participants (conversation_id, id, display_name) VALUES (?, ?, ?)",
			conv.ID, p.ID, p.DisplayName,
		); err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", p.ID, err)
		}
	}

	msgStmt, err := tx.Prepare(
		"INSERT INTO messages (conversation_id, id, sender, timestamp, text, reply_to, deleted) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare message insert: %w", err)
	}
	defer msgStmt.Close()

	for _, m := range conv.Messages {
		deleted := 0
		if m.Deleted {
			deleted = 1
		}
		var replyTo any
		if m.ReplyTo != "" {
			replyTo = m.ReplyTo
		}
		if _, err := msgStmt.Exec(conv.ID, m.ID, m.Sender, m.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"), m.Text, replyTo, deleted); err != nil {
			return fmt.Errorf("failed to insert message %s: %w", m.ID, err)
		}
	}

	if report.Analysis != nil {
		blob, err := json.Marshal(report.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		if _, err := tx.Exec("INSERT INTO analysis (conversation_id, result) VALUES (?, ?)", conv.ID, string(blob)); err != nil {
			return fmt.Errorf("failed to insert analysis: %w", err)
		}

		annStmt, err := tx.Prepare(
			"INSERT INTO annotations (conversation_id, message_id, analyzer, payload) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare annotation insert: %w", err)
		}
		defer annStmt.Close()

		if report.Analysis.Sentiment.Available {
			for _, ms := range report.Analysis.Sentiment.PerMessage {
				payload, err := json.Marshal(ms)
				if err != nil {
					return fmt.Errorf("failed to marshal sentiment annotation: %w", err)
				}
				if _, err := annStmt.Exec(conv.ID, ms.ID, "sentiment", string(payload)); err != nil {
					return fmt.Errorf("failed to insert sentiment annotation for %s: %w", ms.ID, err)
				}
			}
		}
		if report.Analysis.ContentRisk.Available {
			for _, mr := range report.Analysis.ContentRisk.PerMessage {
				payload, err := json.Marshal(mr)
				if err != nil {
					return fmt.Errorf("failed to marshal risk annotation: %w", err)
				}
				if _, err := annStmt.Exec(conv.ID, mr.ID, "content_risk", string(payload)); err != nil {
					return fmt.Errorf("failed to insert risk annotation for %s: %w", mr.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Extension returns the file extension for this format
func (e *SQLiteExporter) Extension() string {
	return "db"
}
