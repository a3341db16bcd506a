package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// JSONExportFixture returns a small generic JSON export with the given
// (sender, text) pairs. Messages are one minute apart.
func JSONExportFixture(t *testing.T, id string, pairs [][2]string) []byte {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var msgs []string
	senders := map[string]bool{}
	for i, p := range pairs {
		senders[p[0]] = true
		msgs = append(msgs, fmt.Sprintf(
			`{"id":"m%d","sender":"%s","timestamp":"%s","text":%q}`,
			i+1, p[0], base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339), p[1]))
	}
	var parts []string
	for s := range senders {
		parts = append(parts, fmt.Sprintf(`{"id":%q}`, s))
	}
	return []byte(fmt.Sprintf(`{"id":%q,"participants":[%s],"messages":[%s]}`,
		id, strings.Join(parts, ","), strings.Join(msgs, ",")))
}

// WhatsAppExportFixture returns an iOS-style WhatsApp text export with the
// given (sender, text) pairs.
func WhatsAppExportFixture(t *testing.T, pairs [][2]string) []byte {
	t.Helper()
	var sb strings.Builder
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range pairs {
		ts := base.Add(time.Duration(i) * time.Minute)
		fmt.Fprintf(&sb, "[%02d/%02d/%02d, %02d:%02d:%02d] %s: %s\n",
			ts.Day(), int(ts.Month()), ts.Year()%100, ts.Hour(), ts.Minute(), ts.Second(), p[0], p[1])
	}
	return []byte(sb.String())
}

// OpenSQLiteReport opens an exported report database read-only. The caller
// owns the returned handle.
func OpenSQLiteReport(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		t.Fatalf("Failed to open report database: %v", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		t.Fatalf("Report database ping failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
