package internal

import (
	"errors"
	"fmt"
)

// IntegrityKind names the class of model integrity violation.
type IntegrityKind string

const (
	IntegrityDuplicateID    IntegrityKind = "duplicate_id"
	IntegrityDanglingSender IntegrityKind = "dangling_sender"
	IntegrityDanglingReply  IntegrityKind = "dangling_reply"
)

// ModelIntegrityError reports a construction-time defect in adapter output:
// a duplicate message id or a reference that does not resolve within the
// conversation. It always names the offending id.
type ModelIntegrityError struct {
	Kind      IntegrityKind
	ID        string // the duplicate or unresolved id
	MessageID string // the message carrying the bad reference, if any
}

func (e *ModelIntegrityError) Error() string {
	switch e.Kind {
	case IntegrityDuplicateID:
		return fmt.Sprintf("model integrity: duplicate message id %q", e.ID)
	case IntegrityDanglingSender:
		return fmt.Sprintf("model integrity: message %q references unknown participant %q", e.MessageID, e.ID)
	case IntegrityDanglingReply:
		return fmt.Sprintf("model integrity: message %q replies to unknown message %q", e.MessageID, e.ID)
	default:
		return fmt.Sprintf("model integrity: %s %q", e.Kind, e.ID)
	}
}

// ParseKind classifies adapter parse failures.
type ParseKind string

const (
	ParseMalformed          ParseKind = "malformed"
	ParseUnsupportedVariant ParseKind = "unsupported_variant"
	ParseTruncated          ParseKind = "truncated"
)

// ParseError is the only error kind an adapter's Parse may return. It is
// fatal for the one source that produced it and isolated in batch mode.
type ParseError struct {
	Adapter string
	Kind    ParseKind
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Adapter, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RemoteServiceError reports a contextual-scoring failure (timeout, quota,
// transport). Always non-fatal: fusion proceeds on the remaining sub-scores.
type RemoteServiceError struct {
	Service string
	Err     error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("remote service error [%s]: %v", e.Service, e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// ExportError reports a failure rendering an analysis report.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ErrNoAdapter is returned when no registered adapter reaches the minimum
// detection confidence for a source.
var ErrNoAdapter = errors.New("no adapter recognized the source")
