// Package audit records showdown events for hand-history review. Writes are
// best-effort and fire-and-forget: a lost audit entry never blocks or fails a
// live showdown.
package audit

import "time"

// EntryType represents the type of showdown audit event
type EntryType string

const (
	TypeStarted   EntryType = "started"
	TypeRevealed  EntryType = "revealed"
	TypeMucked    EntryType = "mucked"
	TypeCompleted EntryType = "completed"
	TypeSettled   EntryType = "settled"
)

// Entry is an immutable snapshot of one showdown event.
type Entry struct {
	GameID     string
	HandNumber int
	Type       EntryType
	Player     string // empty for hand-level events
	Detail     string
	Timestamp  time.Time
}

// Store is the audit log contract. Implementations are safe for use by
// multiple concurrent hands: readers may proceed together, writers get
// exclusive access, and no operation blocks indefinitely.
type Store interface {
	// AddEntry records an event. Best-effort; implementations log failures
	// instead of returning them.
	AddEntry(e Entry)
	// GetShowdownAudit returns the entries for one hand, oldest first.
	GetShowdownAudit(gameID string, handNumber int) []Entry
	// GetGameShowdownAudits returns all entries for a game, oldest first.
	GetGameShowdownAudits(gameID string) []Entry
	// Close releases any underlying resources.
	Close() error
}
