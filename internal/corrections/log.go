// Package corrections tracks quality-issue records with a two-state
// lifecycle. The log is independent of the sales ledger; entries carry no
// reference to any sale.
package corrections

import (
	"strings"
	"sync"
	"time"

	"github.com/saulmedina/pos-transaction-engine/internal/errs"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
)

// Log is the ordered collection of correction records, most-recent-first.
// Like the ledger, it owns a monotonic id counter so ids are never reused.
type Log struct {
	mu      sync.Mutex
	entries []models.Correction
	nextID  int64
}

// NewLog creates an empty correction log.
func NewLog() *Log {
	return &Log{
		entries: make([]models.Correction, 0),
		nextID:  1,
	}
}

// Open begins a new correction draft. The draft is transient editing state;
// nothing enters the log until Save accepts it.
func (l *Log) Open() models.CorrectionDraft {
	return models.CorrectionDraft{}
}

// Save validates the draft and inserts a pending correction at the front of
// the log.
func (l *Log) Save(draft models.CorrectionDraft) (models.Correction, error) {
	if strings.TrimSpace(draft.ItemName) == "" {
		return models.Correction{}, errs.Validation("item name", "must not be empty")
	}
	if strings.TrimSpace(draft.Issue) == "" {
		return models.Correction{}, errs.Validation("issue", "must not be empty")
	}
	if strings.TrimSpace(draft.Solution) == "" {
		return models.Correction{}, errs.Validation("solution", "must not be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	correction := models.Correction{
		ID:        l.nextID,
		ItemName:  draft.ItemName,
		Issue:     draft.Issue,
		Solution:  draft.Solution,
		Status:    models.CorrectionPending,
		Timestamp: time.Now(),
	}
	l.nextID++

	l.entries = append([]models.Correction{correction}, l.entries...)
	return correction, nil
}

// Resolve transitions the correction to resolved. The transition is
// monotonic and idempotent: resolving an already-resolved correction leaves
// it resolved and never errors.
func (l *Log) Resolve(id int64) (models.Correction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Status = models.CorrectionResolved
			return l.entries[i], nil
		}
	}
	return models.Correction{}, &errs.NotFoundError{Entity: "correction", ID: id}
}

// All returns a copy of the log, most-recent-first.
func (l *Log) All() []models.Correction {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := make([]models.Correction, len(l.entries))
	copy(copied, l.entries)
	return copied
}
