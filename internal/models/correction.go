package models

import "time"

// CorrectionStatus is the two-state lifecycle of a correction record.
type CorrectionStatus string

const (
	CorrectionPending  CorrectionStatus = "pending"
	CorrectionResolved CorrectionStatus = "resolved"
)

// Correction tracks a quality issue raised against an item. It is independent
// of the sales ledger; no referential link is modeled.
type Correction struct {
	ID        int64            `json:"id"`
	ItemName  string           `json:"item_name"`
	Issue     string           `json:"issue"`
	Solution  string           `json:"solution"`
	Status    CorrectionStatus `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
}

// CorrectionDraft is the transient editing state for a correction before it is
// saved; nothing exists in the log until Save accepts the draft.
type CorrectionDraft struct {
	ItemName string `json:"item_name"`
	Issue    string `json:"issue"`
	Solution string `json:"solution"`
}
