package entity

import (
	"time"

	"github.com/google/uuid"

	"invoicerpa/constants"
)

// ProcessingRun is one persisted batch execution: when it ran, what it
// produced, and the per-document outcomes.
type ProcessingRun struct {
	ID            uuid.UUID
	StartedAt     time.Time
	FinishedAt    time.Time
	DocumentCount int
	Summary       BatchSummary
	Documents     []RunDocument
}

// RunDocument is the persisted outcome for a single document in a run.
type RunDocument struct {
	SourceID      string
	Status        constants.RunDocStatus
	SkipReason    string // empty when Status == RunDocOK
	InvoiceNumber string
	Vendor        string
	Amount        string
}
