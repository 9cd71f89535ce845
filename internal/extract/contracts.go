package extract

import (
	"context"
	"fmt"
	"time"

	"invoicerpa/internal/entity"
)

// FailureReason classifies why a document yielded no text.
type FailureReason string

const (
	ReasonCorrupt     FailureReason = "corrupt"       // not a readable PDF container
	ReasonNoTextLayer FailureReason = "no_text_layer" // parsed fine but no extractable text
)

// ExtractionError is the per-document, recoverable failure signal. The
// pipeline driver catches it, records a skip, and moves on; it never crosses
// the batch boundary.
type ExtractionError struct {
	Reason FailureReason
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// TextExtractor is stage 1: document bytes -> plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc *entity.RawDocument) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text"
	Duration time.Duration
	Warnings []string
}
