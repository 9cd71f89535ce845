package recognize

import (
	"log/slog"
	"strings"

	"invoicerpa/constants"
	"invoicerpa/internal/entity"
)

// Recognizer applies a rule table to extracted text. Recognition is a pure
// function of the text and the table: identical input yields identical
// output, and a non-match is Missing rather than an error.
type Recognizer struct {
	table  Table
	logger *slog.Logger
}

func NewRecognizer(table Table, logger *slog.Logger) *Recognizer {
	if table == nil {
		table = DefaultTable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recognizer{table: table, logger: logger}
}

// Recognize returns the first-match-wins value for one field kind.
func (r *Recognizer) Recognize(text string, kind constants.FieldKind) entity.FieldValue {
	lines := strings.Split(text, "\n")
	for _, rule := range r.table[kind] {
		if v, ok := rule.apply(lines); ok {
			return entity.FoundValue(r.normalize(kind, v))
		}
	}
	return entity.Missing
}

// normalize applies the per-field cleanup after capture: whitespace and
// currency trimming for amounts, canonical labels for status. Dates keep
// whatever textual form was recognized.
func (r *Recognizer) normalize(kind constants.FieldKind, v string) string {
	switch kind {
	case constants.FieldAmount:
		return NormalizeAmount(v, r.logger)
	case constants.FieldStatus:
		return constants.CanonicalizeStatus(v)
	}
	return strings.TrimSpace(v)
}
