package recognize

import (
	"regexp"
	"strings"

	"invoicerpa/constants"
)

// A Rule locates a labeled value in extracted text. Rules for a field are
// tried in declaration order and the first non-empty capture wins; later
// rules are never consulted once one matches.
type Rule struct {
	// Locator matches the label on a line. When it contains a capture group,
	// group 1 is the captured span; otherwise the remainder of the line after
	// the match is.
	Locator *regexp.Regexp
	// NextLine captures the first non-blank line below the label instead of
	// the same line.
	NextLine bool
	// LastMatch takes the final locator match on the line instead of the
	// first. Used for amounts, where the rightmost figure is usually the one
	// that matters.
	LastMatch bool
	// Heuristic, when set, replaces locator matching entirely. Used for
	// layout-based recognition that a single pattern cannot express.
	Heuristic func(lines []string) string
}

// Table is the declarative rule set: field kind -> ordered rules. New invoice
// layouts are supported by appending rules, not by editing control flow.
type Table map[constants.FieldKind][]Rule

func rx(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

// DefaultTable returns the built-in rule tables for all six fields.
func DefaultTable() Table {
	return Table{
		constants.FieldInvoiceNumber: {
			{Locator: rx(`(?i)invoice\s*number\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)invoice\s*no\b\.?\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)invoice\s*#\s*[:\-]?\s*(\S.*)`)},
		},
		constants.FieldVendor: {
			{Locator: rx(`(?i)^\s*vendor\s*[:\-]\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*billed\s+by\s*[:\-]\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*from\s*[:\-]\s*(\S.*)`)},
			{Heuristic: vendorHeuristic},
		},
		constants.FieldInvoiceDate: {
			{Locator: rx(`(?i)invoice\s*date\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*date\s*[:\-]\s*(\S.*)`)},
		},
		constants.FieldAmount: {
			{Locator: rx(`(?i)amount\s*due\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)total\s*due\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)total\s*amount\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)invoice\s*total\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)balance\s*due\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*total\s*[:\-]\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*amount\s*[:\-]\s*(\S.*)`)},
			// Fallback: the last currency figure on the first line carrying one.
			{Locator: rx(`\$\s*([\d,]+(?:\.\d+)?)`), LastMatch: true},
		},
		constants.FieldDueDate: {
			{Locator: rx(`(?i)due\s*date\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)payment\s*due\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*due\s*[:\-]\s*(\S.*)`)},
		},
		constants.FieldStatus: {
			{Locator: rx(`(?i)payment\s*status\s*[:\-]?\s*(\S.*)`)},
			{Locator: rx(`(?i)^\s*status\s*[:\-]\s*(\S.*)`)},
		},
	}
}

// apply runs one rule over the document's lines. Lines are scanned in order
// and the first line where the rule captures a non-empty span wins.
func (ru Rule) apply(lines []string) (string, bool) {
	if ru.Heuristic != nil {
		v := strings.TrimSpace(ru.Heuristic(lines))
		return v, v != ""
	}
	for i, line := range lines {
		var m []int
		if ru.LastMatch {
			all := ru.Locator.FindAllStringSubmatchIndex(line, -1)
			if len(all) > 0 {
				m = all[len(all)-1]
			}
		} else {
			m = ru.Locator.FindStringSubmatchIndex(line)
		}
		if m == nil {
			continue
		}

		var captured string
		if len(m) >= 4 && m[2] >= 0 {
			captured = line[m[2]:m[3]]
		} else {
			captured = line[m[1]:]
		}
		if ru.NextLine {
			captured = nextNonBlank(lines, i+1)
		}
		captured = strings.TrimSpace(captured)
		if captured != "" {
			return captured, true
		}
	}
	return "", false
}

func nextNonBlank(lines []string, from int) string {
	for _, line := range lines[min(from, len(lines)):] {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// vendorSkipKeywords marks lines that are clearly not a vendor name: labels,
// table headers, boilerplate.
var vendorSkipKeywords = []string{
	"invoice", "bill", "date", "phone", "email", "address", "description",
	"qty", "unit", "total", "please", "share", "form", "within", "hours",
	"amount", "due", "status",
}

// vendorHeuristic falls back to the first substantial content line that does
// not look like a label or table header. Letterhead invoices put the vendor
// name first.
func vendorHeuristic(lines []string) string {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 3 {
			continue
		}
		lower := strings.ToLower(line)
		skip := false
		for _, kw := range vendorSkipKeywords {
			if strings.Contains(lower, kw) {
				skip = true
				break
			}
		}
		if !skip {
			return line
		}
	}
	return ""
}
