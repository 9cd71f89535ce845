package constants

import "testing"

func TestCanonicalizeStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"PAID", "Paid"},
		{"paid in full", "Paid"},
		{"UNPAID", "Unpaid"},
		{"unpaid as of today", "Unpaid"},
		{"  Unpaid  ", "Unpaid"},
		{"pending review", "pending review"},
		{"  overdue  ", "overdue"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalizeStatus(tt.input); got != tt.want {
			t.Errorf("CanonicalizeStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
