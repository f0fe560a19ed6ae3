package applications_test

import (
	"testing"

	"github.com/talentgate/talentgate/internal/applications"
)

func TestStatusForStage(t *testing.T) {
	tests := []struct {
		label    string
		expected applications.Status
		matched  bool
	}{
		{"Offer", applications.StatusOffered, true},
		{"Final Offer", applications.StatusOffered, true},
		{"Interview", applications.StatusShortlisted, true},
		{"Assessment", applications.StatusShortlisted, true},
		{"Hired", applications.StatusHired, true},
		{"Verification", applications.StatusVerified, false},
		{"Applied", applications.StatusVerified, false},
		{"Background Check", applications.StatusVerified, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			status, matched := applications.StatusForStage(tt.label)
			if status != tt.expected {
				t.Errorf("StatusForStage(%q) = %v, want %v", tt.label, status, tt.expected)
			}
			if matched != tt.matched {
				t.Errorf("StatusForStage(%q) matched = %v, want %v", tt.label, matched, tt.matched)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []applications.Status{applications.StatusHired, applications.StatusRejected}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}

	open := []applications.Status{
		applications.StatusApplied,
		applications.StatusVerified,
		applications.StatusShortlisted,
		applications.StatusOffered,
	}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestBulkResultFailed(t *testing.T) {
	if (applications.BulkResult{}).Failed() {
		t.Error("empty result must not report failure")
	}
	if !(applications.BulkResult{Error: "not found"}).Failed() {
		t.Error("result with error must report failure")
	}
}
