package applications

import (
	"github.com/talentgate/talentgate/internal/opportunities"
)

// Status is the derived state of an application. It is always a function of
// the current stage's kind or an explicit bulk action, never set freely.
type Status string

// Valid application statuses.
const (
	StatusApplied             Status = "applied"
	StatusPendingVerification Status = "pending_verification"
	StatusVerifying           Status = "verifying"
	StatusVerified            Status = "verified"
	StatusShortlisted         Status = "shortlisted"
	StatusQualified           Status = "qualified"
	StatusInterviewing        Status = "interviewing"
	StatusOffered             Status = "offered"
	StatusHired               Status = "hired"
	StatusRejected            Status = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// StatusForKind derives the application status for a stage of the given kind.
func StatusForKind(kind opportunities.StageKind) Status {
	switch kind {
	case opportunities.KindOffer:
		return StatusOffered
	case opportunities.KindInterview, opportunities.KindAssessment:
		return StatusShortlisted
	case opportunities.KindTerminal:
		return StatusHired
	default:
		return StatusVerified
	}
}

// StatusForStage derives a status from keyword content of a stage label.
// This is the externally consumed derivation table and must not change:
// "offer" → offered, "interview"/"assessment" → shortlisted, "hired" → hired.
// The second return reports whether any keyword matched; callers choose their
// own fallback (verified for verification advances, shortlisted for bulk moves).
func StatusForStage(label string) (Status, bool) {
	kind := opportunities.KindForLabel(label)
	if kind == opportunities.KindIntake {
		return StatusVerified, false
	}
	return StatusForKind(kind), true
}
