// Package workflow orchestrates a single evidence submission: verify the
// evidence against the external classifier, then compute the stage transition
// the decision implies. Persistence is left to the caller so the application
// update and the reward credit can share one transaction.
package workflow

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/opportunities"
	"github.com/talentgate/talentgate/internal/verifier"
)

// State keys used by workflow nodes.
const (
	KeyApplication = "application"
	KeySubmission  = "submission"
	KeyDecision    = "decision"
	KeyTransition  = "transition"
)

var (
	ErrVerifyFailed     = errors.New("verification failed")
	ErrTransitionFailed = errors.New("transition failed")
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and
// Domain systems.
type Runtime struct {
	Verifier      verifier.System
	Opportunities opportunities.System
	Logger        *slog.Logger
}

// Submission carries one candidate evidence submission. EmployerName is
// resolved by the caller from the owning opportunity before execution.
type Submission struct {
	Milestone    string
	EmployerName string
	Evidence     verifier.Blob
}

// Transition describes the application mutation an accepted or rejected
// decision implies. Changed reports whether any field should be persisted;
// soft failures and unmatched milestones produce an unchanged transition.
type Transition struct {
	Stage           string
	StageID         *uuid.UUID
	Status          applications.Status
	RejectionReason *string
	Points          int
	Warning         string
	Changed         bool
}

// Outcome is the result of a full workflow execution.
type Outcome struct {
	Decision   *verifier.Decision
	Transition Transition
}
