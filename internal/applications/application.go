// Package applications implements the application domain for talentgate.
// It tracks a candidate's progress through an opportunity's hiring pipeline
// and provides recruiter-driven bulk stage and status updates.
package applications

import (
	"time"

	"github.com/google/uuid"
)

// Application represents a candidate's tracked relationship to one opportunity.
// CurrentStage always names a label within the owning opportunity's pipeline
// (or the default pipeline); CurrentStageID carries the stable stage id when
// the pipeline defines one, so stage renames cannot orphan the record.
type Application struct {
	ID              uuid.UUID  `json:"id"`
	StudentID       uuid.UUID  `json:"student_id"`
	OpportunityID   uuid.UUID  `json:"opportunity_id"`
	Status          Status     `json:"status"`
	CurrentStage    string     `json:"current_stage"`
	CurrentStageID  *uuid.UUID `json:"current_stage_id"`
	RejectionReason *string    `json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Terminal reports whether the application has reached a state that permits
// no further transitions.
func (a *Application) Terminal() bool {
	return a.Status.Terminal()
}

// CreateCommand carries the data needed to register a new application.
type CreateCommand struct {
	StudentID     uuid.UUID `json:"student_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
}

// BulkMoveCommand moves a set of applications to a target stage directly,
// bypassing verification.
type BulkMoveCommand struct {
	ApplicationIDs []uuid.UUID `json:"application_ids"`
	TargetStage    string      `json:"target_stage"`
}

// BulkRejectCommand rejects a set of applications.
type BulkRejectCommand struct {
	ApplicationIDs []uuid.UUID `json:"application_ids"`
}

// BulkResult reports the outcome of a single row within a bulk operation.
// Rows succeed or fail independently; committed rows stay committed when
// siblings fail.
type BulkResult struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Error         string    `json:"error,omitempty"`
}

// Failed reports whether the row's update was not applied.
func (r BulkResult) Failed() bool {
	return r.Error != ""
}
