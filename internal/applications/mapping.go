package applications

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "applications", "a").
	Project("id", "ID").
	Project("student_id", "StudentID").
	Project("opportunity_id", "OpportunityID").
	Project("status", "Status").
	Project("current_stage", "CurrentStage").
	Project("current_stage_id", "CurrentStageID").
	Project("rejection_reason", "RejectionReason").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for application queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	StudentID     *uuid.UUID `json:"student_id,omitempty"`
	OpportunityID *uuid.UUID `json:"opportunity_id,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CurrentStage  *string    `json:"current_stage,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("StudentID", f.StudentID).
		WhereEquals("OpportunityID", f.OpportunityID).
		WhereEquals("Status", f.Status).
		WhereEquals("CurrentStage", f.CurrentStage)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("student_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.StudentID = &id
		}
	}

	if o := values.Get("opportunity_id"); o != "" {
		if id, err := uuid.Parse(o); err == nil {
			f.OpportunityID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if c := values.Get("current_stage"); c != "" {
		f.CurrentStage = &c
	}

	return f
}

func scanApplication(s repository.Scanner) (Application, error) {
	var a Application

	err := s.Scan(
		&a.ID,
		&a.StudentID,
		&a.OpportunityID,
		&a.Status,
		&a.CurrentStage,
		&a.CurrentStageID,
		&a.RejectionReason,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}
