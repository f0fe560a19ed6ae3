package verifications

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "verifications", "v").
	Project("id", "ID").
	Project("application_id", "ApplicationID").
	Project("student_id", "StudentID").
	Project("milestone", "Milestone").
	Project("digest", "Digest").
	Project("accepted", "Accepted").
	Project("message", "Message").
	Project("provider", "Provider").
	Project("model", "Model").
	Project("evidence_key", "EvidenceKey").
	Project("evidence_type", "EvidenceType").
	Project("points_awarded", "PointsAwarded").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for verification queries.
// Nil fields are ignored.
type Filters struct {
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	StudentID     *uuid.UUID `json:"student_id,omitempty"`
	Accepted      *bool      `json:"accepted,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ApplicationID", f.ApplicationID).
		WhereEquals("StudentID", f.StudentID).
		WhereEquals("Accepted", f.Accepted)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if a := values.Get("application_id"); a != "" {
		if id, err := uuid.Parse(a); err == nil {
			f.ApplicationID = &id
		}
	}

	if s := values.Get("student_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.StudentID = &id
		}
	}

	if a := values.Get("accepted"); a != "" {
		accepted := a == "true"
		f.Accepted = &accepted
	}

	return f
}

func scanVerification(s repository.Scanner) (Verification, error) {
	var v Verification

	err := s.Scan(
		&v.ID,
		&v.ApplicationID,
		&v.StudentID,
		&v.Milestone,
		&v.Digest,
		&v.Accepted,
		&v.Message,
		&v.Provider,
		&v.Model,
		&v.EvidenceKey,
		&v.EvidenceType,
		&v.PointsAwarded,
		&v.CreatedAt,
	)

	return v, err
}
