package opportunities

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "opportunities", "o").
	Project("id", "ID").
	Project("title", "Title").
	Project("employer_name", "EmployerName").
	Project("stages", "Stages").
	Project("published", "Published").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for opportunity queries.
// Nil fields are ignored.
type Filters struct {
	EmployerName *string `json:"employer_name,omitempty"`
	Published    *bool   `json:"published,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("EmployerName", f.EmployerName).
		WhereEquals("Published", f.Published)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if e := values.Get("employer_name"); e != "" {
		f.EmployerName = &e
	}

	if p := values.Get("published"); p != "" {
		published := p == "true"
		f.Published = &published
	}

	return f
}

func scanOpportunity(s repository.Scanner) (Opportunity, error) {
	var o Opportunity
	var stagesRaw []byte

	err := s.Scan(
		&o.ID,
		&o.Title,
		&o.EmployerName,
		&stagesRaw,
		&o.Published,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		return o, err
	}

	if len(stagesRaw) > 0 {
		if err := json.Unmarshal(stagesRaw, &o.Stages); err != nil {
			return o, fmt.Errorf("unmarshal stages: %w", err)
		}
	}

	if o.Stages == nil {
		o.Stages = []Stage{}
	}

	return o, nil
}
