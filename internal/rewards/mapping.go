package rewards

import (
	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
)

var accountProjection = query.
	NewProjectionMap("public", "reward_accounts", "ra").
	Project("student_id", "StudentID").
	Project("points", "Points").
	Project("level", "Level").
	Project("updated_at", "UpdatedAt")

var entryProjection = query.
	NewProjectionMap("public", "reward_entries", "re").
	Project("id", "ID").
	Project("student_id", "StudentID").
	Project("points", "Points").
	Project("reason", "Reason").
	Project("verification_id", "VerificationID").
	Project("created_at", "CreatedAt")

var entrySort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanAccount(s repository.Scanner) (Account, error) {
	var a Account
	err := s.Scan(&a.StudentID, &a.Points, &a.Level, &a.UpdatedAt)
	return a, err
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.ID, &e.StudentID, &e.Points, &e.Reason, &e.VerificationID, &e.CreatedAt)
	return e, err
}
