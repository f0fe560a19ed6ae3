// Package opportunities implements the opportunity domain for talentgate.
// It provides types, data access, and business logic for posted roles and
// their configurable hiring pipelines.
package opportunities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StageKind tags a pipeline stage with its role in the hiring flow,
// decoupling status derivation from the free-text stage label.
type StageKind string

// Valid stage kinds.
const (
	KindIntake     StageKind = "intake"
	KindAssessment StageKind = "assessment"
	KindInterview  StageKind = "interview"
	KindOffer      StageKind = "offer"
	KindTerminal   StageKind = "terminal"
)

// Stage is a single step in an opportunity's hiring pipeline. ID is stable
// across label renames; applications track stages by ID where possible and
// fall back to label matching for externally supplied milestone names.
type Stage struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Kind  StageKind `json:"kind"`
}

// Opportunity represents a posted role with an ordered hiring pipeline.
type Opportunity struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	EmployerName string    `json:"employer_name"`
	Stages       []Stage   `json:"stages"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new opportunity.
// Stages may provide an explicit kind; blank kinds are inferred from the
// label's keywords.
type CreateCommand struct {
	Title        string         `json:"title"`
	EmployerName string         `json:"employer_name"`
	Stages       []StageCommand `json:"stages"`
}

// StageCommand describes one stage in a create or append request.
type StageCommand struct {
	Label string    `json:"label"`
	Kind  StageKind `json:"kind,omitempty"`
}

// KindForLabel infers a stage kind from keyword content of a free-text label.
// Matching is case-insensitive substring, checked in priority order; labels
// matching no keyword are intake stages. Kept for legacy label-only pipelines,
// and its priority order must stay aligned with the status derivation table
// that external consumers depend on.
func KindForLabel(label string) StageKind {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "offer"):
		return KindOffer
	case strings.Contains(l, "interview"):
		return KindInterview
	case strings.Contains(l, "assessment"):
		return KindAssessment
	case strings.Contains(l, "hired"):
		return KindTerminal
	default:
		return KindIntake
	}
}

// DefaultStages returns the pipeline used when an opportunity has no stages
// configured. Labels are fixed contract values; callers must not mutate the
// returned slice's labels.
func DefaultStages() []Stage {
	labels := []string{"Applied", "Verification", "Assessment", "Interview", "Offer"}
	stages := make([]Stage, len(labels))
	for i, label := range labels {
		stages[i] = Stage{
			ID:    uuid.Nil,
			Label: label,
			Kind:  KindForLabel(label),
		}
	}
	return stages
}

// StageByLabel finds the stage whose label matches milestone case-insensitively.
// Returns the stage index and true when found.
func StageByLabel(stages []Stage, milestone string) (int, bool) {
	for i, s := range stages {
		if strings.EqualFold(s.Label, milestone) {
			return i, true
		}
	}
	return -1, false
}

func buildStages(commands []StageCommand) []Stage {
	stages := make([]Stage, len(commands))
	for i, cmd := range commands {
		kind := cmd.Kind
		if kind == "" {
			kind = KindForLabel(cmd.Label)
		}
		stages[i] = Stage{
			ID:    uuid.New(),
			Label: cmd.Label,
			Kind:  kind,
		}
	}
	return stages
}

func validKind(kind StageKind) bool {
	switch kind {
	case KindIntake, KindAssessment, KindInterview, KindOffer, KindTerminal:
		return true
	}
	return false
}
