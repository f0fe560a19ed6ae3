// Package verifications implements evidence submission for talentgate.
// A submission runs the verification workflow against the external
// classifier, records the decision, and applies the resulting stage
// transition and reward credit in one transaction.
package verifications

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/applications"
)

// Verification is the durable record of one evidence submission and its
// decision. Digest uniquely identifies the submission content; repeated
// submissions of identical evidence resolve to the recorded outcome instead
// of re-running the classifier or re-crediting points.
type Verification struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	StudentID     uuid.UUID `json:"student_id"`
	Milestone     string    `json:"milestone"`
	Digest        string    `json:"digest"`
	Accepted      bool      `json:"accepted"`
	Message       string    `json:"message"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	EvidenceKey   string    `json:"evidence_key"`
	EvidenceType  string    `json:"evidence_type"`
	PointsAwarded int       `json:"points_awarded"`
	CreatedAt     time.Time `json:"created_at"`
}

// SubmitCommand carries one evidence submission.
type SubmitCommand struct {
	ApplicationID uuid.UUID
	Milestone     string
	Evidence      []byte
	MediaType     string
}

// Digest computes the submission identifier: a hash over the application id,
// the normalized milestone, and the raw evidence bytes.
func (c SubmitCommand) Digest() string {
	h := sha256.New()
	h.Write(c.ApplicationID[:])
	h.Write([]byte(strings.ToLower(strings.TrimSpace(c.Milestone))))
	h.Write(c.Evidence)
	return hex.EncodeToString(h.Sum(nil))
}

// SubmitResponse is the caller-facing result of a submission. Warning is set
// when the evidence was accepted but the stage could not be resolved, so no
// advancement was recorded.
type SubmitResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	Stage         string              `json:"stage"`
	Status        applications.Status `json:"status"`
	PointsAwarded int                 `json:"points_awarded"`
	Warning       string              `json:"warning,omitempty"`
}
