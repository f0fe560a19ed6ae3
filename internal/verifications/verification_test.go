package verifications_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/verifications"
)

func TestDigestDeterministic(t *testing.T) {
	appID := uuid.New()
	base := verifications.SubmitCommand{
		ApplicationID: appID,
		Milestone:     "Interview",
		Evidence:      []byte("image-bytes"),
	}

	if base.Digest() != base.Digest() {
		t.Error("digest must be deterministic")
	}

	same := verifications.SubmitCommand{
		ApplicationID: appID,
		Milestone:     "  interview ",
		Evidence:      []byte("image-bytes"),
	}
	if base.Digest() != same.Digest() {
		t.Error("milestone case and padding must not change the digest")
	}
}

func TestDigestDiscriminates(t *testing.T) {
	appID := uuid.New()
	base := verifications.SubmitCommand{
		ApplicationID: appID,
		Milestone:     "Interview",
		Evidence:      []byte("image-bytes"),
	}

	otherEvidence := base
	otherEvidence.Evidence = []byte("different-bytes")
	if base.Digest() == otherEvidence.Digest() {
		t.Error("different evidence must produce a different digest")
	}

	otherMilestone := base
	otherMilestone.Milestone = "Assessment"
	if base.Digest() == otherMilestone.Digest() {
		t.Error("different milestone must produce a different digest")
	}

	otherApp := base
	otherApp.ApplicationID = uuid.New()
	if base.Digest() == otherApp.Digest() {
		t.Error("different application must produce a different digest")
	}
}
