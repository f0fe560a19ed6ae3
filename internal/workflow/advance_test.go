package workflow_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/opportunities"
	"github.com/talentgate/talentgate/internal/rewards"
	"github.com/talentgate/talentgate/internal/workflow"
)

func pipeline(labels ...string) []opportunities.Stage {
	stages := make([]opportunities.Stage, len(labels))
	for i, label := range labels {
		stages[i] = opportunities.Stage{
			ID:    uuid.New(),
			Label: label,
			Kind:  opportunities.KindForLabel(label),
		}
	}
	return stages
}

func TestComputeAdvanceMidPipeline(t *testing.T) {
	stages := pipeline("Registration", "Assessment", "Interview", "Offer")

	transition := workflow.ComputeAdvance(stages, "Assessment")

	if !transition.Changed {
		t.Fatal("expected a stage change")
	}
	if transition.Stage != "Interview" {
		t.Errorf("got stage %q, want Interview", transition.Stage)
	}
	if transition.Status != applications.StatusShortlisted {
		t.Errorf("got status %v, want shortlisted", transition.Status)
	}
	if transition.Points != rewards.StandardAward {
		t.Errorf("got %d points, want standard award %d", transition.Points, rewards.StandardAward)
	}
	if transition.StageID == nil || *transition.StageID != stages[2].ID {
		t.Error("stage id must track the landed stage")
	}
}

func TestComputeAdvanceIntoOffer(t *testing.T) {
	stages := pipeline("Registration", "Assessment", "Interview", "Offer")

	transition := workflow.ComputeAdvance(stages, "Interview")

	if transition.Stage != "Offer" {
		t.Errorf("got stage %q, want Offer", transition.Stage)
	}
	if transition.Status != applications.StatusOffered {
		t.Errorf("got status %v, want offered", transition.Status)
	}
	if transition.Points != rewards.OfferAward {
		t.Errorf("got %d points, want offer award %d", transition.Points, rewards.OfferAward)
	}
}

func TestComputeAdvanceCaseInsensitiveMilestone(t *testing.T) {
	stages := pipeline("Registration", "Assessment", "Interview", "Offer")

	transition := workflow.ComputeAdvance(stages, "aSSeSSmEnT")

	if !transition.Changed || transition.Stage != "Interview" {
		t.Errorf("case-insensitive match failed: %+v", transition)
	}
}

func TestComputeAdvanceFinalStage(t *testing.T) {
	stages := pipeline("Registration", "Assessment", "Interview", "Offer")

	transition := workflow.ComputeAdvance(stages, "Offer")

	if !transition.Changed {
		t.Fatal("final-stage acceptance still transitions")
	}
	if transition.Stage != "Offer" {
		t.Errorf("got stage %q, want Offer (remain at final)", transition.Stage)
	}
	if transition.Status != applications.StatusOffered {
		t.Errorf("got status %v, want offered", transition.Status)
	}
	if transition.Points != rewards.OfferAward {
		t.Errorf("final-stage acceptance still credits, got %d points", transition.Points)
	}
}

func TestComputeAdvanceUnmatchedMilestone(t *testing.T) {
	stages := pipeline("Registration", "Assessment", "Interview", "Offer")

	transition := workflow.ComputeAdvance(stages, "Background Check")

	if transition.Changed {
		t.Error("unmatched milestone must be inert")
	}
	if transition.Points != 0 {
		t.Errorf("inert acceptance must not credit, got %d points", transition.Points)
	}
	if transition.Warning != "" {
		t.Errorf("inert acceptance carries no warning, got %q", transition.Warning)
	}
}

func TestComputeAdvanceKindOverridesLabel(t *testing.T) {
	stages := []opportunities.Stage{
		{ID: uuid.New(), Label: "Screening", Kind: opportunities.KindIntake},
		{ID: uuid.New(), Label: "Pre-Offer Screening", Kind: opportunities.KindAssessment},
		{ID: uuid.New(), Label: "Offer", Kind: opportunities.KindOffer},
	}

	transition := workflow.ComputeAdvance(stages, "Screening")

	if transition.Stage != "Pre-Offer Screening" {
		t.Errorf("got stage %q, want Pre-Offer Screening", transition.Stage)
	}
	if transition.Status != applications.StatusShortlisted {
		t.Errorf("tagged kind must win over label keywords, got %v", transition.Status)
	}
	if transition.Points != rewards.StandardAward {
		t.Errorf("got %d points, want standard award", transition.Points)
	}
}

func TestComputeAdvanceDefaultStageIDOmitted(t *testing.T) {
	stages := opportunities.DefaultStages()

	transition := workflow.ComputeAdvance(stages, "Assessment")

	if transition.Stage != "Interview" {
		t.Errorf("got stage %q, want Interview", transition.Stage)
	}
	if transition.StageID != nil {
		t.Error("default pipeline stages have no stable id")
	}
}

func TestResetTransition(t *testing.T) {
	stageID := uuid.New()
	app := &applications.Application{
		ID:             uuid.New(),
		Status:         applications.StatusShortlisted,
		CurrentStage:   "Interview",
		CurrentStageID: &stageID,
	}

	transition := workflow.ResetTransition(app, "certificate does not match employer")

	if !transition.Changed {
		t.Fatal("reset must persist")
	}
	if transition.Status != applications.StatusApplied {
		t.Errorf("got status %v, want applied", transition.Status)
	}
	if transition.Stage != "Interview" {
		t.Errorf("reset must not move the stage, got %q", transition.Stage)
	}
	if transition.RejectionReason == nil || *transition.RejectionReason != "certificate does not match employer" {
		t.Error("rejection reason must carry the classifier message")
	}
	if transition.Points != 0 {
		t.Errorf("reset awards no points, got %d", transition.Points)
	}
}
