package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/opportunities"
	"github.com/talentgate/talentgate/internal/verifier"
	"github.com/talentgate/talentgate/internal/workflow"
	"github.com/talentgate/talentgate/pkg/pagination"
)

type stubVerifier struct {
	decision *verifier.Decision
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, req verifier.Request) (*verifier.Decision, error) {
	return s.decision, s.err
}

type stubOpportunities struct {
	stagesFn func(ctx context.Context, id uuid.UUID) ([]opportunities.Stage, error)
}

func (s *stubOpportunities) Handler() *opportunities.Handler { return nil }

func (s *stubOpportunities) List(ctx context.Context, page pagination.PageRequest, filters opportunities.Filters) (*pagination.PageResult[opportunities.Opportunity], error) {
	return nil, errors.New("not implemented")
}

func (s *stubOpportunities) Find(ctx context.Context, id uuid.UUID) (*opportunities.Opportunity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOpportunities) Create(ctx context.Context, cmd opportunities.CreateCommand) (*opportunities.Opportunity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOpportunities) Publish(ctx context.Context, id uuid.UUID) (*opportunities.Opportunity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOpportunities) AppendStage(ctx context.Context, id uuid.UUID, cmd opportunities.StageCommand) (*opportunities.Opportunity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOpportunities) Stages(ctx context.Context, id uuid.UUID) ([]opportunities.Stage, error) {
	return s.stagesFn(ctx, id)
}

func testRuntime(v verifier.System, opps opportunities.System) *workflow.Runtime {
	return &workflow.Runtime{
		Verifier:      v,
		Opportunities: opps,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testApplication() *applications.Application {
	return &applications.Application{
		ID:            uuid.New(),
		OpportunityID: uuid.New(),
		CurrentStage:  "Assessment",
		Status:        applications.StatusInterviewing,
	}
}

func testSubmission(milestone string) workflow.Submission {
	return workflow.Submission{
		Milestone:    milestone,
		EmployerName: "Initech",
		Evidence:     verifier.Blob{Data: []byte("png-bytes"), MediaType: "image/png"},
	}
}

func TestExecuteAcceptedAdvances(t *testing.T) {
	stages := pipeline("Registration", "Assessment", "Interview", "Offer")

	v := &stubVerifier{decision: &verifier.Decision{Accepted: true, Message: "credible"}}
	opps := &stubOpportunities{
		stagesFn: func(ctx context.Context, id uuid.UUID) ([]opportunities.Stage, error) {
			return stages, nil
		},
	}

	outcome, err := workflow.Execute(context.Background(), testRuntime(v, opps), testApplication(), testSubmission("Assessment"))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !outcome.Decision.Accepted {
		t.Error("expected accepted decision")
	}
	if !outcome.Transition.Changed || outcome.Transition.Stage != "Interview" {
		t.Errorf("got transition %+v", outcome.Transition)
	}
}

func TestExecuteRejectedResets(t *testing.T) {
	v := &stubVerifier{decision: &verifier.Decision{Accepted: false, Message: "screenshot names a different employer"}}
	opps := &stubOpportunities{
		stagesFn: func(ctx context.Context, id uuid.UUID) ([]opportunities.Stage, error) {
			t.Fatal("a rejected decision must not resolve stages")
			return nil, nil
		},
	}

	app := testApplication()
	outcome, err := workflow.Execute(context.Background(), testRuntime(v, opps), app, testSubmission("Assessment"))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if outcome.Decision.Accepted {
		t.Error("expected rejected decision")
	}
	if !outcome.Transition.Changed || outcome.Transition.Status != applications.StatusApplied {
		t.Errorf("got transition %+v", outcome.Transition)
	}
	if outcome.Transition.Stage != app.CurrentStage {
		t.Errorf("rejection must keep the current stage, got %q", outcome.Transition.Stage)
	}
	if outcome.Transition.RejectionReason == nil || *outcome.Transition.RejectionReason != "screenshot names a different employer" {
		t.Error("rejection reason must carry the classifier message")
	}
}

func TestExecuteStageResolutionSoftFailure(t *testing.T) {
	v := &stubVerifier{decision: &verifier.Decision{Accepted: true, Message: "credible"}}
	opps := &stubOpportunities{
		stagesFn: func(ctx context.Context, id uuid.UUID) ([]opportunities.Stage, error) {
			return nil, errors.New("opportunity lookup timed out")
		},
	}

	outcome, err := workflow.Execute(context.Background(), testRuntime(v, opps), testApplication(), testSubmission("Assessment"))
	if err != nil {
		t.Fatalf("a stage resolution failure after acceptance must not fail the submission: %v", err)
	}

	if !outcome.Decision.Accepted {
		t.Error("the accepted decision must survive the soft failure")
	}
	if outcome.Transition.Changed {
		t.Errorf("soft failure must not mutate the application, got %+v", outcome.Transition)
	}
	if outcome.Transition.Warning == "" {
		t.Error("soft failure must surface a warning")
	}
	if outcome.Transition.Points != 0 {
		t.Errorf("soft failure must not award points, got %d", outcome.Transition.Points)
	}
}

func TestExecuteVerifierErrorAborts(t *testing.T) {
	v := &stubVerifier{err: verifier.ErrModelUnavailable}
	opps := &stubOpportunities{
		stagesFn: func(ctx context.Context, id uuid.UUID) ([]opportunities.Stage, error) {
			t.Fatal("a classifier error must abort before stage resolution")
			return nil, nil
		},
	}

	_, err := workflow.Execute(context.Background(), testRuntime(v, opps), testApplication(), testSubmission("Assessment"))
	if !errors.Is(err, verifier.ErrModelUnavailable) {
		t.Errorf("expected classifier error surfaced, got %v", err)
	}
}
