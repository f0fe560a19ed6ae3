package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/opportunities"
	"github.com/talentgate/talentgate/internal/rewards"
	"github.com/talentgate/talentgate/internal/verifier"
)

// AdvanceNode returns a state node that computes the stage advance implied by
// an accepted decision. A stage list that cannot be resolved is a soft
// failure: the submission still reports success, but the transition carries a
// warning and mutates nothing. The divergence is logged for reconciliation.
func AdvanceNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		app, err := extractApplication(s)
		if err != nil {
			return s, fmt.Errorf("advance: %w", err)
		}

		sub, err := extractSubmission(s)
		if err != nil {
			return s, fmt.Errorf("advance: %w", err)
		}

		stages, err := rt.Opportunities.Stages(ctx, app.OpportunityID)
		if err != nil {
			rt.Logger.ErrorContext(
				ctx, "stage resolution failed after accepted verification",
				"application_id", app.ID,
				"opportunity_id", app.OpportunityID,
				"milestone", sub.Milestone,
				"error", err,
			)
			s = s.Set(KeyTransition, Transition{
				Warning: "evidence accepted but stage resolution failed; no advancement recorded",
			})
			return s, nil
		}

		transition := ComputeAdvance(stages, sub.Milestone)

		rt.Logger.InfoContext(
			ctx, "advance node complete",
			"application_id", app.ID,
			"stage", transition.Stage,
			"status", transition.Status,
			"points", transition.Points,
			"changed", transition.Changed,
		)

		s = s.Set(KeyTransition, transition)
		return s, nil
	})
}

// ResetNode returns a state node that computes the hard reset a rejected
// decision implies: status back to applied with the classifier's message as
// the rejection reason, stage unchanged.
func ResetNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		app, err := extractApplication(s)
		if err != nil {
			return s, fmt.Errorf("reset: %w", err)
		}

		decision, err := extractDecision(s)
		if err != nil {
			return s, fmt.Errorf("reset: %w", err)
		}

		transition := ResetTransition(app, decision.Message)

		rt.Logger.InfoContext(
			ctx, "reset node complete",
			"application_id", app.ID,
			"reason", decision.Message,
		)

		s = s.Set(KeyTransition, transition)
		return s, nil
	})
}

// ComputeAdvance locates the claimed milestone within the pipeline and
// derives the next stage, status, and point award. An unmatched milestone is
// accepted but inert. A milestone matching the final stage keeps the stage
// but still advances status and earns the credit.
func ComputeAdvance(stages []opportunities.Stage, milestone string) Transition {
	index := -1
	for i, stage := range stages {
		if strings.EqualFold(stage.Label, milestone) {
			index = i
			break
		}
	}

	if index < 0 {
		return Transition{}
	}

	next := stages[index]
	if index+1 < len(stages) {
		next = stages[index+1]
	}

	status := applications.StatusForKind(next.Kind)
	if next.Kind == "" {
		status, _ = applications.StatusForStage(next.Label)
	}

	var stageID *uuid.UUID
	if next.ID != uuid.Nil {
		id := next.ID
		stageID = &id
	}

	return Transition{
		Stage:   next.Label,
		StageID: stageID,
		Status:  status,
		Points:  rewards.AwardForOffer(status == applications.StatusOffered),
		Changed: true,
	}
}

// ResetTransition is the hard reset a rejected decision implies: status back
// to applied with the classifier's message as the rejection reason, stage
// unchanged.
func ResetTransition(app *applications.Application, message string) Transition {
	return Transition{
		Stage:           app.CurrentStage,
		StageID:         app.CurrentStageID,
		Status:          applications.StatusApplied,
		RejectionReason: &message,
		Changed:         true,
	}
}

func extractApplication(s state.State) (*applications.Application, error) {
	val, ok := s.Get(KeyApplication)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrTransitionFailed, KeyApplication)
	}

	app, ok := val.(applications.Application)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Application", ErrTransitionFailed, KeyApplication)
	}

	return &app, nil
}

func extractDecision(s state.State) (*verifier.Decision, error) {
	val, ok := s.Get(KeyDecision)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrTransitionFailed, KeyDecision)
	}

	decision, ok := val.(verifier.Decision)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Decision", ErrTransitionFailed, KeyDecision)
	}

	return &decision, nil
}
