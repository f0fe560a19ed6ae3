package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/talentgate/talentgate/internal/verifier"
)

// VerifyNode returns a state node that submits the evidence to the external
// classifier and stores the decision for downstream nodes. Classifier errors
// abort the graph; an explicit reject is a valid decision, not an error.
func VerifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		sub, err := extractSubmission(s)
		if err != nil {
			return s, fmt.Errorf("verify: %w", err)
		}

		decision, err := rt.Verifier.Verify(ctx, verifier.Request{
			Milestone:    sub.Milestone,
			EmployerName: sub.EmployerName,
			Evidence:     sub.Evidence,
		})
		if err != nil {
			return s, fmt.Errorf("verify: %w: %w", ErrVerifyFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "verify node complete",
			"milestone", sub.Milestone,
			"accepted", decision.Accepted,
		)

		s = s.Set(KeyDecision, *decision)
		return s, nil
	})
}

func extractSubmission(s state.State) (*Submission, error) {
	val, ok := s.Get(KeySubmission)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrVerifyFailed, KeySubmission)
	}

	sub, ok := val.(Submission)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Submission", ErrVerifyFailed, KeySubmission)
	}

	return &sub, nil
}
