package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/verifier"
)

// Execute runs the verification workflow for a single evidence submission.
// It builds the state graph (verify → advance | reset), executes it, and
// extracts the Outcome from the final state. The caller persists the
// transition and issues any reward credit in its own transaction.
func Execute(ctx context.Context, rt *Runtime, app *applications.Application, sub Submission) (*Outcome, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyApplication, *app)
	initialState = initialState.Set(KeySubmission, sub)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractOutcome(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("talentgate-verify")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("verify", VerifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("advance", AdvanceNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("reset", ResetNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("resolve", ResolveNode(rt)); err != nil {
		return nil, err
	}

	// verify → advance (when the classifier accepted)
	if err := graph.AddEdge("verify", "advance", accepted); err != nil {
		return nil, err
	}

	// verify → reset (when the classifier rejected)
	if err := graph.AddEdge("verify", "reset", state.Not(accepted)); err != nil {
		return nil, err
	}

	// advance → resolve (unconditional)
	if err := graph.AddEdge("advance", "resolve", nil); err != nil {
		return nil, err
	}

	// reset → resolve (unconditional)
	if err := graph.AddEdge("reset", "resolve", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("verify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("resolve"); err != nil {
		return nil, err
	}

	return graph, nil
}

// ResolveNode returns the graph's exit node. It validates that both the
// decision and the transition made it into the final state.
func ResolveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		if _, err := extractDecision(s); err != nil {
			return s, fmt.Errorf("resolve: %w", err)
		}

		if _, err := extractTransition(s); err != nil {
			return s, fmt.Errorf("resolve: %w", err)
		}

		return s, nil
	})
}

func extractOutcome(s state.State) (*Outcome, error) {
	decision, err := extractDecision(s)
	if err != nil {
		return nil, err
	}

	transition, err := extractTransition(s)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Decision:   decision,
		Transition: *transition,
	}, nil
}

func extractTransition(s state.State) (*Transition, error) {
	val, ok := s.Get(KeyTransition)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrTransitionFailed, KeyTransition)
	}

	transition, ok := val.(Transition)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Transition", ErrTransitionFailed, KeyTransition)
	}

	return &transition, nil
}

func accepted(s state.State) bool {
	val, ok := s.Get(KeyDecision)
	if !ok {
		return false
	}

	decision, ok := val.(verifier.Decision)
	if !ok {
		return false
	}

	return decision.Accepted
}
