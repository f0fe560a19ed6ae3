package api

import (
	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/config"
	"github.com/talentgate/talentgate/internal/opportunities"
	"github.com/talentgate/talentgate/internal/rewards"
	"github.com/talentgate/talentgate/internal/verifications"
	"github.com/talentgate/talentgate/internal/verifier"
	"github.com/talentgate/talentgate/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Opportunities opportunities.System
	Applications  applications.System
	Rewards       rewards.System
	Verifications verifications.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	oppsSystem := opportunities.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	appsSystem := applications.New(
		runtime.Database.Connection(),
		oppsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	rewardsSystem := rewards.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	verifierSystem := verifier.New(cfg.Verifier.AgentConfigs(), runtime.Logger)

	workflowRuntime := &workflow.Runtime{
		Verifier:      verifierSystem,
		Opportunities: oppsSystem,
		Logger:        runtime.Logger.With("system", "workflow"),
	}

	verificationsSystem := verifications.New(
		runtime.Database.Connection(),
		appsSystem,
		runtime.Storage,
		workflowRuntime,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Opportunities: oppsSystem,
		Applications:  appsSystem,
		Rewards:       rewardsSystem,
		Verifications: verificationsSystem,
	}
}
