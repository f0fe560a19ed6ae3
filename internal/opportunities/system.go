package opportunities

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/pagination"
)

// System defines the public contract for opportunity domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Opportunity], error)

	Find(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	Create(ctx context.Context, cmd CreateCommand) (*Opportunity, error)

	// Publish opens the opportunity to candidate applications. Publishing is
	// idempotent; an already published opportunity is returned unchanged.
	Publish(ctx context.Context, id uuid.UUID) (*Opportunity, error)

	// AppendStage adds a stage to the end of the pipeline. Appending is the
	// only stage mutation allowed once an opportunity is published, because
	// in-flight applications resolve stages within the existing list.
	AppendStage(ctx context.Context, id uuid.UUID, cmd StageCommand) (*Opportunity, error)

	// Stages returns the ordered pipeline for an opportunity, or the default
	// five-stage pipeline when none is configured.
	Stages(ctx context.Context, id uuid.UUID) ([]Stage, error)
}
