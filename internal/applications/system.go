package applications

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/pagination"
)

// System defines the public contract for application domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Application], error)

	Find(ctx context.Context, id uuid.UUID) (*Application, error)
	Create(ctx context.Context, cmd CreateCommand) (*Application, error)

	// BulkMove writes the target stage (and its derived status) to each row
	// independently. Rows are not linked by a transaction; the per-row results
	// report individual failures and the error is ErrPartialFailure when any
	// row failed.
	BulkMove(ctx context.Context, cmd BulkMoveCommand) ([]BulkResult, error)

	// BulkReject writes status=rejected, current_stage="Rejected" to each row
	// independently, with the same partial-failure semantics as BulkMove.
	BulkReject(ctx context.Context, cmd BulkRejectCommand) ([]BulkResult, error)
}
