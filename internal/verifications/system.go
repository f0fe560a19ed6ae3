package verifications

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/pagination"
)

// System defines the public contract for verification domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Verification], error)

	Find(ctx context.Context, id uuid.UUID) (*Verification, error)

	// Evidence returns a stream of the archived evidence image and its media
	// type. The caller must close the reader.
	Evidence(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)

	// Submit runs one evidence submission end to end: verify against the
	// classifier, archive the evidence, record the decision, and apply the
	// stage transition and reward credit transactionally. Identical
	// resubmissions resolve to the recorded outcome without re-crediting.
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResponse, error)
}
