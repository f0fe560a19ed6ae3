package rewards

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/pagination"
)

// System defines the public contract for reward ledger reads. Credits are
// written only inside the verification transaction, never through this
// interface, so a ledger write can never land without its stage advance.
type System interface {
	Handler() *Handler

	// Find returns the account for a student, or a zero account when the
	// student has never been credited.
	Find(ctx context.Context, studentID uuid.UUID) (*Account, error)

	Entries(
		ctx context.Context,
		studentID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[Entry], error)
}
