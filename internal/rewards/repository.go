package rewards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/pagination"
	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a reward ledger repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "rewards"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Find(ctx context.Context, studentID uuid.UUID) (*Account, error) {
	q, args := query.NewBuilder(accountProjection).BuildSingle("StudentID", studentID)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAccount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Account{
				StudentID: studentID,
				Points:    0,
				Level:     LevelForPoints(0),
				UpdatedAt: time.Now(),
			}, nil
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Entries(
	ctx context.Context,
	studentID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(entryProjection, entrySort).
		WhereEquals("StudentID", studentID)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reward entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query reward entries: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

// Credit writes a ledger entry and recomputes the account total and level
// within the caller's transaction. It exists for the verification repository,
// which binds the credit to the stage advance atomically.
func Credit(
	ctx context.Context,
	tx *sql.Tx,
	studentID uuid.UUID,
	points int,
	reason string,
	verificationID *uuid.UUID,
) (*Account, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reward_entries(id, student_id, points, reason, verification_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), studentID, points, reason, verificationID,
	); err != nil {
		return nil, fmt.Errorf("insert reward entry: %w", err)
	}

	var a Account
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO reward_accounts(student_id, points, level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id) DO UPDATE SET
			points = reward_accounts.points + EXCLUDED.points,
			updated_at = NOW()
		 RETURNING student_id, points, level, updated_at`,
		studentID, points, LevelForPoints(points),
	).Scan(&a.StudentID, &a.Points, &a.Level, &a.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert reward account: %w", err)
	}

	// Level derives from the post-credit total, which is only known after
	// the upsert resolves the conflict path.
	level := LevelForPoints(a.Points)
	if level != a.Level {
		if err := tx.QueryRowContext(ctx,
			`UPDATE reward_accounts SET level = $1 WHERE student_id = $2
			 RETURNING student_id, points, level, updated_at`,
			level, studentID,
		).Scan(&a.StudentID, &a.Points, &a.Level, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("recompute level: %w", err)
		}
	}

	return &a, nil
}
