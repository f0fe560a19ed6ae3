package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/talentgate/talentgate/internal/opportunities"
	"github.com/talentgate/talentgate/pkg/pagination"
	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
)

// rejectedStageLabel is the stage written by BulkReject regardless of the
// owning opportunity's pipeline.
const rejectedStageLabel = "Rejected"

type repo struct {
	db         *sql.DB
	opps       opportunities.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an application repository implementing the System interface.
func New(
	db *sql.DB,
	opps opportunities.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		opps:       opps,
		logger:     logger.With("system", "applications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Application], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CurrentStage", "RejectionReason")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanApplication)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Application, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanApplication)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Application, error) {
	stages, err := r.opps.Stages(ctx, cmd.OpportunityID)
	if err != nil {
		return nil, fmt.Errorf("resolve pipeline: %w", err)
	}

	entry := stages[0]
	var entryID *uuid.UUID
	if entry.ID != uuid.Nil {
		entryID = &entry.ID
	}

	q := `
		INSERT INTO applications(id, student_id, opportunity_id, status, current_stage, current_stage_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, student_id, opportunity_id, status, current_stage, current_stage_id, rejection_reason, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.StudentID,
		cmd.OpportunityID,
		StatusApplied,
		entry.Label,
		entryID,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Application, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanApplication)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("application created",
		"id", a.ID,
		"student_id", a.StudentID,
		"opportunity_id", a.OpportunityID,
		"stage", a.CurrentStage,
	)
	return &a, nil
}

func (r *repo) BulkMove(ctx context.Context, cmd BulkMoveCommand) ([]BulkResult, error) {
	if len(cmd.ApplicationIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	status, matched := StatusForStage(cmd.TargetStage)
	if !matched {
		status = StatusShortlisted
	}

	results := r.fanOut(ctx, cmd.ApplicationIDs, func(ctx context.Context, id uuid.UUID) error {
		return r.moveRow(ctx, id, cmd.TargetStage, status)
	})

	r.logger.Info("bulk move complete",
		"target_stage", cmd.TargetStage,
		"status", status,
		"rows", len(results),
		"failed", countFailed(results),
	)

	return results, aggregateError(results)
}

func (r *repo) BulkReject(ctx context.Context, cmd BulkRejectCommand) ([]BulkResult, error) {
	if len(cmd.ApplicationIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	results := r.fanOut(ctx, cmd.ApplicationIDs, func(ctx context.Context, id uuid.UUID) error {
		return repository.ExecExpectOne(
			ctx, r.db,
			`UPDATE applications
			 SET status = $1, current_stage = $2, current_stage_id = NULL, updated_at = NOW()
			 WHERE id = $3 AND status NOT IN ('hired', 'rejected')`,
			StatusRejected, rejectedStageLabel, id,
		)
	})

	r.logger.Info("bulk reject complete",
		"rows", len(results),
		"failed", countFailed(results),
	)

	return results, aggregateError(results)
}

// fanOut dispatches one independent update per row. Rows share no
// transaction: a failure in one row leaves the others committed.
func (r *repo) fanOut(
	ctx context.Context,
	ids []uuid.UUID,
	update func(ctx context.Context, id uuid.UUID) error,
) []BulkResult {
	results := make([]BulkResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(runtime.NumCPU(), len(ids)), 1))

	for i, id := range ids {
		results[i] = BulkResult{ApplicationID: id}

		g.Go(func() error {
			if err := update(gctx, id); err != nil {
				results[i].Error = r.rowError(gctx, id, err).Error()
			}
			// Row failures are reported per-row, never used to cancel siblings.
			return nil
		})
	}

	g.Wait()
	return results
}

func (r *repo) moveRow(ctx context.Context, id uuid.UUID, targetStage string, status Status) error {
	stageID, err := r.resolveStageID(ctx, id, targetStage)
	if err != nil {
		return err
	}

	return repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE applications
		 SET status = $1, current_stage = $2, current_stage_id = $3, updated_at = NOW()
		 WHERE id = $4 AND status NOT IN ('hired', 'rejected')`,
		status, targetStage, stageID, id,
	)
}

// resolveStageID maps the target label to the stable stage id within the
// row's pipeline, when the pipeline defines one. A label outside the
// pipeline still moves the row; only the id is left unset.
func (r *repo) resolveStageID(ctx context.Context, id uuid.UUID, targetStage string) (*uuid.UUID, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	stages, err := r.opps.Stages(ctx, a.OpportunityID)
	if err != nil {
		return nil, fmt.Errorf("resolve pipeline: %w", err)
	}

	if idx, ok := opportunities.StageByLabel(stages, targetStage); ok && stages[idx].ID != uuid.Nil {
		stageID := stages[idx].ID
		return &stageID, nil
	}
	return nil, nil
}

// rowError refines a failed row update into a terminal-status or not-found
// error; ExecExpectOne reports both as zero rows affected.
func (r *repo) rowError(ctx context.Context, id uuid.UUID, err error) error {
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var status Status
	lookupErr := r.db.QueryRowContext(ctx,
		"SELECT status FROM applications WHERE id = $1", id,
	).Scan(&status)

	if lookupErr != nil {
		return ErrNotFound
	}
	if status.Terminal() {
		return ErrTerminalStatus
	}
	return err
}

func countFailed(results []BulkResult) int {
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	return failed
}

func aggregateError(results []BulkResult) error {
	if countFailed(results) > 0 {
		return ErrPartialFailure
	}
	return nil
}
