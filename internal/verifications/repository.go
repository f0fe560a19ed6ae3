package verifications

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/rewards"
	"github.com/talentgate/talentgate/internal/verifier"
	"github.com/talentgate/talentgate/internal/workflow"
	"github.com/talentgate/talentgate/pkg/pagination"
	"github.com/talentgate/talentgate/pkg/query"
	"github.com/talentgate/talentgate/pkg/repository"
	"github.com/talentgate/talentgate/pkg/storage"
)

type repo struct {
	db         *sql.DB
	apps       applications.System
	storage    storage.System
	runtime    *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a verification repository implementing the System interface.
func New(
	db *sql.DB,
	apps applications.System,
	store storage.System,
	runtime *workflow.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		apps:       apps,
		storage:    store,
		runtime:    runtime,
		logger:     logger.With("system", "verifications"),
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
) (*pagination.PageResult[Verification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Milestone", "Message")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count verifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVerification)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Verification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVerification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) Evidence(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	v, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	body, err := r.storage.Download(ctx, v.EvidenceKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("download evidence %s: %w", v.EvidenceKey, err)
	}

	return body, v.EvidenceType, nil
}

func (r *repo) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResponse, error) {
	if strings.TrimSpace(cmd.Milestone) == "" {
		return nil, ErrEmptyMilestone
	}
	if len(cmd.Evidence) == 0 {
		return nil, verifier.ErrEmptyEvidence
	}
	if !verifier.SupportedMedia(cmd.MediaType) {
		return nil, fmt.Errorf("%w: %s", verifier.ErrUnsupportedMedia, cmd.MediaType)
	}

	app, err := r.apps.Find(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Terminal() {
		return nil, ErrTerminalApplication
	}

	digest := cmd.Digest()

	existing, err := r.findByDigest(ctx, digest)
	if err == nil {
		r.logger.Info("duplicate submission resolved from record",
			"application_id", app.ID,
			"verification_id", existing.ID,
			"digest", digest,
		)
		return r.replayResponse(ctx, existing)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	opp, err := r.runtime.Opportunities.Find(ctx, app.OpportunityID)
	if err != nil {
		return nil, fmt.Errorf("resolve opportunity: %w", err)
	}

	key := evidenceKey(app.ID, digest)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Evidence), cmd.MediaType); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveFailed, err)
	}

	outcome, err := workflow.Execute(ctx, r.runtime, app, workflow.Submission{
		Milestone:    cmd.Milestone,
		EmployerName: opp.EmployerName,
		Evidence: verifier.Blob{
			Data:      cmd.Evidence,
			MediaType: cmd.MediaType,
		},
	})
	if err != nil {
		return nil, err
	}

	v, err := r.record(ctx, app, cmd, digest, key, outcome)
	if err != nil {
		return nil, err
	}

	r.logger.Info("submission recorded",
		"application_id", app.ID,
		"verification_id", v.ID,
		"accepted", v.Accepted,
		"points", v.PointsAwarded,
	)

	return buildResponse(app, outcome, v), nil
}

// record persists the verification row, the application transition, and the
// reward credit as one transaction. A ledger failure rolls back the stage
// advance rather than leaving the application advanced without payment.
func (r *repo) record(
	ctx context.Context,
	app *applications.Application,
	cmd SubmitCommand,
	digest, key string,
	outcome *workflow.Outcome,
) (*Verification, error) {
	transition := outcome.Transition

	points := 0
	if outcome.Decision.Accepted && transition.Changed {
		points = transition.Points
	}

	insertArgs := []any{
		uuid.New(),
		app.ID,
		app.StudentID,
		cmd.Milestone,
		digest,
		outcome.Decision.Accepted,
		outcome.Decision.Message,
		outcome.Decision.Provider,
		outcome.Decision.Model,
		key,
		cmd.MediaType,
		points,
	}

	insertSQL := `
		INSERT INTO verifications(id, application_id, student_id, milestone, digest, accepted, message, provider, model, evidence_key, evidence_type, points_awarded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, application_id, student_id, milestone, digest, accepted, message, provider, model, evidence_key, evidence_type, points_awarded, created_at`

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Verification, error) {
		v, err := repository.QueryOne(ctx, tx, insertSQL, insertArgs, scanVerification)
		if err != nil {
			return v, err
		}

		if transition.Changed {
			if err := applyTransition(ctx, tx, app.ID, transition); err != nil {
				return v, err
			}
		}

		if points > 0 {
			reason := fmt.Sprintf("verified milestone %q", cmd.Milestone)
			if _, err := rewards.Credit(ctx, tx, app.StudentID, points, reason, &v.ID); err != nil {
				return v, fmt.Errorf("credit reward: %w", err)
			}
		}

		return v, nil
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTerminalApplication
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &v, nil
}

// applyTransition writes the computed stage and status to the application.
// Terminal rows are guarded at the write so a concurrent bulk reject cannot
// be overwritten; zero rows affected surfaces as sql.ErrNoRows.
func applyTransition(ctx context.Context, tx *sql.Tx, id uuid.UUID, t workflow.Transition) error {
	return repository.ExecExpectOne(
		ctx, tx,
		`UPDATE applications
		 SET status = $1, current_stage = $2, current_stage_id = $3, rejection_reason = $4, updated_at = NOW()
		 WHERE id = $5 AND status NOT IN ('hired', 'rejected')`,
		t.Status, t.Stage, t.StageID, t.RejectionReason, id,
	)
}

func (r *repo) findByDigest(ctx context.Context, digest string) (*Verification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Digest", digest)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVerification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

// replayResponse answers a duplicate submission from its recorded outcome
// and the application's current state, without another classifier call or
// credit.
func (r *repo) replayResponse(ctx context.Context, v *Verification) (*SubmitResponse, error) {
	app, err := r.apps.Find(ctx, v.ApplicationID)
	if err != nil {
		return nil, err
	}

	return &SubmitResponse{
		Success:       v.Accepted,
		Message:       v.Message,
		Stage:         app.CurrentStage,
		Status:        app.Status,
		PointsAwarded: v.PointsAwarded,
	}, nil
}

func buildResponse(app *applications.Application, outcome *workflow.Outcome, v *Verification) *SubmitResponse {
	transition := outcome.Transition

	resp := &SubmitResponse{
		Success:       outcome.Decision.Accepted,
		Message:       outcome.Decision.Message,
		Stage:         app.CurrentStage,
		Status:        app.Status,
		PointsAwarded: v.PointsAwarded,
		Warning:       transition.Warning,
	}

	if transition.Changed {
		resp.Stage = transition.Stage
		resp.Status = transition.Status
	}

	if outcome.Decision.Accepted && transition.Changed {
		resp.Message = fmt.Sprintf("evidence accepted; advanced to %s (+%d points)", transition.Stage, v.PointsAwarded)
	}

	return resp
}

func evidenceKey(applicationID uuid.UUID, digest string) string {
	return fmt.Sprintf("evidence/%s/%s.png", applicationID, digest[:16])
}
