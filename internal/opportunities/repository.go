package opportunities

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

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

// New creates an opportunity repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "opportunities"),
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
) (*pagination.PageResult[Opportunity], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "EmployerName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count opportunities: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOpportunity)
	if err != nil {
		return nil, fmt.Errorf("query opportunities: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Opportunity, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOpportunity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Opportunity, error) {
	for _, s := range cmd.Stages {
		if strings.TrimSpace(s.Label) == "" {
			return nil, ErrEmptyLabel
		}
		if s.Kind != "" && !validKind(s.Kind) {
			return nil, ErrInvalidKind
		}
	}

	stages := buildStages(cmd.Stages)
	stagesJSON, err := json.Marshal(stages)
	if err != nil {
		return nil, fmt.Errorf("marshal stages: %w", err)
	}

	q := `
		INSERT INTO opportunities(id, title, employer_name, stages)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, employer_name, stages, published, created_at, updated_at`

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Opportunity, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Title, cmd.EmployerName, stagesJSON}, scanOpportunity)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("opportunity created",
		"id", o.ID,
		"employer", o.EmployerName,
		"stage_count", len(o.Stages),
	)
	return &o, nil
}

func (r *repo) Publish(ctx context.Context, id uuid.UUID) (*Opportunity, error) {
	q := `
		UPDATE opportunities
		SET published = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, employer_name, stages, published, created_at, updated_at`

	o, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanOpportunity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("opportunity published",
		"id", o.ID,
		"employer", o.EmployerName,
	)
	return &o, nil
}

func (r *repo) AppendStage(ctx context.Context, id uuid.UUID, cmd StageCommand) (*Opportunity, error) {
	if strings.TrimSpace(cmd.Label) == "" {
		return nil, ErrEmptyLabel
	}
	if cmd.Kind != "" && !validKind(cmd.Kind) {
		return nil, ErrInvalidKind
	}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Opportunity, error) {
		q, args := query.NewBuilder(projection).BuildSingle("ID", id)
		current, err := repository.QueryOne(ctx, tx, q+" FOR UPDATE", args, scanOpportunity)
		if err != nil {
			return Opportunity{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if _, exists := StageByLabel(current.Stages, cmd.Label); exists {
			return Opportunity{}, ErrStageConflict
		}

		stages := append(current.Stages, buildStages([]StageCommand{cmd})...)
		stagesJSON, err := json.Marshal(stages)
		if err != nil {
			return Opportunity{}, fmt.Errorf("marshal stages: %w", err)
		}

		updateQ := `
			UPDATE opportunities
			SET stages = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING id, title, employer_name, stages, published, created_at, updated_at`

		return repository.QueryOne(ctx, tx, updateQ, []any{stagesJSON, id}, scanOpportunity)
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("stage appended",
		"id", o.ID,
		"label", cmd.Label,
		"stage_count", len(o.Stages),
	)
	return &o, nil
}

func (r *repo) Stages(ctx context.Context, id uuid.UUID) ([]Stage, error) {
	o, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(o.Stages) == 0 {
		return DefaultStages(), nil
	}
	return o.Stages, nil
}
