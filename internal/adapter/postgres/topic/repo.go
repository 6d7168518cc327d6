// Package topic implements the remote topics table: select-all,
// insert-returning, update-by-id and delete-by-id.
package topic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/chartboard/internal/adapter/postgres"
	"github.com/heartmarshall/chartboard/internal/domain"
)

const table = "topics"

var columns = []string{"id", "name", "chart_type", "created_at"}

// row is the scan target for one topics row.
type row struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ChartType string    `db:"chart_type"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Topic {
	return domain.Topic{
		ID:        r.ID,
		Name:      r.Name,
		ChartType: domain.ChartType(r.ChartType),
		Details:   []domain.Detail{},
		CreatedAt: r.CreatedAt,
	}
}

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new topic repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// List returns every topic in insertion order. Details are left empty.
func (r *Repo) List(ctx context.Context) ([]domain.Topic, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list topics: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "topics", 0)
	}

	topics := make([]domain.Topic, len(rows))
	for i, rw := range rows {
		topics[i] = rw.toDomain()
	}
	return topics, nil
}

// Create inserts a topic and returns the stored record with its assigned id.
func (r *Repo) Create(ctx context.Context, name string, chartType domain.ChartType) (domain.Topic, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("name", "chart_type").
		Values(name, string(chartType)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Topic{}, fmt.Errorf("build insert topic: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, r.q, &rw, sql, args...); err != nil {
		return domain.Topic{}, postgres.MapError(err, "topic", 0)
	}
	return rw.toDomain(), nil
}

// Update overwrites the non-nil fields of a topic.
// Returns domain.ErrNotFound if no topic has the given id.
func (r *Repo) Update(ctx context.Context, id int64, params domain.TopicUpdateParams) (domain.Topic, error) {
	set := map[string]any{}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.ChartType != nil {
		set["chart_type"] = string(*params.ChartType)
	}
	if len(set) == 0 {
		return domain.Topic{}, domain.NewValidationError("input", "at least one field must be provided")
	}

	sql, args, err := postgres.Builder().
		Update(table).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Topic{}, fmt.Errorf("build update topic: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, r.q, &rw, sql, args...); err != nil {
		return domain.Topic{}, postgres.MapError(err, "topic", id)
	}
	return rw.toDomain(), nil
}

// Delete removes a topic; its details go with it through ON DELETE CASCADE.
// Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete topic: %w", err)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "topic", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
