// Package detail implements the remote details table.
package detail

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

const table = "details"

var columns = []string{"id", "topic_id", "name", "value", "color", "created_at"}

type row struct {
	ID        int64     `db:"id"`
	TopicID   int64     `db:"topic_id"`
	Name      string    `db:"name"`
	Value     float64   `db:"value"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Detail {
	return domain.Detail{
		ID:        r.ID,
		TopicID:   r.TopicID,
		Name:      r.Name,
		Value:     r.Value,
		Color:     r.Color,
		CreatedAt: r.CreatedAt,
	}
}

// Repo provides detail persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new detail repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// List returns every detail of every topic, grouped by topic and in
// insertion order within a topic.
func (r *Repo) List(ctx context.Context) ([]domain.Detail, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("topic_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list details: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "details", 0)
	}

	details := make([]domain.Detail, len(rows))
	for i, rw := range rows {
		details[i] = rw.toDomain()
	}
	return details, nil
}

// Create inserts a detail under topicID. A missing topic surfaces as
// domain.ErrNotFound through the foreign key.
func (r *Repo) Create(ctx context.Context, topicID int64, params domain.DetailParams) (domain.Detail, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("topic_id", "name", "value", "color").
		Values(topicID, params.Name, params.Value, params.Color).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Detail{}, fmt.Errorf("build insert detail: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, r.q, &rw, sql, args...); err != nil {
		return domain.Detail{}, postgres.MapError(err, "detail of topic", topicID)
	}
	return rw.toDomain(), nil
}

// Update overwrites name, value and color of a detail.
func (r *Repo) Update(ctx context.Context, id int64, params domain.DetailParams) (domain.Detail, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("name", params.Name).
		Set("value", params.Value).
		Set("color", params.Color).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Detail{}, fmt.Errorf("build update detail: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, r.q, &rw, sql, args...); err != nil {
		return domain.Detail{}, postgres.MapError(err, "detail", id)
	}
	return rw.toDomain(), nil
}

// Delete removes a detail by id. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete detail: %w", err)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "detail", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("detail %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
