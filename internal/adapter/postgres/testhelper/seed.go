package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedTopic inserts a topic with a unique name and returns it.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, chartType domain.ChartType) domain.Topic {
	t.Helper()

	topic := domain.Topic{
		Name:      "Topic " + uniqueSuffix(),
		ChartType: chartType,
		Details:   []domain.Detail{},
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO topics (name, chart_type) VALUES ($1, $2) RETURNING id, created_at`,
		topic.Name, string(topic.ChartType),
	).Scan(&topic.ID, &topic.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic: %v", err)
	}

	return topic
}

// SeedDetail inserts a detail under topicID and returns it.
func SeedDetail(t *testing.T, pool *pgxpool.Pool, topicID int64, value float64) domain.Detail {
	t.Helper()

	d := domain.Detail{
		TopicID: topicID,
		Name:    "Detail " + uniqueSuffix(),
		Value:   value,
		Color:   domain.DefaultDetailColor,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO details (topic_id, name, value, color) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		d.TopicID, d.Name, d.Value, d.Color,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedDetail: %v", err)
	}

	return d
}
