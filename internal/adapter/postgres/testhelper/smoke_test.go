//go:build integration

package testhelper

import (
	"context"
	"testing"

	"github.com/heartmarshall/chartboard/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	topic := SeedTopic(t, pool, domain.ChartTypeBar)
	SeedDetail(t, pool, topic.ID, 10)

	var count int
	err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM details WHERE topic_id = $1`,
		topic.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("expected details in DB, got error: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected 1 detail, got %d", count)
	}
}
