package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"domainvetter/internal/models"
)

func TestPublishReport(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to run miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	pub := NewPublisher(rdb, "report_tasks")
	ctx := context.Background()

	first := models.ReportTask{ID: "t1", CheckID: "c1", Domain: "example.com", Email: "a@example.com"}
	second := models.ReportTask{ID: "t2", CheckID: "c2", Domain: "example.org", Email: "b@example.org", Welcome: true}

	if err := pub.PublishReport(ctx, first); err != nil {
		t.Fatalf("PublishReport: %v", err)
	}
	if err := pub.PublishReport(ctx, second); err != nil {
		t.Fatalf("PublishReport: %v", err)
	}

	// FIFO: the first task published pops first.
	raw, err := rdb.LPop(ctx, "report_tasks").Result()
	if err != nil {
		t.Fatalf("LPop: %v", err)
	}
	var got models.ReportTask
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != first {
		t.Errorf("Popped task %+v, expected %+v", got, first)
	}
}
