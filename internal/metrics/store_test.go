package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"family-meal-planner/internal/database"
	"family-meal-planner/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatalf("Failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.RecordMeta(ctx, shared.ExecutionMeta{
		Operation: "translate_shopping_list",
		Usage:     shared.TokenUsage{PromptTokens: 120, CompletionTokens: 30, Model: "gemini-1.5-flash"},
		Latency:   250 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("RecordMeta failed: %v", err)
	}
	if err := s.RecordMeta(ctx, shared.ExecutionMeta{Operation: "compose_plan", Latency: 3 * time.Millisecond}); err != nil {
		t.Fatalf("RecordMeta failed: %v", err)
	}
	old := ExecutionMetric{Operation: "compose_plan", LatencyMS: 5, PromptTokens: 999, Timestamp: time.Now().AddDate(0, 0, -40)}
	if err := s.Record(ctx, old); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	t.Run("DailyUsage", func(t *testing.T) {
		usage, err := s.GetDailyUsage(ctx, 7)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 1 {
			t.Fatalf("Expected 1 day of usage, got %+v", usage)
		}
		u := usage[0]
		if u.TotalExecution != 2 || u.TotalPrompt != 120 || u.TotalCompletion != 30 {
			t.Errorf("Unexpected usage: %+v", u)
		}
		if u.Date != time.Now().UTC().Format("2006-01-02") {
			t.Errorf("Expected today's date, got %s", u.Date)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		n, err := s.Cleanup(ctx, 30)
		if err != nil {
			t.Fatalf("Cleanup failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 deleted metric, got %d", n)
		}
		usage, _ := s.GetDailyUsage(ctx, 60)
		if len(usage) != 1 {
			t.Errorf("Expected only today's usage to remain, got %+v", usage)
		}
	})
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.db"), make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	h := GetSysHealth(dir)
	if h.Status != "ok" || h.Goroutines == 0 {
		t.Errorf("Unexpected health: %+v", h)
	}
	if h.DataDiskSize != "2.0 KB" {
		t.Errorf("Expected 2.0 KB, got %s", h.DataDiskSize)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %s, want %s", in, got, want)
		}
	}
}
