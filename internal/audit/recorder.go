package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"family-meal-planner/internal/audit/audit_db"
	"family-meal-planner/internal/shared"
)

// Entry is one change to record. Day and MealType only feed the descriptions.
type Entry struct {
	FamilyID   string
	PlanID     string
	MealID     string
	MemberID   string
	ActorName  string
	ChangeType ChangeType
	OldValue   string
	NewValue   string
	DayOfWeek  int
	MealType   string
}

// LogEntry is a recorded change as read back from the log.
type LogEntry struct {
	ID           int64        `json:"id"`
	FamilyID     string       `json:"familyId"`
	PlanID       string       `json:"planId"`
	MealID       string       `json:"mealId,omitempty"`
	MemberID     string       `json:"memberId"`
	ChangeType   ChangeType   `json:"changeType"`
	OldValue     string       `json:"oldValue,omitempty"`
	NewValue     string       `json:"newValue,omitempty"`
	Descriptions Descriptions `json:"descriptions"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Recorder appends entries to the change log.
type Recorder struct {
	queries *auditdb.Queries
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{queries: auditdb.New(db)}
}

// Record writes the entry. It never returns an error: a failed write is
// logged and reported as OutcomeFailed.
func (r *Recorder) Record(ctx context.Context, e Entry) shared.Outcome {
	desc := Describe(e.ChangeType, Details{
		ActorName: e.ActorName,
		DayOfWeek: e.DayOfWeek,
		MealType:  e.MealType,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
	})

	err := r.queries.InsertChangeLogEntry(ctx, auditdb.InsertChangeLogEntryParams{
		FamilyID:      e.FamilyID,
		PlanID:        e.PlanID,
		MealID:        optional(e.MealID),
		MemberID:      e.MemberID,
		ChangeType:    string(e.ChangeType),
		OldValue:      optional(e.OldValue),
		NewValue:      optional(e.NewValue),
		DescriptionEn: desc.EN,
		DescriptionFr: desc.FR,
		DescriptionHe: desc.HE,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Warning: failed to record %s for plan %s (member %s): %v", e.ChangeType, e.PlanID, e.MemberID, err)
		return shared.OutcomeFailed
	}
	return shared.OutcomeApplied
}

// ListForPlan returns the plan's change log, oldest first.
func (r *Recorder) ListForPlan(ctx context.Context, planID string) ([]LogEntry, error) {
	rows, err := r.queries.ListChangeLogForPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list change log: %w", err)
	}

	entries := make([]LogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LogEntry{
			ID:         row.ID,
			FamilyID:   row.FamilyID,
			PlanID:     row.PlanID,
			MealID:     row.MealID.String,
			MemberID:   row.MemberID,
			ChangeType: ChangeType(row.ChangeType),
			OldValue:   row.OldValue.String,
			NewValue:   row.NewValue.String,
			Descriptions: Descriptions{
				EN: row.DescriptionEn,
				FR: row.DescriptionFr,
				HE: row.DescriptionHe,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, nil
}

func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
