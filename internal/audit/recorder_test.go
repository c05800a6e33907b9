package audit

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"family-meal-planner/internal/database"
	"family-meal-planner/internal/shared"
)

func TestDescribe(t *testing.T) {
	d := Describe(RecipeChanged, Details{
		ActorName: "Dana",
		DayOfWeek: 3,
		MealType:  "DINNER",
		OldValue:  "Lasagna",
		NewValue:  "Shakshuka",
	})

	if d.EN != "Dana changed Wednesday dinner from Lasagna to Shakshuka" {
		t.Errorf("Unexpected EN description: %q", d.EN)
	}
	if !strings.Contains(d.FR, "mercredi") || !strings.Contains(d.FR, "Shakshuka") {
		t.Errorf("Unexpected FR description: %q", d.FR)
	}
	if !strings.Contains(d.HE, "יום רביעי") || !strings.Contains(d.HE, "Dana") {
		t.Errorf("Unexpected HE description: %q", d.HE)
	}

	t.Run("EveryChangeTypeHasAllLocales", func(t *testing.T) {
		for ct, p := range templates {
			if p.en == "" || p.fr == "" || p.he == "" {
				t.Errorf("%s is missing a locale", ct)
			}
		}
	})

	t.Run("PlanLevelChangeHasNoSlot", func(t *testing.T) {
		d := Describe(PlanValidated, Details{ActorName: "Dana"})
		if d.EN != "Dana validated the plan" {
			t.Errorf("Unexpected description: %q", d.EN)
		}
	})

	t.Run("UnknownActor", func(t *testing.T) {
		d := Describe(PlanLocked, Details{})
		if !strings.HasPrefix(d.EN, "Someone") {
			t.Errorf("Expected placeholder actor, got %q", d.EN)
		}
	})
}

func TestRecorder(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Failed to create test db: %v", err)
	}
	defer db.Close()

	r := NewRecorder(db.SQL)
	ctx := context.Background()

	outcome := r.Record(ctx, Entry{
		FamilyID:   "fam-1",
		PlanID:     "plan-1",
		MealID:     "meal-1",
		MemberID:   "m1",
		ActorName:  "Dana",
		ChangeType: PortionsChanged,
		OldValue:   "4",
		NewValue:   "6",
		DayOfWeek:  1,
		MealType:   "LUNCH",
	})
	if outcome != shared.OutcomeApplied {
		t.Fatalf("Expected APPLIED, got %s", outcome)
	}
	r.Record(ctx, Entry{FamilyID: "fam-1", PlanID: "plan-1", MemberID: "m1", ChangeType: PlanValidated})

	entries, err := r.ListForPlan(ctx, "plan-1")
	if err != nil {
		t.Fatalf("ListForPlan failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ChangeType != PortionsChanged || entries[0].OldValue != "4" || entries[0].MealID != "meal-1" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].MealID != "" || entries[1].OldValue != "" {
		t.Errorf("Expected empty optional fields, got %+v", entries[1])
	}

	t.Run("FailureIsReportedNotReturned", func(t *testing.T) {
		db.Close()
		if outcome := r.Record(ctx, Entry{PlanID: "plan-1", ChangeType: PlanLocked}); outcome != shared.OutcomeFailed {
			t.Errorf("Expected FAILED after the db is closed, got %s", outcome)
		}
	})
}
