package cutoff

import (
	"errors"
	"testing"
	"time"

	"family-meal-planner/internal/shared"
)

func fixedGuard(now time.Time) *Guard {
	return &Guard{Now: func() time.Time { return now }, Location: time.UTC}
}

func TestGuardCheck(t *testing.T) {
	now := time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")

	member := Actor{MemberID: "m1", FamilyID: "f1", Role: RoleMember}
	admin := Actor{MemberID: "a1", FamilyID: "f1", Role: RoleAdmin}
	owner := Actor{MemberID: "o1", FamilyID: "f1", Role: RoleOwner}
	child := Actor{MemberID: "c1", FamilyID: "f1", Role: RoleChild}

	pastCutoff := PlanState{Status: StatusDraft, CutoffDate: yesterday, CutoffTime: "18:00"}
	pastCutoffComments := pastCutoff
	pastCutoffComments.AllowCommentsAfterCutoff = true
	open := PlanState{Status: StatusDraft, CutoffDate: tomorrow, CutoffTime: "18:00"}

	tests := []struct {
		name    string
		req     Request
		allowed bool
	}{
		{"MemberBeforeCutoff", Request{Actor: member, Plan: open, Op: OpEdit}, true},
		{"MemberAfterCutoff", Request{Actor: member, Plan: pastCutoff, Op: OpEdit}, false},
		{"AdminAfterCutoff", Request{Actor: admin, Plan: pastCutoff, Op: OpEdit}, true},
		{"OwnerAfterCutoff", Request{Actor: owner, Plan: pastCutoff, Op: OpEdit}, true},
		{"CommentAfterCutoffNotAllowed", Request{Actor: member, Plan: pastCutoff, Op: OpFeedback}, false},
		{"CommentAfterCutoffAllowed", Request{Actor: member, Plan: pastCutoffComments, Op: OpFeedback}, true},
		{"EditAfterCutoffCommentsAllowed", Request{Actor: member, Plan: pastCutoffComments, Op: OpEdit}, false},
		{"MalformedCutoffBlocksMember", Request{Actor: member, Plan: PlanState{Status: StatusDraft, CutoffDate: "5 Sept"}, Op: OpEdit}, false},
		{"MalformedCutoffAllowsOwner", Request{Actor: owner, Plan: PlanState{Status: StatusDraft, CutoffDate: "5 Sept"}, Op: OpEdit}, true},
		{"NoCutoffConfigured", Request{Actor: member, Plan: PlanState{Status: StatusValidated}, Op: OpEdit}, true},
		{"LockedPlanRejectsOwner", Request{Actor: owner, Plan: PlanState{Status: StatusLocked}, Op: OpEdit}, false},
		{"LockedPlanRejectsFeedback", Request{Actor: member, Plan: PlanState{Status: StatusLocked}, Op: OpFeedback}, false},
		{"LockedMealRejectsEdit", Request{Actor: owner, Plan: open, MealLocked: true, Op: OpEdit}, false},
		{"LockedMealAllowsUnlock", Request{Actor: admin, Plan: open, MealLocked: true, Op: OpLockToggle}, true},
		{"MemberCannotToggleLock", Request{Actor: member, Plan: open, Op: OpLockToggle}, false},
		{"ChildCannotEdit", Request{Actor: child, Plan: open, Op: OpEdit}, false},
		{"ChildCanVote", Request{Actor: child, Plan: open, Op: OpFeedback}, true},
	}

	g := fixedGuard(now)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Check(tt.req)
			if tt.allowed && err != nil {
				t.Errorf("Expected request to be allowed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, shared.ErrForbidden) {
				t.Errorf("Expected Forbidden, got %v", err)
			}
		})
	}
}

func TestAfterCutoff(t *testing.T) {
	now := time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		hhmm string
		want bool
	}{
		{"NoDate", "", "18:00", false},
		{"BadDateCountsAsPassed", "05/09/2024", "18:00", true},
		{"SameDayLater", "2024-09-05", "18:00", false},
		{"SameDayEarlier", "2024-09-05", "09:30", true},
		{"MissingTimeDefaultsToEndOfDay", "2024-09-05", "", false},
		{"BadTimeDefaultsToEndOfDay", "2024-09-04", "late", true},
		{"Yesterday", "2024-09-04", "18:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AfterCutoff(tt.date, tt.hhmm, now, time.UTC); got != tt.want {
				t.Errorf("AfterCutoff(%q, %q) = %v, want %v", tt.date, tt.hhmm, got, tt.want)
			}
		})
	}

	t.Run("Location", func(t *testing.T) {
		jerusalem := time.FixedZone("IST", 3*60*60)
		// 17:00 UTC is 20:00 in a UTC+3 zone.
		at := time.Date(2024, 9, 5, 17, 0, 0, 0, time.UTC)
		if !AfterCutoff("2024-09-05", "18:00", at, jerusalem) {
			t.Error("Expected cutoff to be evaluated in the plan's location")
		}
		if AfterCutoff("2024-09-05", "18:00", at, time.UTC) {
			t.Error("Expected 17:00 UTC to be before an 18:00 UTC cutoff")
		}
	})
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		from, to PlanStatus
		ok       bool
	}{
		{StatusDraft, StatusInValidation, true},
		{StatusDraft, StatusValidated, true},
		{StatusInValidation, StatusValidated, true},
		{StatusValidated, StatusLocked, true},
		{StatusDraft, StatusLocked, true},
		{StatusValidated, StatusDraft, false},
		{StatusLocked, StatusValidated, false},
		{StatusValidated, StatusValidated, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			err := Advance(tt.from, tt.to)
			if tt.ok && err != nil {
				t.Errorf("Expected transition to be allowed, got %v", err)
			}
			if !tt.ok && !errors.Is(err, shared.ErrConflict) {
				t.Errorf("Expected Conflict, got %v", err)
			}
		})
	}

	if err := Advance("ARCHIVED", StatusLocked); !errors.Is(err, shared.ErrValidation) {
		t.Errorf("Expected Validation for unknown status, got %v", err)
	}
}
