// Package cutoff decides whether a plan or meal may still be changed. It is
// evaluated before every mutation and knows nothing about storage.
package cutoff

import (
	"log"
	"strings"
	"time"

	"family-meal-planner/internal/shared"
)

// PlanStatus is the lifecycle state of a weekly plan. It only moves forward.
type PlanStatus string

const (
	StatusDraft        PlanStatus = "DRAFT"
	StatusInValidation PlanStatus = "IN_VALIDATION"
	StatusValidated    PlanStatus = "VALIDATED"
	StatusLocked       PlanStatus = "LOCKED"
)

func (s PlanStatus) rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusInValidation:
		return 1
	case StatusValidated:
		return 2
	case StatusLocked:
		return 3
	}
	return -1
}

// Valid reports whether s is a known status.
func (s PlanStatus) Valid() bool {
	return s.rank() >= 0
}

// Advance checks a status transition. Skipping forward is allowed, staying in
// place or moving back is not.
func Advance(from, to PlanStatus) error {
	if !from.Valid() || !to.Valid() {
		return shared.Validationf("unknown plan status transition %s -> %s", from, to)
	}
	if to.rank() <= from.rank() {
		return shared.Conflictf("plan is already %s", from)
	}
	return nil
}

// Role is a family member's role, from most to least privileged.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleChild  Role = "CHILD"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleChild:
		return true
	}
	return false
}

// Privileged reports whether the role may act after cutoff and manage plans.
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Actor is the member performing a request, as asserted by the caller's token.
type Actor struct {
	MemberID    string
	FamilyID    string
	DisplayName string
	Role        Role
}

// Operation classifies a mutation for the guard.
type Operation int

const (
	// OpEdit covers changes to meals and plans.
	OpEdit Operation = iota
	// OpFeedback covers comments and votes.
	OpFeedback
	// OpLockToggle locks or unlocks a single meal.
	OpLockToggle
)

// PlanState is the part of a plan the guard looks at.
type PlanState struct {
	Status                   PlanStatus
	CutoffDate               string // YYYY-MM-DD, empty when not configured
	CutoffTime               string // HH:MM
	AllowCommentsAfterCutoff bool
}

// Request describes one mutation attempt.
type Request struct {
	Actor      Actor
	Plan       PlanState
	MealLocked bool
	Op         Operation
}

// Guard evaluates requests against the wall clock in a fixed location.
type Guard struct {
	Now      func() time.Time
	Location *time.Location
}

// NewGuard returns a guard using time.Now in loc (UTC when nil).
func NewGuard(loc *time.Location) *Guard {
	if loc == nil {
		loc = time.UTC
	}
	return &Guard{Now: time.Now, Location: loc}
}

// Check returns a Forbidden error when the request may not proceed.
func (g *Guard) Check(req Request) error {
	if req.Plan.Status == StatusLocked {
		return shared.Forbiddenf("plan is locked")
	}
	if req.MealLocked && req.Op != OpLockToggle {
		return shared.Forbiddenf("meal is locked")
	}

	privileged := req.Actor.Role.Privileged()
	if req.Actor.Role == RoleChild && req.Op != OpFeedback {
		return shared.Forbiddenf("children may only comment and vote")
	}
	if req.Op == OpLockToggle && !privileged {
		return shared.Forbiddenf("only owners and admins can lock or unlock meals")
	}

	if privileged || !AfterCutoff(req.Plan.CutoffDate, req.Plan.CutoffTime, g.Now(), g.Location) {
		return nil
	}
	if req.Op == OpFeedback && req.Plan.AllowCommentsAfterCutoff {
		return nil
	}
	return shared.Forbiddenf("the cutoff for this plan has passed")
}

// AfterCutoff combines date (YYYY-MM-DD) and hhmm (HH:MM) into an instant in
// loc and reports whether now is past it. A missing date means no cutoff; an
// unparsable date counts as passed. A missing or unparsable time defaults to
// 23:59.
func AfterCutoff(date, hhmm string, now time.Time, loc *time.Location) bool {
	date = strings.TrimSpace(date)
	if date == "" {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		log.Printf("Warning: unparsable cutoff date %q, treating the cutoff as passed: %v", date, err)
		return true
	}

	hour, minute := 23, 59
	if t, err := time.Parse("15:04", strings.TrimSpace(hhmm)); err == nil {
		hour, minute = t.Hour(), t.Minute()
	}
	deadline := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	return now.After(deadline)
}
