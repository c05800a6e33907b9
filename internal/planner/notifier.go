package planner

import (
	"context"
	"time"
)

// PlanNotification is handed to the delivery collaborator once a plan is validated.
type PlanNotification struct {
	FamilyID         string
	PlanID           string
	WeekStartDate    time.Time
	ActorDisplayName string
}

// Notifier delivers plan notifications outside the core.
type Notifier interface {
	NotifyPlanValidated(ctx context.Context, n PlanNotification) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyPlanValidated(context.Context, PlanNotification) error { return nil }
