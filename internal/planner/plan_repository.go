package planner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"family-meal-planner/internal/cutoff"
	"family-meal-planner/internal/database"
	"family-meal-planner/internal/planner/plan_db"
	"family-meal-planner/internal/schedule"

	"github.com/google/uuid"
)

const weekLayout = "2006-01-02"

// PlanRepository is a database-backed repository for weekly plans and their meals.
type PlanRepository struct {
	queries *plandb.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plandb.New(d),
		db:      d,
	}
}

// Create inserts the plan with all its meals and components in one transaction.
// Missing ids are generated.
func (r *PlanRepository) Create(ctx context.Context, plan *WeeklyPlan) error {
	now := time.Now().UTC()
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.CreatedAt, plan.UpdatedAt = now, now

	return database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		err := q.InsertPlan(ctx, plandb.InsertPlanParams{
			ID:                       plan.ID,
			FamilyID:                 plan.FamilyID,
			WeekStartDate:            plan.WeekStart.Format(weekLayout),
			Status:                   string(plan.Status),
			TemplateID:               plan.TemplateID,
			CutoffDate:               nullString(plan.CutoffDate),
			CutoffTime:               nullString(plan.CutoffTime),
			AllowCommentsAfterCutoff: plan.AllowCommentsAfterCutoff,
			CreatedBy:                plan.CreatedBy,
			CreatedAt:                now,
			UpdatedAt:                now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert plan: %w", err)
		}
		for i := range plan.Meals {
			plan.Meals[i].PlanID = plan.ID
			if err := insertMeal(ctx, q, &plan.Meals[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get loads a plan with meals, components, guests, comments and votes. It
// returns nil, nil when the plan does not exist.
func (r *PlanRepository) Get(ctx context.Context, id string) (*WeeklyPlan, error) {
	row, err := r.queries.GetPlan(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan %s: %w", id, err)
	}
	plan, err := planFromRow(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadMeals(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByWeek returns the plan header for a family's week, or nil, nil.
func (r *PlanRepository) GetByWeek(ctx context.Context, familyID string, weekStart time.Time) (*WeeklyPlan, error) {
	row, err := r.queries.GetPlanByWeek(ctx, plandb.GetPlanByWeekParams{
		FamilyID:      familyID,
		WeekStartDate: weekStart.Format(weekLayout),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan for week %s: %w", weekStart.Format(weekLayout), err)
	}
	return planFromRow(row)
}

// List returns the most recent plan headers of a family.
func (r *PlanRepository) List(ctx context.Context, familyID string, limit int) ([]WeeklyPlan, error) {
	rows, err := r.queries.ListPlansForFamily(ctx, plandb.ListPlansForFamilyParams{
		FamilyID: familyID,
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for family %s: %w", familyID, err)
	}

	var plans []WeeklyPlan
	for _, row := range rows {
		p, err := planFromRow(row)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, nil
}

func (r *PlanRepository) loadMeals(ctx context.Context, plan *WeeklyPlan) error {
	meals, err := r.queries.ListMealsForPlan(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list meals: %w", err)
	}
	components, err := r.queries.ListMealComponentsForPlan(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list meal components: %w", err)
	}
	guests, err := r.queries.ListMealGuestsForPlan(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list meal guests: %w", err)
	}
	comments, err := r.queries.ListMealCommentsForPlan(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list meal comments: %w", err)
	}
	votes, err := r.queries.ListMealVotesForPlan(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list meal votes: %w", err)
	}

	plan.Meals = make([]Meal, 0, len(meals))
	index := make(map[string]int, len(meals))
	for _, row := range meals {
		index[row.ID] = len(plan.Meals)
		plan.Meals = append(plan.Meals, mealFromRow(row))
	}
	for _, c := range components {
		if i, ok := index[c.MealID]; ok {
			plan.Meals[i].Components = append(plan.Meals[i].Components, MealComponent{
				ID:          c.ID,
				ComponentID: c.ComponentID,
				Role:        ComponentRole(c.Role),
				Quantity:    c.Quantity,
				Unit:        c.Unit,
				Order:       int(c.SortOrder),
			})
		}
	}
	for _, g := range guests {
		if i, ok := index[g.MealID]; ok {
			plan.Meals[i].Guests = append(plan.Meals[i].Guests, Guest{
				Adults:   int(g.Adults),
				Children: int(g.Children),
				Note:     g.Note,
			})
		}
	}
	for _, c := range comments {
		if i, ok := index[c.MealID]; ok {
			plan.Meals[i].Comments = append(plan.Meals[i].Comments, commentFromRow(c))
		}
	}
	for _, v := range votes {
		if i, ok := index[v.MealID]; ok {
			plan.Meals[i].Votes = append(plan.Meals[i].Votes, Vote{
				MealID:   v.MealID,
				MemberID: v.MemberID,
				Value:    int(v.Value),
			})
		}
	}
	SortMeals(plan.Meals)
	return nil
}

// AddMeal inserts a meal with its components.
func (r *PlanRepository) AddMeal(ctx context.Context, m *Meal) error {
	return database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		return insertMeal(ctx, r.queries.WithTx(tx), m)
	})
}

// SetRecipe makes the meal recipe-based, dropping any components.
func (r *PlanRepository) SetRecipe(ctx context.Context, mealID, recipeID string, source MealSource) error {
	return database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if err := q.DeleteMealComponents(ctx, mealID); err != nil {
			return fmt.Errorf("failed to delete meal components: %w", err)
		}
		err := q.UpdateMealRecipe(ctx, plandb.UpdateMealRecipeParams{
			RecipeID: nullString(recipeID),
			Source:   string(source),
			ID:       mealID,
		})
		if err != nil {
			return fmt.Errorf("failed to update meal recipe: %w", err)
		}
		return nil
	})
}

func (r *PlanRepository) SetPortions(ctx context.Context, mealID string, portions int) error {
	err := r.queries.UpdateMealPortions(ctx, plandb.UpdateMealPortionsParams{Portions: int64(portions), ID: mealID})
	if err != nil {
		return fmt.Errorf("failed to update portions: %w", err)
	}
	return nil
}

func (r *PlanRepository) SetSkipped(ctx context.Context, mealID string, skipped bool, reason string, eatenOut bool) error {
	err := r.queries.UpdateMealSkipped(ctx, plandb.UpdateMealSkippedParams{
		IsSkipped:  skipped,
		SkipReason: reason,
		EatenOut:   eatenOut,
		ID:         mealID,
	})
	if err != nil {
		return fmt.Errorf("failed to update meal skip state: %w", err)
	}
	return nil
}

func (r *PlanRepository) SetLocked(ctx context.Context, mealID string, locked bool) error {
	if err := r.queries.UpdateMealLocked(ctx, plandb.UpdateMealLockedParams{Locked: locked, ID: mealID}); err != nil {
		return fmt.Errorf("failed to update meal lock: %w", err)
	}
	return nil
}

// ReplaceGuests replaces the meal's guest records.
func (r *PlanRepository) ReplaceGuests(ctx context.Context, mealID string, guests []Guest) error {
	return database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if err := q.DeleteMealGuests(ctx, mealID); err != nil {
			return fmt.Errorf("failed to delete guests: %w", err)
		}
		for _, g := range guests {
			err := q.InsertMealGuest(ctx, plandb.InsertMealGuestParams{
				ID:       uuid.NewString(),
				MealID:   mealID,
				Adults:   int64(g.Adults),
				Children: int64(g.Children),
				Note:     g.Note,
			})
			if err != nil {
				return fmt.Errorf("failed to insert guest: %w", err)
			}
		}
		return nil
	})
}

func (r *PlanRepository) SetStatus(ctx context.Context, planID string, status cutoff.PlanStatus) error {
	err := r.queries.UpdatePlanStatus(ctx, plandb.UpdatePlanStatusParams{
		Status:    string(status),
		UpdatedAt: time.Now().UTC(),
		ID:        planID,
	})
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	return nil
}

// Validate skips the given meals and moves the plan to VALIDATED atomically.
func (r *PlanRepository) Validate(ctx context.Context, planID string, skipMealIDs []string, reason string) error {
	return database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		for _, id := range skipMealIDs {
			err := q.UpdateMealSkipped(ctx, plandb.UpdateMealSkippedParams{IsSkipped: true, SkipReason: reason, ID: id})
			if err != nil {
				return fmt.Errorf("failed to skip empty meal %s: %w", id, err)
			}
		}
		err := q.UpdatePlanStatus(ctx, plandb.UpdatePlanStatusParams{
			Status:    string(cutoff.StatusValidated),
			UpdatedAt: time.Now().UTC(),
			ID:        planID,
		})
		if err != nil {
			return fmt.Errorf("failed to update plan status: %w", err)
		}
		return nil
	})
}

// ReplaceMeals swaps every meal of the plan and records the new template.
func (r *PlanRepository) ReplaceMeals(ctx context.Context, planID, templateID string, meals []Meal) error {
	return database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if err := q.DeleteMealsForPlan(ctx, planID); err != nil {
			return fmt.Errorf("failed to delete meals: %w", err)
		}
		for i := range meals {
			meals[i].PlanID = planID
			if err := insertMeal(ctx, q, &meals[i]); err != nil {
				return err
			}
		}
		err := q.UpdatePlanTemplate(ctx, plandb.UpdatePlanTemplateParams{
			TemplateID: templateID,
			UpdatedAt:  time.Now().UTC(),
			ID:         planID,
		})
		if err != nil {
			return fmt.Errorf("failed to update plan template: %w", err)
		}
		return nil
	})
}

func (r *PlanRepository) AddComment(ctx context.Context, c *Comment) error {
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	err := r.queries.InsertMealComment(ctx, plandb.InsertMealCommentParams{
		ID:        c.ID,
		MealID:    c.MealID,
		MemberID:  c.MemberID,
		Body:      c.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetComment returns nil, nil when the comment does not exist.
func (r *PlanRepository) GetComment(ctx context.Context, id string) (*Comment, error) {
	row, err := r.queries.GetMealComment(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment %s: %w", id, err)
	}
	c := commentFromRow(row)
	return &c, nil
}

func (r *PlanRepository) UpdateComment(ctx context.Context, id, body string) error {
	err := r.queries.UpdateMealComment(ctx, plandb.UpdateMealCommentParams{
		Body:      body,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *PlanRepository) DeleteComment(ctx context.Context, id string) error {
	if err := r.queries.DeleteMealComment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// GetVote returns nil, nil when the member has not voted on the meal.
func (r *PlanRepository) GetVote(ctx context.Context, mealID, memberID string) (*Vote, error) {
	row, err := r.queries.GetMealVote(ctx, plandb.GetMealVoteParams{MealID: mealID, MemberID: memberID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &Vote{MealID: row.MealID, MemberID: row.MemberID, Value: int(row.Value)}, nil
}

func (r *PlanRepository) UpsertVote(ctx context.Context, v Vote) error {
	err := r.queries.UpsertMealVote(ctx, plandb.UpsertMealVoteParams{
		MealID:    v.MealID,
		MemberID:  v.MemberID,
		Value:     int64(v.Value),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func insertMeal(ctx context.Context, q *plandb.Queries, m *Meal) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	err := q.InsertMeal(ctx, plandb.InsertMealParams{
		ID:              m.ID,
		PlanID:          m.PlanID,
		DayOfWeek:       int64(m.DayOfWeek),
		MealType:        string(m.MealType),
		RecipeID:        nullString(m.RecipeID),
		Source:          string(m.Source),
		IsSchoolMeal:    m.IsSchoolMeal,
		SchoolMealTitle: m.SchoolMealTitle,
		IsSkipped:       m.IsSkipped,
		SkipReason:      m.SkipReason,
		EatenOut:        m.EatenOut,
		Portions:        int64(m.Portions),
		Locked:          m.Locked,
	})
	if err != nil {
		return fmt.Errorf("failed to insert meal for day %d %s: %w", m.DayOfWeek, m.MealType, err)
	}

	for i := range m.Components {
		c := &m.Components[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		err := q.InsertMealComponent(ctx, plandb.InsertMealComponentParams{
			ID:          c.ID,
			MealID:      m.ID,
			ComponentID: c.ComponentID,
			Role:        string(c.Role),
			Quantity:    c.Quantity,
			Unit:        c.Unit,
			SortOrder:   int64(c.Order),
		})
		if err != nil {
			return fmt.Errorf("failed to insert meal component: %w", err)
		}
	}
	return nil
}

func planFromRow(row plandb.WeeklyPlan) (*WeeklyPlan, error) {
	weekStart, err := time.Parse(weekLayout, row.WeekStartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start of plan %s: %w", row.ID, err)
	}
	return &WeeklyPlan{
		ID:                       row.ID,
		FamilyID:                 row.FamilyID,
		WeekStart:                weekStart,
		Status:                   cutoff.PlanStatus(row.Status),
		TemplateID:               row.TemplateID,
		CutoffDate:               row.CutoffDate.String,
		CutoffTime:               row.CutoffTime.String,
		AllowCommentsAfterCutoff: row.AllowCommentsAfterCutoff,
		CreatedBy:                row.CreatedBy,
		CreatedAt:                row.CreatedAt,
		UpdatedAt:                row.UpdatedAt,
	}, nil
}

func mealFromRow(row plandb.Meal) Meal {
	return Meal{
		ID:              row.ID,
		PlanID:          row.PlanID,
		DayOfWeek:       int(row.DayOfWeek),
		MealType:        schedule.MealType(row.MealType),
		RecipeID:        row.RecipeID.String,
		Source:          MealSource(row.Source),
		IsSchoolMeal:    row.IsSchoolMeal,
		SchoolMealTitle: row.SchoolMealTitle,
		IsSkipped:       row.IsSkipped,
		SkipReason:      row.SkipReason,
		EatenOut:        row.EatenOut,
		Portions:        int(row.Portions),
		Locked:          row.Locked,
	}
}

func commentFromRow(row plandb.MealComment) Comment {
	return Comment{
		ID:        row.ID,
		MealID:    row.MealID,
		MemberID:  row.MemberID,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
