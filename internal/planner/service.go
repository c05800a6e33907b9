package planner

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"family-meal-planner/internal/audit"
	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/cutoff"
	"family-meal-planner/internal/diet"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/schoolmenu"
	"family-meal-planner/internal/shared"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Side effect names reported in Result.
const (
	EffectAudit        = "audit"
	EffectShoppingList = "shopping_list"
	EffectNotification = "notification"
)

// Catalog is the read side of the family catalog.
type Catalog interface {
	GetFamily(ctx context.Context, id string) (*catalog.Family, error)
	GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error)
	ListRecipes(ctx context.Context, familyID string) ([]catalog.Recipe, error)
	ListComponents(ctx context.Context, familyID string) ([]catalog.FoodComponent, error)
}

// Templates resolves meal schedule templates visible to a family.
type Templates interface {
	Get(ctx context.Context, familyID, id string) (*schedule.Template, error)
}

// Regenerator rebuilds a plan's shopping list after its meals change.
type Regenerator interface {
	RegenerateBestEffort(ctx context.Context, planID string) shared.Outcome
}

// Recorder appends change log entries.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) shared.Outcome
}

// MetricsRecorder stores execution metadata of composer runs.
type MetricsRecorder interface {
	RecordMeta(ctx context.Context, meta shared.ExecutionMeta) error
}

// Dependencies are the collaborators of a Service. SchoolMenu, Shopping and
// Metrics are optional.
type Dependencies struct {
	Catalog    Catalog
	Templates  Templates
	SchoolMenu schoolmenu.Source
	Shopping   Regenerator
	Recorder   Recorder
	Notifier   Notifier
	Metrics    MetricsRecorder
	Guard      *cutoff.Guard

	// ComponentProbability defaults to DefaultComponentProbability when zero.
	ComponentProbability float64
	// NewRandom defaults to a time-seeded source.
	NewRandom func() Random
}

// Service runs plan generation and every plan or meal mutation. Each call
// checks scope, role and cutoff, writes its primary change, then runs the
// best-effort side effects and reports their outcome.
type Service struct {
	plans    *PlanRepository
	deps     Dependencies
	validate *validator.Validate
}

func NewService(plans *PlanRepository, deps Dependencies) *Service {
	if deps.Notifier == nil {
		deps.Notifier = NopNotifier{}
	}
	if deps.Guard == nil {
		deps.Guard = cutoff.NewGuard(time.UTC)
	}
	if deps.ComponentProbability == 0 {
		deps.ComponentProbability = DefaultComponentProbability
	}
	if deps.NewRandom == nil {
		deps.NewRandom = NewRandom
	}
	return &Service{
		plans:    plans,
		deps:     deps,
		validate: validator.New(),
	}
}

// Result is returned by every mutation: the plan as it is after the change
// and what happened to each side effect.
type Result struct {
	Plan        *WeeklyPlan         `json:"plan"`
	SideEffects []shared.SideEffect `json:"sideEffects"`
}

type GenerateRequest struct {
	// WeekStart must be a Monday; zero means next Monday.
	WeekStart                time.Time
	TemplateID               string
	Express                  bool
	Portions                 int    `validate:"omitempty,min=1,max=50"`
	CutoffDate               string `validate:"omitempty,datetime=2006-01-02"`
	CutoffTime               string `validate:"omitempty,datetime=15:04"`
	AllowCommentsAfterCutoff bool
}

type AddMealRequest struct {
	DayOfWeek int               `validate:"min=1,max=7"`
	MealType  schedule.MealType `validate:"required,oneof=BREAKFAST LUNCH DINNER SNACK"`
	// RecipeID is optional; without it a recipe is selected like at generation.
	RecipeID string
	Portions int `validate:"omitempty,min=1,max=50"`
}

type SkipRequest struct {
	Reason   string `validate:"max=200"`
	EatenOut bool
}

// GeneratePlan composes and stores the plan of a week.
func (s *Service) GeneratePlan(ctx context.Context, actor cutoff.Actor, req GenerateRequest) (*Result, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if actor.Role == cutoff.RoleChild {
		return nil, shared.Forbiddenf("children cannot generate plans")
	}
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	weekStart := req.WeekStart
	if weekStart.IsZero() {
		weekStart = GetNextMonday(time.Now())
	} else {
		weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
		if weekStart.Weekday() != time.Monday {
			return nil, shared.Validationf("week start %s is not a Monday", weekStart.Format(weekLayout))
		}
	}

	existing, err := s.plans.GetByWeek(ctx, actor.FamilyID, weekStart)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.Conflictf("a plan for the week of %s already exists", weekStart.Format(weekLayout))
	}

	family, err := s.family(ctx, actor.FamilyID)
	if err != nil {
		return nil, err
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = family.DefaultTemplateID
	}
	if templateID == "" {
		templateID = schedule.DefaultTemplateID
	}
	tpl, err := s.template(ctx, actor.FamilyID, templateID)
	if err != nil {
		return nil, err
	}

	portions := req.Portions
	if portions == 0 {
		portions = DefaultPortions
	}
	meals, err := s.compose(ctx, family, *tpl, weekStart, req.Express, portions)
	if err != nil {
		return nil, err
	}

	plan := &WeeklyPlan{
		FamilyID:                 actor.FamilyID,
		WeekStart:                weekStart,
		Status:                   cutoff.StatusDraft,
		TemplateID:               tpl.ID,
		CutoffDate:               req.CutoffDate,
		CutoffTime:               req.CutoffTime,
		AllowCommentsAfterCutoff: req.AllowCommentsAfterCutoff,
		CreatedBy:                actor.MemberID,
		Meals:                    meals,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, nil, audit.PlanCreated, "", tpl.Name),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

// compose loads the catalog and school menu concurrently and runs the
// composer for the template.
func (s *Service) compose(ctx context.Context, family *catalog.Family, tpl schedule.Template, weekStart time.Time, express bool, portions int) ([]Meal, error) {
	var (
		recipes    []catalog.Recipe
		components []catalog.FoodComponent
		menu       schoolmenu.Menu
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.deps.Catalog.ListRecipes(gctx, family.ID)
		return err
	})
	g.Go(func() error {
		var err error
		components, err = s.deps.Catalog.ListComponents(gctx, family.ID)
		return err
	})
	if s.deps.SchoolMenu != nil && !express {
		g.Go(func() error {
			m, err := s.deps.SchoolMenu.Lookup(gctx, weekStart)
			if err != nil {
				log.Printf("Warning: school menu unavailable for week %s, planning without it: %v", weekStart.Format(weekLayout), err)
				return nil
			}
			menu = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	in := ComposeInput{
		WeekStart:            weekStart,
		Template:             tpl,
		Recipes:              recipes,
		Components:           components,
		Profile:              family.Diet,
		SchoolMenu:           menu,
		ComponentProbability: s.deps.ComponentProbability,
		Random:               s.deps.NewRandom(),
	}

	start := time.Now()
	operation := "compose_plan"
	var planned []PlannedMeal
	var err error
	if express {
		operation = "compose_express"
		planned, err = ComposeExpress(in)
	} else {
		planned, err = Compose(in)
	}
	if err != nil {
		return nil, err
	}
	s.recordMetrics(ctx, operation, time.Since(start))

	return toMeals(planned, portions), nil
}

func toMeals(planned []PlannedMeal, portions int) []Meal {
	meals := make([]Meal, 0, len(planned))
	for _, p := range planned {
		m := Meal{
			DayOfWeek: p.DayOfWeek,
			MealType:  p.MealType,
			Source:    p.Source,
			Portions:  portions,
		}
		switch {
		case p.Source == SourceSchool:
			m.IsSchoolMeal = true
			m.SchoolMealTitle = p.SchoolMealTitle
		case len(p.Components) > 0:
			for i, c := range p.Components {
				m.Components = append(m.Components, MealComponent{
					ComponentID: c.Component.ID,
					Role:        c.Role,
					Quantity:    c.Component.DefaultQuantity,
					Unit:        c.Component.Unit,
					Order:       i,
				})
			}
		case p.Recipe != nil:
			m.RecipeID = p.Recipe.ID
		}
		meals = append(meals, m)
	}
	return meals
}

// GetPlan returns a plan of the actor's family.
func (s *Service) GetPlan(ctx context.Context, actor cutoff.Actor, planID string) (*WeeklyPlan, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	return s.visiblePlan(ctx, actor, planID)
}

// ListPlans returns the family's most recent plans without their meals.
func (s *Service) ListPlans(ctx context.Context, actor cutoff.Actor, limit int) ([]WeeklyPlan, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 52 {
		limit = 10
	}
	return s.plans.List(ctx, actor.FamilyID, limit)
}

func (s *Service) SwapRecipe(ctx context.Context, actor cutoff.Actor, planID, mealID, recipeID string) (*Result, error) {
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	recipe, err := s.compliantRecipe(ctx, actor.FamilyID, recipeID)
	if err != nil {
		return nil, err
	}

	oldLabel := s.mealLabel(ctx, meal)
	if err := s.plans.SetRecipe(ctx, meal.ID, recipe.ID, SourceManual); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, meal, audit.RecipeChanged, oldLabel, recipe.Title),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

func (s *Service) ChangePortions(ctx context.Context, actor cutoff.Actor, planID, mealID string, portions int) (*Result, error) {
	if err := s.validate.Var(portions, "min=1,max=50"); err != nil {
		return nil, shared.Validationf("portions must be between 1 and 50, got %d", portions)
	}
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpEdit)
	if err != nil {
		return nil, err
	}

	if err := s.plans.SetPortions(ctx, meal.ID, portions); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, meal, audit.PortionsChanged, strconv.Itoa(meal.Portions), strconv.Itoa(portions)),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

// AddMeal fills a slot that has no meal yet.
func (s *Service) AddMeal(ctx context.Context, actor cutoff.Actor, planID string, req AddMealRequest) (*Result, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	plan, _, err := s.load(ctx, actor, planID, "", cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if plan.MealAt(req.DayOfWeek, req.MealType) != nil {
		return nil, shared.Conflictf("%s %s already has a meal", schedule.DayName(req.DayOfWeek), req.MealType)
	}

	var recipe *catalog.Recipe
	source := SourceManual
	if req.RecipeID != "" {
		recipe, err = s.compliantRecipe(ctx, actor.FamilyID, req.RecipeID)
		if err != nil {
			return nil, err
		}
	} else {
		pick, err := s.selectForPlan(ctx, plan)
		if err != nil {
			return nil, err
		}
		recipe, source = &pick.Recipe, pick.Source
	}

	portions := req.Portions
	if portions == 0 {
		portions = DefaultPortions
	}
	meal := &Meal{
		PlanID:    plan.ID,
		DayOfWeek: req.DayOfWeek,
		MealType:  req.MealType,
		RecipeID:  recipe.ID,
		Source:    source,
		Portions:  portions,
	}
	if err := s.plans.AddMeal(ctx, meal); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, meal, audit.MealAdded, "", recipe.Title),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

// selectForPlan picks a recipe for an added slot, continuing the rotation
// from what the plan already holds.
func (s *Service) selectForPlan(ctx context.Context, plan *WeeklyPlan) (Pick, error) {
	family, err := s.family(ctx, plan.FamilyID)
	if err != nil {
		return Pick{}, err
	}
	recipes, err := s.deps.Catalog.ListRecipes(ctx, plan.FamilyID)
	if err != nil {
		return Pick{}, fmt.Errorf("failed to load recipes: %w", err)
	}

	st := NewSelectionState(family.Diet)
	for _, m := range plan.Meals {
		switch m.Source {
		case SourceNovelty:
			st.NoveltyCount++
			st.NoveltyIndex++
		case SourceFavorite:
			st.FavoriteIndex++
		case SourceOther:
			st.OtherIndex++
		}
	}

	buckets := Partition(diet.FilterRecipes(family.Diet, recipes))
	pick, _, err := Select(buckets, st, "", family.Diet.FavoriteRatio, s.deps.NewRandom())
	return pick, err
}

// SkipMeal removes a meal without deleting its slot.
func (s *Service) SkipMeal(ctx context.Context, actor cutoff.Actor, planID, mealID string, req SkipRequest) (*Result, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if meal.IsSkipped {
		return nil, shared.Conflictf("meal is already skipped")
	}

	reason := strings.TrimSpace(req.Reason)
	if err := s.plans.SetSkipped(ctx, meal.ID, true, reason, req.EatenOut); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, meal, audit.MealRemoved, s.mealLabel(ctx, meal), reason),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

func (s *Service) RestoreMeal(ctx context.Context, actor cutoff.Actor, planID, mealID string) (*Result, error) {
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if !meal.IsSkipped {
		return nil, shared.Conflictf("meal is not skipped")
	}

	if err := s.plans.SetSkipped(ctx, meal.ID, false, "", false); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, meal, audit.MealRestored, meal.SkipReason, s.mealLabel(ctx, meal)),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

// SetGuests replaces the extra attendance of a meal.
func (s *Service) SetGuests(ctx context.Context, actor cutoff.Actor, planID, mealID string, guests []Guest) (*Result, error) {
	for _, g := range guests {
		if err := s.validateStruct(g); err != nil {
			return nil, err
		}
	}
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpEdit)
	if err != nil {
		return nil, err
	}

	if err := s.plans.ReplaceGuests(ctx, meal.ID, guests); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, meal, audit.GuestsChanged, guestSummary(meal.Guests), guestSummary(guests)),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

func guestSummary(guests []Guest) string {
	var adults, children int
	for _, g := range guests {
		adults += g.Adults
		children += g.Children
	}
	return fmt.Sprintf("%d+%d", adults, children)
}

func (s *Service) LockMeal(ctx context.Context, actor cutoff.Actor, planID, mealID string) (*Result, error) {
	return s.setMealLock(ctx, actor, planID, mealID, true)
}

func (s *Service) UnlockMeal(ctx context.Context, actor cutoff.Actor, planID, mealID string) (*Result, error) {
	return s.setMealLock(ctx, actor, planID, mealID, false)
}

func (s *Service) setMealLock(ctx context.Context, actor cutoff.Actor, planID, mealID string, locked bool) (*Result, error) {
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpLockToggle)
	if err != nil {
		return nil, err
	}
	if meal.Locked == locked {
		return nil, shared.Conflictf("meal lock is already %t", locked)
	}

	if err := s.plans.SetLocked(ctx, meal.ID, locked); err != nil {
		return nil, err
	}

	ct := audit.MealUnlocked
	if locked {
		ct = audit.MealLocked
	}
	effects := []shared.SideEffect{s.record(ctx, actor, plan, meal, ct, "", "")}
	return s.result(ctx, plan.ID, effects)
}

// SubmitPlan moves a draft to IN_VALIDATION.
func (s *Service) SubmitPlan(ctx context.Context, actor cutoff.Actor, planID string) (*Result, error) {
	plan, _, err := s.load(ctx, actor, planID, "", cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if err := cutoff.Advance(plan.Status, cutoff.StatusInValidation); err != nil {
		return nil, err
	}
	if err := s.plans.SetStatus(ctx, plan.ID, cutoff.StatusInValidation); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, nil, audit.PlanSubmitted, string(plan.Status), string(cutoff.StatusInValidation)),
	}
	return s.result(ctx, plan.ID, effects)
}

// ValidatePlan skips every empty meal and validates the plan in one
// transaction, then notifies the family.
func (s *Service) ValidatePlan(ctx context.Context, actor cutoff.Actor, planID string) (*Result, error) {
	if !actor.Role.Privileged() {
		return nil, shared.Forbiddenf("only owners and admins can validate a plan")
	}
	plan, _, err := s.load(ctx, actor, planID, "", cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if err := cutoff.Advance(plan.Status, cutoff.StatusValidated); err != nil {
		return nil, err
	}

	var empty []string
	for i := range plan.Meals {
		if plan.Meals[i].Empty() {
			empty = append(empty, plan.Meals[i].ID)
		}
	}
	if err := s.plans.Validate(ctx, plan.ID, empty, "No meal planned"); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, nil, audit.PlanValidated, string(plan.Status), string(cutoff.StatusValidated)),
		s.regenerate(ctx, plan.ID),
		s.notify(ctx, PlanNotification{
			FamilyID:         plan.FamilyID,
			PlanID:           plan.ID,
			WeekStartDate:    plan.WeekStart,
			ActorDisplayName: actor.DisplayName,
		}),
	}
	return s.result(ctx, plan.ID, effects)
}

// LockPlan makes the plan read-only for everyone.
func (s *Service) LockPlan(ctx context.Context, actor cutoff.Actor, planID string) (*Result, error) {
	if !actor.Role.Privileged() {
		return nil, shared.Forbiddenf("only owners and admins can lock a plan")
	}
	plan, _, err := s.load(ctx, actor, planID, "", cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if err := cutoff.Advance(plan.Status, cutoff.StatusLocked); err != nil {
		return nil, err
	}
	if err := s.plans.SetStatus(ctx, plan.ID, cutoff.StatusLocked); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, nil, audit.PlanLocked, string(plan.Status), string(cutoff.StatusLocked)),
	}
	return s.result(ctx, plan.ID, effects)
}

// SwitchTemplate recomposes every slot of a draft plan from another template.
func (s *Service) SwitchTemplate(ctx context.Context, actor cutoff.Actor, planID, templateID string) (*Result, error) {
	plan, _, err := s.load(ctx, actor, planID, "", cutoff.OpEdit)
	if err != nil {
		return nil, err
	}
	if plan.Status != cutoff.StatusDraft {
		return nil, shared.Conflictf("template can only be switched on a draft plan")
	}
	for _, m := range plan.Meals {
		if m.Locked {
			return nil, shared.Forbiddenf("plan has locked meals, unlock them before switching template")
		}
	}

	tpl, err := s.template(ctx, actor.FamilyID, templateID)
	if err != nil {
		return nil, err
	}
	family, err := s.family(ctx, actor.FamilyID)
	if err != nil {
		return nil, err
	}

	portions := DefaultPortions
	if len(plan.Meals) > 0 {
		portions = plan.Meals[0].Portions
	}
	meals, err := s.compose(ctx, family, *tpl, plan.WeekStart, false, portions)
	if err != nil {
		return nil, err
	}
	if err := s.plans.ReplaceMeals(ctx, plan.ID, tpl.ID, meals); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{
		s.record(ctx, actor, plan, nil, audit.TemplateSwitched, plan.TemplateID, tpl.ID),
		s.regenerate(ctx, plan.ID),
	}
	return s.result(ctx, plan.ID, effects)
}

func (s *Service) AddComment(ctx context.Context, actor cutoff.Actor, planID, mealID, body string) (*Result, error) {
	body, err := s.commentBody(body)
	if err != nil {
		return nil, err
	}
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpFeedback)
	if err != nil {
		return nil, err
	}

	c := &Comment{MealID: meal.ID, MemberID: actor.MemberID, Body: body}
	if err := s.plans.AddComment(ctx, c); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{s.record(ctx, actor, plan, meal, audit.CommentAdded, "", body)}
	return s.result(ctx, plan.ID, effects)
}

func (s *Service) EditComment(ctx context.Context, actor cutoff.Actor, planID, commentID, body string) (*Result, error) {
	body, err := s.commentBody(body)
	if err != nil {
		return nil, err
	}
	plan, meal, comment, err := s.loadComment(ctx, actor, planID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.plans.UpdateComment(ctx, comment.ID, body); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{s.record(ctx, actor, plan, meal, audit.CommentEdited, comment.Body, body)}
	return s.result(ctx, plan.ID, effects)
}

func (s *Service) DeleteComment(ctx context.Context, actor cutoff.Actor, planID, commentID string) (*Result, error) {
	plan, meal, comment, err := s.loadComment(ctx, actor, planID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.plans.DeleteComment(ctx, comment.ID); err != nil {
		return nil, err
	}

	effects := []shared.SideEffect{s.record(ctx, actor, plan, meal, audit.CommentDeleted, comment.Body, "")}
	return s.result(ctx, plan.ID, effects)
}

func (s *Service) commentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if err := s.validate.Var(body, "required,max=1000"); err != nil {
		return "", shared.Validationf("comment must be between 1 and 1000 characters")
	}
	return body, nil
}

// loadComment resolves a comment of the plan that the actor may change:
// authors edit their own comments, owners and admins any comment.
func (s *Service) loadComment(ctx context.Context, actor cutoff.Actor, planID, commentID string) (*WeeklyPlan, *Meal, *Comment, error) {
	comment, err := s.plans.GetComment(ctx, commentID)
	if err != nil {
		return nil, nil, nil, err
	}
	if comment == nil {
		return nil, nil, nil, shared.NotFoundf("comment %s", commentID)
	}
	plan, meal, err := s.load(ctx, actor, planID, comment.MealID, cutoff.OpFeedback)
	if err != nil {
		return nil, nil, nil, err
	}
	if comment.MemberID != actor.MemberID && !actor.Role.Privileged() {
		return nil, nil, nil, shared.Forbiddenf("only the author can change this comment")
	}
	return plan, meal, comment, nil
}

// Vote records a member's +1 or -1 on a meal. Repeating the same vote is a no-op.
func (s *Service) Vote(ctx context.Context, actor cutoff.Actor, planID, mealID string, value int) (*Result, error) {
	if err := s.validate.Var(value, "oneof=-1 1"); err != nil {
		return nil, shared.Validationf("vote must be -1 or 1, got %d", value)
	}
	plan, meal, err := s.load(ctx, actor, planID, mealID, cutoff.OpFeedback)
	if err != nil {
		return nil, err
	}

	existing, err := s.plans.GetVote(ctx, meal.ID, actor.MemberID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Value == value {
		return &Result{Plan: plan}, nil
	}

	if err := s.plans.UpsertVote(ctx, Vote{MealID: meal.ID, MemberID: actor.MemberID, Value: value}); err != nil {
		return nil, err
	}

	ct, old := audit.VoteAdded, ""
	if existing != nil {
		ct, old = audit.VoteChanged, formatVote(existing.Value)
	}
	effects := []shared.SideEffect{s.record(ctx, actor, plan, meal, ct, old, formatVote(value))}
	return s.result(ctx, plan.ID, effects)
}

func formatVote(v int) string {
	if v > 0 {
		return "+1"
	}
	return "-1"
}

func checkActor(actor cutoff.Actor) error {
	if actor.MemberID == "" || actor.FamilyID == "" || !actor.Role.Valid() {
		return shared.Forbiddenf("unknown member")
	}
	return nil
}

// visiblePlan returns the plan only when it belongs to the actor's family.
func (s *Service) visiblePlan(ctx context.Context, actor cutoff.Actor, planID string) (*WeeklyPlan, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.FamilyID != actor.FamilyID {
		return nil, shared.NotFoundf("plan %s", planID)
	}
	return plan, nil
}

// load resolves the plan and optional meal of a mutation and runs the guard.
func (s *Service) load(ctx context.Context, actor cutoff.Actor, planID, mealID string, op cutoff.Operation) (*WeeklyPlan, *Meal, error) {
	if err := checkActor(actor); err != nil {
		return nil, nil, err
	}
	plan, err := s.visiblePlan(ctx, actor, planID)
	if err != nil {
		return nil, nil, err
	}

	var meal *Meal
	if mealID != "" {
		meal = plan.Meal(mealID)
		if meal == nil {
			return nil, nil, shared.NotFoundf("meal %s", mealID)
		}
	}

	req := cutoff.Request{Actor: actor, Plan: plan.State(), Op: op}
	if meal != nil {
		req.MealLocked = meal.Locked
	}
	if err := s.deps.Guard.Check(req); err != nil {
		return nil, nil, err
	}
	return plan, meal, nil
}

func (s *Service) family(ctx context.Context, familyID string) (*catalog.Family, error) {
	family, err := s.deps.Catalog.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, shared.NotFoundf("family %s", familyID)
	}
	return family, nil
}

func (s *Service) template(ctx context.Context, familyID, id string) (*schedule.Template, error) {
	tpl, err := s.deps.Templates.Get(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, shared.NotFoundf("template %s", id)
	}
	return tpl, nil
}

// compliantRecipe returns a recipe visible to the family that fits its diet.
func (s *Service) compliantRecipe(ctx context.Context, familyID, recipeID string) (*catalog.Recipe, error) {
	recipe, err := s.deps.Catalog.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || (recipe.FamilyID != "" && recipe.FamilyID != familyID) {
		return nil, shared.NotFoundf("recipe %s", recipeID)
	}
	family, err := s.family(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if !diet.RecipeCompliant(family.Diet, *recipe) {
		return nil, shared.Validationf("recipe %q does not fit the family's diet", recipe.Title)
	}
	return recipe, nil
}

// mealLabel describes what a meal currently serves, for change log values.
func (s *Service) mealLabel(ctx context.Context, m *Meal) string {
	switch {
	case m.IsSchoolMeal:
		return m.SchoolMealTitle
	case len(m.Components) > 0:
		return "build-your-own"
	case m.RecipeID != "":
		recipe, err := s.deps.Catalog.GetRecipe(ctx, m.RecipeID)
		if err == nil && recipe != nil {
			return recipe.Title
		}
		return m.RecipeID
	}
	return ""
}

func (s *Service) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return shared.Validationf("%v", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, actor cutoff.Actor, plan *WeeklyPlan, meal *Meal, ct audit.ChangeType, oldValue, newValue string) shared.SideEffect {
	if s.deps.Recorder == nil {
		return shared.SideEffect{Name: EffectAudit, Outcome: shared.OutcomeSkipped}
	}
	e := audit.Entry{
		FamilyID:   plan.FamilyID,
		PlanID:     plan.ID,
		MemberID:   actor.MemberID,
		ActorName:  actor.DisplayName,
		ChangeType: ct,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	if meal != nil {
		e.MealID = meal.ID
		e.DayOfWeek = meal.DayOfWeek
		e.MealType = string(meal.MealType)
	}
	return shared.SideEffect{Name: EffectAudit, Outcome: s.deps.Recorder.Record(ctx, e)}
}

func (s *Service) regenerate(ctx context.Context, planID string) shared.SideEffect {
	if s.deps.Shopping == nil {
		return shared.SideEffect{Name: EffectShoppingList, Outcome: shared.OutcomeSkipped}
	}
	return shared.SideEffect{Name: EffectShoppingList, Outcome: s.deps.Shopping.RegenerateBestEffort(ctx, planID)}
}

func (s *Service) notify(ctx context.Context, n PlanNotification) shared.SideEffect {
	if err := s.deps.Notifier.NotifyPlanValidated(ctx, n); err != nil {
		log.Printf("Warning: failed to notify family %s about plan %s: %v", n.FamilyID, n.PlanID, err)
		return shared.SideEffect{Name: EffectNotification, Outcome: shared.OutcomeFailed, Err: err}
	}
	return shared.SideEffect{Name: EffectNotification, Outcome: shared.OutcomeApplied}
}

func (s *Service) recordMetrics(ctx context.Context, operation string, latency time.Duration) {
	if s.deps.Metrics == nil {
		return
	}
	if err := s.deps.Metrics.RecordMeta(ctx, shared.ExecutionMeta{Operation: operation, Latency: latency}); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", operation, err)
	}
}

func (s *Service) result(ctx context.Context, planID string, effects []shared.SideEffect) (*Result, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		log.Printf("Warning: failed to reload plan %s after change: %v", planID, err)
	}
	return &Result{Plan: plan, SideEffects: effects}, nil
}
