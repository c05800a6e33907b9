package planner

import (
	"sort"
	"time"

	"family-meal-planner/internal/cutoff"
	"family-meal-planner/internal/schedule"
)

// MealSource records how a meal was chosen.
type MealSource string

const (
	SourceFavorite   MealSource = "FAVORITE"
	SourceNovelty    MealSource = "NOVELTY"
	SourceOther      MealSource = "OTHER"
	SourceFallback   MealSource = "FALLBACK"
	SourceComponents MealSource = "COMPONENTS"
	SourceSchool     MealSource = "SCHOOL"
	SourceManual     MealSource = "MANUAL"
)

// ComponentRole is the part a component plays in a build-your-own meal.
type ComponentRole string

const (
	RoleMainProtein        ComponentRole = "MAIN_PROTEIN"
	RolePrimaryVegetable   ComponentRole = "PRIMARY_VEGETABLE"
	RoleSecondaryVegetable ComponentRole = "SECONDARY_VEGETABLE"
	RoleMainCarb           ComponentRole = "MAIN_CARB"
)

// DefaultPortions is used when a generation request does not set portions.
const DefaultPortions = 4

// WeeklyPlan is a family's plan for one week, with its meals.
type WeeklyPlan struct {
	ID                       string            `json:"id"`
	FamilyID                 string            `json:"familyId"`
	WeekStart                time.Time         `json:"weekStartDate"`
	Status                   cutoff.PlanStatus `json:"status"`
	TemplateID               string            `json:"templateId"`
	CutoffDate               string            `json:"cutoffDate,omitempty"`
	CutoffTime               string            `json:"cutoffTime,omitempty"`
	AllowCommentsAfterCutoff bool              `json:"allowCommentsAfterCutoff"`
	CreatedBy                string            `json:"createdBy"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
	Meals                    []Meal            `json:"meals"`
}

// State is the view of the plan the cutoff guard needs.
func (p *WeeklyPlan) State() cutoff.PlanState {
	return cutoff.PlanState{
		Status:                   p.Status,
		CutoffDate:               p.CutoffDate,
		CutoffTime:               p.CutoffTime,
		AllowCommentsAfterCutoff: p.AllowCommentsAfterCutoff,
	}
}

// Meal returns the meal with the given id, or nil.
func (p *WeeklyPlan) Meal(id string) *Meal {
	for i := range p.Meals {
		if p.Meals[i].ID == id {
			return &p.Meals[i]
		}
	}
	return nil
}

// MealAt returns the meal occupying a slot, or nil.
func (p *WeeklyPlan) MealAt(day int, mealType schedule.MealType) *Meal {
	for i := range p.Meals {
		if p.Meals[i].DayOfWeek == day && p.Meals[i].MealType == mealType {
			return &p.Meals[i]
		}
	}
	return nil
}

// SortMeals orders meals by day, then by meal type within the day.
func SortMeals(meals []Meal) {
	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].DayOfWeek != meals[j].DayOfWeek {
			return meals[i].DayOfWeek < meals[j].DayOfWeek
		}
		return meals[i].MealType.Rank() < meals[j].MealType.Rank()
	})
}

// Meal occupies one slot. At most one of recipe, components, school meal or
// skipped is active: a skipped meal keeps its recipe for a later restore.
type Meal struct {
	ID              string            `json:"id"`
	PlanID          string            `json:"planId"`
	DayOfWeek       int               `json:"dayOfWeek"`
	MealType        schedule.MealType `json:"mealType"`
	RecipeID        string            `json:"recipeId,omitempty"`
	Source          MealSource        `json:"source"`
	IsSchoolMeal    bool              `json:"isSchoolMeal"`
	SchoolMealTitle string            `json:"schoolMealTitle,omitempty"`
	IsSkipped       bool              `json:"isSkipped"`
	SkipReason      string            `json:"skipReason,omitempty"`
	EatenOut        bool              `json:"eatenOut"`
	Portions        int               `json:"portions"`
	Locked          bool              `json:"locked"`
	Components      []MealComponent   `json:"components,omitempty"`
	Guests          []Guest           `json:"guests,omitempty"`
	Comments        []Comment         `json:"comments,omitempty"`
	Votes           []Vote            `json:"votes,omitempty"`
}

// Empty reports whether nothing would be served in the slot.
func (m *Meal) Empty() bool {
	return !m.IsSkipped && !m.IsSchoolMeal && m.RecipeID == "" && len(m.Components) == 0
}

// MealComponent is one component of a build-your-own meal. Quantity is per person.
type MealComponent struct {
	ID          string        `json:"id"`
	ComponentID string        `json:"componentId"`
	Role        ComponentRole `json:"role"`
	Quantity    float64       `json:"quantity"`
	Unit        string        `json:"unit"`
	Order       int           `json:"order"`
}

type Guest struct {
	Adults   int    `json:"adults" validate:"min=0,max=50"`
	Children int    `json:"children" validate:"min=0,max=50"`
	Note     string `json:"note,omitempty" validate:"max=200"`
}

type Comment struct {
	ID        string    `json:"id"`
	MealID    string    `json:"mealId"`
	MemberID  string    `json:"memberId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Vote struct {
	MealID   string `json:"mealId"`
	MemberID string `json:"memberId"`
	Value    int    `json:"value"`
}

// GetNextMonday returns the Monday following t at midnight UTC. A Monday
// maps to the Monday one week later.
func GetNextMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := (8 - int(d.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return d.AddDate(0, 0, days)
}
