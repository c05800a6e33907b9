package main

import (
	"context"
	"fmt"
	"strings"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/shopping"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

type recipeGetter interface {
	GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error)
}

func renderPlan(ctx context.Context, recipes recipeGetter, plan *planner.WeeklyPlan) string {
	header := titleStyle.Render(fmt.Sprintf("Week of %s", plan.WeekStart.Format("Jan 2, 2006"))) +
		mutedStyle.Render(fmt.Sprintf("  %s · %s · %s", plan.Status, plan.TemplateID, plan.ID))

	sections := []string{header}
	day := 0
	for _, m := range plan.Meals {
		if m.DayOfWeek != day {
			day = m.DayOfWeek
			sections = append(sections, dayStyle.Render(schedule.DayName(day)))
		}
		sections = append(sections, "  "+mealLine(ctx, recipes, m))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func mealLine(ctx context.Context, recipes recipeGetter, m planner.Meal) string {
	label := strings.ToLower(string(m.MealType))
	var text string
	switch {
	case m.IsSkipped:
		text = mutedStyle.Render("skipped")
		if m.SkipReason != "" {
			text += mutedStyle.Render(" (" + m.SkipReason + ")")
		}
	case m.IsSchoolMeal:
		text = "school: " + m.SchoolMealTitle
	case len(m.Components) > 0:
		text = fmt.Sprintf("build your own (%d components)", len(m.Components))
	case m.RecipeID != "":
		text = m.RecipeID
		if r, err := recipes.GetRecipe(ctx, m.RecipeID); err == nil && r != nil {
			text = r.Title
		}
	default:
		text = mutedStyle.Render("nothing planned")
	}

	extra := fmt.Sprintf(" [%s, %d portions]", m.Source, m.Portions)
	if m.Locked {
		extra += " locked"
	}
	return fmt.Sprintf("%-9s %s%s", label+":", text, mutedStyle.Render(extra))
}

func renderShoppingList(list *shopping.List) string {
	lines := shopping.Summary(list)
	if len(lines) == 0 {
		lines = []string{mutedStyle.Render("Everything is in stock.")}
	}
	body := []string{titleStyle.Render("Shopping list")}
	for _, l := range lines {
		body = append(body, "  • "+l)
	}
	if inStock := len(list.Items) - len(shopping.Summary(list)); inStock > 0 {
		body = append(body, mutedStyle.Render(fmt.Sprintf("%d items already in the pantry", inStock)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}
