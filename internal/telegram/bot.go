package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers a message. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Catalog resolves the family chat and recipe titles.
type Catalog interface {
	GetFamily(ctx context.Context, id string) (*catalog.Family, error)
	GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error)
}

type PlanLoader interface {
	Get(ctx context.Context, id string) (*planner.WeeklyPlan, error)
}

type ShoppingLists interface {
	Get(ctx context.Context, planID string) (*shopping.List, error)
}

// Notifier posts validated plans to the family's Telegram chat.
type Notifier struct {
	api     Sender
	catalog Catalog
	plans   PlanLoader
	lists   ShoppingLists
}

// NewBotAPI authorizes the bot token against Telegram.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)
	return bot, nil
}

// NewNotifier creates a Notifier. lists may be nil.
func NewNotifier(api Sender, cat Catalog, plans PlanLoader, lists ShoppingLists) *Notifier {
	return &Notifier{api: api, catalog: cat, plans: plans, lists: lists}
}

// NotifyPlanValidated sends the plan and, when available, its shopping list.
// Families without a chat are skipped.
func (n *Notifier) NotifyPlanValidated(ctx context.Context, pn planner.PlanNotification) error {
	family, err := n.catalog.GetFamily(ctx, pn.FamilyID)
	if err != nil {
		return err
	}
	if family == nil {
		return fmt.Errorf("family %s not found", pn.FamilyID)
	}
	if family.TelegramChatID == 0 {
		log.Printf("Family %s has no Telegram chat, skipping notification", family.ID)
		return nil
	}

	plan, err := n.plans.Get(ctx, pn.PlanID)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("plan %s not found", pn.PlanID)
	}

	planMsg := tgbotapi.NewMessage(family.TelegramChatID, formatPlan(pn, plan, n.recipeTitles(ctx, plan)))
	planMsg.ParseMode = "Markdown"
	if _, err := n.api.Send(planMsg); err != nil {
		return fmt.Errorf("failed to send plan to chat %d: %w", family.TelegramChatID, err)
	}

	if n.lists == nil {
		return nil
	}
	list, err := n.lists.Get(ctx, plan.ID)
	if err != nil {
		log.Printf("Warning: no shopping list to send for plan %s: %v", plan.ID, err)
		return nil
	}
	listMsg := tgbotapi.NewMessage(family.TelegramChatID, formatShoppingList(list))
	listMsg.ParseMode = "Markdown"
	if _, err := n.api.Send(listMsg); err != nil {
		return fmt.Errorf("failed to send shopping list to chat %d: %w", family.TelegramChatID, err)
	}
	return nil
}

func (n *Notifier) recipeTitles(ctx context.Context, plan *planner.WeeklyPlan) map[string]string {
	titles := make(map[string]string)
	for _, m := range plan.Meals {
		if m.RecipeID == "" {
			continue
		}
		if _, ok := titles[m.RecipeID]; ok {
			continue
		}
		r, err := n.catalog.GetRecipe(ctx, m.RecipeID)
		if err != nil || r == nil {
			titles[m.RecipeID] = m.RecipeID
			continue
		}
		titles[m.RecipeID] = r.Title
	}
	return titles
}

func formatPlan(pn planner.PlanNotification, plan *planner.WeeklyPlan, titles map[string]string) string {
	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n")
	sb.WriteString(fmt.Sprintf("_Week of %s, validated by %s_\n", pn.WeekStartDate.Format("Jan 2"), escape(pn.ActorDisplayName)))

	day := 0
	for _, m := range plan.Meals {
		if m.DayOfWeek != day {
			day = m.DayOfWeek
			sb.WriteString(fmt.Sprintf("\n*%s*\n", schedule.DayName(day)))
		}
		sb.WriteString(fmt.Sprintf("• %s: %s\n", strings.ToLower(string(m.MealType)), mealText(m, titles)))
	}
	return sb.String()
}

func mealText(m planner.Meal, titles map[string]string) string {
	var text string
	switch {
	case m.IsSkipped && m.SkipReason != "":
		return "_skipped (" + escape(m.SkipReason) + ")_"
	case m.IsSkipped:
		return "_skipped_"
	case m.IsSchoolMeal:
		text = "🏫 " + escape(m.SchoolMealTitle)
	case len(m.Components) > 0:
		text = "build-your-own"
	default:
		text = escape(titles[m.RecipeID])
	}
	if guests := guestCount(m.Guests); guests > 0 {
		text += fmt.Sprintf(" (+%d)", guests)
	}
	return text
}

func guestCount(guests []planner.Guest) int {
	n := 0
	for _, g := range guests {
		n += g.Adults + g.Children
	}
	return n
}

func formatShoppingList(list *shopping.List) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	lines := shopping.Summary(list)
	if len(lines) == 0 {
		sb.WriteString("_Everything is in stock_\n")
	}
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("• %s\n", escape(line)))
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escape protects user text from legacy Markdown parsing.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}
