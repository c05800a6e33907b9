package audit

import (
	"fmt"
	"strings"
)

// ChangeType names a state change recorded in the change log.
type ChangeType string

const (
	PlanCreated      ChangeType = "PLAN_CREATED"
	PlanSubmitted    ChangeType = "PLAN_SUBMITTED"
	PlanValidated    ChangeType = "PLAN_VALIDATED"
	PlanLocked       ChangeType = "PLAN_LOCKED"
	MealAdded        ChangeType = "MEAL_ADDED"
	MealRemoved      ChangeType = "MEAL_REMOVED"
	MealRestored     ChangeType = "MEAL_RESTORED"
	RecipeChanged    ChangeType = "RECIPE_CHANGED"
	PortionsChanged  ChangeType = "PORTIONS_CHANGED"
	MealLocked       ChangeType = "MEAL_LOCKED"
	MealUnlocked     ChangeType = "MEAL_UNLOCKED"
	CommentAdded     ChangeType = "COMMENT_ADDED"
	CommentEdited    ChangeType = "COMMENT_EDITED"
	CommentDeleted   ChangeType = "COMMENT_DELETED"
	VoteAdded        ChangeType = "VOTE_ADDED"
	VoteChanged      ChangeType = "VOTE_CHANGED"
	GuestsChanged    ChangeType = "GUESTS_CHANGED"
	TemplateSwitched ChangeType = "TEMPLATE_SWITCHED"
)

// Details are the values interpolated into the localized descriptions.
type Details struct {
	ActorName string
	DayOfWeek int
	MealType  string
	OldValue  string
	NewValue  string
}

// Descriptions holds one human-readable sentence per supported locale.
type Descriptions struct {
	EN string
	FR string
	HE string
}

type phrases struct {
	en, fr, he string
}

// Placeholders: {actor}, {slot}, {old}, {new}.
var templates = map[ChangeType]phrases{
	PlanCreated: {
		en: "{actor} created the weekly plan",
		fr: "{actor} a créé le planning de la semaine",
		he: "{actor} יצר/ה את התכנון השבועי",
	},
	PlanSubmitted: {
		en: "{actor} submitted the plan for validation",
		fr: "{actor} a soumis le planning pour validation",
		he: "{actor} שלח/ה את התכנון לאישור",
	},
	PlanValidated: {
		en: "{actor} validated the plan",
		fr: "{actor} a validé le planning",
		he: "{actor} אישר/ה את התכנון",
	},
	PlanLocked: {
		en: "{actor} locked the plan",
		fr: "{actor} a verrouillé le planning",
		he: "{actor} נעל/ה את התכנון",
	},
	MealAdded: {
		en: "{actor} added {slot}: {new}",
		fr: "{actor} a ajouté {slot} : {new}",
		he: "{actor} הוסיף/ה {slot}: {new}",
	},
	MealRemoved: {
		en: "{actor} removed {slot} ({new})",
		fr: "{actor} a retiré {slot} ({new})",
		he: "{actor} הסיר/ה {slot} ({new})",
	},
	MealRestored: {
		en: "{actor} restored {slot}",
		fr: "{actor} a rétabli {slot}",
		he: "{actor} שחזר/ה {slot}",
	},
	RecipeChanged: {
		en: "{actor} changed {slot} from {old} to {new}",
		fr: "{actor} a remplacé {old} par {new} pour {slot}",
		he: "{actor} החליף/ה את {slot} מ{old} ל{new}",
	},
	PortionsChanged: {
		en: "{actor} changed portions for {slot} from {old} to {new}",
		fr: "{actor} a modifié les portions de {slot} de {old} à {new}",
		he: "{actor} שינה/תה את מספר המנות ב{slot} מ-{old} ל-{new}",
	},
	MealLocked: {
		en: "{actor} locked {slot}",
		fr: "{actor} a verrouillé {slot}",
		he: "{actor} נעל/ה את {slot}",
	},
	MealUnlocked: {
		en: "{actor} unlocked {slot}",
		fr: "{actor} a déverrouillé {slot}",
		he: "{actor} פתח/ה את {slot}",
	},
	CommentAdded: {
		en: "{actor} commented on {slot}",
		fr: "{actor} a commenté {slot}",
		he: "{actor} הגיב/ה על {slot}",
	},
	CommentEdited: {
		en: "{actor} edited a comment on {slot}",
		fr: "{actor} a modifié un commentaire sur {slot}",
		he: "{actor} ערך/ה תגובה על {slot}",
	},
	CommentDeleted: {
		en: "{actor} deleted a comment on {slot}",
		fr: "{actor} a supprimé un commentaire sur {slot}",
		he: "{actor} מחק/ה תגובה על {slot}",
	},
	VoteAdded: {
		en: "{actor} voted {new} on {slot}",
		fr: "{actor} a voté {new} pour {slot}",
		he: "{actor} הצביע/ה {new} על {slot}",
	},
	VoteChanged: {
		en: "{actor} changed their vote on {slot} from {old} to {new}",
		fr: "{actor} a changé son vote pour {slot} de {old} à {new}",
		he: "{actor} שינה/תה את ההצבעה על {slot} מ-{old} ל-{new}",
	},
	GuestsChanged: {
		en: "{actor} set guests for {slot} to {new}",
		fr: "{actor} a indiqué {new} invités pour {slot}",
		he: "{actor} עדכן/ה אורחים ל{slot}: {new}",
	},
	TemplateSwitched: {
		en: "{actor} switched the schedule from {old} to {new}",
		fr: "{actor} a changé le modèle de {old} à {new}",
		he: "{actor} החליף/ה את תבנית הארוחות מ{old} ל{new}",
	},
}

var dayNames = map[string][8]string{
	"en": {"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	"fr": {"", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"},
	"he": {"", "יום שני", "יום שלישי", "יום רביעי", "יום חמישי", "יום שישי", "שבת", "יום ראשון"},
}

var mealNames = map[string]map[string]string{
	"en": {"BREAKFAST": "breakfast", "LUNCH": "lunch", "DINNER": "dinner", "SNACK": "snack"},
	"fr": {"BREAKFAST": "petit-déjeuner", "LUNCH": "déjeuner", "DINNER": "dîner", "SNACK": "goûter"},
	"he": {"BREAKFAST": "ארוחת בוקר", "LUNCH": "ארוחת צהריים", "DINNER": "ארוחת ערב", "SNACK": "ארוחת ביניים"},
}

// Describe renders the three localized descriptions of a change.
func Describe(ct ChangeType, d Details) Descriptions {
	p, ok := templates[ct]
	if !ok {
		generic := fmt.Sprintf("%s: %s", actorName(d), ct)
		return Descriptions{EN: generic, FR: generic, HE: generic}
	}
	return Descriptions{
		EN: render(p.en, "en", d),
		FR: render(p.fr, "fr", d),
		HE: render(p.he, "he", d),
	}
}

func render(tpl, locale string, d Details) string {
	r := strings.NewReplacer(
		"{actor}", actorName(d),
		"{slot}", slotLabel(locale, d),
		"{old}", d.OldValue,
		"{new}", d.NewValue,
	)
	return r.Replace(tpl)
}

func actorName(d Details) string {
	if d.ActorName == "" {
		return "Someone"
	}
	return d.ActorName
}

func slotLabel(locale string, d Details) string {
	meal := mealNames[locale][d.MealType]
	if meal == "" {
		meal = strings.ToLower(d.MealType)
	}
	if d.DayOfWeek < 1 || d.DayOfWeek > 7 {
		return meal
	}
	day := dayNames[locale][d.DayOfWeek]
	switch locale {
	case "fr":
		return fmt.Sprintf("le %s du %s", meal, day)
	case "he":
		return fmt.Sprintf("%s של %s", meal, day)
	default:
		return fmt.Sprintf("%s %s", day, meal)
	}
}
