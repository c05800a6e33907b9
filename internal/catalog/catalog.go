package catalog

import "time"

// DietProfile holds a family's dietary constraints and selection preferences.
type DietProfile struct {
	Kosher      bool     `json:"kosher" yaml:"kosher"`
	KosherType  string   `json:"kosherType,omitempty" yaml:"kosherType"`
	Halal       bool     `json:"halal" yaml:"halal"`
	HalalType   string   `json:"halalType,omitempty" yaml:"halalType"`
	Vegetarian  bool     `json:"vegetarian" yaml:"vegetarian"`
	Vegan       bool     `json:"vegan" yaml:"vegan"`
	Pescatarian bool     `json:"pescatarian" yaml:"pescatarian"`
	GlutenFree  bool     `json:"glutenFree" yaml:"glutenFree"`
	LactoseFree bool     `json:"lactoseFree" yaml:"lactoseFree"`
	Allergies   []string `json:"allergies,omitempty" yaml:"allergies"`

	// FavoriteRatio is the per-slot probability of picking a favorite.
	FavoriteRatio float64 `json:"favoriteRatio" yaml:"favoriteRatio"`
	MaxNovelties  int     `json:"maxNovelties" yaml:"maxNovelties"`
}

const (
	DefaultFavoriteRatio = 0.6
	DefaultMaxNovelties  = 2
)

// DefaultDietProfile returns an unrestricted profile with default preferences.
// Stored profiles are decoded on top of it so missing fields keep their defaults.
func DefaultDietProfile() DietProfile {
	return DietProfile{
		FavoriteRatio: DefaultFavoriteRatio,
		MaxNovelties:  DefaultMaxNovelties,
	}
}

// Family is the owner of plans, templates, inventory and custom catalog items.
type Family struct {
	ID                string
	Name              string
	Diet              DietProfile
	DefaultTemplateID string
	TelegramChatID    int64
	CreatedAt         time.Time
}

// Compliance carries the dietary flags shared by recipes and components.
type Compliance struct {
	// KosherCategory is "meat", "dairy" or "parve"; empty means not kosher.
	KosherCategory string `json:"kosherCategory,omitempty" yaml:"kosherCategory"`
	HalalFriendly  bool   `json:"halalFriendly" yaml:"halalFriendly"`
	Vegetarian     bool   `json:"vegetarian" yaml:"vegetarian"`
	Vegan          bool   `json:"vegan" yaml:"vegan"`
	Pescatarian    bool   `json:"pescatarian" yaml:"pescatarian"`
	GlutenFree     bool   `json:"glutenFree" yaml:"glutenFree"`
	LactoseFree    bool   `json:"lactoseFree" yaml:"lactoseFree"`
}

// Ingredient is one line of a recipe.
type Ingredient struct {
	Name            string   `json:"name" yaml:"name"`
	Quantity        float64  `json:"quantity" yaml:"quantity"`
	Unit            string   `json:"unit" yaml:"unit"`
	Category        string   `json:"category" yaml:"category"`
	Allergens       []string `json:"allergens,omitempty" yaml:"allergens"`
	ContainsGluten  bool     `json:"containsGluten" yaml:"containsGluten"`
	ContainsLactose bool     `json:"containsLactose" yaml:"containsLactose"`
	Alternatives    []string `json:"alternatives,omitempty" yaml:"alternatives"`
}

// Recipe is a catalog entry. An empty FamilyID marks a system-wide recipe.
type Recipe struct {
	ID         string `json:"id" yaml:"id"`
	FamilyID   string `json:"familyId,omitempty" yaml:"familyId"`
	Title      string `json:"title" yaml:"title"`
	Servings   int    `json:"servings" yaml:"servings"`
	Category   string `json:"category" yaml:"category"`
	Compliance `json:",inline" yaml:",inline"`

	Allergens   []string     `json:"allergens,omitempty" yaml:"allergens"`
	IsFavorite  bool         `json:"isFavorite" yaml:"isFavorite"`
	IsNovelty   bool         `json:"isNovelty" yaml:"isNovelty"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
}

// ComponentCategory classifies food components for build-your-own meals.
type ComponentCategory string

const (
	CategoryProtein   ComponentCategory = "PROTEIN"
	CategoryVegetable ComponentCategory = "VEGETABLE"
	CategoryCarb      ComponentCategory = "CARB"
	CategoryFruit     ComponentCategory = "FRUIT"
	CategorySauce     ComponentCategory = "SAUCE"
	CategoryCondiment ComponentCategory = "CONDIMENT"
	CategorySpice     ComponentCategory = "SPICE"
	CategoryOther     ComponentCategory = "OTHER"
)

// Valid reports whether c is one of the known component categories.
func (c ComponentCategory) Valid() bool {
	switch c {
	case CategoryProtein, CategoryVegetable, CategoryCarb, CategoryFruit,
		CategorySauce, CategoryCondiment, CategorySpice, CategoryOther:
		return true
	}
	return false
}

// FoodComponent is a single building block of a component-based meal.
// DefaultQuantity is a per-person amount.
type FoodComponent struct {
	ID         string            `json:"id" yaml:"id"`
	FamilyID   string            `json:"familyId,omitempty" yaml:"familyId"`
	Name       string            `json:"name" yaml:"name"`
	Category   ComponentCategory `json:"category" yaml:"category"`
	Compliance `json:",inline" yaml:",inline"`

	DefaultQuantity  float64  `json:"defaultQuantity" yaml:"defaultQuantity"`
	Unit             string   `json:"unit" yaml:"unit"`
	ShoppingCategory string   `json:"shoppingCategory" yaml:"shoppingCategory"`
	Allergens        []string `json:"allergens,omitempty" yaml:"allergens"`
	ContainsGluten   bool     `json:"containsGluten" yaml:"containsGluten"`
	ContainsLactose  bool     `json:"containsLactose" yaml:"containsLactose"`
}

// InventoryItem is something the family already has at home.
type InventoryItem struct {
	ID       string  `json:"id" yaml:"id"`
	FamilyID string  `json:"familyId" yaml:"familyId"`
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit" yaml:"unit"`
}
