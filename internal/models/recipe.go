package models

// Difficulty of a generated recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Recipe is one generated suggestion. Macros are per serving; protein, carbs
// and fats are grams. Recipes are never persisted.
type Recipe struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients" validate:"min=1,dive,required"`
	Instructions []string   `json:"instructions" validate:"min=1,dive,required"`
	CookingTime  string     `json:"cookingTime"`
	Difficulty   Difficulty `json:"difficulty" validate:"oneof=Easy Medium Hard"`
	Calories     float64    `json:"calories" validate:"min=0"`
	Protein      float64    `json:"protein" validate:"min=0"`
	Carbs        float64    `json:"carbs" validate:"min=0"`
	Fats         float64    `json:"fats" validate:"min=0"`
}

// InsightType categorizes a chef insight
type InsightType string

const (
	InsightWaste      InsightType = "waste"
	InsightSuggestion InsightType = "suggestion"
	InsightTip        InsightType = "tip"
)

// InsightPriority ranks an insight
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Insight is a short advisory message about the current inventory.
type Insight struct {
	Type     InsightType     `json:"type" validate:"oneof=waste suggestion tip"`
	Message  string          `json:"message" validate:"required"`
	Priority InsightPriority `json:"priority" validate:"oneof=high medium low"`
}

// DietaryTags are the preset preference tags offered next to free-text
// cravings when generating recipes.
var DietaryTags = []string{
	"High Protein",
	"Low Carb",
	"Vegetarian",
	"Vegan",
	"Gluten Free",
	"Keto",
	"Paleo",
	"Quick (< 15m)",
	"Healthy",
	"Comfort Food",
}
