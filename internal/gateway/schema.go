package gateway

import (
	"encoding/json"

	"fridjy/internal/models"
)

// Schema is the response shape declared to the model. It follows the
// OpenAPI subset understood by hosted JSON modes.
type Schema struct {
	Type       string             `json:"type"`
	Items      *Schema            `json:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
}

func (s *Schema) String() string {
	b, _ := json.Marshal(s)
	return string(b)
}

func str() *Schema { return &Schema{Type: "string"} }

func num() *Schema { return &Schema{Type: "number"} }

func enum(v ...string) *Schema { return &Schema{Type: "string", Enum: v} }

func arrayOf(s *Schema) *Schema { return &Schema{Type: "array", Items: s} }

func object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

// ScannedItemsSchema is the vision analysis response.
var ScannedItemsSchema = arrayOf(object(map[string]*Schema{
	"name":       str(),
	"quantity":   str(),
	"expiryDate": str(),
	"category":   str(),
	"fragility":  num(),
}, "name", "quantity", "expiryDate", "category", "fragility"))

// InsightsSchema is the chef insights response.
var InsightsSchema = arrayOf(object(map[string]*Schema{
	"type":     enum(string(models.InsightWaste), string(models.InsightSuggestion), string(models.InsightTip)),
	"message":  str(),
	"priority": enum(string(models.PriorityHigh), string(models.PriorityMedium), string(models.PriorityLow)),
}, "type", "message", "priority"))

// RecipesSchema is the recipe generation response.
var RecipesSchema = arrayOf(object(map[string]*Schema{
	"title":        str(),
	"description":  str(),
	"ingredients":  arrayOf(str()),
	"instructions": arrayOf(str()),
	"cookingTime":  str(),
	"difficulty":   enum(string(models.DifficultyEasy), string(models.DifficultyMedium), string(models.DifficultyHard)),
	"calories":     num(),
	"protein":      num(),
	"carbs":        num(),
	"fats":         num(),
}, "title", "description", "ingredients", "instructions", "cookingTime", "difficulty", "calories", "protein", "carbs", "fats"))
