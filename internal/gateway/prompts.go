package gateway

import (
	"fmt"
	"strings"

	"fridjy/internal/models"
)

const noneText = "None"

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return noneText
	}
	return s
}

func schemaInstruction(s *Schema) string {
	return "Respond with JSON that matches this schema exactly: " + s.String()
}

func visionPrompt(today string) string {
	var b strings.Builder
	b.WriteString("Analyze this refrigerator image. Identify the food items visible.\n")
	b.WriteString("For each item, estimate:\n")
	b.WriteString("1. A concise name.\n")
	b.WriteString("2. Approximate quantity.\n")
	fmt.Fprintf(&b, "3. An estimated expiry date from today (YYYY-MM-DD) based on general produce shelf life. Assume today is %s.\n", today)
	fmt.Fprintf(&b, "4. A category (%s).\n", strings.Join(models.Categories, ", "))
	b.WriteString("5. A fragility index (1-10) where 10 is highly perishable (like berries) and 1 is durable (like canned goods).\n\n")
	b.WriteString(schemaInstruction(ScannedItemsSchema))
	b.WriteString("\nReturn ONLY a JSON array.")
	return b.String()
}

func insightsPrompt(items []models.InventoryItem) string {
	list := make([]string, len(items))
	for i, it := range items {
		list[i] = fmt.Sprintf("%s (Expires: %s)", it.Name, it.ExpiryDate)
	}

	var b strings.Builder
	b.WriteString("You are a professional chef and waste-reduction expert.\n")
	fmt.Fprintf(&b, "Analyze this inventory: %s.\n\n", strings.Join(list, ", "))
	b.WriteString("Provide 3 distinct insights in JSON format:\n")
	b.WriteString("1. A high-priority waste warning (items expiring soon).\n")
	b.WriteString("2. A quick meal suggestion combining available items.\n")
	b.WriteString("3. A storage tip for one of the items to extend life.\n\n")
	b.WriteString(schemaInstruction(InsightsSchema))
	return b.String()
}

func recipesPrompt(ingredients, expiring []string, preferences string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d distinct, creative, and delicious recipes using some of these ingredients: %s.\n", RecipeCount, strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "User preferences/constraints: %s.\n\n", orNone(preferences))
	b.WriteString("Prioritize using ingredients that might expire soon.\n")
	if len(expiring) > 0 {
		fmt.Fprintf(&b, "Expiring soon: %s.\n", strings.Join(expiring, ", "))
	}
	b.WriteString("You can assume basic pantry staples (oil, salt, pepper, flour) are available.\n")
	b.WriteString("Order the recipes from most recommended to least.\n\n")
	b.WriteString("IMPORTANT: Provide accurate estimates for Calories, Protein (g), Carbs (g), and Fats (g) per serving.\n\n")
	b.WriteString(schemaInstruction(RecipesSchema))
	return b.String()
}

func mealPlanPrompt(p models.HealthProfile, bmi, request string) string {
	var b strings.Builder
	b.WriteString("You are a professional nutritionist and fitness coach.\n")
	b.WriteString("Create a personalized meal/action plan for the following user:\n\n")
	b.WriteString("Profile:\n")
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "- Height: %g cm\n", p.Height)
	fmt.Fprintf(&b, "- Weight: %g kg (BMI: %s)\n", p.Weight, bmi)
	fmt.Fprintf(&b, "- Activity Level: %s\n", p.ActivityLevel)
	fmt.Fprintf(&b, "- Daily Calorie Goal: %d kcal\n", p.CalorieGoal)
	fmt.Fprintf(&b, "- Allergies: %s\n", orNone(p.Allergies))
	fmt.Fprintf(&b, "- Dietary Type: %s\n\n", orNone(p.DietaryPreferences))
	fmt.Fprintf(&b, "User Request/Goal: %q\n\n", strings.TrimSpace(request))
	b.WriteString("Output a structured, easy-to-read plan using Markdown formatting.\n")
	b.WriteString("Include:\n")
	b.WriteString("1. A brief analysis of their BMI and calorie needs.\n")
	b.WriteString("2. A suggested meal plan structure (Breakfast, Lunch, Dinner, Snacks).\n")
	b.WriteString("3. Specific advice based on their request.")
	return b.String()
}

// CombinePreferences joins free-text cravings and selected dietary tags
// into one sentence, e.g. "something spicy. Tags: Vegan, Quick (< 15m)".
func CombinePreferences(text string, tags []string) string {
	var parts []string
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, t)
	}
	var kept []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			kept = append(kept, tag)
		}
	}
	if len(kept) > 0 {
		parts = append(parts, "Tags: "+strings.Join(kept, ", "))
	}
	return strings.Join(parts, ". ")
}
