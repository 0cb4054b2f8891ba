// Package gateway turns inventory and profile state into model requests and
// parses the replies back into validated domain records. It never writes
// persisted state.
package gateway

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"fridjy/internal/inventory"
	"fridjy/internal/logger"
	"fridjy/internal/models"
	"fridjy/internal/monitoring"
	"fridjy/internal/nutrition"
)

// Capabilities
const (
	CapabilityVision   = "vision"
	CapabilityInsights = "insights"
	CapabilityRecipes  = "recipes"
	CapabilityMealPlan = "meal_plan"
)

// RecipeCount is how many recipes are requested per generation.
const RecipeCount = 5

// InsightCount is how many insights are requested per inventory review.
const InsightCount = 3

// NoPlanText is returned when the model answers a meal plan request with
// nothing.
const NoPlanText = "Could not generate plan."

// ImageMIMEType is the content type sent with scan images.
const ImageMIMEType = "image/jpeg"

// Generator is the part of llms.Model the gateway needs.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Gateway runs the four model-backed capabilities.
type Gateway struct {
	model   Generator
	log     *logger.Logger
	monitor *monitoring.Monitor
	now     func() time.Time
	newID   func() string
}

// Option configures a Gateway.
type Option func(*Gateway)

func WithMonitor(m *monitoring.Monitor) Option {
	return func(g *Gateway) { g.monitor = m }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) { g.newID = fn }
}

// New creates a gateway over model.
func New(model Generator, log *logger.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		model: model,
		log:   log.With("component", "gateway"),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// generate sends one single-attempt request and returns the trimmed text of
// the first choice.
func (g *Gateway) generate(ctx context.Context, capability string, parts []llms.ContentPart, jsonMode bool) (string, error) {
	var opts []llms.CallOption
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}
	msgs := []llms.MessageContent{{Role: llms.ChatMessageTypeHuman, Parts: parts}}

	resp, err := g.model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return "", failure(capability, ReasonTransport, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

func (g *Gateway) observe(capability, outcome string, start time.Time) {
	g.monitor.ObserveAIRequest(capability, outcome, g.now().Sub(start))
}

func (g *Gateway) fail(capability string, err error, start time.Time) error {
	g.observe(capability, monitoring.OutcomeFailed, start)
	g.log.Error("generation failed", "capability", capability, "error", err)
	return err
}

// scannedItem is one vision candidate as the model returns it.
type scannedItem struct {
	Name       string     `json:"name" validate:"required"`
	Quantity   flexString `json:"quantity"`
	ExpiryDate string     `json:"expiryDate" validate:"required,calendardate"`
	Category   string     `json:"category" validate:"required"`
	Fragility  float64    `json:"fragility" validate:"min=1,max=10"`
}

// AnalyzeImage identifies food items in a fridge photo. Each candidate gets
// a fresh ID and timestamp. An empty reply yields no items; a reply that
// cannot be parsed or validated fails with ErrGenerationFailed.
func (g *Gateway) AnalyzeImage(ctx context.Context, image []byte) ([]models.InventoryItem, error) {
	start := g.now()
	if len(image) == 0 {
		return nil, g.fail(CapabilityVision, failure(CapabilityVision, ReasonInput, nil), start)
	}

	today := models.FormatDate(start)
	reply, err := g.generate(ctx, CapabilityVision, []llms.ContentPart{
		llms.BinaryPart(ImageMIMEType, image),
		llms.TextPart(visionPrompt(today)),
	}, true)
	if err != nil {
		return nil, g.fail(CapabilityVision, err, start)
	}
	if reply == "" {
		g.observe(CapabilityVision, monitoring.OutcomeEmpty, start)
		g.log.Warn("empty vision reply", "capability", CapabilityVision)
		return []models.InventoryItem{}, nil
	}

	var raw []scannedItem
	if err := decodeArray(reply, &raw); err != nil {
		return nil, g.fail(CapabilityVision, failure(CapabilityVision, ReasonParse, err), start)
	}
	if err := models.ValidateAll(raw); err != nil {
		return nil, g.fail(CapabilityVision, failure(CapabilityVision, ReasonInvalid, err), start)
	}

	addedAt := g.now()
	items := make([]models.InventoryItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, models.InventoryItem{
			ID:         g.newID(),
			Name:       strings.TrimSpace(r.Name),
			Quantity:   strings.TrimSpace(string(r.Quantity)),
			ExpiryDate: r.ExpiryDate,
			Category:   strings.TrimSpace(r.Category),
			Fragility:  int(math.Round(r.Fragility)),
			AddedAt:    addedAt,
		})
	}
	g.observe(CapabilityVision, monitoring.OutcomeOK, start)
	g.log.Info("image analyzed", "capability", CapabilityVision, "items", len(items))
	return items, nil
}

// ChefInsights reviews the inventory for waste, meal and storage advice.
// Only names and expiry dates are sent. Every failure degrades to an empty
// list; an empty inventory returns one without calling the model.
func (g *Gateway) ChefInsights(ctx context.Context, items []models.InventoryItem) []models.Insight {
	if len(items) == 0 {
		return []models.Insight{}
	}
	start := g.now()

	degrade := func(err error) []models.Insight {
		g.observe(CapabilityInsights, monitoring.OutcomeDegraded, start)
		g.log.Warn("insights unavailable", "capability", CapabilityInsights, "error", err)
		return []models.Insight{}
	}

	reply, err := g.generate(ctx, CapabilityInsights, []llms.ContentPart{
		llms.TextPart(insightsPrompt(items)),
	}, true)
	if err != nil {
		return degrade(err)
	}
	if reply == "" {
		return degrade(failure(CapabilityInsights, ReasonEmpty, nil))
	}

	var insights []models.Insight
	if err := decodeArray(reply, &insights); err != nil {
		return degrade(failure(CapabilityInsights, ReasonParse, err))
	}
	if err := models.ValidateAll(insights); err != nil {
		return degrade(failure(CapabilityInsights, ReasonInvalid, err))
	}
	if len(insights) > InsightCount {
		insights = insights[:InsightCount]
	}
	if err := distinctTypes(insights); err != nil {
		return degrade(failure(CapabilityInsights, ReasonInvalid, err))
	}
	if insights == nil {
		insights = []models.Insight{}
	}

	g.observe(CapabilityInsights, monitoring.OutcomeOK, start)
	return insights
}

// GenerateRecipes asks for RecipeCount recipes built from the inventory,
// most recommended first. Ingredient names are deduplicated with the
// soonest-expiring first, and items that are urgent or expired are called
// out. Every failure, including an empty reply, is ErrGenerationFailed.
func (g *Gateway) GenerateRecipes(ctx context.Context, items []models.InventoryItem, preferences string) ([]models.Recipe, error) {
	start := g.now()
	ingredients := ingredientNames(items)
	if len(ingredients) == 0 {
		return nil, g.fail(CapabilityRecipes, failure(CapabilityRecipes, ReasonInput, ErrNoIngredients), start)
	}
	expiring := dedupe(inventory.ExpiringSoon(start, items))

	reply, err := g.generate(ctx, CapabilityRecipes, []llms.ContentPart{
		llms.TextPart(recipesPrompt(ingredients, expiring, preferences)),
	}, true)
	if err != nil {
		return nil, g.fail(CapabilityRecipes, err, start)
	}
	if reply == "" {
		return nil, g.fail(CapabilityRecipes, failure(CapabilityRecipes, ReasonEmpty, nil), start)
	}

	var recipes []models.Recipe
	if err := decodeArray(reply, &recipes); err != nil {
		return nil, g.fail(CapabilityRecipes, failure(CapabilityRecipes, ReasonParse, err), start)
	}
	if len(recipes) == 0 {
		return nil, g.fail(CapabilityRecipes, failure(CapabilityRecipes, ReasonEmpty, nil), start)
	}
	if err := models.ValidateAll(recipes); err != nil {
		return nil, g.fail(CapabilityRecipes, failure(CapabilityRecipes, ReasonInvalid, err), start)
	}
	if len(recipes) > RecipeCount {
		recipes = recipes[:RecipeCount]
	}

	g.observe(CapabilityRecipes, monitoring.OutcomeOK, start)
	g.log.Info("recipes generated", "capability", CapabilityRecipes, "count", len(recipes))
	return recipes, nil
}

// MealPlan returns a Markdown plan for the profile and request. The reply
// is free text and is not parsed. An empty reply yields NoPlanText.
func (g *Gateway) MealPlan(ctx context.Context, profile models.HealthProfile, request string) (string, error) {
	start := g.now()
	bmi := "unknown"
	if v, err := nutrition.BMI(profile.Height, profile.Weight); err == nil {
		bmi = nutrition.FormatBMI(v)
	}

	reply, err := g.generate(ctx, CapabilityMealPlan, []llms.ContentPart{
		llms.TextPart(mealPlanPrompt(profile, bmi, request)),
	}, false)
	if err != nil {
		return "", g.fail(CapabilityMealPlan, err, start)
	}
	if reply == "" {
		g.observe(CapabilityMealPlan, monitoring.OutcomeEmpty, start)
		return NoPlanText, nil
	}
	g.observe(CapabilityMealPlan, monitoring.OutcomeOK, start)
	return reply, nil
}

// distinctTypes rejects a set of insights that repeats a type; each of
// waste, suggestion and tip appears at most once.
func distinctTypes(insights []models.Insight) error {
	seen := make(map[models.InsightType]bool, len(insights))
	for _, in := range insights {
		if seen[in.Type] {
			return fmt.Errorf("duplicate insight type %q", in.Type)
		}
		seen[in.Type] = true
	}
	return nil
}

// ingredientNames lists distinct item names, soonest expiry first.
func ingredientNames(items []models.InventoryItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range inventory.SortByExpiry(items) {
		names = append(names, it.Name)
	}
	return dedupe(names)
}

// dedupe drops blank and repeated names, ignoring case, and keeps the
// first spelling.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
