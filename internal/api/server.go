// Package api exposes the inventory, nutrition and AI operations over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fridjy/internal/database"
	"fridjy/internal/gateway"
	"fridjy/internal/inventory"
	"fridjy/internal/logger"
	"fridjy/internal/models"
	"fridjy/internal/nutrition"
)

// MaxImageBytes caps uploaded scan images.
const MaxImageBytes = 10 << 20

// FridgeAPI represents the main API handler
type FridgeAPI struct {
	Router    *gin.Engine
	Inventory *inventory.Manager
	Nutrition *nutrition.Tracker
	Gateway   *gateway.Gateway
	Hub       *Hub
	log       *logger.Logger
}

// NewFridgeAPI creates the router and registers every route.
func NewFridgeAPI(inv *inventory.Manager, tracker *nutrition.Tracker, gw *gateway.Gateway, log *logger.Logger) *FridgeAPI {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	api := &FridgeAPI{
		Router:    router,
		Inventory: inv,
		Nutrition: tracker,
		Gateway:   gw,
		Hub:       NewHub(log),
		log:       log.With("component", "api"),
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *FridgeAPI) setupRoutes() {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "items": a.Inventory.Len()})
	})
	a.Router.GET("/ws", a.Hub.ServeWS)

	v1 := a.Router.Group("/api/v1")
	{
		v1.GET("/meta", a.GetMeta)

		// Inventory
		v1.GET("/inventory", a.ListInventory)
		v1.POST("/inventory", a.AddItem)
		v1.POST("/inventory/batch", a.AddItems)
		v1.DELETE("/inventory/:id", a.RemoveItem)
		v1.DELETE("/inventory", a.ClearInventory)
		v1.POST("/inventory/scan", a.ScanImage)

		// AI suggestions
		v1.GET("/insights", a.GetInsights)
		v1.POST("/recipes", a.GenerateRecipes)
		v1.POST("/recipes/log", a.LogRecipe)

		// Nutrition
		v1.GET("/nutrition/profile", a.GetProfile)
		v1.PUT("/nutrition/profile", a.SetProfile)
		v1.GET("/nutrition/logs", a.GetLogs)
		v1.POST("/nutrition/logs", a.AddLog)
		v1.GET("/nutrition/summary", a.GetSummary)
		v1.POST("/nutrition/plan", a.MealPlan)
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

// writeError maps domain errors to status codes.
func (a *FridgeAPI) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gateway.ErrNoIngredients):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, gateway.ErrGenerationFailed):
		status = http.StatusBadGateway
	case errors.Is(err, inventory.ErrInvalidItem), errors.Is(err, nutrition.ErrInvalidEntry):
		status = http.StatusBadRequest
	case errors.Is(err, inventory.ErrDuplicateID):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		a.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (a *FridgeAPI) publishInventory() {
	a.Hub.Publish(Event{Collection: database.KeyInventory, Count: a.Inventory.Len()})
}

// Metadata handlers

func (a *FridgeAPI) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  models.Categories,
		"dietaryTags": models.DietaryTags,
	})
}

// Inventory handlers

func (a *FridgeAPI) ListInventory(c *gin.Context) {
	c.JSON(http.StatusOK, a.Inventory.Overview())
}

func (a *FridgeAPI) AddItem(c *gin.Context) {
	var entry inventory.ManualEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := a.Inventory.AddManual(c.Request.Context(), entry)
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.publishInventory()
	c.JSON(http.StatusCreated, item)
}

func (a *FridgeAPI) AddItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Inventory.AddBatch(c.Request.Context(), items); err != nil {
		a.writeError(c, err)
		return
	}
	if len(items) > 0 {
		a.publishInventory()
	}
	c.JSON(http.StatusCreated, gin.H{"added": len(items), "count": a.Inventory.Len()})
}

func (a *FridgeAPI) RemoveItem(c *gin.Context) {
	removed, err := a.Inventory.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if removed {
		a.publishInventory()
	}
	c.Status(http.StatusNoContent)
}

func (a *FridgeAPI) ClearInventory(c *gin.Context) {
	if err := a.Inventory.Clear(c.Request.Context()); err != nil {
		a.writeError(c, err)
		return
	}
	a.publishInventory()
	c.Status(http.StatusNoContent)
}

// ScanImage analyzes an uploaded photo, sent either as the "image" form
// file or as the raw body. Candidates are returned without being stored
// unless add=true is given.
func (a *FridgeAPI) ScanImage(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := a.Gateway.AnalyzeImage(c.Request.Context(), image)
	if err != nil {
		a.writeError(c, err)
		return
	}

	if c.Query("add") == "true" && len(items) > 0 {
		if err := a.Inventory.AddBatch(c.Request.Context(), items); err != nil {
			a.writeError(c, err)
			return
		}
		a.publishInventory()
	}
	c.JSON(http.StatusOK, items)
}

func readImage(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes)
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("image is required")
	}
	return data, nil
}

// AI suggestion handlers

func (a *FridgeAPI) GetInsights(c *gin.Context) {
	c.JSON(http.StatusOK, a.Gateway.ChefInsights(c.Request.Context(), a.Inventory.Items()))
}

// RecipeRequest carries free-text cravings and selected dietary tags.
type RecipeRequest struct {
	Preferences string   `json:"preferences"`
	Tags        []string `json:"tags"`
}

func (a *FridgeAPI) GenerateRecipes(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefs := gateway.CombinePreferences(req.Preferences, req.Tags)
	recipes, err := a.Gateway.GenerateRecipes(c.Request.Context(), a.Inventory.Items(), prefs)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (a *FridgeAPI) LogRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	today, err := a.Nutrition.LogRecipe(c.Request.Context(), recipe)
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.Hub.Publish(Event{Collection: database.KeyHealthLogs, Count: len(a.Nutrition.Logs())})
	c.JSON(http.StatusOK, today)
}

// Nutrition handlers

func (a *FridgeAPI) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, a.Nutrition.Profile())
}

func (a *FridgeAPI) SetProfile(c *gin.Context) {
	var profile models.HealthProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Nutrition.SetProfile(c.Request.Context(), profile); err != nil {
		a.writeError(c, err)
		return
	}
	a.Hub.Publish(Event{Collection: database.KeyHealthProfile, Count: 1})
	c.JSON(http.StatusOK, a.Nutrition.Profile())
}

func (a *FridgeAPI) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, a.Nutrition.Logs())
}

func (a *FridgeAPI) AddLog(c *gin.Context) {
	var entry models.DailyLog
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Nutrition.AddLog(c.Request.Context(), entry); err != nil {
		a.writeError(c, err)
		return
	}
	logs := a.Nutrition.Logs()
	a.Hub.Publish(Event{Collection: database.KeyHealthLogs, Count: len(logs)})
	c.JSON(http.StatusOK, logs)
}

func (a *FridgeAPI) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, a.Nutrition.Summary())
}

// PlanRequest is the free-text goal for a meal plan.
type PlanRequest struct {
	Request string `json:"request"`
}

func (a *FridgeAPI) MealPlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := a.Gateway.MealPlan(c.Request.Context(), a.Nutrition.Profile(), req.Request)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
