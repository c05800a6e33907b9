package api

import (
	"net/http"
	"strconv"
	"time"

	"family-meal-planner/internal/audit"
	"family-meal-planner/internal/metrics"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/shared"
	"family-meal-planner/internal/shopping"

	"github.com/gin-gonic/gin"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Plans     *planner.Service
	Shopping  *shopping.Service
	Audit     *audit.Recorder
	Templates *schedule.Store
	Metrics   *metrics.Store
	// DataDir is reported by the health endpoint.
	DataDir string
}

// Handler serves the meal planner API.
type Handler struct {
	svc    Services
	secret []byte
}

func NewHandler(svc Services, jwtSecret []byte) *Handler {
	return &Handler{svc: svc, secret: jwtSecret}
}

// SetupRoutes configures all API routes.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api", AuthMiddleware(h.secret))
	{
		api.GET("/metrics", h.GetMetrics)

		api.GET("/templates", h.ListTemplates)
		api.PUT("/templates/:templateId", h.SaveTemplate)
		api.DELETE("/templates/:templateId", h.DeleteTemplate)

		api.GET("/plans", h.ListPlans)
		api.POST("/plans", h.GeneratePlan)
		api.GET("/plans/:planId", h.GetPlan)
		api.POST("/plans/:planId/submit", h.SubmitPlan)
		api.POST("/plans/:planId/validate", h.ValidatePlan)
		api.POST("/plans/:planId/lock", h.LockPlan)
		api.PUT("/plans/:planId/template", h.SwitchTemplate)
		api.GET("/plans/:planId/changes", h.ListChanges)
		api.GET("/plans/:planId/shopping-list", h.GetShoppingList)
		api.POST("/plans/:planId/shopping-list", h.RegenerateShoppingList)

		api.POST("/plans/:planId/meals", h.AddMeal)
		api.PUT("/plans/:planId/meals/:mealId/recipe", h.SwapRecipe)
		api.PUT("/plans/:planId/meals/:mealId/portions", h.ChangePortions)
		api.PUT("/plans/:planId/meals/:mealId/guests", h.SetGuests)
		api.POST("/plans/:planId/meals/:mealId/skip", h.SkipMeal)
		api.POST("/plans/:planId/meals/:mealId/restore", h.RestoreMeal)
		api.POST("/plans/:planId/meals/:mealId/lock", h.LockMeal)
		api.POST("/plans/:planId/meals/:mealId/unlock", h.UnlockMeal)
		api.PUT("/plans/:planId/meals/:mealId/vote", h.Vote)
		api.POST("/plans/:planId/meals/:mealId/comments", h.AddComment)
		api.PUT("/plans/:planId/comments/:commentId", h.EditComment)
		api.DELETE("/plans/:planId/comments/:commentId", h.DeleteComment)
	}
}

// Health reports process and storage health. It needs no token.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.GetSysHealth(h.svc.DataDir))
}

// GetMetrics returns daily composer and translator usage to owners and admins.
func (h *Handler) GetMetrics(c *gin.Context) {
	if !actorFrom(c).Role.Privileged() {
		respondError(c, shared.Forbiddenf("only owners and admins can read metrics"))
		return
	}
	days := queryInt(c, "days", 7)
	usage, err := h.svc.Metrics.GetDailyUsage(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "usage": usage})
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.svc.Templates.List(c.Request.Context(), actorFrom(c).FamilyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *Handler) SaveTemplate(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.Role.Privileged() {
		respondError(c, shared.Forbiddenf("only owners and admins can edit templates"))
		return
	}
	var tpl schedule.Template
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	tpl.ID = c.Param("templateId")
	tpl.FamilyID = actor.FamilyID
	tpl.System = false
	if err := h.svc.Templates.Save(c.Request.Context(), tpl); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.Role.Privileged() {
		respondError(c, shared.Forbiddenf("only owners and admins can delete templates"))
		return
	}
	if err := h.svc.Templates.Delete(c.Request.Context(), actor.FamilyID, c.Param("templateId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.svc.Plans.ListPlans(c.Request.Context(), actorFrom(c), queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

type generateBody struct {
	WeekStart                string `json:"weekStart"`
	TemplateID               string `json:"templateId"`
	Express                  bool   `json:"express"`
	Portions                 int    `json:"portions"`
	CutoffDate               string `json:"cutoffDate"`
	CutoffTime               string `json:"cutoffTime"`
	AllowCommentsAfterCutoff bool   `json:"allowCommentsAfterCutoff"`
}

func (h *Handler) GeneratePlan(c *gin.Context) {
	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req := planner.GenerateRequest{
		TemplateID:               body.TemplateID,
		Express:                  body.Express,
		Portions:                 body.Portions,
		CutoffDate:               body.CutoffDate,
		CutoffTime:               body.CutoffTime,
		AllowCommentsAfterCutoff: body.AllowCommentsAfterCutoff,
	}
	if body.WeekStart != "" {
		ws, err := time.Parse("2006-01-02", body.WeekStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekStart must be YYYY-MM-DD"})
			return
		}
		req.WeekStart = ws
	}

	res, err := h.svc.Plans.GeneratePlan(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetPlan(c *gin.Context) {
	plan, err := h.svc.Plans.GetPlan(c.Request.Context(), actorFrom(c), c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) SubmitPlan(c *gin.Context) {
	h.respond(c)(h.svc.Plans.SubmitPlan(c.Request.Context(), actorFrom(c), c.Param("planId")))
}

func (h *Handler) ValidatePlan(c *gin.Context) {
	h.respond(c)(h.svc.Plans.ValidatePlan(c.Request.Context(), actorFrom(c), c.Param("planId")))
}

func (h *Handler) LockPlan(c *gin.Context) {
	h.respond(c)(h.svc.Plans.LockPlan(c.Request.Context(), actorFrom(c), c.Param("planId")))
}

func (h *Handler) SwitchTemplate(c *gin.Context) {
	var body struct {
		TemplateID string `json:"templateId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "templateId is required"})
		return
	}
	h.respond(c)(h.svc.Plans.SwitchTemplate(c.Request.Context(), actorFrom(c), c.Param("planId"), body.TemplateID))
}

// ListChanges returns the plan's change log, oldest first.
func (h *Handler) ListChanges(c *gin.Context) {
	ctx := c.Request.Context()
	plan, err := h.svc.Plans.GetPlan(ctx, actorFrom(c), c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.svc.Audit.ListForPlan(ctx, plan.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": entries})
}

func (h *Handler) GetShoppingList(c *gin.Context) {
	ctx := c.Request.Context()
	plan, err := h.svc.Plans.GetPlan(ctx, actorFrom(c), c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.Shopping.Get(ctx, plan.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// RegenerateShoppingList rebuilds the list on demand, for instance after the
// inventory changed.
func (h *Handler) RegenerateShoppingList(c *gin.Context) {
	ctx := c.Request.Context()
	plan, err := h.svc.Plans.GetPlan(ctx, actorFrom(c), c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.Shopping.Regenerate(ctx, plan.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type addMealBody struct {
	DayOfWeek int    `json:"dayOfWeek"`
	MealType  string `json:"mealType"`
	RecipeID  string `json:"recipeId"`
	Portions  int    `json:"portions"`
}

func (h *Handler) AddMeal(c *gin.Context) {
	var body addMealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req := planner.AddMealRequest{
		DayOfWeek: body.DayOfWeek,
		MealType:  schedule.MealType(body.MealType),
		RecipeID:  body.RecipeID,
		Portions:  body.Portions,
	}
	h.respond(c)(h.svc.Plans.AddMeal(c.Request.Context(), actorFrom(c), c.Param("planId"), req))
}

func (h *Handler) SwapRecipe(c *gin.Context) {
	var body struct {
		RecipeID string `json:"recipeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId is required"})
		return
	}
	h.respond(c)(h.svc.Plans.SwapRecipe(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId"), body.RecipeID))
}

func (h *Handler) ChangePortions(c *gin.Context) {
	var body struct {
		Portions int `json:"portions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.respond(c)(h.svc.Plans.ChangePortions(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId"), body.Portions))
}

func (h *Handler) SetGuests(c *gin.Context) {
	var body struct {
		Guests []planner.Guest `json:"guests"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.respond(c)(h.svc.Plans.SetGuests(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId"), body.Guests))
}

func (h *Handler) SkipMeal(c *gin.Context) {
	var body struct {
		Reason   string `json:"reason"`
		EatenOut bool   `json:"eatenOut"`
	}
	// An empty body skips without a reason.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	req := planner.SkipRequest{Reason: body.Reason, EatenOut: body.EatenOut}
	h.respond(c)(h.svc.Plans.SkipMeal(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId"), req))
}

func (h *Handler) RestoreMeal(c *gin.Context) {
	h.respond(c)(h.svc.Plans.RestoreMeal(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId")))
}

func (h *Handler) LockMeal(c *gin.Context) {
	h.respond(c)(h.svc.Plans.LockMeal(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId")))
}

func (h *Handler) UnlockMeal(c *gin.Context) {
	h.respond(c)(h.svc.Plans.UnlockMeal(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId")))
}

func (h *Handler) Vote(c *gin.Context) {
	var body struct {
		Value int `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.respond(c)(h.svc.Plans.Vote(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId"), body.Value))
}

type commentBody struct {
	Body string `json:"body"`
}

func (h *Handler) AddComment(c *gin.Context) {
	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.respond(c)(h.svc.Plans.AddComment(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("mealId"), body.Body))
}

func (h *Handler) EditComment(c *gin.Context) {
	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.respond(c)(h.svc.Plans.EditComment(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("commentId"), body.Body))
}

func (h *Handler) DeleteComment(c *gin.Context) {
	h.respond(c)(h.svc.Plans.DeleteComment(c.Request.Context(), actorFrom(c), c.Param("planId"), c.Param("commentId")))
}

// respond writes a mutation result or its error.
func (h *Handler) respond(c *gin.Context) func(*planner.Result, error) {
	return func(res *planner.Result, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func queryInt(c *gin.Context, name string, def int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return def
}
