package api

import (
	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/plan"
	"alcyxob/running-app/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for API ---

type GeneratePlanRequest struct {
	UserID string `json:"userId"`
}

// --- Handler Methods ---

// GeneratePlan builds a 7-day training plan from the user's run history.
// A parse failure returns the raw model reply so nothing is silently lost;
// a persistence failure after successful generation does not fail the request.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		abortWithError(c, http.StatusBadRequest, "userId is required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	result, err := h.planService.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		var parseErr *plan.ParseError
		switch {
		case errors.Is(err, service.ErrInsufficientHistory):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Not enough run history to generate a personalised plan",
				"suggestion": "Add a few runs first, then try generating a plan again",
			})
		case errors.As(err, &parseErr):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       "Failed to parse the model response",
				"rawResponse": parseErr.Raw,
			})
		case errors.Is(err, service.ErrModelUpstream):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to generate a running plan",
				"details": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to generate a running plan",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plan":    result.Plan,
		"planId":  result.PlanID,
	})
}

// ListPlans returns up to 5 of the user's saved plans, newest first.
// An empty list is valid and signals the client to fall back to generation.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userIDStr := c.Query("userId")
	if userIDStr == "" {
		abortWithError(c, http.StatusBadRequest, "userId is required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	records, err := h.planService.GetRecentPlans(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve saved plans"})
		return
	}

	plans := make([]domain.WeeklyPlan, len(records))
	for i, record := range records {
		plans[i] = record.PlanData
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   plans,
	})
}
