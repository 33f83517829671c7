package api

import (
	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunHandler holds the run service dependency.
type RunHandler struct {
	runService service.RunService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService service.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// --- DTOs for API ---

// RunRequest defines the expected JSON for creating or updating a run.
// Pace is not accepted; the server derives it from distance and time.
type RunRequest struct {
	Name     string  `json:"name" binding:"required"`
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	Distance float64 `json:"distance" binding:"required,gt=0"` // kilometers
	Time     int     `json:"time" binding:"required,gt=0"`     // seconds
}

// RunResponse is the DTO for returning run details.
type RunResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Distance  float64   `json:"distance"`
	Time      int       `json:"time"`
	Pace      int       `json:"pace"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapRunToResponse converts a domain.Run to RunResponse DTO.
func MapRunToResponse(run *domain.Run) RunResponse {
	if run == nil {
		return RunResponse{}
	}
	return RunResponse{
		ID:        run.ID.Hex(),
		UserID:    run.UserID.Hex(),
		Name:      run.Name,
		Date:      run.Date,
		Distance:  run.Distance,
		Time:      run.Time,
		Pace:      run.Pace,
		CreatedAt: run.CreatedAt,
		UpdatedAt: run.UpdatedAt,
	}
}

// MapRunsToResponse converts a slice of domain.Run to RunResponse DTOs.
func MapRunsToResponse(runs []domain.Run) []RunResponse {
	responses := make([]RunResponse, len(runs))
	for i, run := range runs {
		responses[i] = MapRunToResponse(&run)
	}
	return responses
}

// requestingUser resolves the authenticated user's ObjectID from the gin context.
func requestingUser(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// --- Handler Methods ---

// CreateRun records a new run for the authenticated user.
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := requestingUser(c)
	if !ok {
		return
	}

	run, err := h.runService.CreateRun(c.Request.Context(), userID, req.Name, req.Date, req.Distance, req.Time)
	if err != nil {
		if errors.Is(err, service.ErrRunValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create run")
		}
		return
	}

	c.JSON(http.StatusCreated, MapRunToResponse(run))
}

// GetRuns lists the authenticated user's runs, newest first.
func (h *RunHandler) GetRuns(c *gin.Context) {
	userID, ok := requestingUser(c)
	if !ok {
		return
	}

	runs, err := h.runService.GetRuns(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve runs")
		return
	}

	c.JSON(http.StatusOK, MapRunsToResponse(runs))
}

// GetRunByID returns a single run owned by the authenticated user.
func (h *RunHandler) GetRunByID(c *gin.Context) {
	userID, ok := requestingUser(c)
	if !ok {
		return
	}

	runID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid run ID format.")
		return
	}

	run, err := h.runService.GetRunByID(c.Request.Context(), userID, runID)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve run")
		}
		return
	}

	c.JSON(http.StatusOK, MapRunToResponse(run))
}

// UpdateRun modifies an existing run owned by the authenticated user.
func (h *RunHandler) UpdateRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := requestingUser(c)
	if !ok {
		return
	}

	runID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid run ID format.")
		return
	}

	run, err := h.runService.UpdateRun(c.Request.Context(), userID, runID, req.Name, req.Date, req.Distance, req.Time)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrRunValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update run")
		}
		return
	}

	c.JSON(http.StatusOK, MapRunToResponse(run))
}

// DeleteRun removes a run owned by the authenticated user.
func (h *RunHandler) DeleteRun(c *gin.Context) {
	userID, ok := requestingUser(c)
	if !ok {
		return
	}

	runID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid run ID format.")
		return
	}

	err = h.runService.DeleteRun(c.Request.Context(), userID, runID)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete run")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats returns aggregate statistics over the user's full run history.
func (h *RunHandler) GetStats(c *gin.Context) {
	userID, ok := requestingUser(c)
	if !ok {
		return
	}

	stats, err := h.runService.GetStats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute run statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
