package api

import (
	"alcyxob/running-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	runService service.RunService,
	planService service.PlanService,
) {

	authHandler := NewAuthHandler(authService)
	runHandler := NewRunHandler(runService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Run Routes ---
		runGroup := protected.Group("/runs")
		{
			runGroup.POST("", runHandler.CreateRun)
			runGroup.GET("", runHandler.GetRuns)
			runGroup.GET("/stats", runHandler.GetStats)
			runGroup.GET("/:id", runHandler.GetRunByID)
			runGroup.PUT("/:id", runHandler.UpdateRun)
			runGroup.DELETE("/:id", runHandler.DeleteRun)
		}

		// --- Plan Routes ---
		// These take an explicit userId per the client contract.
		planGroup := protected.Group("/plan")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/list", planHandler.ListPlans)
		}
	}
}
