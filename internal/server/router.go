package server

import (
	"github.com/Mikemeister8/octogon-home-app/internal/auth"
	"github.com/Mikemeister8/octogon-home-app/internal/handlers"
	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/Mikemeister8/octogon-home-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Handler        *handlers.Handler
	JWTService     *auth.JWTService
	Households     middleware.HouseholdLoader
	Logger         *logger.Logger
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	h := cfg.Handler

	// Public
	router.GET("/health", h.HealthCheck)
	router.GET("/api/version", h.Version)

	// Household scoped, token must belong to the household in the path
	household := router.Group("/api/households/:householdID")
	household.Use(middleware.RequireAuth(cfg.JWTService), middleware.LoadHousehold(cfg.Households))
	{
		household.GET("", h.GetHousehold)
		household.PATCH("", h.UpdateHousehold)

		household.GET("/users", h.ListUsers)
		household.POST("/users", h.CreateUser)
		household.GET("/users/:id", h.GetUser)
		household.PATCH("/users/:id", h.UpdateUser)
		household.DELETE("/users/:id", h.DeleteUser)

		household.GET("/tasks", h.ListTasks)
		household.POST("/tasks", h.CreateTask)
		household.GET("/tasks/:id", h.GetTask)
		household.PATCH("/tasks/:id", h.UpdateTask)
		household.DELETE("/tasks/:id", h.DeleteTask)
		household.POST("/tasks/:id/complete", h.CompleteTask)
		household.GET("/tasks/:id/completions", h.ListTaskCompletions)

		household.GET("/completions", h.ListCompletions)
		household.DELETE("/completions/:id", h.UndoCompletion)

		household.GET("/leaderboard/current", h.CurrentLeaderboard)
		household.GET("/leaderboard/month", h.MonthLeaderboard)
		household.GET("/leaderboard/year", h.YearLeaderboard)
		household.GET("/leaderboard/alltime", h.AllTimeLeaderboard)
		household.GET("/leaderboard/history", h.LeaderboardHistory)

		household.GET("/dashboard", h.Dashboard)
	}

	return router
}
