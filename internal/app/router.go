package app

import (
	"exam_coach_backend/internal/config"
	"exam_coach_backend/internal/middleware"
	"exam_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	router.GET("/api/health", c.health.HealthCheck)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		registerExamRoutes(authGroup, c)
		registerGapRoutes(authGroup, c)
		registerPlanRoutes(authGroup, c)
	}
}

func registerExamRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/exam-papers", c.paper.ListPapers)
	r.GET("/exam-papers/:id/questions", c.paper.ListQuestions)
	r.GET("/knowledge-points", c.knowledgePoint.ListKnowledgePoints)

	attempts := r.Group("/exam-attempts")
	{
		attempts.POST("/create", c.attempt.CreateAttempt)
		attempts.GET("", c.attempt.ListAttempts)
		attempts.GET("/:id", c.attempt.GetAttempt)
	}
}

func registerGapRoutes(r *gin.RouterGroup, c *controllers) {
	gaps := r.Group("/learning-gaps")
	{
		gaps.POST("/create", c.gap.CreateGap)
		gaps.POST("/suggest-options", c.gap.SuggestOptions)
		gaps.GET("", c.gap.ListGaps)
		gaps.PATCH("/:id/resolve", c.gap.ResolveGap)
	}
}

func registerPlanRoutes(r *gin.RouterGroup, c *controllers) {
	r.POST("/generate-plan", c.plan.GeneratePlan)

	tasks := r.Group("/daily-tasks")
	{
		tasks.GET("", c.dailyTask.ListTasks)
		tasks.POST("/:id/complete", c.dailyTask.CompleteTask)
	}
}
