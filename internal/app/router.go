package app

import (
	"english_app_backend/docs"
	"english_app_backend/internal/config"
	"english_app_backend/internal/middleware"
	"english_app_backend/internal/model"
	"english_app_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	api := router.Group("/api/v1")
	admin := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Admin)}

	a.registerAccountRoutes(api, c)
	a.registerContentRoutes(api, c, admin)
	a.registerLearnerRoutes(api, c)
	a.registerQuizRoutes(api, c, admin)

	uploads := api.Group("/uploads", admin...)
	{
		uploads.POST("", c.upload.Upload)
	}
}

func (a *App) registerAccountRoutes(api *gin.RouterGroup, c *controllers) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
		auth.GET("/me", middleware.AuthMiddleware(a.Config.JWT.Secret), c.auth.Me)
	}

	api.GET("/users/:id", c.user.GetUser)
	api.GET("/stats", c.stats.GetStats)
}

// Reads are public, writes need an admin token.
func (a *App) registerContentRoutes(api *gin.RouterGroup, c *controllers, admin []gin.HandlerFunc) {
	topics := api.Group("/topics")
	{
		topics.GET("", c.topic.ListTopics)
		topics.GET("/:id", c.topic.GetTopic)

		write := topics.Group("", admin...)
		write.POST("", c.topic.CreateTopic)
		write.PUT("/:id", c.topic.UpdateTopic)
		write.DELETE("/:id", c.topic.DeleteTopic)
	}

	lessons := api.Group("/lessons")
	{
		lessons.GET("", c.lesson.ListLessons)
		lessons.GET("/topic/:topicId", c.lesson.ListByTopic)
		lessons.GET("/:id", c.lesson.GetLesson)

		write := lessons.Group("", admin...)
		write.POST("", c.lesson.CreateLesson)
		write.PUT("/:id", c.lesson.UpdateLesson)
		write.DELETE("/:id", c.lesson.DeleteLesson)
	}

	vocabularies := api.Group("/vocabularies")
	{
		vocabularies.GET("", c.vocabulary.ListVocabularies)
		vocabularies.GET("/lesson/:lessonId", c.vocabulary.ListByLesson)
		vocabularies.GET("/:id", c.vocabulary.GetVocabulary)

		write := vocabularies.Group("", admin...)
		write.POST("", c.vocabulary.CreateVocabulary)
		write.POST("/bulk", c.vocabulary.CreateBulk)
		write.POST("/import", c.vocabulary.ImportVocabularies)
		write.PUT("/:id", c.vocabulary.UpdateVocabulary)
		write.DELETE("/:id", c.vocabulary.DeleteVocabulary)
	}
}

func (a *App) registerLearnerRoutes(api *gin.RouterGroup, c *controllers) {
	saved := api.Group("/saved-vocabularies")
	{
		saved.GET("/:userId", c.saved.ListSaved)
		saved.GET("/:userId/ids", c.saved.ListSavedIDs)
		saved.GET("/:userId/check/:vocabularyId", c.saved.CheckSaved)
		saved.POST("", c.saved.Save)
		saved.POST("/toggle", c.saved.Toggle)
		saved.DELETE("/:userId/:vocabularyId", c.saved.Unsave)
	}

	progress := api.Group("/learning-progress")
	{
		progress.POST("/complete", c.progress.CompleteLesson)
		progress.GET("/user/:userId", c.progress.GetUserProgress)
		progress.GET("/user/:userId/topic/:topicId", c.progress.GetTopicProgress)
		progress.GET("/check/:userId/:lessonId", c.progress.CheckCompletion)
		progress.DELETE("/:userId/:lessonId", c.progress.RemoveCompletion)
	}
}

func (a *App) registerQuizRoutes(api *gin.RouterGroup, c *controllers, admin []gin.HandlerFunc) {
	quizzes := api.Group("/quizzes")
	{
		quizzes.GET("/lesson/:lessonId", c.quiz.GetQuizByLesson)
		quizzes.GET("/results/user/:userId", c.quiz.GetUserResults)
		quizzes.GET("/results/:resultId", c.quiz.GetResult)
		quizzes.GET("/stats/user/:userId", c.quiz.GetUserStats)
		quizzes.GET("/:id", c.quiz.GetQuiz)
		quizzes.GET("/:id/best-score/:userId", c.quiz.GetBestScore)
		quizzes.POST("/:id/submit", c.quiz.SubmitQuiz)

		write := quizzes.Group("", admin...)
		write.POST("", c.quiz.CreateQuiz)
		write.POST("/:id/questions", c.quiz.AddQuestion)
		write.POST("/questions/:questionId/options", c.quiz.AddOption)
		write.PUT("/:id", c.quiz.UpdateQuiz)
		write.DELETE("/:id", c.quiz.DeleteQuiz)
	}
}
