package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/academia/internal/app/controllers"
	"github.com/yigit/academia/internal/pkg/metrics"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	userController *controllers.UserController,
	healthController *controllers.HealthController,
) {
	api := router.Group("/api")

	// Course routes
	cursos := api.Group("/cursos")
	{
		cursos.GET("", courseController.ListActive)
		cursos.POST("", courseController.Create)
		cursos.POST("/coleccion", courseController.BulkImport)
		cursos.GET("/:id", courseController.FindByID)
		cursos.GET("/:id/usuarios", courseController.FindUsers)
		cursos.PUT("/:id", courseController.Update)
		cursos.DELETE("/:id", courseController.Deactivate)
	}

	// User routes. Mutations address users by email, the course listing by identifier.
	// Gin keeps one tree per method, so the GET wildcard may carry its own name.
	usuarios := api.Group("/usuarios")
	{
		usuarios.GET("", userController.ListActive)
		usuarios.POST("", userController.Create)
		usuarios.POST("/coleccion", userController.BulkImport)
		usuarios.PUT("/:email", userController.Update)
		usuarios.DELETE("/:email", userController.Deactivate)
		usuarios.POST("/:email/cursos", userController.AddCourses)
		usuarios.PUT("/:email/cursos", userController.ReplaceCourses)
		usuarios.GET("/:usuarioId/cursos", userController.ListCourses)
	}

	router.GET("/health", healthController.Check)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
