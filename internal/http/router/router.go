package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/handler"
	"taskplane.app/api-server/internal/http/middleware"
	"taskplane.app/api-server/internal/service"
)

type RouterConfig struct {
	ServiceName string
	Development bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	handler.SetDevelopmentMode(cfg.Development)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   cfg.ServiceName,
		})
	})

	authHandler := handler.NewAuthHandler(services.Auth())
	requireAuth := middleware.RequireAuth(services.Tokens(), services.UserStore())

	api := router.Group("/api")
	{
		AuthRouter(api.Group("/auth"), authHandler)

		api.GET("/me", requireAuth, authHandler.Me)

		userHandler := handler.NewUserHandler(services.Users())
		UserRouter(api.Group("/users", requireAuth), userHandler)

		orgHandler := handler.NewOrganizationHandler(services.Organizations())
		OrganizationRouter(api.Group("/organizations", requireAuth), orgHandler)

		projectHandler := handler.NewProjectHandler(services.Projects())
		ProjectRouter(api.Group("/projects", requireAuth), projectHandler)

		taskHandler := handler.NewTaskHandler(services.Tasks())
		TaskRouter(api.Group("/tasks", requireAuth), taskHandler)
	}
}
