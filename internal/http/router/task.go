package router

import (
	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/internal/http/handler"
)

func TaskRouter(rg *gin.RouterGroup, h *handler.TaskHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/assign", h.Assign)
	rg.POST("/:id/unassign", h.Unassign)
}
