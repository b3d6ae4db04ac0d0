package router

import (
	"momnt-server/internal/middleware"
	authhandler "momnt-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, h *authhandler.Handler, resolver middleware.HostResolver) {
	authGroup := api.Group("/auth")

	authGroup.POST("/signup", h.Signup)
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", middleware.JWTAuth(resolver), h.Me)
}
