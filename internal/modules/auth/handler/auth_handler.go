package handler

import (
	"momnt-server/internal/middleware"
	moduledto "momnt-server/internal/modules/auth/dto"
	"momnt-server/internal/modules/common/httpx"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var req moduledto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBindError(c, err)
		return
	}

	host, token, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "Registration failed, please try again later")
		return
	}

	c.JSON(http.StatusCreated, moduledto.AuthResponse{User: host, Token: token})
}

func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBindError(c, err)
		return
	}

	host, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "Login failed, please try again later")
		return
	}

	c.JSON(http.StatusOK, moduledto.AuthResponse{User: host, Token: token})
}

func (h *Handler) Me(c *gin.Context) {
	host, ok := middleware.CurrentHost(c)
	if !ok {
		httpx.AbortWithError(c, http.StatusUnauthorized, "unauthorized", "Not authorized")
		return
	}
	c.JSON(http.StatusOK, moduledto.MeResponse{User: host})
}
