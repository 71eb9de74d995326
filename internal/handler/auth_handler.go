package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madhesh247/Zenfocus/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

type loginRequest struct {
	Password string `json:"password"`
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	token, apiErr := h.authService.Login(req.Password)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
