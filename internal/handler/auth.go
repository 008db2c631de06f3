// 운영자 로그인 핸들러

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
	"github.com/rayyan-siddiqu1/self-healing-infra/internal/service"
)

// AuthHandler - 로그인 핸들러
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Operator login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.AuthRequest true "credentials"
// @Success 200 {object} model.AuthResponse
// @Failure 400,401 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid payload"})
		return
	}

	token, expiresIn, err := h.svc.Login(req.ID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{AccessToken: token, ExpiresIn: expiresIn})
}
