package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/service"
)

// SettingsHandler mantiene dependencias para la configuración de cuenta.
type SettingsHandler struct {
	logger       *zap.Logger
	settingsServ *service.SettingsService
}

// NewSettingsHandler crea una instancia de SettingsHandler con dependencias necesarias.
func NewSettingsHandler(logger *zap.Logger, settingsServ *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		logger:       logger,
		settingsServ: settingsServ,
	}
}

// Get maneja GET /settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	settings, err := h.settingsServ.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("get settings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Update maneja PUT /settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req domain.UserSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid settings request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	settings, err := h.settingsServ.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.logger.Error("update settings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// ChangePassword maneja PUT /settings/password.
func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.settingsServ.ChangePassword(c.Request.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is wrong"})
			return
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
			return
		default:
			h.logger.Error("change password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change password"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "password_changed"})
}
