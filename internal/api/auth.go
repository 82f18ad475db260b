package api

import (
	"net/http"

	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/internal/service"
	"macro-news-bot/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and API key validation.
//
// Both endpoints report failure through the success flag with a 200 status
// instead of 4xx codes. That inconsistency is part of the existing API
// contract and is kept as-is.
type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login checks email/password and returns the user id on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	id, ok, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		h.log.LogError(err, "Error during login")
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Samting weng wong.",
			"error":   err.Error(),
		})
		return
	}

	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "id": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// ValidateKey checks an API key's existence and expiry. The key is echoed
// back whenever it exists, valid or not.
func (h *AuthHandler) ValidateKey(c *gin.Context) {
	var req models.KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	key, ok, err := h.auth.ValidateAPIKey(req.Key)
	if err != nil {
		h.log.LogError(err, "Error validating apiKey")
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Samting weng wong.",
			"error":   err.Error(),
		})
		return
	}

	if key == "" {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok, "apiKey": key})
}
