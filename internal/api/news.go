package api

import (
	"net/http"

	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/internal/service"
	"macro-news-bot/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewsHandler serves the API-key gated news listing
type NewsHandler struct {
	news *service.NewsService
	auth *service.AuthService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(news *service.NewsService, auth *service.AuthService) *NewsHandler {
	return &NewsHandler{news: news, auth: auth}
}

// ListNews returns all stored messages, newest first. The gate only checks
// that the key row exists; expiry is not consulted on this path.
func (h *NewsHandler) ListNews(c *gin.Context) {
	var req models.NewsRequest
	_ = c.ShouldBindJSON(&req)

	if req.APIKey == "" {
		c.Error(errors.NewBadRequestError("APIKEY_REQUIRED", "apiKey required"))
		return
	}

	exists, err := h.auth.KeyExists(req.APIKey)
	if err != nil {
		c.Error(err)
		return
	}
	if !exists {
		c.Error(errors.NewUnauthorizedError("INVALID_APIKEY", "Invalid apiKey"))
		return
	}

	news, err := h.news.List()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"news":    news,
	})
}
