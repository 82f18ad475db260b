package api

import (
	"net/http"
	"strconv"

	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/internal/service"
	"macro-news-bot/backend/pkg/logger"
	"macro-news-bot/backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

// UserHandler handles profile reads and multipart profile updates
type UserHandler struct {
	users   *service.UserService
	uploads *upload.Store
	log     *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, uploads *upload.Store, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, uploads: uploads, log: log}
}

// GetUser returns the public profile fields for ?id=
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	user, err := h.users.GetUserByID(uint(id))
	if err != nil {
		if err == service.ErrUserNotFound {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		h.log.LogError(err, "Error getting user")
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Samting weng wong.",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      user.ID,
		"email":   user.Email,
		"image":   user.Image,
	})
}

// UpdateUser applies a multipart profile update: optional email, password,
// apiKey refresh and file upload
func (h *UserHandler) UpdateUser(c *gin.Context) {
	idStr := c.PostForm("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Id required"})
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Id must be a number"})
		return
	}

	in := models.UpdateUserInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		APIKey:   c.PostForm("apiKey"),
	}

	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		path, err := h.uploads.Save(header.Filename, file)
		if err != nil {
			h.log.LogError(err, "Error saving uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Samting weng wong.",
				"error":   err.Error(),
			})
			return
		}
		in.Image = path
	}

	result, err := h.users.UpdateUser(uint(id), in)
	if err != nil {
		switch err {
		case service.ErrNoUpdateData:
			c.JSON(http.StatusBadRequest, gin.H{"message": "No update data provided"})
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			h.log.LogError(err, "Error updating user")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Samting weng wong.",
				"error":   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"email":   result.Email,
		"image":   result.Image,
		"apiKey":  result.APIKey,
	})
}
