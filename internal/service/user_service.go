package service

import (
	"errors"
	"time"

	"macro-news-bot/backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoUpdateData = errors.New("no update data provided")
)

// UserService handles user profile operations
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := s.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// UpdateUser applies the supplied profile fields to the user. A plaintext
// password is re-hashed with a fresh salt before storage. An apiKey, when
// supplied, is only refreshed: it must exist and be unexpired to be echoed
// back, and is never created here.
func (s *UserService) UpdateUser(id uint, in models.UpdateUserInput) (*models.UpdateUserResult, error) {
	updates := map[string]any{}
	if in.Email != "" {
		updates["email"] = in.Email
	}
	if in.Password != "" {
		hash, err := models.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}
	if in.Image != "" {
		updates["image"] = in.Image
	}

	if len(updates) == 0 && in.APIKey == "" {
		return nil, ErrNoUpdateData
	}

	var echoedKey *string
	if in.APIKey != "" {
		var apiKey models.APIKey
		result := s.db.Where("key = ? AND expires_at >= ?", in.APIKey, time.Now()).First(&apiKey)
		if result.Error == nil {
			echoedKey = &apiKey.Key
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
	}

	var user models.User
	result := s.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
		// Re-read so the result reflects exactly what was stored
		if err := s.db.First(&user, id).Error; err != nil {
			return nil, err
		}
	}

	return &models.UpdateUserResult{
		Email:  user.Email,
		Image:  user.Image,
		APIKey: echoedKey,
	}, nil
}
