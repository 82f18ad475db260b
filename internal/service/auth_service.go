package service

import (
	"errors"

	"macro-news-bot/backend/internal/models"

	"gorm.io/gorm"
)

// AuthService validates login credentials and API keys against the store
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login checks the supplied credentials against the stored bcrypt hash.
// It returns the user id and true on success; an unknown email or a
// password mismatch both return false without distinguishing the two.
func (s *AuthService) Login(email, password string) (uint, bool, error) {
	var user models.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, result.Error
	}

	if !models.CheckPasswordHash(password, user.Password) {
		return 0, false, nil
	}

	return user.ID, true, nil
}

// ValidateAPIKey looks up the key and checks its expiry. The key value is
// echoed back whenever the row exists, even when it has expired.
func (s *AuthService) ValidateAPIKey(key string) (string, bool, error) {
	var apiKey models.APIKey
	result := s.db.Where("key = ?", key).First(&apiKey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, result.Error
	}

	return apiKey.Key, apiKey.Valid(), nil
}

// KeyExists reports whether the key is present in the store. Expiry is
// deliberately not checked here; the news listing gate only requires
// existence.
func (s *AuthService) KeyExists(key string) (bool, error) {
	var apiKey models.APIKey
	result := s.db.Where("key = ?", key).First(&apiKey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}
