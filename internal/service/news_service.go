package service

import (
	"errors"

	"macro-news-bot/backend/internal/models"

	"gorm.io/gorm"
)

// NewsService stores and lists ingested channel messages
type NewsService struct {
	db *gorm.DB
}

// NewNewsService creates a new news service
func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// List returns all stored messages in reverse-chronological order
func (s *NewsService) List() ([]models.NewsMessage, error) {
	var news []models.NewsMessage
	if err := s.db.Order("timestamp DESC").Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

// SaveIfNew inserts the message unless a row with the same message id is
// already present, e.g. after a process restart. It reports whether a row
// was inserted.
func (s *NewsService) SaveIfNew(msg *models.NewsMessage) (bool, error) {
	var existing models.NewsMessage
	result := s.db.Where("message_id = ?", msg.MessageID).First(&existing)
	if result.Error == nil {
		return false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}

	if err := s.db.Create(msg).Error; err != nil {
		return false, err
	}
	return true, nil
}
