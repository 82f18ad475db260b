package models

import "time"

// NewsMessage is a chat message ingested from the configured Discord channel.
// Rows are append-only; message_id is the dedup key.
type NewsMessage struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MessageID string    `gorm:"uniqueIndex;not null" json:"messageId"`
	ChannelID string    `json:"channelId"`
	GuildID   string    `json:"guildId"`
	Author    string    `json:"author"`
	Content   string    `gorm:"type:text" json:"content"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	CreatedAt time.Time `json:"-"`
}

// TableName overrides gorm's default pluralization
func (NewsMessage) TableName() string { return "news_messages" }

// NewsRequest is the request structure for the news listing endpoint
type NewsRequest struct {
	APIKey string `json:"apiKey"`
}
