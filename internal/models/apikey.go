package models

import "time"

// APIKey is a bearer credential with an expiry timestamp, used by machine
// callers instead of session auth. Keys are provisioned out-of-band; there is
// no revocation list and no rotation beyond overwriting the row.
type APIKey struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"-"`
}

// TableName overrides gorm's default pluralization
func (APIKey) TableName() string { return "api_keys" }

// Valid reports whether the key has not expired yet
func (k *APIKey) Valid() bool {
	return time.Now().Before(k.ExpiresAt)
}

// KeyRequest is the request structure for API key validation
type KeyRequest struct {
	Key string `json:"key"`
}
