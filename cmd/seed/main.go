// Command seed provisions a demo user and API key for local development.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/pkg/config"
)

func main() {
	email := flag.String("email", "wahyu@example.com", "email of the seeded user")
	password := flag.String("password", "qwerty", "plaintext password of the seeded user")
	key := flag.String("key", "xxxyyyzzz", "API key to provision")
	expires := flag.String("expires", "2025-12-31", "API key expiry date (YYYY-MM-DD)")
	flag.Parse()

	expiresAt, err := time.Parse("2006-01-02", *expires)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -expires value: %v\n", err)
		os.Exit(1)
	}

	config.New()
	db, err := config.NewDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect database: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.APIKey{}, &models.NewsMessage{}); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}

	// Password is hashed by the model's create hook
	user := models.User{Email: *email, Password: *password}
	if err := db.Where("email = ?", *email).FirstOrCreate(&user).Error; err != nil {
		fmt.Fprintf(os.Stderr, "seed user: %v\n", err)
		os.Exit(1)
	}

	apiKey := models.APIKey{Key: *key, ExpiresAt: expiresAt}
	if err := db.Where("key = ?", *key).FirstOrCreate(&apiKey).Error; err != nil {
		fmt.Fprintf(os.Stderr, "seed api key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded user %q (id=%d) and api key %q expiring %s\n",
		user.Email, user.ID, apiKey.Key, apiKey.ExpiresAt.Format("2006-01-02"))
}
