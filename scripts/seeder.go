package main

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/domain/content"
	"github.com/intelligensi-ai/intelligensi-bridge/utils"
)

func main() {
	config.InitConfig()
	config.InitDB()

	// Seed users
	users := []struct {
		Email    string
		Password string
		RoleID   int64
	}{
		{Email: "admin@intelligensi.ai", Password: "admin-password", RoleID: content.RoleAdmin},
		{Email: "editor@intelligensi.ai", Password: "editor-password", RoleID: content.RoleEditor},
		{Email: "viewer@intelligensi.ai", Password: "viewer-password", RoleID: content.RoleViewer},
	}

	for _, u := range users {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for user %s: %v", u.Email, err)
		}

		_, err = config.DB.Exec(
			"INSERT INTO users (email, password, role_id, created_at, updated_at) VALUES (?, ?, ?, NOW(), NOW())",
			u.Email, hashedPassword, u.RoleID,
		)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
		log.Printf("Seeded user: %s", u.Email)
	}

	// Seed content items, newest first is the homepage candidate
	items := []struct {
		Title     string
		Body      string
		Type      string
		Published bool
		Promoted  bool
		Age       time.Duration
	}{
		{Title: "Welcome to the bridge", Body: "<p>The content bridge is live.</p>", Type: content.TypePage, Published: true, Promoted: true, Age: 0},
		{Title: "Launch announcement", Body: "<p>We are migrating content.</p>", Type: content.TypeArticle, Published: true, Promoted: true, Age: 24 * time.Hour},
		{Title: "About", Body: "<p>About this site.</p>", Type: content.TypePage, Published: true, Promoted: false, Age: 48 * time.Hour},
		{Title: "Draft roadmap", Body: "<p>Not published yet.</p>", Type: content.TypePage, Published: false, Promoted: false, Age: 72 * time.Hour},
	}

	for _, it := range items {
		created := time.Now().UTC().Add(-it.Age)
		_, err := config.DB.Exec(`
			INSERT INTO content_items (uuid, title, body, content_type, published, promoted, owner_id, created_at, changed_at)
			VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
		`, uuid.New().String(), it.Title, it.Body, it.Type, it.Published, it.Promoted, created, created)
		if err != nil {
			log.Fatalf("Failed to seed content item %q: %v", it.Title, err)
		}
		log.Printf("Seeded content item: %s", it.Title)
	}
}
