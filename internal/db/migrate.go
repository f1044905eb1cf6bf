package db

import (
	"log"

	"wizard-writing-study/internal/document"
	"wizard-writing-study/internal/snapshot"
	"wizard-writing-study/internal/suggestion"
	"wizard-writing-study/internal/user"
)

// Migrate runs database migrations
func Migrate() {
	err := AppDb.AutoMigrate(
		&user.User{},
		&document.Document{},
		&suggestion.Suggestion{},
		&snapshot.WritingSnapshot{},
	)

	if err != nil {
		log.Fatal(err)
	}

	log.Println("Database schema migrated successfully")
}

// SeedData seeds the database with initial data (for development only)
func SeedData() {
	userRepo := user.NewRepository(AppDb)

	// Create a test writer if it doesn't exist
	_, err := userRepo.FindByName("Test Writer")
	if err == nil {
		log.Println("Test writer already exists")
		return
	}

	testUser := &user.User{
		Name:      "Test Writer",
		SessionID: "user-seed",
	}
	if err := userRepo.Create(testUser); err != nil {
		log.Printf("Error creating test writer: %v", err)
		return
	}

	docRepo := document.NewRepository(AppDb)
	if err := docRepo.Create(&document.Document{UserID: testUser.ID}); err != nil {
		log.Printf("Error creating test writer document: %v", err)
		return
	}

	log.Printf("Created test writer: %s", testUser.Name)
}
