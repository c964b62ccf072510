package daemon

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

// ErrAlreadySeeded is returned when demo data exists in the database.
var ErrAlreadySeeded = errors.New("database already contains services, refusing to seed")

// SeedDemoData fills a fresh database with the demo catalog, site copy
// and a couple of accounts. It refuses to touch a database that already
// has services.
func SeedDemoData(cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return ErrAlreadySeeded
	}

	seed(cfg, db)

	users := demoUsers()
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	services := demoServices()
	if err := db.Create(&services).Error; err != nil {
		return err
	}

	content := demoContent()
	if err := db.Create(&content).Error; err != nil {
		return err
	}

	log.Info().Msg("demo data seeded")

	return nil
}

func demoUsers() []models.User {
	return []models.User{
		{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: models.HashPassword("password"),
			Role:     models.RoleUser,
			Phone:    "+1 (555) 987-6543",
			Active:   true,
		},
		{
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Password: models.HashPassword("password"),
			Role:     models.RoleUser,
			Phone:    "+1 (555) 456-7890",
			Active:   true,
		},
	}
}

func demoServices() []models.Service {
	return []models.Service{
		{
			Title:       "Personal Driver",
			Description: "Professional personal driving services for daily commutes, appointments, and special occasions.",
			Price:       "Starting at $25/hour",
			Features:    []string{"Licensed drivers", "Flexible scheduling", "Door-to-door service"},
			Icon:        "car",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Title:       "Commercial Transport",
			Description: "Reliable commercial driving solutions for businesses and freight transportation.",
			Price:       "Custom pricing",
			Features:    []string{"Commercial licenses", "Cargo insurance", "Route optimization"},
			Icon:        "truck",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Title:       "Group Transportation",
			Description: "Safe and comfortable group transport for events, tours, and corporate functions.",
			Price:       "Starting at $150/trip",
			Features:    []string{"Large vehicle fleet", "Event coordination", "Group discounts"},
			Icon:        "users",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			Title:       "Corporate Services",
			Description: "Professional driving services tailored for corporate clients and executives.",
			Price:       "Monthly packages",
			Features:    []string{"Executive vehicles", "24/7 availability", "Corporate billing"},
			Icon:        "building",
			IsActive:    true,
			SortOrder:   4,
		},
	}
}

func demoContent() []models.Content {
	entries := []struct {
		key, title, body string
	}{
		{"hero-title", "Hero Section Title", "Professional Driving Solutions You Can Trust"},
		{"hero-subtitle", "Hero Section Subtitle", "Experience premium driving services with our certified professionals. Safe, reliable, and always on time - that's the Drisavo promise."},
		{"about-title", "About Section Title", "About Drisavo"},
		{"about-content", "About Section Content", "Founded in 2013, Drisavo has been at the forefront of professional driving services, providing safe, reliable, and premium transportation solutions to individuals and businesses."},
		{"contact-phone", "Contact Phone", "+1 (555) 123-4567"},
		{"contact-email", "Contact Email", "info@drisavo.com"},
		{"contact-address", "Contact Address", "123 Business District, City, State 12345"},
		{"emergency-phone", "Emergency Phone", "+1 (555) 911-HELP"},
		{"company-description", "Company Description", "Professional driving services you can trust. Safe, reliable, and always on time."},
	}

	out := make([]models.Content, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.Content{
			Key:      e.key,
			Title:    e.title,
			Content:  e.body,
			Type:     models.ContentTypeText,
			IsActive: true,
		})
	}

	return out
}
