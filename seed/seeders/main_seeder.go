package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	badgeSeeder := NewBadgeSeeder(s.db)
	if err := badgeSeeder.SeedBadges(); err != nil {
		log.Printf("Badge seeding failed: %v", err)
		return err
	}

	demoSeeder := NewDemoSeeder(s.db)
	if err := demoSeeder.SeedDemoContent(); err != nil {
		log.Printf("Demo content seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedBadgesOnly() error {
	badgeSeeder := NewBadgeSeeder(s.db)
	return badgeSeeder.SeedBadges()
}

func (s *MainSeeder) SeedDemoOnly() error {
	demoSeeder := NewDemoSeeder(s.db)
	return demoSeeder.SeedDemoContent()
}
