package seeders

import (
	"log"
	"time"

	"github.com/edugram-labs/edugram-api/model"
	"gorm.io/gorm"
)

// BadgeSeeder handles seeding the badge catalog
type BadgeSeeder struct {
	db *gorm.DB
}

func NewBadgeSeeder(db *gorm.DB) *BadgeSeeder {
	return &BadgeSeeder{db: db}
}

// SeedBadges seeds the database with the star-threshold badge catalog
func (s *BadgeSeeder) SeedBadges() error {
	badges := s.getBadgeCatalog()

	for _, badge := range badges {
		var existing model.Badge
		if err := s.db.Where("id = ?", badge.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&badge).Error; err != nil {
					log.Printf("Error creating badge %s: %v", badge.Name, err)
					return err
				}
				log.Printf("Created badge: %s", badge.Name)
			} else {
				log.Printf("Error checking badge %s: %v", badge.Name, err)
				return err
			}
		} else {
			log.Printf("Badge %s already exists, skipping", badge.Name)
		}
	}

	log.Println("Badge seeding completed successfully")
	return nil
}

func (s *BadgeSeeder) getBadgeCatalog() []model.Badge {
	now := time.Now()

	return []model.Badge{
		{
			ID:            "badge_first_steps",
			Name:          "First Steps",
			Description:   "Earn your very first star",
			IconURL:       "🌟",
			StarsRequired: 1,
			CreatedAt:     now,
		},
		{
			ID:            "badge_rising_star",
			Name:          "Rising Star",
			Description:   "Collect 10 stars",
			IconURL:       "⭐",
			StarsRequired: 10,
			CreatedAt:     now,
		},
		{
			ID:            "badge_quick_learner",
			Name:          "Quick Learner",
			Description:   "Collect 25 stars",
			IconURL:       "🚀",
			StarsRequired: 25,
			CreatedAt:     now,
		},
		{
			ID:            "badge_bookworm",
			Name:          "Bookworm",
			Description:   "Collect 50 stars",
			IconURL:       "📚",
			StarsRequired: 50,
			CreatedAt:     now,
		},
		{
			ID:            "badge_star_collector",
			Name:          "Star Collector",
			Description:   "Collect 100 stars",
			IconURL:       "🏅",
			StarsRequired: 100,
			CreatedAt:     now,
		},
		{
			ID:            "badge_champion",
			Name:          "Champion",
			Description:   "Collect 250 stars",
			IconURL:       "🏆",
			StarsRequired: 250,
			CreatedAt:     now,
		},
		{
			ID:            "badge_superstar",
			Name:          "Superstar",
			Description:   "Collect 500 stars",
			IconURL:       "👑",
			StarsRequired: 500,
			CreatedAt:     now,
		},
	}
}
