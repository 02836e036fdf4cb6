package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"stackit/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL with a quiet gorm logger.
func Open(dsn string) (*gorm.DB, error) {
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gLogger})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Println("[DB] connection established")
	return conn, nil
}

// Migrate creates or updates every table.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.QuestionTag{},
		&models.Answer{},
		&models.Vote{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Println("[DB] migration completed")
	return nil
}

// SeedTags inserts the tags whose names are not present yet. It returns the
// number of tags created, so running it twice creates nothing the second time.
func SeedTags(conn *gorm.DB, tags []models.Tag) (int, error) {
	created := 0
	err := conn.Transaction(func(tx *gorm.DB) error {
		for _, tag := range tags {
			var existing models.Tag
			err := tx.Where("name = ?", tag.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if tag.Color == "" {
				tag.Color = models.DefaultTagColor
			}
			tag.ID = 0
			if err := tx.Create(&tag).Error; err != nil {
				return fmt.Errorf("create tag %s: %w", tag.Name, err)
			}
			log.Printf("[DB] added tag: %s", tag.Name)
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// Bootstrap migrates the schema and seeds the given tags.
func Bootstrap(conn *gorm.DB, tags []models.Tag) error {
	if err := Migrate(conn); err != nil {
		return err
	}
	n, err := SeedTags(conn, tags)
	if err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}
	if n == 0 {
		log.Println("[DB] tags already seeded, skipping")
	}
	return nil
}
