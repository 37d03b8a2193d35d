package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/calcprep/calcprep-api/models"
)

var Database *gorm.DB

func Connect() error {
	var err error
	dbURL := os.Getenv("DB_URL")
	Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = Database.AutoMigrate(
		&models.Category{},
		&models.Topic{},
		&models.ExampleProblem{},
		&models.Flashcard{},
		&models.User{},
		&models.LearningPath{},
		&models.LearningPathEntry{},
	)
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}
