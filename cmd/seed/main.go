// Command seed populates the content hierarchy. It is idempotent: categories
// and topics upsert by slug, problems and flashcards by their position
// within the topic, so re-running it refreshes lesson text without
// duplicating rows or invalidating public IDs.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calcprep/calcprep-api/config"
	"github.com/calcprep/calcprep-api/models"
)

type problemSeed struct {
	Question   string
	Solution   string
	Difficulty models.Difficulty
	IsPremium  bool
}

type flashcardSeed struct {
	Front     string
	Back      string
	Hint      string
	IsPremium bool
}

type topicSeed struct {
	Slug        string
	Title       string
	Description string
	Body        string
	VideoURL    string
	IsPremium   bool
	Problems    []problemSeed
	Flashcards  []flashcardSeed
}

type categorySeed struct {
	Slug        string
	Name        string
	Description string
	Icon        string
	Topics      []topicSeed
}

func main() {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}
	config.Connect()

	for i, c := range catalog {
		if err := seedCategory(config.Database, i, c); err != nil {
			log.Fatalf("seed: category %s: %v", c.Slug, err)
		}
	}
	log.Println("seed: done")
}

func seedCategory(db *gorm.DB, position int, seed categorySeed) error {
	category := models.Category{
		Slug:        seed.Slug,
		Name:        seed.Name,
		Description: seed.Description,
		Icon:        seed.Icon,
		Position:    position,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "position"}),
	}).Create(&category).Error
	if err != nil {
		return err
	}
	// Re-read: the upsert does not populate the ID on conflict.
	if err := db.Where("slug = ?", seed.Slug).First(&category).Error; err != nil {
		return err
	}

	for i, t := range seed.Topics {
		if err := seedTopic(db, category.ID, i, t); err != nil {
			return err
		}
	}
	return nil
}

func seedTopic(db *gorm.DB, categoryID uint, position int, seed topicSeed) error {
	topic := models.Topic{
		Slug:        seed.Slug,
		Title:       seed.Title,
		Description: seed.Description,
		Body:        seed.Body,
		VideoURL:    seed.VideoURL,
		IsPremium:   seed.IsPremium,
		Position:    position,
		CategoryID:  categoryID,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "body", "video_url", "is_premium", "position", "category_id"}),
	}).Create(&topic).Error
	if err != nil {
		return err
	}
	if err := db.Where("slug = ?", seed.Slug).First(&topic).Error; err != nil {
		return err
	}

	for i, p := range seed.Problems {
		var existing models.ExampleProblem
		err := db.Where("topic_id = ? AND position = ?", topic.ID, i).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			publicID, err := gonanoid.New()
			if err != nil {
				return err
			}
			err = db.Create(&models.ExampleProblem{
				PublicID:   publicID,
				Question:   p.Question,
				Solution:   p.Solution,
				Difficulty: p.Difficulty,
				IsPremium:  p.IsPremium,
				Position:   i,
				TopicID:    topic.ID,
			}).Error
			if err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		existing.Question = p.Question
		existing.Solution = p.Solution
		existing.Difficulty = p.Difficulty
		existing.IsPremium = p.IsPremium
		if err := db.Save(&existing).Error; err != nil {
			return err
		}
	}

	// Flashcards have no ordering index, so the front text is the upsert key.
	for _, f := range seed.Flashcards {
		var existing models.Flashcard
		err := db.Where("topic_id = ? AND front = ?", topic.ID, f.Front).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			publicID, err := gonanoid.New()
			if err != nil {
				return err
			}
			err = db.Create(&models.Flashcard{
				PublicID:  publicID,
				Front:     f.Front,
				Back:      f.Back,
				Hint:      f.Hint,
				IsPremium: f.IsPremium,
				TopicID:   topic.ID,
			}).Error
			if err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		existing.Front = f.Front
		existing.Back = f.Back
		existing.Hint = f.Hint
		existing.IsPremium = f.IsPremium
		if err := db.Save(&existing).Error; err != nil {
			return err
		}
	}
	return nil
}
