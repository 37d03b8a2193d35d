package models

import "gorm.io/gorm"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// ExampleProblem is a worked problem inside a topic. Its premium flag may
// diverge from the owning topic's flag: a free topic can carry premium
// problems and vice versa. The flag gates the solution, not the question.
type ExampleProblem struct {
	gorm.Model
	PublicID   string     `gorm:"size:100;uniqueIndex"`
	Question   string     `gorm:"not null;type:text"`
	Solution   string     `gorm:"not null;type:text"`
	Difficulty Difficulty `gorm:"not null;default:medium;size:20"`
	Position   int        `gorm:"not null;default:0"`
	IsPremium  bool       `gorm:"not null;default:false"`

	TopicID uint  `gorm:"not null;index"`
	Topic   Topic `gorm:"foreignKey:TopicID" json:"-"`
}
