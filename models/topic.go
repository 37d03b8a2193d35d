package models

import "gorm.io/gorm"

// Topic is a single lesson. Body holds markdown with inline LaTeX; the
// premium flag gates access to the body and is evaluated independently of
// the flags on nested problems and flashcards.
type Topic struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null;size:100"`
	Title       string `gorm:"not null;size:200"`
	Description string `gorm:"size:500"`
	Position    int    `gorm:"not null;default:0"`
	Body        string `gorm:"type:text"`
	VideoURL    string `gorm:"size:500"`
	IsPremium   bool   `gorm:"not null;default:false"`

	CategoryID uint     `gorm:"not null;index"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`

	Problems   []ExampleProblem `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE;"`
	Flashcards []Flashcard      `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE;"`
}
