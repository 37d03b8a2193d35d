package models

import "gorm.io/gorm"

// Flashcard is a front/back study card inside a topic. Like example
// problems it carries its own premium flag; the back and hint are the
// gated sub-resources.
type Flashcard struct {
	gorm.Model
	PublicID  string `gorm:"size:100;uniqueIndex"`
	Front     string `gorm:"not null;size:1000"`
	Back      string `gorm:"not null;size:1000"`
	Hint      string `gorm:"size:500"`
	IsPremium bool   `gorm:"not null;default:false"`

	TopicID uint  `gorm:"not null;index"`
	Topic   Topic `gorm:"foreignKey:TopicID" json:"-"`
}
