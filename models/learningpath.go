package models

import "gorm.io/gorm"

// LearningPath is the per-user topic sequence, created together with the
// user at first sign-in.
type LearningPath struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Entries []LearningPathEntry `gorm:"foreignKey:LearningPathID;constraint:OnDelete:CASCADE;"`
}

type LearningPathEntry struct {
	gorm.Model
	LearningPathID uint  `gorm:"not null;index"`
	TopicID        uint  `gorm:"not null"`
	Topic          Topic `gorm:"foreignKey:TopicID" json:"-"`
	Position       int   `gorm:"not null;default:0"`
	Completed      bool  `gorm:"default:false"`
}
