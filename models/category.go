package models

import "gorm.io/gorm"

// Category is a top-level subject grouping, e.g. "Derivatives".
type Category struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null;size:100"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	Position    int    `gorm:"not null;default:0"`
	Icon        string `gorm:"size:100"`

	Topics []Topic `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE;"`
}
