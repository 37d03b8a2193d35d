package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleFree    Role = "free"
	RolePremium Role = "premium"
)

// User is an identity record. Role is derived from billing state: it moves
// to premium on a confirmed payment and back to free on cancellation or
// expiry, always through the billing event handler. StripeCustomerID is
// written exactly once, after the provider confirms customer creation.
// LastBillingEventAt is the optimistic lock that keeps out-of-order webhook
// deliveries from clobbering newer state.
type User struct {
	gorm.Model
	Email              string     `gorm:"unique;not null;size:255"`
	Name               string     `gorm:"size:100"`
	Role               Role       `gorm:"not null;default:free;size:20"`
	StripeCustomerID   *string    `gorm:"uniqueIndex;size:100"`
	LastBillingEventAt *time.Time `gorm:"default:null"`

	LearningPath *LearningPath `gorm:"foreignKey:UserID"`
}
