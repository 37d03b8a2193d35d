package handlers

import (
	"gorm.io/gorm"

	"github.com/calcprep/calcprep-api/billing"
)

// DBHandler bundles the persistence handle with the billing collaborators
// the checkout and webhook endpoints need.
type DBHandler struct {
	*gorm.DB
	Billing *billing.Manager
	Events  billing.EventSource
}
