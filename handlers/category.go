package handlers

import (
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/calcprep/calcprep-api/models"
	"github.com/calcprep/calcprep-api/utils"
)

type topicSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPremium   bool   `json:"isPremium"`
	Position    int    `json:"position"`
}

type categoryView struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Position    int            `json:"position"`
	Topics      []topicSummary `json:"topics"`
}

// Listings never include lesson bodies, so no policy check is needed here;
// premium flags are exposed so the client can badge locked topics.
func categoryToView(c models.Category) categoryView {
	view := categoryView{
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Position:    c.Position,
		Topics:      make([]topicSummary, 0, len(c.Topics)),
	}
	for _, t := range c.Topics {
		view.Topics = append(view.Topics, topicSummary{
			Slug:        t.Slug,
			Title:       t.Title,
			Description: t.Description,
			IsPremium:   t.IsPremium,
			Position:    t.Position,
		})
	}
	return view
}

func orderByPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}

func (db *DBHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := db.Preload("Topics", orderByPosition).Order("position ASC").Find(&categories).Error; err != nil {
		log.Printf("GetCategories: failed to fetch categories: %v", err)
		http.Error(w, "Failed to fetch categories", http.StatusInternalServerError)
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryToView(c))
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (db *DBHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("categorySlug")
	if slug == "" {
		http.Error(w, "Category slug is required", http.StatusBadRequest)
		return
	}

	var category models.Category
	result := db.Preload("Topics", orderByPosition).Where("slug = ?", slug).First(&category)
	if result.Error != nil {
		log.Printf("GetCategoryBySlug: category not found for slug=%s: %v", slug, result.Error)
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, categoryToView(category))
}
