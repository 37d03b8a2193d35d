package handlers

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/calcprep/calcprep-api/access"
	"github.com/calcprep/calcprep-api/content"
	"github.com/calcprep/calcprep-api/middleware"
	"github.com/calcprep/calcprep-api/models"
	"github.com/calcprep/calcprep-api/utils"
)

type problemView struct {
	PublicID       string            `json:"publicId"`
	Question       string            `json:"question"`
	Solution       string            `json:"solution,omitempty"`
	SolutionLocked bool              `json:"solutionLocked"`
	Difficulty     models.Difficulty `json:"difficulty"`
	IsPremium      bool              `json:"isPremium"`
}

type flashcardView struct {
	PublicID  string `json:"publicId"`
	Front     string `json:"front"`
	Back      string `json:"back,omitempty"`
	Hint      string `json:"hint,omitempty"`
	Locked    bool   `json:"locked"`
	IsPremium bool   `json:"isPremium"`
}

type topicView struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	IsPremium   bool               `json:"isPremium"`
	Locked      bool               `json:"locked"`
	Body        string             `json:"body,omitempty"`
	Blocks      []content.Rendered `json:"blocks,omitempty"`
	VideoURL    string             `json:"videoUrl,omitempty"`
	Problems    []problemView      `json:"problems,omitempty"`
	Flashcards  []flashcardView    `json:"flashcards,omitempty"`
}

// GetTopicBySlug is the content presenter for a single lesson. The policy
// runs once against the topic's own flag and then independently against
// each nested problem and flashcard: an unlocked topic can still carry
// locked solutions, and only the fields the policy allows are ever
// serialized. Fetch failures other than a missing slug fail closed.
func (db *DBHandler) GetTopicBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("topicSlug")
	if slug == "" {
		http.Error(w, "Topic slug is required", http.StatusBadRequest)
		return
	}

	var topic models.Topic
	err := db.
		Preload("Problems", orderByPosition).
		Preload("Flashcards").
		Preload("Category").
		Where("slug = ?", slug).
		First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Topic not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("GetTopicBySlug: failed to fetch topic %s: %v", slug, err)
		http.Error(w, "Failed to fetch topic", http.StatusInternalServerError)
		return
	}

	role := access.RoleFor(middleware.UserFromContext(r.Context()))

	view := topicView{
		Slug:        topic.Slug,
		Title:       topic.Title,
		Description: topic.Description,
		Category:    topic.Category.Slug,
		IsPremium:   topic.IsPremium,
	}

	if !access.Decide(role, topic.IsPremium).Allowed() {
		// Paywall: metadata only. Body, problems and flashcards are never
		// put on the wire for a denied topic.
		view.Locked = true
		utils.WriteJSON(w, http.StatusOK, view)
		return
	}

	view.Body = topic.Body
	view.Blocks = content.RenderAll(content.Parse(topic.Body))
	view.VideoURL = topic.VideoURL

	view.Problems = make([]problemView, 0, len(topic.Problems))
	for _, p := range topic.Problems {
		pv := problemView{
			PublicID:   p.PublicID,
			Question:   p.Question,
			Difficulty: p.Difficulty,
			IsPremium:  p.IsPremium,
		}
		// Questions are open once the topic is; the solution is the gated
		// sub-resource.
		if access.Decide(role, p.IsPremium).Allowed() {
			pv.Solution = p.Solution
		} else {
			pv.SolutionLocked = true
		}
		view.Problems = append(view.Problems, pv)
	}

	view.Flashcards = make([]flashcardView, 0, len(topic.Flashcards))
	for _, f := range topic.Flashcards {
		fv := flashcardView{
			PublicID:  f.PublicID,
			Front:     f.Front,
			IsPremium: f.IsPremium,
		}
		if access.Decide(role, f.IsPremium).Allowed() {
			fv.Back = f.Back
			fv.Hint = f.Hint
		} else {
			fv.Locked = true
		}
		view.Flashcards = append(view.Flashcards, fv)
	}

	utils.WriteJSON(w, http.StatusOK, view)
}
