package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/calcprep/calcprep-api/auth"
	"github.com/calcprep/calcprep-api/config"
	"github.com/calcprep/calcprep-api/middleware"
	"github.com/calcprep/calcprep-api/models"
	"github.com/calcprep/calcprep-api/utils"
)

type userView struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// CreateSession signs a user in with a first-party session cookie, creating
// the account (and its learning path) on first use.
func (db *DBHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		http.Error(w, "A valid email is required", http.StatusBadRequest)
		return
	}

	user, err := middleware.FindOrCreateUser(db.DB, req.Email, req.Name)
	if err != nil {
		log.Println("CreateSession: database error:", err)
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	tokenString, err := auth.CreateToken(user.Email)
	if err != nil {
		log.Println("CreateSession: token generation error:", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    tokenString,
		Path:     "/",
		Domain:   config.Env.Domain,
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	utils.WriteJSON(w, http.StatusOK, userView{Email: user.Email, Name: user.Name, Role: user.Role})
}

func (db *DBHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	utils.WriteJSON(w, http.StatusOK, userView{Email: user.Email, Name: user.Name, Role: user.Role})
}

type learningPathEntryView struct {
	TopicSlug  string `json:"topicSlug"`
	TopicTitle string `json:"topicTitle"`
	Position   int    `json:"position"`
	Completed  bool   `json:"completed"`
}

func (db *DBHandler) GetLearningPath(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var path models.LearningPath
	err := db.Preload("Entries", orderByPosition).Preload("Entries.Topic").
		Where("user_id = ?", user.ID).First(&path).Error
	if err != nil {
		log.Printf("GetLearningPath: path not found for user %d: %v", user.ID, err)
		http.Error(w, "Learning path not found", http.StatusNotFound)
		return
	}

	entries := make([]learningPathEntryView, 0, len(path.Entries))
	for _, e := range path.Entries {
		entries = append(entries, learningPathEntryView{
			TopicSlug:  e.Topic.Slug,
			TopicTitle: e.Topic.Title,
			Position:   e.Position,
			Completed:  e.Completed,
		})
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}
