package middleware

import (
	"context"
	"log"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"gorm.io/gorm"

	"github.com/calcprep/calcprep-api/auth"
	"github.com/calcprep/calcprep-api/config"
	"github.com/calcprep/calcprep-api/models"
)

type contextKey string

const userKey contextKey = "user"

// WithUser attaches a resolved user to the context. Exported so handler
// tests can establish identity without running the full middleware chain.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the signed-in user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// identityFromRequest extracts the caller's email and display name from
// either a validated Auth0 bearer token or the first-party session cookie.
// An empty email means anonymous.
func identityFromRequest(r *http.Request) (email, name string) {
	if claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims); ok {
		if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil && custom.Email != "" {
			return custom.Email, custom.Nickname
		}
	}

	cookie, err := r.Cookie("session_token")
	if err != nil {
		return "", ""
	}
	email, err = auth.ParseToken(cookie.Value)
	if err != nil {
		log.Printf("identityFromRequest: invalid session cookie: %v", err)
		return "", ""
	}
	return email, ""
}

// ResolveUser ensures the authenticated user exists in the DB and attaches
// it to the request context. First sign-in creates the user as free along
// with their learning path. Anonymous requests continue with no user.
func ResolveUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, name := identityFromRequest(r)
		if email == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := FindOrCreateUser(config.Database, email, name)
		if err != nil {
			http.Error(w, "Failed to resolve user", http.StatusInternalServerError)
			log.Println("ResolveUser: database error:", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireUser is ResolveUser for endpoints that need an identity; anonymous
// requests get 401.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return ResolveUser(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FindOrCreateUser loads the user record for an email, creating it (with
// its learning path) on first sign-in. The display name is refreshed when
// the identity provider reports a new non-empty one.
func FindOrCreateUser(db *gorm.DB, email, name string) (*models.User, error) {
	var user models.User
	result := db.Where("email = ?", email).First(&user)

	if result.Error != nil {
		user = models.User{
			Email: email,
			Name:  name,
			Role:  models.RoleFree,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.LearningPath{UserID: user.ID}).Error
		})
		if err != nil {
			return nil, err
		}
		log.Printf("Created new user: %s\n", user.Email)
		return &user, nil
	}

	// User exists, update name only if non-empty and changed
	if name != "" && user.Name != name {
		user.Name = name
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
		log.Printf("Updated user name: %s\n", user.Email)
	}

	return &user, nil
}
