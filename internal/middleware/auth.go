package middleware

import (
	"context"
	"fmt"
	"net/http"

	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// Auth valide le token du header Authorization contre les sessions du
// store et injecte l'utilisateur dans le contexte de la requête
func Auth(st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := utils.GetToken(r)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			user, err := st.GetUserByToken(r.Context(), token)
			if err != nil {
				if err == store.ErrNotFound {
					utils.Error(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				utils.Error(w, http.StatusInternalServerError, "could not validate token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, *user)
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}
