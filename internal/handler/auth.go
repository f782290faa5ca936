package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MilesT98/Actify/internal/logger"
	"github.com/MilesT98/Actify/internal/middleware"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

// SessionDuration durée de validité d'une session (7 jours)
const SessionDuration = 7 * 24 * time.Hour

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// createSession génère un token opaque et persiste la session
func (h *Handler) createSession(r *http.Request, userID string) (string, error) {
	token := uuid.NewString()
	now := time.Now().UTC()

	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(SessionDuration),
		IsActive:  true,
		CreatedAt: now,
	}
	if err := h.store.InsertSession(r.Context(), session); err != nil {
		return "", err
	}
	return token, nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	ctx := r.Context()

	// Unicité du username et de l'email
	if _, err := h.store.GetUserByUsername(ctx, req.Username); err == nil {
		utils.Error(w, http.StatusConflict, "username already registered")
		return
	} else if err != store.ErrNotFound {
		utils.Error(w, http.StatusInternalServerError, "could not check username")
		return
	}
	if _, err := h.store.GetUserByEmail(ctx, req.Email); err == nil {
		utils.Error(w, http.StatusConflict, "email already registered")
		return
	} else if err != store.ErrNotFound {
		utils.Error(w, http.StatusInternalServerError, "could not check email")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	user := &model.UserProfile{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		Interests: []string{},
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := h.store.InsertUser(ctx, user, string(hashed)); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	// Auto-login après inscription
	token, err := h.createSession(r, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	logger.Success("user %s registered", user.Username)
	utils.Created(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	userID, hashedPassword, err := h.store.GetCredentials(ctx, req.Username)
	if err != nil {
		// Même réponse que pour un mauvais mot de passe
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load user")
		return
	}

	token, err := h.createSession(r, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := h.store.DeactivateSession(r.Context(), token); err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "session not found or already logged out")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not logout: "+err.Error())
		return
	}

	utils.Message(w, "logged out")
}
