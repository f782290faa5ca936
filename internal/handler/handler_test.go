package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MilesT98/Actify/internal/api"
	"github.com/MilesT98/Actify/internal/handler"
	"github.com/MilesT98/Actify/internal/services"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

// serveur complet sur store mémoire et photos stubbées
func newTestServer() http.Handler {
	st := store.NewMemoryStore()
	h := handler.New(st, services.NewLocalPhotoStore("http://localhost:8000"))
	return api.SetupRouter(h, st)
}

type apiClient struct {
	t      *testing.T
	server http.Handler
	token  string
}

func (c *apiClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	rec := httptest.NewRecorder()
	c.server.ServeHTTP(rec, req)

	var resp utils.APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func (c *apiClient) doMultipart(path string, fields map[string]string, fileField string) (*httptest.ResponseRecorder, utils.APIResponse) {
	c.t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(c.t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, "photo.jpg")
		require.NoError(c.t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(c.t, err)
	}
	require.NoError(c.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	rec := httptest.NewRecorder()
	c.server.ServeHTTP(rec, req)

	var resp utils.APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

// userID renvoie l'id de l'utilisateur authentifié du client
func (c *apiClient) userID() string {
	c.t.Helper()
	rec, resp := c.do(http.MethodGet, "/api/users/me", nil)
	require.Equal(c.t, http.StatusOK, rec.Code)
	user := dataMap(c.t, resp)["user"].(map[string]interface{})
	return user["id"].(string)
}

// register crée un compte et renvoie un client authentifié
func register(t *testing.T, server http.Handler, username string) *apiClient {
	t.Helper()
	c := &apiClient{t: t, server: server}
	rec, resp := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "hunter2!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := resp.Data.(map[string]interface{})
	c.token = data["token"].(string)
	require.NotEmpty(t, c.token)
	return c
}

func dataMap(t *testing.T, resp utils.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object payload, got %#v", resp.Data)
	return m
}

func TestAuthFlow(t *testing.T) {
	server := newTestServer()

	t.Run("RegisterLoginLogout", func(t *testing.T) {
		alice := register(t, server, "alice")

		// Login avec les mêmes identifiants
		anon := &apiClient{t: t, server: server}
		rec, resp := anon.do(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "alice",
			"password": "hunter2!",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, dataMap(t, resp)["token"])

		// Logout invalide la session
		rec, _ = alice.do(http.MethodPost, "/api/auth/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec, _ = alice.do(http.MethodGet, "/api/users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("DuplicateUsernameRejected", func(t *testing.T) {
		register(t, server, "bob")
		c := &apiClient{t: t, server: server}
		rec, _ := c.do(http.MethodPost, "/api/auth/register", map[string]string{
			"username": "bob",
			"email":    "other@example.com",
			"password": "hunter2!",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("BadPasswordRejected", func(t *testing.T) {
		register(t, server, "carol")
		c := &apiClient{t: t, server: server}
		rec, _ := c.do(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "carol",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MissingTokenRejected", func(t *testing.T) {
		c := &apiClient{t: t, server: server}
		rec, _ := c.do(http.MethodGet, "/api/users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDailyChallengeFlow(t *testing.T) {
	server := newTestServer()
	alice := register(t, server, "alice")
	bob := register(t, server, "bob")

	// alice crée le groupe
	rec, resp := alice.do(http.MethodPost, "/api/groups", map[string]string{
		"name": "Morning Crew",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	group := dataMap(t, resp)
	groupID := group["id"].(string)
	inviteCode := group["inviteCode"].(string)
	require.Len(t, inviteCode, 6)

	// bob rejoint par code d'invitation
	rec, _ = bob.do(http.MethodPost, "/api/groups/join", map[string]string{
		"inviteCode": inviteCode,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Rejoindre deux fois est un conflit
	rec, _ = bob.do(http.MethodPost, "/api/groups/join", map[string]string{
		"inviteCode": inviteCode,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// bob propose une activité
	rec, resp = bob.do(http.MethodPost, "/api/groups/"+groupID+"/activities", map[string]string{
		"title": "Cold shower",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	activityID := dataMap(t, resp)["id"].(string)

	// Tirage du défi du jour
	rec, resp = alice.do(http.MethodPost, "/api/groups/"+groupID+"/select-daily", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, activityID, dataMap(t, resp)["id"].(string))

	// Deuxième tirage le même jour : même activité
	rec, resp = bob.do(http.MethodPost, "/api/groups/"+groupID+"/select-daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, activityID, dataMap(t, resp)["id"].(string))

	// bob soumet sa preuve photo
	rec, resp = bob.doMultipart("/api/activities/"+activityID+"/submissions",
		map[string]string{"caption": "brrr"}, "photo")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	submissionID := dataMap(t, resp)["id"].(string)

	// Doublon refusé
	rec, _ = bob.doMultipart("/api/activities/"+activityID+"/submissions",
		map[string]string{}, "photo")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// alice vote pour la soumission de bob
	rec, resp = alice.do(http.MethodPost, "/api/submissions/"+submissionID+"/vote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	votes := dataMap(t, resp)["votes"].([]interface{})
	assert.Len(t, votes, 1)

	// alice réagit
	rec, _ = alice.do(http.MethodPost, "/api/submissions/"+submissionID+"/react", map[string]string{
		"emoji": "🔥",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Classement du groupe : bob devant grâce au vote
	rec, resp = alice.do(http.MethodGet, "/api/groups/"+groupID+"/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := resp.Data.([]interface{})
	require.Len(t, entries, 2)
	first := entries[0].(map[string]interface{})
	assert.Equal(t, "bob", first["username"])
	assert.Equal(t, float64(1), first["rank"])

	// bob a reçu la notification de vote
	rec, resp = bob.do(http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := resp.Data.([]interface{})
	assert.NotEmpty(t, notifications)

	// Un non-membre ne voit pas le groupe
	mallory := register(t, server, "mallory")
	rec, _ = mallory.do(http.MethodGet, "/api/groups/"+groupID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGroupAdministration(t *testing.T) {
	server := newTestServer()
	alice := register(t, server, "alice")
	bob := register(t, server, "bob")

	rec, resp := alice.do(http.MethodPost, "/api/groups", map[string]string{"name": "Crew"})
	require.Equal(t, http.StatusCreated, rec.Code)
	group := dataMap(t, resp)
	groupID := group["id"].(string)
	inviteCode := group["inviteCode"].(string)

	rec, _ = bob.do(http.MethodPost, "/api/groups/join", map[string]string{"inviteCode": inviteCode})
	require.Equal(t, http.StatusOK, rec.Code)

	bobUserID := bob.userID()
	aliceUserID := alice.userID()

	// bob n'est pas admin : promotion refusée
	rec, _ = bob.do(http.MethodPost, "/api/groups/"+groupID+"/admins/"+bobUserID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// alice promeut bob
	rec, _ = alice.do(http.MethodPost, "/api/groups/"+groupID+"/admins/"+bobUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Promotion en double : conflit
	rec, _ = alice.do(http.MethodPost, "/api/groups/"+groupID+"/admins/"+bobUserID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// alice n'est plus le dernier admin : bob peut la retirer
	rec, _ = bob.do(http.MethodDelete, "/api/groups/"+groupID+"/members/"+aliceUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// bob est maintenant seul admin : se retirer lui-même est refusé
	rec, _ = bob.do(http.MethodDelete, "/api/groups/"+groupID+"/members/"+bobUserID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
