package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"macro-news-bot/backend/ai"
	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/pkg/logger"
	"macro-news-bot/backend/pkg/router"
	"macro-news-bot/backend/pkg/upload"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testApp struct {
	router    *router.Router
	db        *gorm.DB
	uploadDir string
}

func newTestApp(t *testing.T, aiURL string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.APIKey{}, &models.NewsMessage{}))

	log := logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})

	uploadDir := filepath.Join(t.TempDir(), "files")
	uploads := upload.NewStore(uploadDir, "/files")

	aiClient := ai.NewClient(aiURL, "test-key", "test-model")

	return &testApp{
		router:    router.New(db, aiClient, uploads, log),
		db:        db,
		uploadDir: uploadDir,
	}
}

func (a *testApp) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.Engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	a.router.Engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: password}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedKey(t *testing.T, db *gorm.DB, key string, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.APIKey{Key: key, ExpiresAt: expiresAt}).Error)
}

func TestNewsEndpoint(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	seedKey(t, app.db, "live-key", time.Now().Add(24*time.Hour))
	seedKey(t, app.db, "stale-key", time.Now().Add(-time.Hour))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"10", "11", "12"} {
		require.NoError(t, app.db.Create(&models.NewsMessage{
			MessageID: id,
			Content:   "news " + id,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	t.Run("missing apiKey", func(t *testing.T) {
		w := app.postJSON(t, "/api/news", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "apiKey required", body["message"])
	})

	t.Run("unknown apiKey", func(t *testing.T) {
		w := app.postJSON(t, "/api/news", gin.H{"apiKey": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid apiKey", body["message"])
	})

	t.Run("valid key lists newest first", func(t *testing.T) {
		w := app.postJSON(t, "/api/news", gin.H{"apiKey": "live-key"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])

		news := body["news"].([]any)
		require.Len(t, news, 3)
		first := news[0].(map[string]any)
		last := news[2].(map[string]any)
		assert.Equal(t, "12", first["messageId"])
		assert.Equal(t, "10", last["messageId"])
	})

	t.Run("expired key still lists", func(t *testing.T) {
		// This path checks key existence only, not expiry
		w := app.postJSON(t, "/api/news", gin.H{"apiKey": "stale-key"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	user := seedUser(t, app.db, "wahyu@example.com", "qwerty")

	t.Run("success", func(t *testing.T) {
		w := app.postJSON(t, "/api/login", gin.H{"email": "wahyu@example.com", "password": "qwerty"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.EqualValues(t, user.ID, body["id"])
	})

	t.Run("wrong password is a 200 with success false", func(t *testing.T) {
		w := app.postJSON(t, "/api/login", gin.H{"email": "wahyu@example.com", "password": "hunter2"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Nil(t, body["id"])
	})

	t.Run("unknown email", func(t *testing.T) {
		w := app.postJSON(t, "/api/login", gin.H{"email": "nobody@example.com", "password": "qwerty"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
	})
}

func TestKeyEndpoint(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	seedKey(t, app.db, "live-key", time.Now().Add(24*time.Hour))
	seedKey(t, app.db, "stale-key", time.Now().Add(-time.Hour))

	t.Run("valid key", func(t *testing.T) {
		w := app.postJSON(t, "/api/key", gin.H{"key": "live-key"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "live-key", body["apiKey"])
	})

	t.Run("expired key is echoed with success false", func(t *testing.T) {
		w := app.postJSON(t, "/api/key", gin.H{"key": "stale-key"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "stale-key", body["apiKey"])
	})

	t.Run("unknown key", func(t *testing.T) {
		w := app.postJSON(t, "/api/key", gin.H{"key": "missing"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.NotContains(t, body, "apiKey")
	})
}

func TestGetUserEndpoint(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	user := seedUser(t, app.db, "wahyu@example.com", "qwerty")

	t.Run("found", func(t *testing.T) {
		w := app.get(t, fmt.Sprintf("/api/user?id=%d", user.ID))
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "wahyu@example.com", body["email"])
		assert.NotContains(t, body, "password")
	})

	t.Run("not found", func(t *testing.T) {
		w := app.get(t, "/api/user?id=9999")
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
	})
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func (a *testApp) postMultipart(t *testing.T, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	a.router.Engine.ServeHTTP(w, req)
	return w
}

func TestUpdateUserEndpoint(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	user := seedUser(t, app.db, "wahyu@example.com", "qwerty")
	seedKey(t, app.db, "live-key", time.Now().Add(24*time.Hour))

	t.Run("missing id", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"email": "x@example.com"}, "", "", "")
		w := app.postMultipart(t, "/api/user", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Id required", decode(t, w)["message"])
	})

	t.Run("no update data", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"id": fmt.Sprint(user.ID)}, "", "", "")
		w := app.postMultipart(t, "/api/user", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No update data provided", decode(t, w)["message"])
	})

	t.Run("unknown user", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"id": "9999", "email": "x@example.com"}, "", "", "")
		w := app.postMultipart(t, "/api/user", body, ct)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decode(t, w)["message"])
	})

	t.Run("email, file and apiKey", func(t *testing.T) {
		fields := map[string]string{
			"id":     fmt.Sprint(user.ID),
			"email":  "updated@example.com",
			"apiKey": "live-key",
		}
		body, ct := multipartBody(t, fields, "file", "avatar.png", "png-bytes")
		w := app.postMultipart(t, "/api/user", body, ct)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode(t, w)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "updated@example.com", resp["email"])
		assert.Equal(t, "live-key", resp["apiKey"])

		image := resp["image"].(string)
		assert.True(t, strings.HasPrefix(image, "/files/avatar-"), "got %q", image)

		// The upload landed on disk under the derived name
		name := strings.TrimPrefix(image, "/files/")
		content, err := os.ReadFile(filepath.Join(app.uploadDir, name))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(content))
	})

	t.Run("password change takes effect", func(t *testing.T) {
		fields := map[string]string{"id": fmt.Sprint(user.ID), "password": "newpass"}
		body, ct := multipartBody(t, fields, "", "", "")
		w := app.postMultipart(t, "/api/user", body, ct)
		require.Equal(t, http.StatusOK, w.Code)

		w = app.postJSON(t, "/api/login", gin.H{"email": "updated@example.com", "password": "newpass"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["success"])

		w = app.postJSON(t, "/api/login", gin.H{"email": "updated@example.com", "password": "qwerty"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

func TestAIProxyEndpoints(t *testing.T) {
	const providerBody = `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`

	var prompts []string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		prompts = append(prompts, string(b))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(providerBody))
	}))
	defer provider.Close()

	app := newTestApp(t, provider.URL)

	t.Run("missing text", func(t *testing.T) {
		w := app.postJSON(t, "/api/macro", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "text required", decode(t, w)["message"])
	})

	t.Run("macro passthrough", func(t *testing.T) {
		w := app.postJSON(t, "/api/macro", gin.H{"text": "rates went up"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, providerBody, w.Body.String())
		assert.Contains(t, prompts[len(prompts)-1], "rates went up")
	})

	t.Run("recommendation passthrough", func(t *testing.T) {
		w := app.postJSON(t, "/api/recommendation", gin.H{"text": "gold is up"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, providerBody, w.Body.String())
		assert.Contains(t, prompts[len(prompts)-1], "gold is up")
	})
}

func TestAIProxyUpstreamFailure(t *testing.T) {
	const errBody = `{"error":{"code":500,"message":"model overloaded"}}`

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(errBody))
	}))
	defer provider.Close()

	app := newTestApp(t, provider.URL)

	w := app.postJSON(t, "/api/macro", gin.H{"text": "rates went up"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, w.Body.String(), "model overloaded")
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	w := app.get(t, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db"])
}
