package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/myutami16/camp-store/internal/auth"
	"github.com/myutami16/camp-store/internal/config"
	"github.com/myutami16/camp-store/internal/database"
	"github.com/myutami16/camp-store/internal/middleware"
	"github.com/myutami16/camp-store/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUploader stands in for the media store; it remembers deleted keys so
// tests can assert image cleanup.
type fakeUploader struct {
	uploads int
	deleted []string
}

func (f *fakeUploader) Upload(_ context.Context, folder string, body io.Reader, _ int64, _ string) (string, string, error) {
	_, _ = io.Copy(io.Discard, body)
	f.uploads++
	key := fmt.Sprintf("%s/fake-%d", folder, f.uploads)
	return "https://media.test/" + key, key, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type testEnv struct {
	DB     *gorm.DB
	Engine *gin.Engine
	Codec  *auth.TokenCodec
	Store  *auth.RevocationStore
	Media  *fakeUploader
}

// setupEnv builds a full engine with the same middleware wiring as the
// production router, minus rate limiting and CORS.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "handler_test.db"),
		LogMode: false,
	}
	db, err := database.Init(cfg)
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	codec := auth.NewTokenCodec("handler-test-secret", 1)
	store := auth.NewRevocationStore(db, 24*time.Hour)
	gate := auth.NewGate(db, codec, store)
	uploader := &fakeUploader{}

	authHandler := NewAuthHandler(db, codec, store)
	adminHandler := NewAdminHandler(db)
	productHandler := NewProductHandler(db, uploader, nil)
	bannerHandler := NewBannerHandler(db, uploader)
	contentHandler := NewContentHandler(db, uploader)
	statsHandler := NewStatsHandler(db)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/verify", middleware.Auth(gate), authHandler.Verify)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/banners", bannerHandler.List)
	api.GET("/content", contentHandler.List)

	panel := api.Group("/admin", middleware.Auth(gate))
	akun := panel.Group("/akun")
	akun.GET("", middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), adminHandler.List)
	akun.POST("", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.Create)
	akun.PUT("/:id", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.Update)
	akun.DELETE("/:id", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.Delete)
	panel.GET("/stats", middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), statsHandler.Get)

	writeRoles := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)
	panel.POST("/produk", writeRoles, productHandler.Create)
	panel.PUT("/produk/:id", writeRoles, productHandler.Update)
	panel.DELETE("/produk/:id", writeRoles, productHandler.Delete)

	panel.POST("/konten",
		middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor),
		contentHandler.Create)

	panel.POST("/banner", writeRoles, bannerHandler.Create)

	return &testEnv{DB: db, Engine: r, Codec: codec, Store: store, Media: uploader}
}

// seedAdmin creates an account with a bcrypt-hashed password.
func (e *testEnv) seedAdmin(t *testing.T, username, password string, role models.Role) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Name:         username,
		Role:         role,
	}
	if err := e.DB.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

// token issues a session token for the admin.
func (e *testEnv) token(t *testing.T, admin *models.Admin) string {
	t.Helper()
	token, err := e.Codec.Issue(admin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doJSON performs a JSON request, optionally with a bearer token.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Engine.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart form request with optional image file.
func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, imageField string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if imageField != "" {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{
			fmt.Sprintf(`form-data; name=%q; filename="foto.jpg"`, imageField)}
		hdr["Content-Type"] = []string{"image/jpeg"}
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte("jpegdata")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorded response body.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
