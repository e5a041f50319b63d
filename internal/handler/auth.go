package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/myutami16/camp-store/internal/auth"
	"github.com/myutami16/camp-store/internal/middleware"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler melayani login, logout dan verifikasi sesi.
type AuthHandler struct {
	DB         *gorm.DB
	Codec      *auth.TokenCodec
	Revocation *auth.RevocationStore
}

func NewAuthHandler(db *gorm.DB, codec *auth.TokenCodec, revocation *auth.RevocationStore) *AuthHandler {
	return &AuthHandler{
		DB:         db,
		Codec:      codec,
		Revocation: revocation,
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// validateLoginInput mirrors the storefront form rules: username min 6,
// password min 8.
func validateLoginInput(username, password string) map[string]string {
	errors := map[string]string{}
	if username == "" {
		errors["username"] = "Username wajib diisi"
	} else if len(username) < 6 {
		errors["username"] = "Username minimal 6 karakter"
	}
	if password == "" {
		errors["password"] = "Password wajib diisi"
	} else if len(password) < 8 {
		errors["password"] = "Password minimal 8 karakter"
	}
	return errors
}

// adminPayload is the admin record as exposed to clients. The password hash
// never appears in any response.
func adminPayload(a *models.Admin) gin.H {
	return gin.H{
		"id":       a.ID,
		"username": a.Username,
		"name":     a.Name,
		"role":     a.Role,
	}
}

// Login memeriksa kredensial dan menerbitkan token sesi.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if errs := validateLoginInput(req.Username, req.Password); len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	var admin models.Admin
	if err := h.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// same message as a wrong password, never reveal which it was
			util.Error(c, http.StatusUnauthorized, "Username atau password salah")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat login")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, "Username atau password salah")
		return
	}

	now := time.Now()
	admin.LastLoginAt = &now
	_ = h.DB.Save(&admin).Error

	token, err := h.Codec.Issue(&admin)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat login")
		return
	}

	util.Success(c, gin.H{
		"token": token,
		"admin": adminPayload(&admin),
	})
}

// Logout memasukkan token ke blacklist. Mengulang logout dengan token yang
// sama tetap sukses.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		util.Error(c, http.StatusUnauthorized, "Akses ditolak. Token tidak tersedia")
		return
	}

	if err := h.Revocation.Revoke(c.Request.Context(), token); err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat logout")
		return
	}

	util.Message(c, "Logout berhasil")
}

// Verify mengembalikan data admin untuk token yang masih berlaku.
// Runs behind the auth middleware, so the gate has already resolved identity.
func (h *AuthHandler) Verify(c *gin.Context) {
	identity := middleware.CurrentAdmin(c)
	if identity == nil {
		util.Error(c, http.StatusUnauthorized, "Akses ditolak. Token tidak tersedia")
		return
	}

	util.Success(c, gin.H{
		"admin": gin.H{
			"id":       identity.ID,
			"username": identity.Username,
			"name":     identity.Name,
			"role":     identity.Role,
		},
	})
}
