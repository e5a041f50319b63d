package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/myutami16/camp-store/internal/middleware"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// AdminHandler melayani manajemen akun admin (khusus super-admin).
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

type createAdminReq struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

type updateAdminReq struct {
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

// validateAdminInput checks account fields; create requires username and
// password, update only validates what is present.
func validateAdminInput(username, password, name string, role models.Role, isCreate bool) map[string]string {
	errors := map[string]string{}

	if isCreate {
		if err := util.ValidateUsername(username, 4); err != nil {
			errors["username"] = "Username minimal 4 karakter"
		}
	}
	if isCreate || password != "" {
		if err := util.ValidatePassword(password, 6); err != nil {
			errors["password"] = "Password minimal 6 karakter"
		}
	}
	if isCreate && name == "" {
		errors["name"] = "Nama wajib diisi"
	}
	if role != "" && !models.ValidRole(role) {
		errors["role"] = "Role tidak valid"
	}

	return errors
}

// List mengembalikan semua admin, atau satu admin via ?id=.
func (h *AdminHandler) List(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, "ID admin tidak valid")
			return
		}
		var admin models.Admin
		if err := h.DB.First(&admin, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusNotFound, "Admin tidak ditemukan")
			} else {
				util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
			}
			return
		}
		util.Success(c, adminPayload(&admin))
		return
	}

	var admins []models.Admin
	if err := h.DB.Order("created_at ASC").Find(&admins).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		return
	}

	out := make([]gin.H, 0, len(admins))
	for i := range admins {
		p := adminPayload(&admins[i])
		p["created_at"] = admins[i].CreatedAt
		p["last_login_at"] = admins[i].LastLoginAt
		out = append(out, p)
	}
	util.SuccessList(c, out, len(out))
}

// Create menambahkan akun admin baru.
func (h *AdminHandler) Create(c *gin.Context) {
	var req createAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if errs := validateAdminInput(req.Username, req.Password, req.Name, req.Role, true); len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	var count int64
	if err := h.DB.Model(&models.Admin{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, "Username sudah digunakan")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	admin := models.Admin{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal membuat admin")
		return
	}

	util.Created(c, adminPayload(&admin))
}

// Update mengubah nama, role atau password admin.
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID admin wajib disertakan")
		return
	}

	var admin models.Admin
	if err := h.DB.First(&admin, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Admin tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	var req updateAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}

	if errs := validateAdminInput("", req.Password, req.Name, req.Role, false); len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Role != "" {
		admin.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
			return
		}
		admin.PasswordHash = string(hash)
	}

	if err := h.DB.Save(&admin).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupdate admin")
		return
	}

	util.Success(c, adminPayload(&admin))
}

// Delete menghapus akun admin lain; akun sendiri tidak bisa dihapus.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID admin wajib disertakan")
		return
	}

	var admin models.Admin
	if err := h.DB.First(&admin, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Admin tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	if identity := middleware.CurrentAdmin(c); identity != nil && identity.ID == admin.ID {
		util.Error(c, http.StatusBadRequest, "Tidak dapat menghapus akun sendiri")
		return
	}

	if err := h.DB.Delete(&admin).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal menghapus admin")
		return
	}

	util.Message(c, "Admin berhasil dihapus")
}
