package handler

import (
	"net/http"

	"github.com/myutami16/camp-store/internal/middleware"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler melayani ringkasan dashboard admin.
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// Get mengembalikan jumlah produk dan konten; super-admin juga mendapat
// jumlah admin per role.
func (h *StatsHandler) Get(c *gin.Context) {
	var totalProducts, totalContents int64
	if err := h.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data statistik admin")
		return
	}
	if err := h.DB.Model(&models.Content{}).Count(&totalContents).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data statistik admin")
		return
	}

	data := gin.H{
		"totalProducts": totalProducts,
		"totalContents": totalContents,
	}

	if identity := middleware.CurrentAdmin(c); identity != nil && identity.Role == models.RoleSuperAdmin {
		var totalAdmins int64
		if err := h.DB.Model(&models.Admin{}).Count(&totalAdmins).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data statistik admin")
			return
		}

		type roleCount struct {
			Role  models.Role
			Count int64
		}
		var rows []roleCount
		if err := h.DB.Model(&models.Admin{}).
			Select("role, COUNT(*) as count").
			Group("role").
			Scan(&rows).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data statistik admin")
			return
		}

		byRole := map[models.Role]int64{}
		for _, r := range rows {
			byRole[r.Role] = r.Count
		}

		data["totalAdmins"] = totalAdmins
		data["adminRoleStats"] = byRole
	}

	util.Success(c, data)
}
