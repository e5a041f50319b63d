package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BannerHandler melayani banner promosi storefront.
type BannerHandler struct {
	DB    *gorm.DB
	Media Uploader
}

func NewBannerHandler(db *gorm.DB, media Uploader) *BannerHandler {
	return &BannerHandler{DB: db, Media: media}
}

type bannerResp struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"image"`
	Location string `json:"location"`
	IsActive bool   `json:"isActive"`
}

func toBannerResp(b *models.Banner) bannerResp {
	return bannerResp{
		ID:       b.ID,
		ImageURL: b.ImageURL,
		Location: b.Location,
		IsActive: b.IsActive,
	}
}

// List mengembalikan banner aktif; filter ?location=.
func (h *BannerHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Banner{}).Where("is_active = ?", true)

	if loc := c.Query("location"); loc != "" {
		if !models.ValidBannerLocation(loc) {
			util.Error(c, http.StatusBadRequest, "Lokasi harus homepage atau productpage")
			return
		}
		q = q.Where("location = ?", loc)
	}

	var banners []models.Banner
	if err := q.Order("created_at DESC").Find(&banners).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan banner")
		return
	}

	out := make([]bannerResp, 0, len(banners))
	for i := range banners {
		out = append(out, toBannerResp(&banners[i]))
	}
	util.SuccessList(c, out, len(out))
}

// ListAll mengembalikan semua banner untuk admin, termasuk nonaktif.
func (h *BannerHandler) ListAll(c *gin.Context) {
	var banners []models.Banner
	if err := h.DB.Order("created_at DESC").Find(&banners).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan banner")
		return
	}

	out := make([]bannerResp, 0, len(banners))
	for i := range banners {
		out = append(out, toBannerResp(&banners[i]))
	}
	util.SuccessList(c, out, len(out))
}

// Create menambahkan banner baru dengan upload gambar.
func (h *BannerHandler) Create(c *gin.Context) {
	location := c.PostForm("location")
	if !models.ValidBannerLocation(location) {
		util.Error(c, http.StatusBadRequest, "Lokasi harus homepage atau productpage")
		return
	}

	fh, err := imageFile(c, "image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if fh == nil {
		util.Error(c, http.StatusBadRequest, "Gambar banner harus diisi")
		return
	}

	url, key, err := uploadImage(c, h.Media, "banners", fh)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupload gambar")
		return
	}

	banner := models.Banner{
		ImageURL: url,
		ImageKey: key,
		Location: location,
		IsActive: true,
	}
	if err := h.DB.Create(&banner).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal membuat banner")
		return
	}

	util.Created(c, toBannerResp(&banner))
}

// Update mengubah lokasi, status aktif atau gambar banner.
func (h *BannerHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID banner tidak valid")
		return
	}

	var banner models.Banner
	if err := h.DB.First(&banner, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Banner tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	if loc := c.PostForm("location"); loc != "" {
		if !models.ValidBannerLocation(loc) {
			util.Error(c, http.StatusBadRequest, "Lokasi harus homepage atau productpage")
			return
		}
		banner.Location = loc
	}
	if v := c.PostForm("isActive"); v != "" {
		banner.IsActive = v == "true"
	}

	fh, err := imageFile(c, "image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if fh != nil {
		url, key, err := uploadImage(c, h.Media, "banners", fh)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Gagal mengupdate gambar banner")
			return
		}
		if banner.ImageKey != "" {
			if err := h.Media.Delete(c.Request.Context(), banner.ImageKey); err != nil {
				log.Printf("delete old banner image: %v", err)
			}
		}
		banner.ImageURL = url
		banner.ImageKey = key
	}

	if err := h.DB.Save(&banner).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupdate banner")
		return
	}

	util.Success(c, toBannerResp(&banner))
}

// Delete menghapus banner beserta gambarnya.
func (h *BannerHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID banner tidak valid")
		return
	}

	var banner models.Banner
	if err := h.DB.First(&banner, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Banner tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	if banner.ImageKey != "" {
		if err := h.Media.Delete(c.Request.Context(), banner.ImageKey); err != nil {
			log.Printf("delete banner image: %v", err)
		}
	}

	if err := h.DB.Delete(&banner).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal menghapus banner")
		return
	}

	util.Message(c, "Banner berhasil dihapus")
}
