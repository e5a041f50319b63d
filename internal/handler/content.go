package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myutami16/camp-store/internal/middleware"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ContentHandler melayani konten promosi (blog, promo, event, pengumuman).
type ContentHandler struct {
	DB    *gorm.DB
	Media Uploader
}

func NewContentHandler(db *gorm.DB, media Uploader) *ContentHandler {
	return &ContentHandler{DB: db, Media: media}
}

type contentResp struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Summary     string     `json:"summary"`
	ContentType string     `json:"contentType"`
	ImageURL    string     `json:"image"`
	PublishDate time.Time  `json:"publishDate"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	IsActive    bool       `json:"isActive"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author,omitempty"`
}

func toContentResp(ct *models.Content) contentResp {
	return contentResp{
		ID:          ct.ID,
		Title:       ct.Title,
		Slug:        ct.Slug,
		Description: ct.Description,
		Summary:     ct.Summary,
		ContentType: ct.ContentType,
		ImageURL:    ct.ImageURL,
		PublishDate: ct.PublishDate,
		ExpiryDate:  ct.ExpiryDate,
		IsActive:    ct.IsActive,
		Tags:        ct.TagList(),
		Author:      ct.Author.Username,
	}
}

// makeSlug builds a URL slug from the title with a time-based suffix so two
// posts with the same title never collide.
func makeSlug(title string) string {
	base := slug.Make(title)
	suffix := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return base + "-" + suffix[len(suffix)-6:]
}

// ---------- publik ----------

// List mengembalikan konten aktif dan belum kadaluarsa; filter ?type=.
func (h *ContentHandler) List(c *gin.Context) {
	now := time.Now()
	q := h.DB.Model(&models.Content{}).
		Preload("Author").
		Where("is_active = ?", true).
		Where("expiry_date IS NULL OR expiry_date > ?", now)

	if ct := c.Query("type"); ct != "" {
		if !models.ValidContentType(ct) {
			util.Error(c, http.StatusBadRequest,
				"Tipe konten harus blog, promo, event, atau announcement")
			return
		}
		q = q.Where("content_type = ?", ct)
	}

	var contents []models.Content
	if err := q.Order("publish_date DESC").Find(&contents).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan konten")
		return
	}

	out := make([]contentResp, 0, len(contents))
	for i := range contents {
		out = append(out, toContentResp(&contents[i]))
	}
	util.SuccessList(c, out, len(out))
}

// GetBySlug mengembalikan satu konten aktif berdasarkan slug.
func (h *ContentHandler) GetBySlug(c *gin.Context) {
	s := c.Param("slug")

	var content models.Content
	if err := h.DB.Preload("Author").
		Where("slug = ? AND is_active = ?", s, true).
		First(&content).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Konten tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan konten")
		}
		return
	}

	util.Success(c, toContentResp(&content))
}

// ---------- admin ----------

// ListAll mengembalikan semua konten termasuk yang nonaktif.
func (h *ContentHandler) ListAll(c *gin.Context) {
	q := h.DB.Model(&models.Content{}).Preload("Author")
	if ct := c.Query("type"); ct != "" {
		if !models.ValidContentType(ct) {
			util.Error(c, http.StatusBadRequest,
				"Tipe konten harus blog, promo, event, atau announcement")
			return
		}
		q = q.Where("content_type = ?", ct)
	}

	var contents []models.Content
	if err := q.Order("publish_date DESC").Find(&contents).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan konten")
		return
	}

	out := make([]contentResp, 0, len(contents))
	for i := range contents {
		out = append(out, toContentResp(&contents[i]))
	}
	util.SuccessList(c, out, len(out))
}

// Create menambahkan konten baru dengan upload gambar; slug dibuat dari judul.
func (h *ContentHandler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	summary := strings.TrimSpace(c.PostForm("summary"))
	contentType := c.PostForm("contentType")
	tags := c.PostForm("tags")

	errs := map[string]string{}
	if err := util.ValidateTitle(title); err != nil {
		errs["title"] = "Judul konten harus diisi, maksimal 100 karakter"
	}
	if description == "" {
		errs["description"] = "Deskripsi konten harus diisi"
	} else if len(description) > 5000 {
		errs["description"] = "Deskripsi tidak boleh lebih dari 5000 karakter"
	}
	if len(summary) > 300 {
		errs["summary"] = "Ringkasan tidak boleh lebih dari 300 karakter"
	}
	if !models.ValidContentType(contentType) {
		errs["contentType"] = "Tipe konten harus blog, promo, event, atau announcement"
	}
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	var expiry *time.Time
	if v := c.PostForm("expiryDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Format tanggal kadaluarsa tidak valid")
			return
		}
		expiry = &t
	}

	fh, err := imageFile(c, "image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if fh == nil {
		util.Error(c, http.StatusBadRequest, "Gambar konten harus diisi")
		return
	}

	url, key, err := uploadImage(c, h.Media, "content", fh)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupload gambar")
		return
	}

	identity := middleware.CurrentAdmin(c)
	if identity == nil {
		util.Error(c, http.StatusUnauthorized, "Akses ditolak. Token tidak tersedia")
		return
	}

	content := models.Content{
		Title:       title,
		Slug:        makeSlug(title),
		Description: description,
		Summary:     summary,
		ContentType: contentType,
		ImageURL:    url,
		ImageKey:    key,
		PublishDate: time.Now(),
		ExpiryDate:  expiry,
		IsActive:    true,
		Tags:        tags,
		AuthorID:    &identity.ID,
	}
	if err := h.DB.Create(&content).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal membuat konten")
		return
	}

	util.Created(c, toContentResp(&content))
}

// Update mengubah konten; slug dibuat ulang jika judul berubah.
func (h *ContentHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID konten tidak valid")
		return
	}

	var content models.Content
	if err := h.DB.First(&content, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Konten tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" && title != content.Title {
		if err := util.ValidateTitle(title); err != nil {
			util.Error(c, http.StatusBadRequest, "Judul konten harus diisi, maksimal 100 karakter")
			return
		}
		content.Title = title
		content.Slug = makeSlug(title)
	}
	if v := strings.TrimSpace(c.PostForm("description")); v != "" {
		if len(v) > 5000 {
			util.Error(c, http.StatusBadRequest, "Deskripsi tidak boleh lebih dari 5000 karakter")
			return
		}
		content.Description = v
	}
	if v := strings.TrimSpace(c.PostForm("summary")); v != "" {
		if len(v) > 300 {
			util.Error(c, http.StatusBadRequest, "Ringkasan tidak boleh lebih dari 300 karakter")
			return
		}
		content.Summary = v
	}
	if v := c.PostForm("contentType"); v != "" {
		if !models.ValidContentType(v) {
			util.Error(c, http.StatusBadRequest,
				"Tipe konten harus blog, promo, event, atau announcement")
			return
		}
		content.ContentType = v
	}
	if v := c.PostForm("tags"); v != "" {
		content.Tags = v
	}
	if v := c.PostForm("isActive"); v != "" {
		content.IsActive = v == "true"
	}
	if v := c.PostForm("expiryDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Format tanggal kadaluarsa tidak valid")
			return
		}
		content.ExpiryDate = &t
	}

	fh, err := imageFile(c, "image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if fh != nil {
		url, key, err := uploadImage(c, h.Media, "content", fh)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Gagal mengupdate gambar konten")
			return
		}
		if content.ImageKey != "" {
			if err := h.Media.Delete(c.Request.Context(), content.ImageKey); err != nil {
				log.Printf("delete old content image: %v", err)
			}
		}
		content.ImageURL = url
		content.ImageKey = key
	}

	if err := h.DB.Save(&content).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupdate konten")
		return
	}

	util.Success(c, toContentResp(&content))
}

// Delete menghapus konten beserta gambarnya.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID konten tidak valid")
		return
	}

	var content models.Content
	if err := h.DB.First(&content, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Konten tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	if content.ImageKey != "" {
		if err := h.Media.Delete(c.Request.Context(), content.ImageKey); err != nil {
			log.Printf("delete content image: %v", err)
		}
	}

	if err := h.DB.Delete(&content).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal menghapus konten")
		return
	}

	util.Message(c, "Konten berhasil dihapus")
}
