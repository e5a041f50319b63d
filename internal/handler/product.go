package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ProductHandler melayani katalog produk: listing publik dan CRUD admin.
type ProductHandler struct {
	DB         *gorm.DB
	Media      Uploader
	Revalidate Revalidator
	PageSize   int
}

func NewProductHandler(db *gorm.DB, media Uploader, reval Revalidator) *ProductHandler {
	return &ProductHandler{
		DB:         db,
		Media:      media,
		Revalidate: reval,
		PageSize:   20,
	}
}

type productResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"namaProduk"`
	Description string    `json:"deskripsi"`
	Price       int64     `json:"harga"`
	Stock       int       `json:"stok"`
	IsForRent   bool      `json:"isForRent"`
	IsForSale   bool      `json:"isForSale"`
	Category    string    `json:"kategori"`
	ImageURL    string    `json:"gambar"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProductResp(p *models.Product) productResp {
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsForRent:   p.IsForRent,
		IsForSale:   p.IsForSale,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// fireRevalidation nudges the storefront after a catalog mutation. Cache
// refresh is best effort and never fails the admin request.
func (h *ProductHandler) fireRevalidation(c *gin.Context, paths ...string) {
	if h.Revalidate == nil {
		return
	}
	if err := h.Revalidate.Fire(c.Request.Context(), append([]string{"/produk"}, paths...), []string{"products"}); err != nil {
		log.Printf("revalidate products: %v", err)
	}
}

// ---------- listing publik ----------

// List mengembalikan produk dengan filter ?kategori=, ?type=sewa|jual, ?q=.
func (h *ProductHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Product{})

	if kategori := c.Query("kategori"); kategori != "" {
		if !models.ValidCategory(kategori) {
			util.Error(c, http.StatusBadRequest,
				fmt.Sprintf("Kategori %s tidak tersedia", kategori))
			return
		}
		q = q.Where("category = ?", kategori)
	}

	switch c.Query("type") {
	case "":
	case "sewa":
		q = q.Where("is_for_rent = ?", true)
	case "jual":
		q = q.Where("is_for_sale = ?", true)
	default:
		util.Error(c, http.StatusBadRequest, "Tipe harus sewa atau jual")
		return
	}

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data produk")
		return
	}

	var products []models.Product
	if err := q.Order("created_at DESC").
		Limit(h.PageSize).
		Offset((page - 1) * h.PageSize).
		Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data produk")
		return
	}

	out := make([]productResp, 0, len(products))
	for i := range products {
		out = append(out, toProductResp(&products[i]))
	}
	util.SuccessList(c, out, int(total))
}

// Get mengembalikan satu produk.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID produk tidak valid")
		return
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Produk tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data produk")
		}
		return
	}

	util.Success(c, toProductResp(&product))
}

// ---------- CRUD admin ----------

// parseProductForm reads the multipart fields shared by create and update.
func parseProductForm(c *gin.Context) (name, desc, kategori string, price int64, stock int, isForRent, isForSale string, errs map[string]string) {
	errs = map[string]string{}

	name = strings.TrimSpace(c.PostForm("namaProduk"))
	desc = strings.TrimSpace(c.PostForm("deskripsi"))
	kategori = c.PostForm("kategori")
	isForRent = c.DefaultPostForm("isForRent", "")
	isForSale = c.DefaultPostForm("isForSale", "")

	if v := c.PostForm("harga"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil || util.ValidatePrice(p) != nil {
			errs["harga"] = "Harga tidak boleh negatif"
		} else {
			price = p
		}
	}
	if v := c.PostForm("stok"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || util.ValidateStock(s) != nil {
			errs["stok"] = "Stok tidak boleh negatif"
		} else {
			stock = s
		}
	}
	if kategori != "" && !models.ValidCategory(kategori) {
		errs["kategori"] = fmt.Sprintf("Kategori %s tidak tersedia", kategori)
	}
	return
}

// Create menambahkan produk baru dengan upload gambar.
func (h *ProductHandler) Create(c *gin.Context) {
	name, desc, kategori, price, stock, isForRent, isForSale, errs := parseProductForm(c)

	if name == "" {
		errs["namaProduk"] = "Nama produk wajib diisi"
	}
	if desc == "" {
		errs["deskripsi"] = "Deskripsi produk wajib diisi"
	}
	if kategori == "" {
		errs["kategori"] = "Kategori produk wajib diisi"
	}
	if c.PostForm("harga") == "" {
		errs["harga"] = "Harga produk wajib diisi"
	}
	if c.PostForm("stok") == "" {
		errs["stok"] = "Stok produk wajib diisi"
	}
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	rent := isForRent == "true"
	sale := isForSale != "false" // default jual
	if !rent && !sale {
		util.Error(c, http.StatusBadRequest, "Produk harus bisa disewa atau dijual")
		return
	}

	fh, err := imageFile(c, "gambar")
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if fh == nil {
		util.Error(c, http.StatusBadRequest, "Field 'gambar' (file) tidak ditemukan dalam request")
		return
	}

	url, key, err := uploadImage(c, h.Media, "products", fh)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupload gambar")
		return
	}

	product := models.Product{
		Name:        name,
		Description: desc,
		Price:       price,
		Stock:       stock,
		IsForRent:   rent,
		IsForSale:   sale,
		Category:    kategori,
		ImageURL:    url,
		ImageKey:    key,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal membuat produk")
		return
	}

	h.fireRevalidation(c)
	util.Created(c, toProductResp(&product))
}

// Update mengubah field produk; semua field opsional, gambar baru
// menggantikan gambar lama di media storage.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID produk tidak valid")
		return
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Produk tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	name, desc, kategori, price, stock, isForRent, isForSale, errs := parseProductForm(c)
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	if name != "" {
		product.Name = name
	}
	if desc != "" {
		product.Description = desc
	}
	if kategori != "" {
		product.Category = kategori
	}
	if c.PostForm("harga") != "" {
		product.Price = price
	}
	if c.PostForm("stok") != "" {
		product.Stock = stock
	}
	if isForRent != "" {
		product.IsForRent = isForRent == "true"
	}
	if isForSale != "" {
		product.IsForSale = isForSale == "true"
	}

	if !product.IsForRent && !product.IsForSale {
		util.Error(c, http.StatusBadRequest, "Produk harus bisa disewa atau dijual")
		return
	}

	fh, err := imageFile(c, "gambar")
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if fh != nil {
		url, key, err := uploadImage(c, h.Media, "products", fh)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Gagal mengupdate gambar produk")
			return
		}
		if product.ImageKey != "" {
			if err := h.Media.Delete(c.Request.Context(), product.ImageKey); err != nil {
				log.Printf("delete old product image: %v", err)
			}
		}
		product.ImageURL = url
		product.ImageKey = key
	}

	if err := h.DB.Save(&product).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengupdate produk")
		return
	}

	h.fireRevalidation(c, fmt.Sprintf("/produk/%d", product.ID))
	util.Success(c, toProductResp(&product))
}

// Delete menghapus produk beserta gambarnya di media storage.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID produk tidak valid")
		return
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Produk tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		return
	}

	if product.ImageKey != "" {
		if err := h.Media.Delete(c.Request.Context(), product.ImageKey); err != nil {
			log.Printf("delete product image: %v", err)
		}
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal menghapus produk")
		return
	}

	h.fireRevalidation(c)
	util.Message(c, "Produk berhasil dihapus")
}

// ExportXLSX mengekspor seluruh katalog ke file Excel.
func (h *ProductHandler) ExportXLSX(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mendapatkan data produk")
		return
	}

	f := excelize.NewFile()
	sheetName := "Katalog"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal membuat file ekspor")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Nama Produk", "Kategori", "Harga", "Stok", "Sewa", "Jual", "Dibuat"}
	for i, head := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, p := range products {
		row := idx + 2
		sewa := "tidak"
		if p.IsForRent {
			sewa = "ya"
		}
		jual := "tidak"
		if p.IsForSale {
			jual = "ya"
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Stock)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), sewa)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), jual)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.CreatedAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "F", 8)
	f.SetColWidth(sheetName, "G", "G", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"produk_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengekspor produk")
	}
}
