package models

import "time"

// Kategori produk yang tersedia di toko.
const (
	CategoryTenda       = "Tenda"
	CategorySleepingBag = "Sleeping Bag"
	CategoryCookingSet  = "Cooking Set"
	CategoryLighting    = "Peralatan Penerangan"
	CategoryAccessory   = "Aksesoris"
	CategorySafety      = "Perlengkapan Keselamatan"
	CategoryOther       = "Lainnya"
)

// ProductCategories lists every valid category value.
var ProductCategories = []string{
	CategoryTenda,
	CategorySleepingBag,
	CategoryCookingSet,
	CategoryLighting,
	CategoryAccessory,
	CategorySafety,
	CategoryOther,
}

// ValidCategory reports whether s is a known product category.
func ValidCategory(s string) bool {
	for _, c := range ProductCategories {
		if c == s {
			return true
		}
	}
	return false
}

// Product adalah item katalog, bisa disewa dan/atau dijual.
// Invariant: IsForRent || IsForSale.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;not null;index"`
	Description string `gorm:"type:text;not null"`
	Price       int64  `gorm:"not null"` // rupiah
	Stock       int    `gorm:"not null"`
	IsForRent   bool   `gorm:"not null;default:false"`
	IsForSale   bool   `gorm:"not null;default:true"`
	Category    string `gorm:"size:40;not null;index"`
	ImageURL    string `gorm:"size:512;not null"`
	ImageKey    string `gorm:"size:255"` // object key di media storage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
