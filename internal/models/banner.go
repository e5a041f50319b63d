package models

import "time"

// Lokasi penempatan banner di storefront.
const (
	BannerHomepage    = "homepage"
	BannerProductPage = "productpage"
)

// ValidBannerLocation reports whether s is a known banner location.
func ValidBannerLocation(s string) bool {
	return s == BannerHomepage || s == BannerProductPage
}

// Banner adalah gambar promosi yang tampil di storefront.
type Banner struct {
	ID        uint   `gorm:"primaryKey"`
	ImageURL  string `gorm:"size:512;not null"`
	ImageKey  string `gorm:"size:255;not null"`
	Location  string `gorm:"size:20;not null;index"`
	IsActive  bool   `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
