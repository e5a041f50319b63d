package models

import (
	"strings"
	"time"
)

// Tipe konten promosi.
const (
	ContentBlog         = "blog"
	ContentPromo        = "promo"
	ContentEvent        = "event"
	ContentAnnouncement = "announcement"
)

// ContentTypes lists every valid content type value.
var ContentTypes = []string{ContentBlog, ContentPromo, ContentEvent, ContentAnnouncement}

// ValidContentType reports whether s is a known content type.
func ValidContentType(s string) bool {
	for _, t := range ContentTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Content adalah konten promosi (blog, promo, event, pengumuman).
type Content struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Slug        string `gorm:"size:128;uniqueIndex;not null"`
	Description string `gorm:"type:text;not null"`
	Summary     string `gorm:"size:300"`
	ContentType string `gorm:"size:20;not null;index"`
	ImageURL    string `gorm:"size:512;not null"`
	ImageKey    string `gorm:"size:255"`
	PublishDate time.Time
	ExpiryDate  *time.Time // hanya untuk konten berbatas waktu seperti promo
	IsActive    bool       `gorm:"not null;default:true;index"`
	Tags        string     `gorm:"size:255"` // comma separated
	AuthorID    *uint      `gorm:"index"`    // cleared when the author account is removed
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author Admin `gorm:"constraint:OnDelete:SET NULL"`
}

// Expired reports whether the content has an expiry date in the past.
func (c *Content) Expired(now time.Time) bool {
	return c.ExpiryDate != nil && now.After(*c.ExpiryDate)
}

// TagList splits the stored comma-separated tags.
func (c *Content) TagList() []string {
	if c.Tags == "" {
		return nil
	}
	parts := strings.Split(c.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
