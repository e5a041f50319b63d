package models

import "time"

// RevokedToken stores tokens invalidated before their natural expiry (logout).
// Rows older than the retention window are removed by the revocation sweeper.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"type:text;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"index"`
}
