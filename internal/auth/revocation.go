package auth

import (
	"context"
	"log"
	"time"

	"github.com/myutami16/camp-store/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationStore is an expiring set of token strings. A token in the set is
// treated as dead regardless of its signature or expiry. Rows are retained for
// the maximum token lifetime and then swept, so the table stays bounded.
type RevocationStore struct {
	DB        *gorm.DB
	Retention time.Duration
	// CheckTimeout bounds the membership lookup; it sits on every
	// authenticated request's hot path.
	CheckTimeout time.Duration
}

// NewRevocationStore constructs a store; retention <= 0 falls back to 24h.
func NewRevocationStore(db *gorm.DB, retention time.Duration) *RevocationStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &RevocationStore{
		DB:           db,
		Retention:    retention,
		CheckTimeout: 3 * time.Second,
	}
}

// Revoke inserts the token into the set. Revoking a token that is already
// revoked succeeds: logging out twice must not error.
func (s *RevocationStore) Revoke(ctx context.Context, token string) error {
	rec := models.RevokedToken{Token: token}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).Error
}

// IsRevoked reports whether the token has been revoked. Store errors fail
// open: an unreachable blacklist must not lock every admin out.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.CheckTimeout)
	defer cancel()

	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("token = ?", token).
		Count(&count).Error; err != nil {
		log.Printf("revocation check: %v", err)
		return false
	}
	return count > 0
}

// Sweep deletes rows older than the retention window.
func (s *RevocationStore) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-s.Retention)
	return s.DB.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.RevokedToken{}).Error
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (s *RevocationStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Sweep(ctx); err != nil {
					log.Printf("revocation sweep: %v", err)
				}
			}
		}
	}()
}
