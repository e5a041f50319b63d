package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/myutami16/camp-store/internal/models"

	"gorm.io/gorm"
)

// FailReason classifies why authentication was refused.
type FailReason string

const (
	ReasonMissing  FailReason = "missing"   // no usable bearer token
	ReasonRevoked  FailReason = "revoked"   // token on the blacklist
	ReasonInvalid  FailReason = "invalid"   // bad signature, malformed, expired
	ReasonNotFound FailReason = "not_found" // admin deleted after token issuance
	ReasonTimeout  FailReason = "timeout"   // admin lookup exceeded its bound
	ReasonInternal FailReason = "internal"  // directory error other than a deadline
)

// Identity is the authenticated admin exposed to downstream handlers.
// The password hash never leaves the gate.
type Identity struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

// Failure is a fully resolved refusal: a reason, the HTTP status it maps to
// and the message shown to the client. Credential failures intentionally share
// one generic message so the response does not reveal which check failed.
type Failure struct {
	Reason  FailReason
	Status  int
	Message string
}

// Gate combines the token codec, the revocation store and the admin directory
// into a single authenticate step.
type Gate struct {
	DB         *gorm.DB
	Codec      *TokenCodec
	Revocation *RevocationStore
	// LookupTimeout bounds the admin-record fetch, separate from "not found":
	// a slow directory maps to 504, a deleted admin to 404.
	LookupTimeout time.Duration
}

// NewGate constructs a gate with the default 5s admin-lookup bound.
func NewGate(db *gorm.DB, codec *TokenCodec, revocation *RevocationStore) *Gate {
	return &Gate{
		DB:            db,
		Codec:         codec,
		Revocation:    revocation,
		LookupTimeout: 5 * time.Second,
	}
}

// BearerToken extracts the token from an Authorization header value.
// Returns "" if the header is absent or not a bearer scheme.
func BearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate resolves the Authorization header to an identity or a failure.
// Order matters: the revocation check runs before signature verification and
// before the directory round trip, so a token already known dead costs neither.
func (g *Gate) Authenticate(ctx context.Context, authHeader string) (*Identity, *Failure) {
	token := BearerToken(authHeader)
	if token == "" {
		return nil, &Failure{
			Reason:  ReasonMissing,
			Status:  http.StatusUnauthorized,
			Message: "Akses ditolak. Token tidak tersedia",
		}
	}

	if g.Revocation.IsRevoked(ctx, token) {
		return nil, &Failure{
			Reason:  ReasonRevoked,
			Status:  http.StatusUnauthorized,
			Message: "Token tidak valid atau sudah kadaluarsa",
		}
	}

	claims, err := g.Codec.Parse(token)
	if err != nil {
		return nil, &Failure{
			Reason:  ReasonInvalid,
			Status:  http.StatusUnauthorized,
			Message: "Token tidak valid atau sudah kadaluarsa",
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, g.LookupTimeout)
	defer cancel()

	var admin models.Admin
	err = g.DB.WithContext(lookupCtx).First(&admin, claims.AdminID).Error
	switch {
	case err == nil:
		// fall through
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, &Failure{
			Reason:  ReasonNotFound,
			Status:  http.StatusNotFound,
			Message: "Admin tidak ditemukan",
		}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(lookupCtx.Err(), context.DeadlineExceeded):
		return nil, &Failure{
			Reason:  ReasonTimeout,
			Status:  http.StatusGatewayTimeout,
			Message: "Waktu pencarian admin habis",
		}
	default:
		return nil, &Failure{
			Reason:  ReasonInternal,
			Status:  http.StatusInternalServerError,
			Message: "Terjadi kesalahan pada server",
		}
	}

	return &Identity{
		ID:       admin.ID,
		Username: admin.Username,
		Name:     admin.Name,
		Role:     admin.Role,
	}, nil
}
