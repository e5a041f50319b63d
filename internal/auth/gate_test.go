package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/myutami16/camp-store/internal/models"

	"gorm.io/gorm"
)

func setupGate(t *testing.T) (*Gate, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	codec := NewTokenCodec("gate-secret", 1)
	store := NewRevocationStore(db, 24*time.Hour)
	return NewGate(db, codec, store), db
}

func createAdmin(t *testing.T, db *gorm.DB, username string, role models.Role) *models.Admin {
	t.Helper()
	admin := &models.Admin{
		Username:     username,
		PasswordHash: "x",
		Name:         username,
		Role:         role,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

func TestAuthenticateSuccess(t *testing.T) {
	gate, db := setupGate(t)
	admin := createAdmin(t, db, "sitinurhaliza", models.RoleEditor)

	token, err := gate.Codec.Issue(admin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity, fail := gate.Authenticate(context.Background(), "Bearer "+token)
	if fail != nil {
		t.Fatalf("Authenticate failed: %+v", fail)
	}
	if identity.ID != admin.ID || identity.Username != "sitinurhaliza" || identity.Role != models.RoleEditor {
		t.Errorf("identity = %+v, want admin %d", identity, admin.ID)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	gate, _ := setupGate(t)

	for _, header := range []string{"", "Basic abc", "abc"} {
		_, fail := gate.Authenticate(context.Background(), header)
		if fail == nil {
			t.Fatalf("header %q should fail", header)
		}
		if fail.Reason != ReasonMissing || fail.Status != http.StatusUnauthorized {
			t.Errorf("header %q: got %s/%d, want missing/401", header, fail.Reason, fail.Status)
		}
	}
}

// TestAuthenticateRevoked: a revoked token fails with "revoked", distinct
// from "invalid", even though it has not reached its natural expiry.
func TestAuthenticateRevoked(t *testing.T) {
	gate, db := setupGate(t)
	admin := createAdmin(t, db, "agusprastyo", models.RoleAdmin)

	token, _ := gate.Codec.Issue(admin)

	// works before logout
	if _, fail := gate.Authenticate(context.Background(), "Bearer "+token); fail != nil {
		t.Fatalf("Authenticate before revoke failed: %+v", fail)
	}

	if err := gate.Revocation.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	_, fail := gate.Authenticate(context.Background(), "Bearer "+token)
	if fail == nil {
		t.Fatal("revoked token should fail")
	}
	if fail.Reason != ReasonRevoked {
		t.Errorf("reason = %s, want revoked", fail.Reason)
	}
	if fail.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", fail.Status)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	gate, _ := setupGate(t)

	_, fail := gate.Authenticate(context.Background(), "Bearer not-a-token")
	if fail == nil {
		t.Fatal("garbage token should fail")
	}
	if fail.Reason != ReasonInvalid || fail.Status != http.StatusUnauthorized {
		t.Errorf("got %s/%d, want invalid/401", fail.Reason, fail.Status)
	}
}

// TestAuthenticateAdminDeleted: a valid token whose subject no longer exists
// maps to 404, not 401.
func TestAuthenticateAdminDeleted(t *testing.T) {
	gate, db := setupGate(t)
	admin := createAdmin(t, db, "dewilestari", models.RoleAdmin)

	token, _ := gate.Codec.Issue(admin)

	if err := db.Delete(admin).Error; err != nil {
		t.Fatalf("delete admin: %v", err)
	}

	_, fail := gate.Authenticate(context.Background(), "Bearer "+token)
	if fail == nil {
		t.Fatal("deleted admin should fail")
	}
	if fail.Reason != ReasonNotFound {
		t.Errorf("reason = %s, want not_found", fail.Reason)
	}
	if fail.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", fail.Status)
	}
}

// TestAuthenticateLookupTimeout: an exhausted lookup deadline maps to 504,
// not a generic 500.
func TestAuthenticateLookupTimeout(t *testing.T) {
	gate, db := setupGate(t)
	admin := createAdmin(t, db, "ekosaputra", models.RoleAdmin)

	token, _ := gate.Codec.Issue(admin)

	gate.LookupTimeout = time.Nanosecond // deadline expires before the query runs

	_, fail := gate.Authenticate(context.Background(), "Bearer "+token)
	if fail == nil {
		t.Fatal("expired lookup deadline should fail")
	}
	if fail.Reason != ReasonTimeout {
		t.Errorf("reason = %s, want timeout", fail.Reason)
	}
	if fail.Status != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", fail.Status)
	}
}
