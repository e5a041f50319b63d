package auth

import (
	"testing"
	"time"

	"github.com/myutami16/camp-store/internal/models"
)

func testAdmin() *models.Admin {
	return &models.Admin{
		ID:       7,
		Username: "budisetiawan",
		Name:     "Budi Setiawan",
		Role:     models.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", 1)

	token, err := codec.Issue(testAdmin())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.AdminID != 7 {
		t.Errorf("AdminID = %d, want 7", claims.AdminID)
	}
	if claims.Username != "budisetiawan" {
		t.Errorf("Username = %q, want budisetiawan", claims.Username)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestParseWrongSecret(t *testing.T) {
	codec := NewTokenCodec("secret-a", 1)
	token, _ := codec.Issue(testAdmin())

	other := NewTokenCodec("secret-b", 1)
	if _, err := other.Parse(token); err == nil {
		t.Error("Parse with wrong secret should fail")
	}
}

func TestParseExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret", 1)
	codec.Lifetime = -time.Minute // already expired at issue time
	token, _ := codec.Issue(testAdmin())

	if _, err := codec.Parse(token); err == nil {
		t.Error("Parse of expired token should fail")
	}
}

// TestParseMalformed: garbage input is a normal input, never a panic.
func TestParseMalformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", 1)

	for _, bad := range []string{"", "abc", "a.b.c", "Bearer x"} {
		if _, err := codec.Parse(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"", ""},
		{"abc123", ""},
		{"Basic abc123", ""},
		{"Bearer ", ""},
	}

	for _, tc := range cases {
		if got := BearerToken(tc.header); got != tc.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
