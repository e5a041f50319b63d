package auth

import (
	"testing"

	"github.com/myutami16/camp-store/internal/models"
)

func TestAuthorize(t *testing.T) {
	editor := &Identity{ID: 1, Username: "editor1", Role: models.RoleEditor}
	super := &Identity{ID: 2, Username: "super1", Role: models.RoleSuperAdmin}

	cases := []struct {
		name    string
		id      *Identity
		allowed []models.Role
		want    bool
	}{
		{"role in set", editor, []models.Role{models.RoleAdmin, models.RoleEditor}, true},
		{"role not in set", editor, []models.Role{models.RoleSuperAdmin}, false},
		{"single role match", super, []models.Role{models.RoleSuperAdmin}, true},
		{"empty set", super, nil, false},
		{"nil identity", nil, []models.Role{models.RoleAdmin}, false},
	}

	for _, tc := range cases {
		if got := Authorize(tc.id, tc.allowed...); got != tc.want {
			t.Errorf("%s: Authorize = %v, want %v", tc.name, got, tc.want)
		}
	}
}
