package handler

import (
	"net/http"
	"testing"

	"github.com/myutami16/camp-store/internal/models"
)

func TestStatsForAdmin(t *testing.T) {
	env := setupEnv(t)
	admin := env.seedAdmin(t, "kepalatoko", "sangatrahasia", models.RoleAdmin)
	token := env.token(t, admin)

	env.DB.Create(&models.Product{Name: "Tenda", Description: "d", Price: 1, Stock: 1, IsForSale: true, Category: models.CategoryTenda})

	w := env.doJSON(t, http.MethodGet, "/api/admin/stats", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data, _ := decode(t, w)["data"].(map[string]interface{})
	if data["totalProducts"] != float64(1) {
		t.Errorf("totalProducts = %v, want 1", data["totalProducts"])
	}
	// role breakdown is reserved for the super admin
	if _, ok := data["adminRoleStats"]; ok {
		t.Error("adminRoleStats must not be visible to a regular admin")
	}
}

func TestStatsForSuperAdmin(t *testing.T) {
	env := setupEnv(t)
	super := env.seedAdmin(t, "kepalatoko", "sangatrahasia", models.RoleSuperAdmin)
	env.seedAdmin(t, "stafgudang", "rahasia1", models.RoleAdmin)
	env.seedAdmin(t, "penuliskonten", "rahasia1", models.RoleEditor)
	token := env.token(t, super)

	w := env.doJSON(t, http.MethodGet, "/api/admin/stats", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data, _ := decode(t, w)["data"].(map[string]interface{})
	if data["totalAdmins"] != float64(3) {
		t.Errorf("totalAdmins = %v, want 3", data["totalAdmins"])
	}
	stats, _ := data["adminRoleStats"].(map[string]interface{})
	if stats[string(models.RoleEditor)] != float64(1) {
		t.Errorf("adminRoleStats = %v", stats)
	}
}
