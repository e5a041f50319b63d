package middleware

import (
	"fmt"
	"net/http"

	"github.com/myutami16/camp-store/internal/auth"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
)

// identityKey is the context key under which Auth stores the admin identity.
const identityKey = "currentAdmin"

// Auth runs the authentication gate and puts the resolved identity into the
// request context. The gate fully resolves its own outcome; on failure the
// mapped status is written here and the chain aborts.
func Auth(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, fail := gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if fail != nil {
			util.Error(c, fail.Status, fail.Message)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the authenticated identity's role is in
// the allowed set. Must be registered after Auth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentAdmin(c)
		if !auth.Authorize(identity, roles...) {
			role := "tidak dikenal"
			if identity != nil {
				role = string(identity.Role)
			}
			util.Error(c, http.StatusForbidden,
				fmt.Sprintf("Role %s tidak memiliki izin untuk akses", role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAdmin returns the identity stored by Auth, or nil.
func CurrentAdmin(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
