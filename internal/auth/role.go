package auth

import "github.com/myutami16/camp-store/internal/models"

// Authorize reports whether the identity's role is in the allowed set.
// A nil identity is never authorized. Must only be called after Authenticate
// has succeeded; it never writes a response itself.
func Authorize(id *Identity, allowed ...models.Role) bool {
	if id == nil {
		return false
	}
	for _, r := range allowed {
		if id.Role == r {
			return true
		}
	}
	return false
}
