package authtoken

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalContextKey = "auth_principal"

// Principal is the authenticated identity derived from a verified bearer
// token. It is produced once per request and passed explicitly into service
// calls; it is never carried as ambient state inside the services.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

func setPrincipal(c *gin.Context, p Principal) {
	c.Set(principalContextKey, p)
}

// PrincipalFrom returns the principal installed by the auth middleware.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	value, ok := c.Get(principalContextKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
