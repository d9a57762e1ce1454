package authtoken

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Required verifies the bearer token on every request before any resource
// logic runs. On failure it short-circuits with a 401 and a JSON-encoded
// {"error": message} body; on success it installs the principal so handlers
// can pass it explicitly into services.
func (v *Verifier) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := v.VerifyBearer(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}
