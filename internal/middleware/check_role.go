package middleware

import (
	"JobBoard-backend/internal/utilities"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckRole will protect endpoint from user whose resolved role is not one of roles.
// A user without the profile matching their role resolves to NONE and is refused.
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity := ExtractIdentity(ctx)
		if !identity.IsAuthenticated() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "User information not provided",
			})
			return
		}

		if !utilities.Contains(roles, identity.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
			return
		}
		ctx.Next()
	}
}
