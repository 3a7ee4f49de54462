// Package middleware contain utilities middleware code
package middleware

import (
	"JobBoard-backend/internal/auth"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const identityKey = "identity"

// RequireAuth validates the Bearer token in the Authorization header, loads its user
// and resolves the caller's role before allowing access to the endpoint.
func RequireAuth(p *policy.Policy) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if !authenticate(ctx, p, tokenString) {
			return
		}
		ctx.Next()
	}
}

// OptionalAuth lets requests without an Authorization header through as anonymous.
// A header that is present must still carry a valid token.
func OptionalAuth(p *policy.Policy) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if errors.Is(err, utilities.ErrNoAuthorizationHeader) {
			ctx.Set(identityKey, policy.Anonymous())
			ctx.Next()
			return
		}
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if !authenticate(ctx, p, tokenString) {
			return
		}
		ctx.Next()
	}
}

// authenticate sets claims, user and identity on the context, or aborts and returns false
func authenticate(ctx *gin.Context, p *policy.Policy, tokenString string) bool {
	token, err := auth.ValidatedToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Access token expired",
			})
			return false
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to validate token: %s", err.Error()),
		})
		return false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !token.Valid || !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid access token",
		})
		return false
	}

	if claims.Issuer != auth.JwtIssuer {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid token issuer",
		})
		return false
	}
	ctx.Set("claims", claims)

	var foundUser model.User
	if err := p.DB.WithContext(ctx.Request.Context()).Where("id = ?", claims.Subject).First(&foundUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "User not exist",
			})
			return false
		}

		ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
		})
		return false
	}
	ctx.Set("user", foundUser)

	identity, err := p.ResolveRole(ctx.Request.Context(), &foundUser)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve user role: %s", err.Error()),
		})
		return false
	}
	ctx.Set(identityKey, identity)
	return true
}

// ExtractIdentity returns the caller resolved by RequireAuth or OptionalAuth.
// Requests that passed neither are anonymous.
func ExtractIdentity(c *gin.Context) policy.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return policy.Anonymous()
	}
	identity, ok := v.(policy.Identity)
	if !ok {
		return policy.Anonymous()
	}
	return identity
}
