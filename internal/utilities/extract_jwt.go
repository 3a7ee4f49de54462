package utilities

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrNoAuthorizationHeader is returned when the request carries no Authorization header at all
var ErrNoAuthorizationHeader = fmt.Errorf("Authorization header not provided")

// ExtractBearerToken returns the token part of a "Bearer <token>" Authorization header
func ExtractBearerToken(c *gin.Context) (string, error) {

	const BearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		return "", ErrNoAuthorizationHeader
	}

	if len(authHeader) <= len(BearerSchema) || !strings.EqualFold(authHeader[:len(BearerSchema)], BearerSchema) {
		return "", fmt.Errorf("Invalid authorization header")
	}

	return authHeader[len(BearerSchema):], nil

}
