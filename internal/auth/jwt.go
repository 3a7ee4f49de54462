package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer is the issuer claim of every token this service signs
const JwtIssuer = "JobBoard"

var (
	secretKey = []byte(os.Getenv("SECRET_KEY"))
	tokenTTL  = time.Hour
)

// Configure sets the signing secret and the lifetime of standard tokens
func Configure(secret string, ttl time.Duration) {
	if secret != "" {
		secretKey = []byte(secret)
	}
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// GenerateStandardToken signs an access token for the user with the configured lifetime
func GenerateStandardToken(id uuid.UUID) (string, string, error) {
	return GenerateTokenWithDuration(id, tokenTTL, JwtIssuer)
}

// GenerateTokenWithDuration signs an access token that expires after d.
// The second return value is reserved for a refresh token.
func GenerateTokenWithDuration(id uuid.UUID, d time.Duration, issuer string) (string, string, error) {
	now := time.Now()
	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signedToken, err := generatedAccessToken.SignedString(secretKey)
	if err != nil {
		return "", "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, "", nil
}

// ValidatedToken parses an HMAC signed token into RegisteredClaims
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return secretKey, nil
	})
}
