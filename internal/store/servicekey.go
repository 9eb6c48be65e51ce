package store

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles a hosted-Postgres service token may carry for backend use.
var allowedKeyRoles = map[string]struct{}{
	"service_role": {},
	"postgres":     {},
}

type serviceKeyClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ValidateServiceKey inspects a hosted-database service token before it is
// used. The provider signs the token; we cannot verify the signature without
// its secret, but decoding the claims catches expired or anon keys before
// they produce confusing connection errors.
func ValidateServiceKey(key string) error {
	parser := jwt.NewParser()

	claims := &serviceKeyClaims{}
	if _, _, err := parser.ParseUnverified(key, claims); err != nil {
		return fmt.Errorf("failed to parse service key: %w", err)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("service key expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}

	if claims.Role != "" {
		if _, ok := allowedKeyRoles[claims.Role]; !ok {
			return fmt.Errorf("service key role %q is not allowed for backend use", claims.Role)
		}
	}

	return nil
}
