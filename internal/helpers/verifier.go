package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates Supabase-issued bearer tokens against the
// project's JWKS endpoint. Constructed once at startup and shared.
type TokenVerifier struct {
	jwksURL string
}

func NewTokenVerifier(supabaseURL string) *TokenVerifier {
	return &TokenVerifier{
		jwksURL: fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL),
	}
}

// Verify validates the token signature and expiry and returns the caller
// identity. Any failure means the caller is treated as anonymous.
func (tv *TokenVerifier) Verify(ctx context.Context, tokenStr string) (*Identity, error) {
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}

	jwksCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(tv.jwksURL, keyfunc.Options{
		Ctx: jwksCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims.Identity(), nil
}
