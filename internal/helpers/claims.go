package helpers

import (
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Identity is the verified caller: the token subject plus the display name
// carried in the token metadata.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Identity extracts the caller identity from validated claims. Supabase puts
// the display name under user_metadata; providers vary between "name" and
// "full_name", and tokens minted without metadata get "Unknown".
func (cc *CustomClaims) Identity() *Identity {
	name := "Unknown"
	for _, key := range []string{"name", "full_name"} {
		if v, ok := cc.UserMetadata[key].(string); ok && v != "" {
			name = v
			break
		}
	}
	return &Identity{
		ID:   cc.Subject,
		Name: name,
	}
}
