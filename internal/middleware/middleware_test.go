package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/togethernow/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token    string
	identity *helpers.Identity
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*helpers.Identity, error) {
	if token == s.token {
		return s.identity, nil
	}
	return nil, errors.New("invalid token")
}

func authTestRouter(verifier Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(Auth(verifier, logger))
	r.GET("/whoami", func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	r := authTestRouter(&stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestAuthInvalidToken(t *testing.T) {
	r := authTestRouter(&stubVerifier{token: "good"})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	verifier := &stubVerifier{
		token:    "good",
		identity: &helpers.Identity{ID: "u1", Name: "Alice"},
	}
	r := authTestRouter(verifier)

	for _, header := range []string{"good", "Bearer good"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, "header %q", header)
		assert.JSONEq(t, `{"id":"u1","name":"Alice"}`, w.Body.String())
	}
}
