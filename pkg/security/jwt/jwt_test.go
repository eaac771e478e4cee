package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	g := NewGenerator("secret", "microbridge", time.Minute)
	id := uuid.New()
	tok, err := g.Generate(context.Background(), id, "ada@example.com")
	require.NoError(t, err)

	got, claims, err := Parse(tok, []byte("secret"), "microbridge")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "ada@example.com", claims.Email)

	_, _, err = Parse(tok, []byte("other"), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = Parse(tok, []byte("secret"), "someone-else")
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestParseExpired(t *testing.T) {
	g := NewGenerator("secret", "", -time.Minute)
	tok, err := g.Generate(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	_, _, err = Parse(tok, []byte("secret"), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewAuthMiddleware("secret", "microbridge"))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(id.String())
	})

	id := uuid.New()
	tok, err := NewGenerator("secret", "microbridge", time.Minute).Generate(context.Background(), id, "")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"bearer", "Bearer " + tok, http.StatusOK},
		{"bare", tok, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
