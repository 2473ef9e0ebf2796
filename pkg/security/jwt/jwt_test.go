package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/auth"
)

const (
	testSecret = "test-secret"
	testIssuer = "cvbuilder"
)

type revokedSet map[string]bool

func (r revokedSet) Revoke(_ context.Context, id string, _ time.Time) error {
	r[id] = true
	return nil
}

func (r revokedSet) IsRevoked(_ context.Context, id string) (bool, error) { return r[id], nil }

func newApp(revoked auth.TokenRevoker) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(testSecret, testIssuer, revoked), func(c *fiber.Ctx) error {
		sess, _ := SessionFrom(c)
		return c.JSON(fiber.Map{"userId": c.Locals(LocalUserID), "jti": sess.TokenID})
	})
	return app
}

func issue(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := NewGenerator(testSecret, testIssuer, time.Hour).Generate(context.Background(), auth.User{ID: userID, Email: "a@b.c"})
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, header, value string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestGeneratedTokenCarriesIDAndSubject(t *testing.T) {
	id := uuid.New()
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(issue(t, id), claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)

	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestMiddlewareAcceptsSupportedHeaders(t *testing.T) {
	app := newApp(nil)
	tok := issue(t, uuid.New())

	assert.Equal(t, http.StatusOK, call(t, app, "Authorization", "Bearer "+tok))
	assert.Equal(t, http.StatusOK, call(t, app, "Authorization", tok))
	assert.Equal(t, http.StatusOK, call(t, app, "x-access-token", tok))
}

func TestMiddlewareRejects(t *testing.T) {
	app := newApp(nil)
	foreign, err := NewGenerator(testSecret, "someone-else", time.Hour).Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	expired, err := NewGenerator(testSecret, testIssuer, -time.Minute).Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	forged, err := NewGenerator("other-secret", testIssuer, time.Hour).Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(t, app, "", ""))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Authorization", "Bearer garbage"))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Authorization", "Bearer "+foreign))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Authorization", "Bearer "+expired))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Authorization", "Bearer "+forged))
}

func TestMiddlewareRejectsRevokedToken(t *testing.T) {
	revoked := revokedSet{}
	app := newApp(revoked)
	tok := issue(t, uuid.New())
	require.Equal(t, http.StatusOK, call(t, app, "Authorization", "Bearer "+tok))

	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	revoked[claims.ID] = true

	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Authorization", "Bearer "+tok))
}

func TestParseSession(t *testing.T) {
	userID := uuid.New()
	tok := issue(t, userID)

	sess, err := ParseSession(tok, []byte(testSecret), testIssuer)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.NotEmpty(t, sess.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	_, err = ParseSession(tok, []byte(testSecret), "someone-else")
	assert.ErrorIs(t, err, ErrWrongIssuer)
	_, err = ParseSession(tok, []byte("other-secret"), testIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := issue(t, uuid.New())
	again, err := ParseSession(other, []byte(testSecret), "")
	require.NoError(t, err)
	assert.NotEqual(t, sess.TokenID, again.TokenID)
}

func TestParseSessionRequiresExpiry(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:      uuid.NewString(),
		Issuer:  testIssuer,
		Subject: uuid.NewString(),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseSession(tok, []byte(testSecret), testIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	app := newApp(nil)
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Authorization", "Bearer "+tok))
}
