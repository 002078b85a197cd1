package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func signToken(t *testing.T, secret []byte, subject string, expiry time.Time) string {
	t.Helper()

	token, err := jwt.NewBuilder().
		Subject(subject).
		IssuedAt(time.Now()).
		Expiration(expiry).
		Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, secret))
	require.NoError(t, err)
	return string(signed)
}

// echoHandler writes the resolved user id so tests can assert on it
func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(GetUserID(r).String()))
	})
}

func TestRequireAuth_ValidBearerToken(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)
	userID := uuid.New()

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.String(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AuthRequired")
}

func TestRequireAuth_WrongSigningKey(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other-secret"), uuid.NewString(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, uuid.NewString(), time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_NonUUIDSubject(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidBearerDoesNotFallThroughToCookie(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)
	userID := uuid.New()

	// Valid cookie credential, but the explicit bearer is garbage
	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	req.AddCookie(&http.Cookie{
		Name:  "token",
		Value: signToken(t, testSecret, userID.String(), time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_TokenCookie(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)
	userID := uuid.New()

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	req.AddCookie(&http.Cookie{
		Name:  "token",
		Value: signToken(t, testSecret, userID.String(), time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestRequireAuth_SessionCookie(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)
	userID := uuid.New()

	// Have the store issue a signed session cookie, then replay it
	issueReq := httptest.NewRequest("GET", "/", nil)
	issueRec := httptest.NewRecorder()
	session, err := auth.store.Get(issueReq, SessionName)
	require.NoError(t, err)
	session.Values["user_id"] = userID.String()
	require.NoError(t, session.Save(issueReq, issueRec))

	req := httptest.NewRequest("GET", "/api/posts/mine", nil)
	for _, cookie := range issueRec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	auth.RequireAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)

	req := httptest.NewRequest("POST", "/api/posts/1/comment", nil)
	rec := httptest.NewRecorder()

	auth.OptionalAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uuid.Nil.String(), rec.Body.String())
}

func TestOptionalAuth_ResolvesIdentityWhenPresent(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, testSecret)
	userID := uuid.New()

	req := httptest.NewRequest("POST", "/api/posts/1/comment", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.String(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	auth.OptionalAuth(echoHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestOptionalUserID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, OptionalUserID(req))

	userID := uuid.New()
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	got := OptionalUserID(req)
	require.NotNil(t, got)
	assert.Equal(t, userID, *got)
}
