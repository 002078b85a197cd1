package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context keys for storing user information
type contextKey string

const UserIDKey contextKey = "user_id"

// SessionName is the cookie name used by the session-based auth path
const SessionName = "blogshare_session"

// AuthMiddleware resolves the current user id from credentials issued by the
// auth collaborator and injects it into the request context. Two credential
// forms are accepted: an HS256 JWT (Authorization bearer or "token" cookie)
// and a signed session cookie. The content pipeline trusts the resolved id
// and performs no credential checking of its own.
type AuthMiddleware struct {
	jwtSecret []byte
	store     sessions.Store
}

// NewAuthMiddleware creates an auth middleware verifying JWTs with jwtSecret
// and session cookies with sessionSecret.
func NewAuthMiddleware(jwtSecret, sessionSecret []byte) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		store:     sessions.NewCookieStore(sessionSecret),
	}
}

// RequireAuth ensures the request carries a valid identity.
// If not, returns 401; otherwise injects the user id into context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.resolveUserID(r)
		if !ok {
			log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s",
				r.RemoteAddr, r.Method, r.URL.Path)
			writeAuthError(w, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user id if a valid credential is present but never
// rejects. Used for endpoints that serve both authenticated and anonymous
// callers, e.g. anonymous commenting.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := m.resolveUserID(r); ok {
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// resolveUserID tries each credential form in order: bearer JWT, JWT cookie,
// session cookie.
func (m *AuthMiddleware) resolveUserID(r *http.Request) (uuid.UUID, bool) {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if id, ok := m.parseJWT(raw); ok {
			return id, true
		}
		// An explicit bearer token that fails verification is not allowed
		// to fall through to weaker credential forms.
		return uuid.Nil, false
	}

	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if id, ok := m.parseJWT(cookie.Value); ok {
			return id, true
		}
		// Invalid or expired cookie token: treat as anonymous, matching
		// the behavior of the session issuer's clients.
	}

	session, err := m.store.Get(r, SessionName)
	if err == nil {
		if raw, ok := session.Values["user_id"].(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				return id, true
			}
		}
	}

	return uuid.Nil, false
}

// parseJWT verifies an HS256 token and extracts the user id from the sub
// claim.
func (m *AuthMiddleware) parseJWT(raw string) (uuid.UUID, bool) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, m.jwtSecret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(token.Subject())
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetUserID returns the authenticated user id from the request context, or
// uuid.Nil when the request is anonymous.
func GetUserID(r *http.Request) uuid.UUID {
	return GetUserIDFromContext(r.Context())
}

// GetUserIDFromContext returns the authenticated user id from a context.
// Service-layer code that needs the actor should receive it as an explicit
// argument; this accessor exists for handlers only.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// OptionalUserID returns a pointer to the user id, or nil for anonymous
// requests. Matches the service signatures that take an optional viewer.
func OptionalUserID(r *http.Request) *uuid.UUID {
	id := GetUserID(r)
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"AuthRequired","message":"` + message + `"}`))
}
