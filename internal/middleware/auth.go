package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
)

// AccessTokenTTL is how long an access token stays valid.
const AccessTokenTTL = 24 * time.Hour

type JWTAuth struct {
	Secret []byte
}

func NewJWTAuth(secret string) *JWTAuth {
	return &JWTAuth{Secret: []byte(secret)}
}

// GenerateAccessToken creates a signed JWT carrying the user identity.
func (j *JWTAuth) GenerateAccessToken(userID uuid.UUID, email string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"email":    email,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(AccessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Middleware validates the bearer token and attaches the user identity to
// the request context. Requests without a valid token are rejected.
func (j *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, isAdmin, ok := j.authenticate(w, r, true)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalMiddleware attaches the user identity when a valid bearer token
// is present and lets anonymous requests straight through. Used on the chat
// and mood endpoints, which accept guest traffic; the attached identity is
// what pins a user's A/B model assignment.
func (j *JWTAuth) OptionalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, isAdmin, ok := j.authenticate(w, r, false)
		ctx := r.Context()
		if ok {
			ctx = context.WithValue(ctx, UserIDKey, userID)
			ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates admin-only routes. Must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, _ := r.Context().Value(IsAdminKey).(bool)
		if !isAdmin {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate parses and verifies the bearer token. When strict is true,
// failures write an error response; otherwise they are silently ignored.
func (j *JWTAuth) authenticate(w http.ResponseWriter, r *http.Request, strict bool) (uuid.UUID, bool, bool) {
	fail := func(code, message string) (uuid.UUID, bool, bool) {
		if strict {
			writeError(w, http.StatusUnauthorized, code, message, r)
		}
		return uuid.Nil, false, false
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return fail("UNAUTHORIZED", "Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return fail("UNAUTHORIZED", "Invalid authorization format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.Secret, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return fail("TOKEN_EXPIRED", "Token has expired")
		}
		return fail("UNAUTHORIZED", "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fail("UNAUTHORIZED", "Invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return fail("UNAUTHORIZED", "Invalid user ID in token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fail("UNAUTHORIZED", "Invalid user ID format")
	}

	isAdmin, _ := claims["is_admin"].(bool)
	return userID, isAdmin, true
}

// GetUserID extracts user_id from request context; uuid.Nil when anonymous.
func GetUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

// GetOptionalUserID returns the authenticated user id, or nil for guests.
func GetOptionalUserID(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

func writeError(w http.ResponseWriter, status int, code, message string, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}
