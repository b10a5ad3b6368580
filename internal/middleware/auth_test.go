package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "user@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var gotID uuid.UUID
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotID != userID {
		t.Errorf("user id from context = %s, want %s", gotID, userID)
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	other := NewJWTAuth("other-secret")
	token, _ := other.GenerateAccessToken(uuid.New(), "user@example.com", false)

	auth := NewJWTAuth("test-secret")
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a forged token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestOptionalMiddlewareAllowsGuests(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	called := false
	var optionalID *uuid.UUID
	handler := auth.OptionalMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		optionalID = GetOptionalUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("guest request blocked: status = %d", rec.Code)
	}
	if optionalID != nil {
		t.Errorf("optional user id = %v, want nil for a guest", optionalID)
	}
}

func TestOptionalMiddlewareAttachesIdentity(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()
	token, _ := auth.GenerateAccessToken(userID, "user@example.com", false)

	var optionalID *uuid.UUID
	handler := auth.OptionalMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		optionalID = GetOptionalUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if optionalID == nil || *optionalID != userID {
		t.Errorf("optional user id = %v, want %s", optionalID, userID)
	}
}

func TestRequireAdmin(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	protected := auth.Middleware(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	adminToken, _ := auth.GenerateAccessToken(uuid.New(), "admin@example.com", true)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin request status = %d, want 200", rec.Code)
	}

	userToken, _ := auth.GenerateAccessToken(uuid.New(), "user@example.com", false)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin request status = %d, want 403", rec.Code)
	}
}
