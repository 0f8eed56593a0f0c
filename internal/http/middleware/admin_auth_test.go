package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func serveAdmin(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	called := false
	AdminJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := AdminClaimsFromContext(r.Context())
		if !ok || claims.Subject != "intake-admin" {
			t.Fatalf("expected admin claims in context, got %+v", claims)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)
	return rec, called
}

func signedAdminToken(t *testing.T, method jwt.SigningMethod, secret string, expires *jwt.NumericDate) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "intake-admin",
		ExpiresAt: expires,
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAdminJWT(t *testing.T) {
	valid := jwt.NewNumericDate(time.Now().Add(5 * time.Minute))

	tests := []struct {
		name     string
		secret   string
		header   string
		wantCode int
	}{
		{"missing secret", "", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", valid), http.StatusUnauthorized},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"not bearer", "secret", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "wrong", valid), http.StatusUnauthorized},
		{"expired", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", jwt.NewNumericDate(time.Now().Add(-time.Minute))), http.StatusUnauthorized},
		{"no expiry", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", nil), http.StatusUnauthorized},
		{"other hmac size", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS512, "secret", valid), http.StatusUnauthorized},
		{"valid", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", valid), http.StatusOK},
		{"lower case scheme", "secret", "bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", valid), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := serveAdmin(t, tt.secret, tt.header)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if called != (tt.wantCode == http.StatusOK) {
				t.Fatalf("handler called=%v for status %d", called, rec.Code)
			}
		})
	}
}
