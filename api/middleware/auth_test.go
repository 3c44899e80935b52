package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/auth"
	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	token := mintTestToken(t, time.Now().Add(-2*time.Hour), auth.AccessTokenPayload{UserID: uuid.New()})
	handler := Auth(testJWT, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsClaims(t *testing.T) {
	userID := uuid.New()
	userType := enums.UserTypeJobSeeker
	token := mintTestToken(t, time.Now(), auth.AccessTokenPayload{
		UserID:        userID,
		Email:         "a@x.com",
		UserType:      &userType,
		IsFreelancer:  true,
		RolesSelected: true,
	})

	var captured *auth.AccessTokenClaims
	var capturedID uuid.UUID
	handler := Auth(testJWT, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = ClaimsFromContext(r.Context())
		capturedID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if capturedID != userID {
		t.Fatalf("expected user %s got %s", userID, capturedID)
	}
	if captured == nil || !captured.IsFreelancer || captured.IsEquipmentOwner {
		t.Fatalf("unexpected claims %+v", captured)
	}
}

func TestRoleGuards(t *testing.T) {
	freelancer := mintTestToken(t, time.Now(), auth.AccessTokenPayload{UserID: uuid.New(), IsFreelancer: true, RolesSelected: true})
	pending := mintTestToken(t, time.Now(), auth.AccessTokenPayload{UserID: uuid.New()})

	cases := []struct {
		name  string
		guard func(http.Handler) http.Handler
		token string
		want  int
	}{
		{"freelancer allowed", RequireFreelancer(nil), freelancer, http.StatusOK},
		{"owner route forbids freelancer", RequireEquipmentOwner(nil), freelancer, http.StatusForbidden},
		{"pending account forbidden", RequireFreelancer(nil), pending, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Auth(testJWT, nil)(tc.guard(okHandler()))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestRoleGuardWithoutAuthIsUnauthorized(t *testing.T) {
	resp := httptest.NewRecorder()
	RequireFreelancer(nil)(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func mintTestToken(t *testing.T, now time.Time, payload auth.AccessTokenPayload) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWT, now, payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestUsableRequestID(t *testing.T) {
	cases := map[string]bool{
		"":                       false,
		"abc-123":                true,
		"has space":              false,
		"line\nbreak":            false,
		strings.Repeat("a", 129): false,
	}
	for id, want := range cases {
		if got := usableRequestID(id); got != want {
			t.Fatalf("usableRequestID(%q) = %v, want %v", id, got, want)
		}
	}
}
