package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("secret")
	token, err := a.GenerateToken(&User{ID: "u1", Role: "seller"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	user, err := a.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "u1" || user.Role != "seller" {
		t.Fatalf("user = %+v", user)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	issuer := NewAuthenticator("secret")
	good, _ := issuer.GenerateToken(&User{ID: "u1"}, time.Hour)
	expired, _ := issuer.GenerateToken(&User{ID: "u1"}, -time.Minute)
	noUser, _ := issuer.GenerateToken(&User{}, time.Hour)

	tests := []struct {
		name  string
		a     *Authenticator
		token string
	}{
		{"wrong secret", NewAuthenticator("other"), good},
		{"expired", issuer, expired},
		{"missing user", issuer, noUser},
		{"garbage", issuer, "not-a-token"},
		{"no secret", NewAuthenticator(""), good},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.a.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("secret")
	token, _ := a.GenerateToken(&User{ID: "u1"}, time.Hour)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
	})

	tests := []struct {
		name       string
		handler    http.Handler
		setup      func(r *http.Request)
		wantStatus int
		wantUser   string
	}{
		{"optional anonymous", a.Optional(next), func(r *http.Request) {}, http.StatusOK, ""},
		{"optional cookie", a.Optional(next), func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		}, http.StatusOK, "u1"},
		{"optional bad token", a.Optional(next), func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer nope")
		}, http.StatusOK, ""},
		{"required bearer", a.Required(next), func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}, http.StatusOK, "u1"},
		{"required missing", a.Required(next), func(r *http.Request) {}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		tt.setup(req)
		rec := httptest.NewRecorder()
		tt.handler.ServeHTTP(rec, req)
		if rec.Code != tt.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tt.name, rec.Code, tt.wantStatus)
		}
		if seen != tt.wantUser {
			t.Fatalf("%s: user = %q, want %q", tt.name, seen, tt.wantUser)
		}
	}
}
