package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
)

func TestGoogleVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "good-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sub":"108234","email":"user@example.com","aud":"elefit"}`))
		case "no-email-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sub":"108234"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
		}
	}))
	defer srv.Close()

	v := NewGoogleVerifier(srv.URL, 2*time.Second, zerolog.Nop())
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		id, err := v.Verify(ctx, "good-token")
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if id.UserID != "108234" || id.Email != "user@example.com" {
			t.Errorf("identity = %+v", id)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err := v.Verify(ctx, "bad-token")
		if !errors.Is(err, model.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("missing email claim", func(t *testing.T) {
		_, err := v.Verify(ctx, "no-email-token")
		if !errors.Is(err, model.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("empty token short-circuits", func(t *testing.T) {
		_, err := v.Verify(ctx, "")
		if !errors.Is(err, model.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})
}

func TestGoogleVerifierProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := NewGoogleVerifier(srv.URL, time.Second, zerolog.Nop())
	_, err := v.Verify(context.Background(), "any-token")
	if !errors.Is(err, model.ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}

func TestExtractBearer(t *testing.T) {
	mk := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	if tok, err := ExtractBearer(mk("Bearer abc123")); err != nil || tok != "abc123" {
		t.Errorf("got (%q, %v)", tok, err)
	}
	if _, err := ExtractBearer(mk("")); err == nil {
		t.Error("missing header must fail")
	}
	if _, err := ExtractBearer(mk("Basic abc123")); err == nil {
		t.Error("non-bearer scheme must fail")
	}
	if _, err := ExtractBearer(mk("Bearer")); err == nil {
		t.Error("bare scheme must fail")
	}
}

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier(map[string]Identity{
		"dev-token": {UserID: "dev-user", Email: "dev@example.com"},
	})

	id, err := v.Verify(context.Background(), "dev-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "dev-user" {
		t.Errorf("userID = %q", id.UserID)
	}

	if _, err := v.Verify(context.Background(), "other"); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
