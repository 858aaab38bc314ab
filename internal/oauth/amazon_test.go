package oauth

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

func TestAmazonExchanger(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		if r.PostForm.Get("code") != "valid-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"atk-1","refresh_token":"rtk-1","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	ex := NewAmazonExchanger(srv.URL, "client-id", "client-secret", 2*time.Second, zerolog.Nop())
	ctx := context.Background()

	t.Run("successful grant", func(t *testing.T) {
		tokens, err := ex.Exchange(ctx, "valid-code", "https://app.example.com/callback")
		if err != nil {
			t.Fatalf("Exchange: %v", err)
		}
		if tokens.AccessToken != "atk-1" || tokens.RefreshToken != "rtk-1" {
			t.Errorf("tokens = %+v", tokens)
		}
		want := map[string]string{
			"grant_type":    "authorization_code",
			"code":          "valid-code",
			"client_id":     "client-id",
			"client_secret": "client-secret",
			"redirect_uri":  "https://app.example.com/callback",
		}
		for k, v := range want {
			if gotForm[k] != v {
				t.Errorf("form[%s] = %q, want %q", k, gotForm[k], v)
			}
		}
	})

	t.Run("rejected code", func(t *testing.T) {
		_, err := ex.Exchange(ctx, "expired-code", "https://app.example.com/callback")
		if !errors.Is(err, model.ErrExternalService) {
			t.Errorf("err = %v, want ErrExternalService", err)
		}
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := ex.Exchange(ctx, "", "https://app.example.com/callback")
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestAmazonExchangerProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	ex := NewAmazonExchanger(srv.URL, "client-id", "client-secret", time.Second, zerolog.Nop())
	_, err := ex.Exchange(context.Background(), "any", "")
	if !errors.Is(err, model.ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}
