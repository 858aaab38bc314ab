package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/oauth"
	"github.com/elefit/tracker-backend/internal/store"
	"github.com/elefit/tracker-backend/internal/store/memstore"
)

type fakeExchanger struct {
	tokens *oauth.Tokens
	err    error
	calls  int
}

func (f *fakeExchanger) Exchange(ctx context.Context, code, redirectURI string) (*oauth.Tokens, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens, nil
}

func newLinkingService(ex oauth.TokenExchanger) (*LinkingService, store.Store) {
	s := memstore.New()
	svc := NewLinkingService(s, ex, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	return svc, s
}

func TestLinkingServiceLink(t *testing.T) {
	ex := &fakeExchanger{tokens: &oauth.Tokens{AccessToken: "atk", RefreshToken: "rtk"}}
	svc, s := newLinkingService(ex)
	ctx := context.Background()

	ls, err := svc.Link(ctx, "user-1", "auth-code", "https://app/callback")
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !ls.Linked || ls.AccessToken != "atk" || ls.RefreshToken != "rtk" {
		t.Errorf("link state = %+v", ls)
	}
	if ls.LinkedAt == nil {
		t.Error("linkedAt must be stamped")
	}

	stored, err := s.Links().Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Links.Get: %v", err)
	}
	if !stored.Linked || stored.AccessToken != "atk" {
		t.Errorf("stored state = %+v", stored)
	}

	linked, err := svc.Status(ctx, "user-1")
	if err != nil || !linked {
		t.Errorf("Status = (%v, %v), want linked", linked, err)
	}
}

func TestLinkingServiceLinkExchangeFailure(t *testing.T) {
	ex := &fakeExchanger{err: fmt.Errorf("%w: invalid_grant", model.ErrExternalService)}
	svc, s := newLinkingService(ex)
	ctx := context.Background()

	_, err := svc.Link(ctx, "user-1", "bad-code", "")
	if !errors.Is(err, model.ErrExternalService) {
		t.Fatalf("err = %v, want ErrExternalService", err)
	}

	// A failed exchange must not leave a link document behind.
	if _, err := s.Links().Get(ctx, "user-1"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Links.Get err = %v, want ErrNotFound", err)
	}
}

func TestLinkingServiceStatusUnknownUser(t *testing.T) {
	svc, _ := newLinkingService(&fakeExchanger{})

	linked, err := svc.Status(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if linked {
		t.Error("unknown user must read as unlinked")
	}
}

func TestLinkingServiceUnlinkClearsTokens(t *testing.T) {
	ex := &fakeExchanger{tokens: &oauth.Tokens{AccessToken: "atk", RefreshToken: "rtk"}}
	svc, s := newLinkingService(ex)
	ctx := context.Background()

	if _, err := svc.Link(ctx, "user-1", "auth-code", ""); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if err := svc.Unlink(ctx, "user-1"); err != nil {
		t.Fatalf("Unlink: %v", err)
	}

	ls, err := s.Links().Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Links.Get: %v", err)
	}
	if ls.Linked {
		t.Error("link flag must be off")
	}
	if ls.AccessToken != "" || ls.RefreshToken != "" {
		t.Errorf("tokens must be wiped, got %+v", ls)
	}
	if ls.UnlinkedAt == nil {
		t.Error("unlinkedAt must be stamped")
	}

	linked, err := svc.Status(ctx, "user-1")
	if err != nil || linked {
		t.Errorf("Status after unlink = (%v, %v)", linked, err)
	}
}

func TestLinkingServiceUnlinkIsIdempotent(t *testing.T) {
	svc, s := newLinkingService(&fakeExchanger{})
	ctx := context.Background()

	// Unlinking a user that never linked still succeeds and records the state.
	if err := svc.Unlink(ctx, "user-2"); err != nil {
		t.Fatalf("first Unlink: %v", err)
	}
	if err := svc.Unlink(ctx, "user-2"); err != nil {
		t.Fatalf("second Unlink: %v", err)
	}

	ls, err := s.Links().Get(ctx, "user-2")
	if err != nil {
		t.Fatalf("Links.Get: %v", err)
	}
	if ls.Linked {
		t.Error("state must be unlinked")
	}
}

func TestLinkingServiceRelinkOverwritesTokens(t *testing.T) {
	ex := &fakeExchanger{tokens: &oauth.Tokens{AccessToken: "atk-1", RefreshToken: "rtk-1"}}
	svc, s := newLinkingService(ex)
	ctx := context.Background()

	if _, err := svc.Link(ctx, "user-1", "code-1", ""); err != nil {
		t.Fatalf("Link: %v", err)
	}
	ex.tokens = &oauth.Tokens{AccessToken: "atk-2", RefreshToken: "rtk-2"}
	if _, err := svc.Link(ctx, "user-1", "code-2", ""); err != nil {
		t.Fatalf("re-Link: %v", err)
	}

	ls, _ := s.Links().Get(ctx, "user-1")
	if ls.AccessToken != "atk-2" {
		t.Errorf("accessToken = %q, want fresh grant", ls.AccessToken)
	}
	if ex.calls != 2 {
		t.Errorf("exchange calls = %d", ex.calls)
	}
}
