package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/model"
	"github.com/elefit/tracker-backend/internal/oauth"
	"github.com/elefit/tracker-backend/internal/store"
)

// LinkingService manages the account link between a user and the voice
// platform: code exchange on link, flag flip and token wipe on unlink.
type LinkingService struct {
	store     store.Store
	exchanger oauth.TokenExchanger
	log       zerolog.Logger
	now       func() time.Time
}

func NewLinkingService(s store.Store, ex oauth.TokenExchanger, log zerolog.Logger) *LinkingService {
	return &LinkingService{store: s, exchanger: ex, log: log, now: time.Now}
}

// Link exchanges the authorization code and records the linked state with the
// granted token pair. Re-linking an already linked user overwrites the stored
// tokens with the fresh grant.
func (s *LinkingService) Link(ctx context.Context, userID, code, redirectURI string) (*model.LinkState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", model.ErrValidation)
	}

	tokens, err := s.exchanger.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ls := &model.LinkState{
		UserID:       userID,
		Linked:       true,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		LinkedAt:     &now,
	}
	if err := s.store.Links().Put(ctx, ls); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("account linked")
	return ls, nil
}

// Status reports whether the user is currently linked. A user with no link
// document has never linked and reads as unlinked.
func (s *LinkingService) Status(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: userID is required", model.ErrValidation)
	}

	ls, err := s.store.Links().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return ls.Linked, nil
}

// Unlink flips the link flag off and wipes the stored token pair. Unlinking
// an unlinked or unknown user succeeds and leaves an unlinked document, so
// retried unlink callbacks stay harmless.
func (s *LinkingService) Unlink(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: userID is required", model.ErrValidation)
	}

	ls, err := s.store.Links().Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		ls = &model.LinkState{UserID: userID}
	}

	now := s.now().UTC()
	ls.Linked = false
	ls.AccessToken = ""
	ls.RefreshToken = ""
	ls.UnlinkedAt = &now

	if err := s.store.Links().Put(ctx, ls); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("account unlinked")
	return nil
}
