package store

import (
	"context"
	"log/slog"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/kv"
)

const profileKeyPrefix = "profile:"

// ProfileStore manages the shopper's single shipping/contact profile.
// Incomplete drafts are saveable; completeness is checked by callers before
// persistence-triggering flows like checkout.
type ProfileStore struct {
	kv     kv.Store
	logger *slog.Logger
}

// NewProfileStore creates a new profile store.
func NewProfileStore(store kv.Store, logger *slog.Logger) *ProfileStore {
	return &ProfileStore{
		kv:     store,
		logger: logger,
	}
}

// Load returns the stored profile, or nil when none was ever saved or the
// stored snapshot is corrupt.
func (s *ProfileStore) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	var profile domain.UserProfile
	found, err := s.kv.Get(ctx, profileKeyPrefix+userID, &profile)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load profile",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// Save replaces the stored profile wholesale and persists immediately.
func (s *ProfileStore) Save(ctx context.Context, userID string, profile domain.UserProfile) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.kv.Set(ctx, profileKeyPrefix+userID, profile); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist profile",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.InfoContext(ctx, "profile saved", slog.String("user_id", userID))
	return nil
}

// Update merges the patch into the existing profile. If no profile exists
// yet, this is a no-op and returns nil.
func (s *ProfileStore) Update(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	profile, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	profile.Apply(patch)
	if err := s.Save(ctx, userID, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Clear removes the stored profile; the shopper's profile becomes absent.
func (s *ProfileStore) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.kv.Delete(ctx, profileKeyPrefix+userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear profile",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.InfoContext(ctx, "profile cleared", slog.String("user_id", userID))
	return nil
}

// IsComplete reports whether a profile exists and all required fields are
// populated.
func (s *ProfileStore) IsComplete(ctx context.Context, userID string) (bool, error) {
	profile, err := s.Load(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile != nil && profile.IsComplete(), nil
}
