package service

import (
	"context"
	"fmt"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// SettingsService manages the closure date and the new-trip prefill
// preferences.
type SettingsService struct {
	store *store.Store
}

// NewSettingsService constructs a SettingsService backed by the provided
// store.
func NewSettingsService(s *store.Store) *SettingsService {
	return &SettingsService{store: s}
}

// ClosureDate returns the accounting cutoff, or "" when none is set.
func (s *SettingsService) ClosureDate(ctx context.Context) (string, error) {
	return s.store.ClosureDate(), nil
}

// SetClosureDate sets the accounting cutoff. Trips dated on or before it
// become read-only. Pass "" to remove the closure.
func (s *SettingsService) SetClosureDate(ctx context.Context, date string) error {
	if date != "" {
		if _, err := domain.ParseDate(date); err != nil {
			return fmt.Errorf("service.SettingsService.SetClosureDate: %w: date must be YYYY-MM-DD or empty", domain.ErrValidation)
		}
	}
	if err := s.store.SetClosureDate(ctx, date); err != nil {
		return fmt.Errorf("service.SettingsService.SetClosureDate: %w", err)
	}
	return nil
}

// Preferences returns the last-selected driver/vehicle/order triple.
func (s *SettingsService) Preferences(ctx context.Context) (domain.Preferences, error) {
	return s.store.Preferences(), nil
}

// SetPreferences overwrites the prefill preferences. IDs are not checked
// against the collections: a stale preference simply loses to the
// first-active fallback when defaults are computed.
func (s *SettingsService) SetPreferences(ctx context.Context, p domain.Preferences) error {
	if err := s.store.SetPreferences(ctx, p); err != nil {
		return fmt.Errorf("service.SettingsService.SetPreferences: %w", err)
	}
	return nil
}
