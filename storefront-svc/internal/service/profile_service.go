package service

import (
	"context"
	"strings"

	"campus-storefront/storefront-svc/internal/domain"
)

type ProfileService struct {
	repository ProfileRepository
}

func NewProfileService(repository ProfileRepository) *ProfileService {
	return &ProfileService{repository: repository}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	profile, found, err := s.repository.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, false, domain.NewDataAccessError("get profile", err)
	}
	return profile, found, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	if profile.UserID == "" {
		return domain.NewValidationError("id", "is required")
	}
	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)
	profile.Phone = strings.TrimSpace(profile.Phone)
	profile.CedulaRUC = strings.TrimSpace(profile.CedulaRUC)

	if err := s.repository.UpsertProfile(ctx, profile); err != nil {
		return domain.NewDataAccessError("update profile", err)
	}
	return nil
}
