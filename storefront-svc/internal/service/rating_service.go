package service

import (
	"context"
	"errors"
	"strings"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/storage"

	log "github.com/sirupsen/logrus"
)

var ErrDuplicateRating = errors.New("user has already rated the service")

type RatingService struct {
	repository RatingRepository
	cache      RatingCache
	gateway    GatewayInterface
}

func NewRatingService(repository RatingRepository, cache RatingCache, gateway GatewayInterface) *RatingService {
	return &RatingService{
		repository: repository,
		cache:      cache,
		gateway:    gateway,
	}
}

// HasUserRated trusts a cached marker and falls back to the database,
// backfilling the marker when the database has a rating.
func (s *RatingService) HasUserRated(ctx context.Context, userID string) (bool, error) {
	cacheKey := s.cache.RatingMarkerKey(userID)
	if exists, _ := s.cache.Exists(ctx, cacheKey); exists {
		return true, nil
	}

	rated, err := s.repository.HasRating(ctx, userID)
	if err != nil {
		return false, domain.NewDataAccessError("check rating", err)
	}
	if rated {
		s.cacheMarker(ctx, userID, cacheKey)
	}
	return rated, nil
}

func (s *RatingService) Eligibility(ctx context.Context, userID string) (domain.RatingEligibility, error) {
	first, err := s.gateway.IsFirstPaidInvoice(ctx, userID)
	if err != nil {
		return domain.RatingEligibility{}, err
	}
	rated, err := s.HasUserRated(ctx, userID)
	if err != nil {
		return domain.RatingEligibility{}, err
	}
	return domain.RatingEligibility{
		FirstPaidInvoice: first,
		AlreadyRated:     rated,
		Eligible:         first && !rated,
	}, nil
}

func (s *RatingService) SubmitRating(ctx context.Context, userID string, score int, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, domain.NewValidationError("score", "must be between 1 and 5")
	}

	rating := &domain.Rating{UserID: userID, Score: score}
	if trimmed := strings.TrimSpace(comment); trimmed != "" {
		rating.Comment = &trimmed
	}

	cacheKey := s.cache.RatingMarkerKey(userID)
	if exists, _ := s.cache.Exists(ctx, cacheKey); exists {
		return nil, ErrDuplicateRating
	}

	if err := s.repository.InsertRating(ctx, rating); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.cacheMarker(ctx, userID, cacheKey)
			return nil, ErrDuplicateRating
		}
		return nil, domain.NewDataAccessError("submit rating", err)
	}

	s.cacheMarker(ctx, userID, cacheKey)
	return rating, nil
}

func (s *RatingService) cacheMarker(ctx context.Context, userID, key string) {
	if err := s.cache.SetMarker(ctx, key); err != nil {
		log.Warnf("rating marker for user %s not cached: %v", userID, err)
	}
}
