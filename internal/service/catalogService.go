package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/wanderbook/wanderbook/internal/database/postgres"
	"github.com/wanderbook/wanderbook/internal/entity"
)

type catalogService struct {
	experienceRepo repository.ExperienceRepository
	cacheRepo      repository.CatalogCache
}

func NewCatalogService(
	experienceRepo repository.ExperienceRepository,
	cacheRepo repository.CatalogCache,
) CatalogService {
	return &catalogService{
		experienceRepo: experienceRepo,
		cacheRepo:      cacheRepo,
	}
}

// ListExperiences serves the listing from cache when possible and falls
// back to storage. Cache failures are logged and swallowed; the catalog
// read path never fails because redis is down.
func (s *catalogService) ListExperiences(ctx context.Context) ([]*entity.Experience, error) {
	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.GetExperiences(ctx)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	experiences, err := s.experienceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiences: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetExperiences(ctx, experiences); err != nil {
			logrus.Warnf("Failed to cache experiences: %v", err)
		}
	}

	return experiences, nil
}

func (s *catalogService) GetExperience(ctx context.Context, id string) (*entity.ExperienceWithSlots, error) {
	experience, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.experienceRepo.GetSlots(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	if slots == nil {
		slots = []*entity.Slot{}
	}

	return &entity.ExperienceWithSlots{
		Experience: *experience,
		Slots:      slots,
	}, nil
}

func (s *catalogService) RefreshCache(ctx context.Context) error {
	if s.cacheRepo == nil {
		return nil
	}

	experiences, err := s.experienceRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load experiences for cache refresh: %w", err)
	}

	if err := s.cacheRepo.SetExperiences(ctx, experiences); err != nil {
		return fmt.Errorf("failed to refresh experiences cache: %w", err)
	}

	return nil
}
