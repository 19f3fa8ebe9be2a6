package services

import (
	"context"

	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/repositories"
)

type FAQService struct {
	repo *repositories.FAQRepository
}

func NewFAQService(repo *repositories.FAQRepository) *FAQService {
	return &FAQService{repo: repo}
}

// Browse returns FAQs, optionally restricted to one category
func (s *FAQService) Browse(ctx context.Context, category string) ([]models.FAQ, error) {
	if category != "" {
		return s.repo.ListByCategory(ctx, category)
	}
	return s.repo.ListPublished(ctx)
}

func (s *FAQService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
