package catalog

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"

	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/repository"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

// Cataloger expõe as entidades gravadas pela última sincronização
type Cataloger interface {
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	ListCreatives(ctx context.Context) ([]domain.Creative, error)
	ListAds(ctx context.Context, campaignID string) ([]domain.Ad, error)
}

type Service struct {
	campaigns repository.CampaignRepository
	creatives repository.CreativeRepository
	ads       repository.AdRepository
}

func NewService(
	campaigns repository.CampaignRepository,
	creatives repository.CreativeRepository,
	ads repository.AdRepository,
) Cataloger {
	return &Service{
		campaigns: campaigns,
		creatives: creatives,
		ads:       ads,
	}
}

func (s *Service) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

func (s *Service) ListCreatives(ctx context.Context) ([]domain.Creative, error) {
	return s.creatives.List(ctx)
}

func (s *Service) ListAds(ctx context.Context, campaignID string) ([]domain.Ad, error) {
	return s.ads.List(ctx, campaignID)
}
