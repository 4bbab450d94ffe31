package upstream

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	upstreamdomain "github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/upstreamclient"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

// InsightFilter restringe a coleção de insights. Campos vazios não filtram.
type InsightFilter struct {
	From  domain.Date
	To    domain.Date
	AdIDs []string
}

type Integrator interface {
	FetchCampaigns(ctx context.Context, onProgress upstreamclient.ProgressFunc) ([]domain.Campaign, error)
	FetchCreatives(ctx context.Context, onProgress upstreamclient.ProgressFunc) ([]domain.Creative, error)
	FetchAds(ctx context.Context, onProgress upstreamclient.ProgressFunc) ([]domain.Ad, error)
	FetchInsights(ctx context.Context, filter InsightFilter, onProgress upstreamclient.ProgressFunc) ([]domain.Insight, error)
}

type UpstreamIntegrator struct {
	cfg    config.Sync
	Client upstreamclient.Client
}

func New(cfg config.Sync, client upstreamclient.Client) Integrator {
	return &UpstreamIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *UpstreamIntegrator) FetchCampaigns(ctx context.Context, onProgress upstreamclient.ProgressFunc) ([]domain.Campaign, error) {
	records, err := upstreamclient.FetchAll[upstreamdomain.Campaign](ctx, s.Client, upstreamdomain.CollectionCampaigns, s.options(nil, s.cfg.Concurrency, onProgress))
	if err != nil {
		return nil, err
	}

	campaigns := make([]domain.Campaign, 0, len(records))
	for _, r := range records {
		campaign, err := FactoryCampaign(r)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	logrus.WithField("count", len(campaigns)).Debug("upstream: campaigns fetched")
	return campaigns, nil
}

func (s *UpstreamIntegrator) FetchCreatives(ctx context.Context, onProgress upstreamclient.ProgressFunc) ([]domain.Creative, error) {
	records, err := upstreamclient.FetchAll[upstreamdomain.Creative](ctx, s.Client, upstreamdomain.CollectionCreatives, s.options(nil, s.cfg.Concurrency, onProgress))
	if err != nil {
		return nil, err
	}

	creatives := make([]domain.Creative, 0, len(records))
	for _, r := range records {
		creative, err := FactoryCreative(r)
		if err != nil {
			return nil, err
		}
		creatives = append(creatives, creative)
	}

	logrus.WithField("count", len(creatives)).Debug("upstream: creatives fetched")
	return creatives, nil
}

func (s *UpstreamIntegrator) FetchAds(ctx context.Context, onProgress upstreamclient.ProgressFunc) ([]domain.Ad, error) {
	records, err := upstreamclient.FetchAll[upstreamdomain.Ad](ctx, s.Client, upstreamdomain.CollectionAds, s.options(nil, s.cfg.Concurrency, onProgress))
	if err != nil {
		return nil, err
	}

	ads := make([]domain.Ad, 0, len(records))
	for _, r := range records {
		ad, err := FactoryAd(r)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}

	logrus.WithField("count", len(ads)).Debug("upstream: ads fetched")
	return ads, nil
}

func (s *UpstreamIntegrator) FetchInsights(ctx context.Context, filter InsightFilter, onProgress upstreamclient.ProgressFunc) ([]domain.Insight, error) {
	query := url.Values{}
	if !filter.From.IsZero() {
		query.Set("from", filter.From.String())
	}
	if !filter.To.IsZero() {
		query.Set("to", filter.To.String())
	}
	if len(filter.AdIDs) > 0 {
		query.Set("adIds", strings.Join(filter.AdIDs, ","))
	}

	records, err := upstreamclient.FetchAll[upstreamdomain.Insight](ctx, s.Client, upstreamdomain.CollectionInsights, s.options(query, s.cfg.InsightsConcurrency, onProgress))
	if err != nil {
		return nil, err
	}

	insights := make([]domain.Insight, 0, len(records))
	for _, r := range records {
		insight, err := FactoryInsight(r)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}

	logrus.WithField("count", len(insights)).Debug("upstream: insights fetched")
	return insights, nil
}

func (s *UpstreamIntegrator) options(query url.Values, concurrency int, onProgress upstreamclient.ProgressFunc) upstreamclient.FetchOptions {
	return upstreamclient.FetchOptions{
		Query:       query,
		Concurrency: concurrency,
		OnProgress:  onProgress,
	}
}

func FactoryCampaign(r upstreamdomain.Campaign) (domain.Campaign, error) {
	campaign := domain.Campaign{
		ID:        r.ID,
		Name:      r.Name,
		Status:    domain.EntityStatus(strings.ToLower(r.Status)),
		Objective: domain.Objective(strings.ToUpper(r.Objective)),
	}

	if campaign.ID == "" {
		return domain.Campaign{}, fmt.Errorf("campanha sem id")
	}
	if !campaign.Status.IsValid() {
		return domain.Campaign{}, fmt.Errorf("campanha %s: status inválido %q", r.ID, r.Status)
	}
	if !campaign.Objective.IsValid() {
		return domain.Campaign{}, fmt.Errorf("campanha %s: objetivo inválido %q", r.ID, r.Objective)
	}

	return campaign, nil
}

func FactoryCreative(r upstreamdomain.Creative) (domain.Creative, error) {
	creative := domain.Creative{
		ID:           r.ID,
		Type:         domain.CreativeType(strings.ToLower(r.Type)),
		ThumbnailURL: r.ThumbnailURL,
	}

	if creative.ID == "" {
		return domain.Creative{}, fmt.Errorf("criativo sem id")
	}
	if !creative.Type.IsValid() {
		return domain.Creative{}, fmt.Errorf("criativo %s: tipo inválido %q", r.ID, r.Type)
	}

	return creative, nil
}

func FactoryAd(r upstreamdomain.Ad) (domain.Ad, error) {
	ad := domain.Ad{
		ID:          r.ID,
		CampaignID:  r.CampaignID,
		CreativeID:  r.CreativeID,
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.EntityStatus(strings.ToLower(r.Status)),
	}

	if ad.ID == "" || ad.CampaignID == "" {
		return domain.Ad{}, fmt.Errorf("anúncio %q sem id ou campanha", r.ID)
	}
	if !ad.Status.IsValid() {
		return domain.Ad{}, fmt.Errorf("anúncio %s: status inválido %q", r.ID, r.Status)
	}

	var err error
	if r.StartDate != "" {
		if ad.StartDate, err = domain.ParseDate(r.StartDate); err != nil {
			return domain.Ad{}, fmt.Errorf("anúncio %s: data de início inválida: %w", r.ID, err)
		}
	}
	if r.EndDate != "" {
		if ad.EndDate, err = domain.ParseDate(r.EndDate); err != nil {
			return domain.Ad{}, fmt.Errorf("anúncio %s: data de término inválida: %w", r.ID, err)
		}
	}

	return ad, nil
}

func FactoryInsight(r upstreamdomain.Insight) (domain.Insight, error) {
	if r.ID == "" || r.AdID == "" || r.CampaignID == "" {
		return domain.Insight{}, fmt.Errorf("insight %q sem id, anúncio ou campanha", r.ID)
	}

	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Insight{}, fmt.Errorf("insight %s: data inválida: %w", r.ID, err)
	}

	metrics := domain.Metrics{
		Impressions:     r.Impressions,
		Clicks:          r.Clicks,
		Spend:           r.Spend,
		Conversions:     r.Conversions,
		Reach:           r.Reach,
		VideoViews:      r.VideoViews,
		Leads:           r.Leads,
		ConversionValue: r.ConversionValue,
	}
	if metrics.Impressions < 0 || metrics.Clicks < 0 || metrics.Spend < 0 || metrics.Conversions < 0 ||
		metrics.Reach < 0 || metrics.VideoViews < 0 || metrics.Leads < 0 || metrics.ConversionValue < 0 {
		return domain.Insight{}, fmt.Errorf("insight %s: medida negativa", r.ID)
	}

	return domain.Insight{
		ID:         r.ID,
		Date:       date,
		AdID:       r.AdID,
		CampaignID: r.CampaignID,
		Metrics:    metrics,
	}, nil
}
