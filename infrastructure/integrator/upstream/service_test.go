package upstream

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upstreamdomain "github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/upstreamclient/mocks"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"go.uber.org/mock/gomock"
)

func singlePage(data string) []byte {
	return []byte(`{"data":` + data + `,"pagination":{"page":1,"pageSize":100,"totalPages":1}}`)
}

func TestUpstreamIntegrator_FetchCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		GetPage(gomock.Any(), upstreamdomain.CollectionCampaigns, gomock.Nil(), 1).
		Return(singlePage(`[{"id":"c1","name":"Black Friday","status":"active","objective":"SALES"}]`), nil)

	integrator := New(config.Sync{Concurrency: 20, InsightsConcurrency: 30}, client)

	var progress [][2]int
	campaigns, err := integrator.FetchCampaigns(context.Background(), func(fetched, total int) {
		progress = append(progress, [2]int{fetched, total})
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Campaign{{
		ID: "c1", Name: "Black Friday", Status: domain.StatusActive, Objective: domain.ObjectiveSales,
	}}, campaigns)
	assert.Equal(t, [][2]int{{1, 1}}, progress)
}

func TestUpstreamIntegrator_FetchInsights_Query(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		GetPage(gomock.Any(), upstreamdomain.CollectionInsights, gomock.Any(), 1).
		DoAndReturn(func(_ context.Context, _ string, query url.Values, _ int) ([]byte, error) {
			assert.Equal(t, "2024-01-01", query.Get("from"))
			assert.Equal(t, "2024-01-31", query.Get("to"))
			assert.Equal(t, "a1,a2", query.Get("adIds"))
			return singlePage(`[{"id":"i1","date":"2024-01-15","adId":"a1","campaignId":"c1","impressions":1000,"clicks":50,"spend":25,"conversions":5,"reach":800,"videoViews":100,"leads":2,"conversionValue":45}]`), nil
		})

	integrator := New(config.Sync{InsightsConcurrency: 30}, client)
	insights, err := integrator.FetchInsights(context.Background(), InsightFilter{
		From:  domain.NewDate(2024, time.January, 1),
		To:    domain.NewDate(2024, time.January, 31),
		AdIDs: []string{"a1", "a2"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, insights, 1)

	assert.Equal(t, domain.NewDate(2024, time.January, 15), insights[0].Date)
	assert.Equal(t, int64(1000), insights[0].Impressions)
	assert.Equal(t, 45.0, insights[0].ConversionValue)
}

func TestUpstreamIntegrator_FetchAds_PropagatesClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		GetPage(gomock.Any(), upstreamdomain.CollectionAds, gomock.Any(), 1).
		Return(nil, errors.New("upstream indisponível"))

	ads, err := New(config.Sync{Concurrency: 20}, client).FetchAds(context.Background(), nil)

	assert.Nil(t, ads)
	assert.ErrorContains(t, err, "upstream indisponível")
}

func TestFactories(t *testing.T) {
	t.Run("campanha com objetivo desconhecido", func(t *testing.T) {
		_, err := FactoryCampaign(upstreamdomain.Campaign{ID: "c1", Status: "active", Objective: "REACH"})
		assert.ErrorContains(t, err, "objetivo inválido")
	})

	t.Run("campanha normaliza caixa", func(t *testing.T) {
		campaign, err := FactoryCampaign(upstreamdomain.Campaign{ID: "c1", Status: "ACTIVE", Objective: "leads"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, campaign.Status)
		assert.Equal(t, domain.ObjectiveLeads, campaign.Objective)
	})

	t.Run("criativo com tipo inválido", func(t *testing.T) {
		_, err := FactoryCreative(upstreamdomain.Creative{ID: "cr1", Type: "gif"})
		assert.Error(t, err)
	})

	t.Run("anúncio com datas ISO", func(t *testing.T) {
		ad, err := FactoryAd(upstreamdomain.Ad{
			ID: "a1", CampaignID: "c1", CreativeID: "cr1", Status: "inactive",
			StartDate: "2024-02-01T00:00:00.000Z", EndDate: "2024-02-29",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.NewDate(2024, time.February, 1), ad.StartDate)
		assert.Equal(t, domain.NewDate(2024, time.February, 29), ad.EndDate)
	})

	t.Run("anúncio com data inválida", func(t *testing.T) {
		_, err := FactoryAd(upstreamdomain.Ad{ID: "a1", CampaignID: "c1", Status: "active", StartDate: "ontem"})
		assert.ErrorContains(t, err, "data de início inválida")
	})

	t.Run("insight com medida negativa", func(t *testing.T) {
		_, err := FactoryInsight(upstreamdomain.Insight{ID: "i1", AdID: "a1", CampaignID: "c1", Date: "2024-01-01", Clicks: -1})
		assert.ErrorContains(t, err, "medida negativa")
	})
}
