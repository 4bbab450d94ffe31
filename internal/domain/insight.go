package domain

// Metrics são as oito medidas brutas de um dia de um anúncio (ou a soma de vários dias)
type Metrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Spend           float64 `json:"spend"`
	Conversions     int64   `json:"conversions"`
	Reach           int64   `json:"reach"`
	VideoViews      int64   `json:"videoViews"`
	Leads           int64   `json:"leads"`
	ConversionValue float64 `json:"conversionValue"`
}

func (m Metrics) Add(other Metrics) Metrics {
	return Metrics{
		Impressions:     m.Impressions + other.Impressions,
		Clicks:          m.Clicks + other.Clicks,
		Spend:           m.Spend + other.Spend,
		Conversions:     m.Conversions + other.Conversions,
		Reach:           m.Reach + other.Reach,
		VideoViews:      m.VideoViews + other.VideoViews,
		Leads:           m.Leads + other.Leads,
		ConversionValue: m.ConversionValue + other.ConversionValue,
	}
}

// Insight é a atividade de um anúncio em um dia.
// CampaignID é cópia desnormalizada da campanha do anúncio.
type Insight struct {
	ID         string `json:"id"`
	Date       Date   `json:"date"`
	AdID       string `json:"adId"`
	CampaignID string `json:"campaignId"`
	Metrics
}
