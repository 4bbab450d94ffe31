package upstreamdomain

// Coleções expostas pelo upstream
const (
	CollectionCampaigns = "campaigns"
	CollectionCreatives = "creatives"
	CollectionAds       = "ads"
	CollectionInsights  = "insights"
)

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

type Creative struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type Ad struct {
	ID          string `json:"id"`
	CampaignID  string `json:"campaignId"`
	CreativeID  string `json:"creativeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type Insight struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	AdID            string  `json:"adId"`
	CampaignID      string  `json:"campaignId"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Spend           float64 `json:"spend"`
	Conversions     int64   `json:"conversions"`
	Reach           int64   `json:"reach"`
	VideoViews      int64   `json:"videoViews"`
	Leads           int64   `json:"leads"`
	ConversionValue float64 `json:"conversionValue"`
}
