package domain

// Grouping é a granularidade de uma linha do relatório
type Grouping string

const (
	GroupingCampaign Grouping = "campaign"
	GroupingAd       Grouping = "ad"
)

func (g Grouping) IsValid() bool {
	return g == GroupingCampaign || g == GroupingAd
}

type ColumnID string

const (
	ColumnCampaignID   ColumnID = "campaign_id"
	ColumnCampaignName ColumnID = "campaign_name"
	ColumnObjective    ColumnID = "objective"
	ColumnStatus       ColumnID = "status"
	ColumnAdID         ColumnID = "ad_id"
	ColumnAdName       ColumnID = "ad_name"
	ColumnCreativeType ColumnID = "creative_type"
	ColumnThumbnailURL ColumnID = "thumbnail_url"

	ColumnImpressions     ColumnID = "impressions"
	ColumnClicks          ColumnID = "clicks"
	ColumnSpend           ColumnID = "spend"
	ColumnConversions     ColumnID = "conversions"
	ColumnReach           ColumnID = "reach"
	ColumnVideoViews      ColumnID = "video_views"
	ColumnLeads           ColumnID = "leads"
	ColumnConversionValue ColumnID = "conversion_value"

	ColumnCPM                ColumnID = "cpm"
	ColumnCPR                ColumnID = "cpr"
	ColumnCTR                ColumnID = "ctr"
	ColumnCPC                ColumnID = "cpc"
	ColumnViewRate           ColumnID = "view_rate"
	ColumnCPV                ColumnID = "cpv"
	ColumnCPL                ColumnID = "cpl"
	ColumnLeadConversionRate ColumnID = "lead_conversion_rate"
	ColumnROAS               ColumnID = "roas"
	ColumnCPA                ColumnID = "cpa"
)

type ColumnCategory string

const (
	CategoryInfo    ColumnCategory = "info"
	CategoryMetrics ColumnCategory = "metrics"
	CategoryKPI     ColumnCategory = "kpi"
)

type ValueType string

const (
	ValueString     ValueType = "string"
	ValueNumber     ValueType = "number"
	ValueCurrency   ValueType = "currency"
	ValuePercentage ValueType = "percentage"
	ValueImage      ValueType = "image"
)

// IsNumeric indica se a coluna ordena numericamente
func (v ValueType) IsNumeric() bool {
	return v == ValueNumber || v == ValueCurrency || v == ValuePercentage
}

type Column struct {
	ID        ColumnID       `json:"id"`
	Label     string         `json:"label"`
	Category  ColumnCategory `json:"category"`
	Type      ValueType      `json:"type"`
	Levels    []Grouping     `json:"levels"`
	Objective Objective      `json:"objective,omitempty"`
}

func (c Column) AppliesTo(grouping Grouping) bool {
	for _, level := range c.Levels {
		if level == grouping {
			return true
		}
	}
	return false
}

var (
	bothLevels  = []Grouping{GroupingCampaign, GroupingAd}
	adLevelOnly = []Grouping{GroupingAd}
)

var columns = []Column{
	{ID: ColumnCampaignID, Label: "Campaign ID", Category: CategoryInfo, Type: ValueString, Levels: bothLevels},
	{ID: ColumnCampaignName, Label: "Campaign", Category: CategoryInfo, Type: ValueString, Levels: bothLevels},
	{ID: ColumnObjective, Label: "Objective", Category: CategoryInfo, Type: ValueString, Levels: bothLevels},
	{ID: ColumnStatus, Label: "Status", Category: CategoryInfo, Type: ValueString, Levels: bothLevels},
	{ID: ColumnAdID, Label: "Ad ID", Category: CategoryInfo, Type: ValueString, Levels: adLevelOnly},
	{ID: ColumnAdName, Label: "Ad", Category: CategoryInfo, Type: ValueString, Levels: adLevelOnly},
	{ID: ColumnCreativeType, Label: "Creative Type", Category: CategoryInfo, Type: ValueString, Levels: adLevelOnly},
	{ID: ColumnThumbnailURL, Label: "Thumbnail", Category: CategoryInfo, Type: ValueImage, Levels: adLevelOnly},

	{ID: ColumnImpressions, Label: "Impressions", Category: CategoryMetrics, Type: ValueNumber, Levels: bothLevels},
	{ID: ColumnClicks, Label: "Clicks", Category: CategoryMetrics, Type: ValueNumber, Levels: bothLevels},
	{ID: ColumnSpend, Label: "Spend", Category: CategoryMetrics, Type: ValueCurrency, Levels: bothLevels},
	{ID: ColumnConversions, Label: "Conversions", Category: CategoryMetrics, Type: ValueNumber, Levels: bothLevels},
	{ID: ColumnReach, Label: "Reach", Category: CategoryMetrics, Type: ValueNumber, Levels: bothLevels},
	{ID: ColumnVideoViews, Label: "Video Views", Category: CategoryMetrics, Type: ValueNumber, Levels: bothLevels},
	{ID: ColumnLeads, Label: "Leads", Category: CategoryMetrics, Type: ValueNumber, Levels: bothLevels},
	{ID: ColumnConversionValue, Label: "Conversion Value", Category: CategoryMetrics, Type: ValueCurrency, Levels: bothLevels},

	{ID: ColumnCPM, Label: "CPM", Category: CategoryKPI, Type: ValueCurrency, Levels: bothLevels, Objective: ObjectiveAwareness},
	{ID: ColumnCPR, Label: "CPR", Category: CategoryKPI, Type: ValueCurrency, Levels: bothLevels, Objective: ObjectiveAwareness},
	{ID: ColumnCTR, Label: "CTR", Category: CategoryKPI, Type: ValuePercentage, Levels: bothLevels, Objective: ObjectiveTraffic},
	{ID: ColumnCPC, Label: "CPC", Category: CategoryKPI, Type: ValueCurrency, Levels: bothLevels, Objective: ObjectiveTraffic},
	{ID: ColumnViewRate, Label: "View Rate", Category: CategoryKPI, Type: ValuePercentage, Levels: bothLevels, Objective: ObjectiveEngagement},
	{ID: ColumnCPV, Label: "CPV", Category: CategoryKPI, Type: ValueCurrency, Levels: bothLevels, Objective: ObjectiveEngagement},
	{ID: ColumnCPL, Label: "CPL", Category: CategoryKPI, Type: ValueCurrency, Levels: bothLevels, Objective: ObjectiveLeads},
	{ID: ColumnLeadConversionRate, Label: "Lead Conv. Rate", Category: CategoryKPI, Type: ValuePercentage, Levels: bothLevels, Objective: ObjectiveLeads},
	{ID: ColumnROAS, Label: "ROAS", Category: CategoryKPI, Type: ValueNumber, Levels: bothLevels, Objective: ObjectiveSales},
	{ID: ColumnCPA, Label: "CPA", Category: CategoryKPI, Type: ValueCurrency, Levels: bothLevels, Objective: ObjectiveSales},
}

var columnsByID = func() map[ColumnID]Column {
	index := make(map[ColumnID]Column, len(columns))
	for _, c := range columns {
		index[c.ID] = c
	}
	return index
}()

// Columns retorna uma cópia da descrição estática de todas as colunas
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

func LookupColumn(id ColumnID) (Column, bool) {
	c, ok := columnsByID[id]
	return c, ok
}
