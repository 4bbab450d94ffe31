package reporting

import (
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

type extractor func(s summary, grouping domain.Grouping) any

// extractors precisa ter uma entrada para cada coluna de domain.Columns
var extractors = map[domain.ColumnID]extractor{
	domain.ColumnCampaignID:   func(s summary, _ domain.Grouping) any { return s.meta.CampaignID },
	domain.ColumnCampaignName: func(s summary, _ domain.Grouping) any { return s.meta.CampaignName },
	domain.ColumnObjective:    func(s summary, _ domain.Grouping) any { return string(s.meta.CampaignObjective) },
	domain.ColumnStatus: func(s summary, grouping domain.Grouping) any {
		if grouping == domain.GroupingAd {
			return string(s.meta.AdStatus)
		}
		return string(s.meta.CampaignStatus)
	},
	domain.ColumnAdID:         func(s summary, _ domain.Grouping) any { return s.meta.AdID },
	domain.ColumnAdName:       func(s summary, _ domain.Grouping) any { return s.meta.AdName },
	domain.ColumnCreativeType: func(s summary, _ domain.Grouping) any { return string(s.meta.CreativeType) },
	domain.ColumnThumbnailURL: func(s summary, _ domain.Grouping) any { return s.meta.ThumbnailURL },

	domain.ColumnImpressions:     func(s summary, _ domain.Grouping) any { return s.totals.Impressions },
	domain.ColumnClicks:          func(s summary, _ domain.Grouping) any { return s.totals.Clicks },
	domain.ColumnSpend:           func(s summary, _ domain.Grouping) any { return s.totals.Spend },
	domain.ColumnConversions:     func(s summary, _ domain.Grouping) any { return s.totals.Conversions },
	domain.ColumnReach:           func(s summary, _ domain.Grouping) any { return s.totals.Reach },
	domain.ColumnVideoViews:      func(s summary, _ domain.Grouping) any { return s.totals.VideoViews },
	domain.ColumnLeads:           func(s summary, _ domain.Grouping) any { return s.totals.Leads },
	domain.ColumnConversionValue: func(s summary, _ domain.Grouping) any { return s.totals.ConversionValue },

	domain.ColumnCPM:                func(s summary, _ domain.Grouping) any { return s.kpis.CPM },
	domain.ColumnCPR:                func(s summary, _ domain.Grouping) any { return s.kpis.CPR },
	domain.ColumnCTR:                func(s summary, _ domain.Grouping) any { return s.kpis.CTR },
	domain.ColumnCPC:                func(s summary, _ domain.Grouping) any { return s.kpis.CPC },
	domain.ColumnViewRate:           func(s summary, _ domain.Grouping) any { return s.kpis.ViewRate },
	domain.ColumnCPV:                func(s summary, _ domain.Grouping) any { return s.kpis.CPV },
	domain.ColumnCPL:                func(s summary, _ domain.Grouping) any { return s.kpis.CPL },
	domain.ColumnLeadConversionRate: func(s summary, _ domain.Grouping) any { return s.kpis.LeadConversionRate },
	domain.ColumnROAS:               func(s summary, _ domain.Grouping) any { return s.kpis.ROAS },
	domain.ColumnCPA:                func(s summary, _ domain.Grouping) any { return s.kpis.CPA },
}

// value devolve o valor da coluna para o grupo, ou nil quando a coluna não existe no nível
func value(s summary, id domain.ColumnID, grouping domain.Grouping) any {
	column, ok := domain.LookupColumn(id)
	if !ok || !column.AppliesTo(grouping) {
		return nil
	}

	extract, ok := extractors[id]
	if !ok {
		return nil
	}
	return extract(s, grouping)
}

// project monta o registro apenas com as colunas pedidas que existem no nível de agrupamento
func project(s summary, columns []domain.ColumnID, grouping domain.Grouping) domain.ReportRecord {
	record := make(domain.ReportRecord, len(columns))
	for _, id := range columns {
		if v := value(s, id, grouping); v != nil {
			record[id] = v
		}
	}
	return record
}
