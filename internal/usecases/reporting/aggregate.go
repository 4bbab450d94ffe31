package reporting

import (
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

// summary é uma linha do relatório antes da projeção de colunas
type summary struct {
	meta   domain.PerformanceRow
	totals domain.Metrics
	kpis   domain.KPIs
}

// adDays acumula as medidas de um anúncio por dia do período
type adDays struct {
	days  map[string]domain.Metrics
	order []string
	spend float64
}

func newAdDays() *adDays {
	return &adDays{days: make(map[string]domain.Metrics)}
}

func (a *adDays) add(row domain.PerformanceRow) {
	day := row.Date.String()
	if _, ok := a.days[day]; !ok {
		a.order = append(a.order, day)
	}
	a.days[day] = a.days[day].Add(row.Metrics)
	a.spend += row.Metrics.Spend
}

// averageKPIs calcula os KPIs de cada dia e tira a média simples entre os dias
func (a *adDays) averageKPIs() domain.KPIs {
	daily := make([]domain.KPIs, 0, len(a.order))
	for _, day := range a.order {
		daily = append(daily, domain.CalculateKPIs(a.days[day]))
	}
	return domain.AverageKPIs(daily)
}

type bucket struct {
	meta    domain.PerformanceRow
	totals  domain.Metrics
	ads     map[string]*adDays
	adOrder []string
}

func (b *bucket) add(row domain.PerformanceRow) {
	b.totals = b.totals.Add(row.Metrics)

	ad, ok := b.ads[row.AdID]
	if !ok {
		ad = newAdDays()
		b.ads[row.AdID] = ad
		b.adOrder = append(b.adOrder, row.AdID)
	}
	ad.add(row)
}

func groupKey(grouping domain.Grouping, row domain.PerformanceRow) string {
	if grouping == domain.GroupingAd {
		return row.AdID + "\x00" + row.CampaignID
	}
	return row.CampaignID
}

// aggregate agrupa as linhas diárias e calcula totais e KPIs de cada grupo.
// A ordem do resultado é a ordem em que cada grupo aparece pela primeira vez.
func aggregate(rows []domain.PerformanceRow, grouping domain.Grouping) []summary {
	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, row := range rows {
		key := groupKey(grouping, row)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{meta: row, ads: make(map[string]*adDays)}
			buckets[key] = b
			order = append(order, key)
		}
		b.add(row)
	}

	summaries := make([]summary, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		summaries = append(summaries, summary{
			meta:   b.meta,
			totals: b.totals,
			kpis:   b.rollup(grouping),
		})
	}

	return summaries
}

func (b *bucket) rollup(grouping domain.Grouping) domain.KPIs {
	if grouping == domain.GroupingAd {
		return b.ads[b.adOrder[0]].averageKPIs()
	}

	// campanha: média por anúncio ponderada pelo gasto do anúncio no período
	weighted := make([]domain.WeightedKPIs, 0, len(b.adOrder))
	for _, adID := range b.adOrder {
		ad := b.ads[adID]
		weighted = append(weighted, domain.WeightedKPIs{
			KPIs:   ad.averageKPIs(),
			Weight: ad.spend,
		})
	}
	return domain.WeightedAverageKPIs(weighted)
}
