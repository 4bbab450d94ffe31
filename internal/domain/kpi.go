package domain

// KPIs são as dez métricas derivadas. Denominador zero sempre resulta em 0.
type KPIs struct {
	CPM                float64 `json:"cpm"`
	CPR                float64 `json:"cpr"`
	CTR                float64 `json:"ctr"`
	CPC                float64 `json:"cpc"`
	ViewRate           float64 `json:"viewRate"`
	CPV                float64 `json:"cpv"`
	CPL                float64 `json:"cpl"`
	LeadConversionRate float64 `json:"leadConversionRate"`
	ROAS               float64 `json:"roas"`
	CPA                float64 `json:"cpa"`
}

// WeightedKPIs associa um vetor de KPIs ao seu peso (gasto do anúncio no período)
type WeightedKPIs struct {
	KPIs   KPIs
	Weight float64
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// CalculateKPIs calcula os KPIs a partir das medidas brutas de um dia ou de um total
func CalculateKPIs(m Metrics) KPIs {
	impressions := float64(m.Impressions)
	clicks := float64(m.Clicks)
	reach := float64(m.Reach)
	videoViews := float64(m.VideoViews)
	leads := float64(m.Leads)
	conversions := float64(m.Conversions)

	return KPIs{
		CPM:                safeDivide(m.Spend, impressions) * 1000,
		CPR:                safeDivide(m.Spend, reach) * 1000,
		CTR:                safeDivide(clicks, impressions) * 100,
		CPC:                safeDivide(m.Spend, clicks),
		ViewRate:           safeDivide(videoViews, impressions) * 100,
		CPV:                safeDivide(m.Spend, videoViews),
		CPL:                safeDivide(m.Spend, leads),
		LeadConversionRate: safeDivide(leads, clicks) * 100,
		ROAS:               safeDivide(m.ConversionValue, m.Spend),
		CPA:                safeDivide(m.Spend, conversions),
	}
}

func (k KPIs) plus(other KPIs, weight float64) KPIs {
	return KPIs{
		CPM:                k.CPM + other.CPM*weight,
		CPR:                k.CPR + other.CPR*weight,
		CTR:                k.CTR + other.CTR*weight,
		CPC:                k.CPC + other.CPC*weight,
		ViewRate:           k.ViewRate + other.ViewRate*weight,
		CPV:                k.CPV + other.CPV*weight,
		CPL:                k.CPL + other.CPL*weight,
		LeadConversionRate: k.LeadConversionRate + other.LeadConversionRate*weight,
		ROAS:               k.ROAS + other.ROAS*weight,
		CPA:                k.CPA + other.CPA*weight,
	}
}

func (k KPIs) divide(divisor float64) KPIs {
	return KPIs{
		CPM:                safeDivide(k.CPM, divisor),
		CPR:                safeDivide(k.CPR, divisor),
		CTR:                safeDivide(k.CTR, divisor),
		CPC:                safeDivide(k.CPC, divisor),
		ViewRate:           safeDivide(k.ViewRate, divisor),
		CPV:                safeDivide(k.CPV, divisor),
		CPL:                safeDivide(k.CPL, divisor),
		LeadConversionRate: safeDivide(k.LeadConversionRate, divisor),
		ROAS:               safeDivide(k.ROAS, divisor),
		CPA:                safeDivide(k.CPA, divisor),
	}
}

// AverageKPIs é a média simples campo a campo; lista vazia resulta em zeros
func AverageKPIs(values []KPIs) KPIs {
	if len(values) == 0 {
		return KPIs{}
	}

	var sum KPIs
	for _, v := range values {
		sum = sum.plus(v, 1)
	}
	return sum.divide(float64(len(values)))
}

// WeightedAverageKPIs calcula Σ(kpi × peso) / Σ(peso); soma de pesos zero resulta em zeros
func WeightedAverageKPIs(values []WeightedKPIs) KPIs {
	var (
		sum         KPIs
		totalWeight float64
	)
	for _, v := range values {
		sum = sum.plus(v.KPIs, v.Weight)
		totalWeight += v.Weight
	}

	if totalWeight == 0 {
		return KPIs{}
	}
	return sum.divide(totalWeight)
}
