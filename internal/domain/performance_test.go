package domain

import (
	"errors"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() PerformanceRequest {
	return PerformanceRequest{
		Grouping: GroupingAd,
		Filters: PerformanceFilters{
			DateRange: DateRange{From: NewDate(2024, 1, 1), To: NewDate(2024, 1, 31)},
			Objective: ObjectiveSales,
		},
		Pagination: Pagination{Page: 1, PageSize: 10},
		Columns:    []ColumnID{ColumnImpressions, ColumnSpend, ColumnCTR, ColumnROAS},
	}
}

func TestPerformanceRequest_Validate(t *testing.T) {
	inactive := StatusInactive
	bogus := EntityStatus("paused")

	tests := []struct {
		name   string
		mutate func(r *PerformanceRequest)
		field  string
	}{
		{"Pedido válido", func(r *PerformanceRequest) {}, ""},
		{"Pedido válido com status e ordenação", func(r *PerformanceRequest) {
			r.Filters.Status = &inactive
			r.Sorting = &Sorting{Field: ColumnSpend, Direction: SortDesc}
		}, ""},
		{"Agrupamento inválido", func(r *PerformanceRequest) { r.Grouping = "creative" }, "grouping"},
		{"Sem datas", func(r *PerformanceRequest) { r.Filters.DateRange = DateRange{} }, "filters.dateRange"},
		{"Datas invertidas", func(r *PerformanceRequest) {
			r.Filters.DateRange = DateRange{From: NewDate(2024, 2, 1), To: NewDate(2024, 1, 1)}
		}, "filters.dateRange"},
		{"Objetivo ausente", func(r *PerformanceRequest) { r.Filters.Objective = "" }, "filters.objective"},
		{"Status inválido", func(r *PerformanceRequest) { r.Filters.Status = &bogus }, "filters.status"},
		{"Página zero", func(r *PerformanceRequest) { r.Pagination.Page = 0 }, "pagination.page"},
		{"Tamanho de página excessivo", func(r *PerformanceRequest) { r.Pagination.PageSize = MaxPageSize + 1 }, "pagination.pageSize"},
		{"Sem colunas", func(r *PerformanceRequest) { r.Columns = nil }, "columns"},
		{"Coluna com erro de digitação", func(r *PerformanceRequest) { r.Columns = []ColumnID{"imprssions"} }, "columns"},
		{"Ordenação por coluna desconhecida", func(r *PerformanceRequest) {
			r.Sorting = &Sorting{Field: "nope", Direction: SortAsc}
		}, "sorting.field"},
		{"Direção inválida", func(r *PerformanceRequest) {
			r.Sorting = &Sorting{Field: ColumnSpend, Direction: "up"}
		}, "sorting.direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)

			err := r.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestPerformanceRequest_Normalized(t *testing.T) {
	a := validRequest()
	a.Columns = []ColumnID{ColumnROAS, ColumnSpend, ColumnSpend}
	a.Filters.Search = "  Summer Sale "

	b := validRequest()
	b.Columns = []ColumnID{ColumnSpend, ColumnROAS}
	b.Filters.Search = "summer sale"

	assert.Equal(t, b.Normalized(), a.Normalized())
	assert.Equal(t, []ColumnID{ColumnROAS, ColumnSpend, ColumnSpend}, a.Columns, "o pedido original não deve ser alterado")
}

func TestPerformanceRequest_DecodeJSON(t *testing.T) {
	body := `{
		"grouping": "campaign",
		"filters": {"dateRange": {"from": "2024-03-01", "to": "2024-03-07"}, "objective": "LEADS", "status": "active", "search": "promo"},
		"pagination": {"page": 2, "pageSize": 25},
		"sorting": {"field": "cpl", "direction": "asc"},
		"columns": ["campaign_name", "cpl"]
	}`

	var r PerformanceRequest
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(body, &r))
	require.NoError(t, r.Validate())

	assert.Equal(t, GroupingCampaign, r.Grouping)
	assert.Equal(t, "2024-03-01", r.Filters.DateRange.From.String())
	assert.Equal(t, StatusActive, *r.Filters.Status)
	assert.Equal(t, ColumnCPL, r.Sorting.Field)

	q := r.Query()
	assert.Equal(t, "promo", q.Search)
	assert.Equal(t, ObjectiveLeads, q.Objective)
}
