package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const MaxPageSize = 500

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

type PerformanceFilters struct {
	DateRange DateRange     `json:"dateRange"`
	Status    *EntityStatus `json:"status,omitempty"`
	Objective Objective     `json:"objective"`
	Search    string        `json:"search,omitempty"`
}

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type Sorting struct {
	Field     ColumnID      `json:"field"`
	Direction SortDirection `json:"direction"`
}

// PerformanceRequest é o pedido de relatório enviado pelo dashboard
type PerformanceRequest struct {
	Grouping   Grouping           `json:"grouping"`
	Filters    PerformanceFilters `json:"filters"`
	Pagination Pagination         `json:"pagination"`
	Sorting    *Sorting           `json:"sorting,omitempty"`
	Columns    []ColumnID         `json:"columns"`
}

// ValidationError indica um pedido malformado, rejeitado antes do motor de agregação
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (r *PerformanceRequest) Validate() error {
	if !r.Grouping.IsValid() {
		return invalid("grouping", "must be one of campaign, ad (got %q)", r.Grouping)
	}

	f := r.Filters
	if f.DateRange.From.IsZero() || f.DateRange.To.IsZero() {
		return invalid("filters.dateRange", "from and to are required")
	}
	if f.DateRange.From.After(f.DateRange.To.Time) {
		return invalid("filters.dateRange", "from (%s) is after to (%s)", f.DateRange.From, f.DateRange.To)
	}
	if !f.Objective.IsValid() {
		return invalid("filters.objective", "unknown objective %q", f.Objective)
	}
	if f.Status != nil && !f.Status.IsValid() {
		return invalid("filters.status", "must be active or inactive (got %q)", *f.Status)
	}

	if r.Pagination.Page < 1 {
		return invalid("pagination.page", "must be >= 1")
	}
	if r.Pagination.PageSize < 1 || r.Pagination.PageSize > MaxPageSize {
		return invalid("pagination.pageSize", "must be between 1 and %d", MaxPageSize)
	}

	if len(r.Columns) == 0 {
		return invalid("columns", "at least one column is required")
	}
	for _, id := range r.Columns {
		if _, ok := LookupColumn(id); !ok {
			return invalid("columns", "unknown column %q", id)
		}
	}

	if r.Sorting != nil {
		if _, ok := LookupColumn(r.Sorting.Field); !ok {
			return invalid("sorting.field", "unknown column %q", r.Sorting.Field)
		}
		if r.Sorting.Direction != SortAsc && r.Sorting.Direction != SortDesc {
			return invalid("sorting.direction", "must be asc or desc (got %q)", r.Sorting.Direction)
		}
	}

	return nil
}

// Normalized devolve uma cópia com ordem estável dos campos para uso como chave de cache
func (r PerformanceRequest) Normalized() PerformanceRequest {
	out := r

	out.Columns = slices.Clone(r.Columns)
	slices.Sort(out.Columns)
	out.Columns = slices.Compact(out.Columns)

	out.Filters.Search = strings.ToLower(strings.TrimSpace(r.Filters.Search))
	if r.Filters.Status != nil {
		status := *r.Filters.Status
		out.Filters.Status = &status
	}
	if r.Sorting != nil {
		sorting := *r.Sorting
		out.Sorting = &sorting
	}

	return out
}

// Query converte o pedido no filtro de seleção aplicado pelo armazenamento
func (r PerformanceRequest) Query() PerformanceQuery {
	return PerformanceQuery{
		Grouping:  r.Grouping,
		From:      r.Filters.DateRange.From.Time,
		To:        r.Filters.DateRange.To.Time,
		Objective: r.Filters.Objective,
		Status:    r.Filters.Status,
		Search:    strings.TrimSpace(r.Filters.Search),
	}
}

// PerformanceQuery é o filtro de seleção de linhas de insight (passo 1 do motor).
// Status se aplica à entidade do nível de agrupamento.
type PerformanceQuery struct {
	Grouping  Grouping
	From      time.Time
	To        time.Time
	Objective Objective
	Status    *EntityStatus
	Search    string
}

// PerformanceRow é uma linha de insight já unida ao anúncio, campanha e criativo
type PerformanceRow struct {
	Date              Date
	AdID              string
	CampaignID        string
	Metrics           Metrics
	CampaignName      string
	CampaignStatus    EntityStatus
	CampaignObjective Objective
	AdName            string
	AdStatus          EntityStatus
	CreativeType      CreativeType
	ThumbnailURL      string
}

// ReportRecord contém somente as colunas pedidas
type ReportRecord map[ColumnID]any

type PageMeta struct {
	TotalRows  int `json:"totalRows"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type PerformanceResponse struct {
	Data []ReportRecord `json:"data"`
	Meta PageMeta       `json:"meta"`
}
