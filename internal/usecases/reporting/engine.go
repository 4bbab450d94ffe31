package reporting

import (
	"sort"

	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BuildReport agrupa, ordena, pagina e projeta as linhas já filtradas pelo armazenamento
func BuildReport(rows []domain.PerformanceRow, req domain.PerformanceRequest) domain.PerformanceResponse {
	summaries := aggregate(rows, req.Grouping)

	if req.Sorting != nil {
		sortSummaries(summaries, *req.Sorting, req.Grouping)
	}

	meta, start, end := paginate(len(summaries), req.Pagination)

	data := make([]domain.ReportRecord, 0, end-start)
	for _, s := range summaries[start:end] {
		data = append(data, project(s, req.Columns, req.Grouping))
	}

	return domain.PerformanceResponse{
		Data: data,
		Meta: meta,
	}
}

func sortSummaries(summaries []summary, sorting domain.Sorting, grouping domain.Grouping) {
	column, ok := domain.LookupColumn(sorting.Field)
	if !ok {
		return
	}

	desc := sorting.Direction == domain.SortDesc

	if column.Type.IsNumeric() {
		sort.SliceStable(summaries, func(i, j int) bool {
			a := toFloat(value(summaries[i], sorting.Field, grouping))
			b := toFloat(value(summaries[j], sorting.Field, grouping))
			if desc {
				return a > b
			}
			return a < b
		})
		return
	}

	// Collator não é seguro para uso concorrente, por isso um por ordenação
	collator := collate.New(language.Und)
	sort.SliceStable(summaries, func(i, j int) bool {
		cmp := collator.CompareString(
			toString(value(summaries[i], sorting.Field, grouping)),
			toString(value(summaries[j], sorting.Field, grouping)),
		)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// toFloat trata ausente ou não numérico como 0
func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// paginate devolve os metadados e a janela [start, end) da página pedida
func paginate(total int, p domain.Pagination) (domain.PageMeta, int, int) {
	pageSize := max(1, p.PageSize)
	page := max(1, p.Page)

	meta := domain.PageMeta{
		TotalRows:  total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return meta, start, end
}
