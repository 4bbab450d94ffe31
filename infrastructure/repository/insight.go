package repository

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

const (
	insightsTable = "insights"
)

var insightColumns = []string{
	"id", "date", "ad_id", "campaign_id",
	"impressions", "clicks", "spend", "conversions",
	"reach", "video_views", "leads", "conversion_value",
}

type InsightRepository interface {
	// BulkInsert grava um lote inteiro em uma única transação
	BulkInsert(ctx context.Context, insights []domain.Insight) (int, error)
	QueryPerformanceRows(ctx context.Context, filter domain.PerformanceQuery) ([]domain.PerformanceRow, error)
	Count(ctx context.Context) (int, error)
}

type insightRepository struct {
	conn postgres.Conn
}

func NewInsightRepository(conn postgres.Conn) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) BulkInsert(ctx context.Context, insights []domain.Insight) (int, error) {
	if len(insights) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(insights))
	for _, i := range insights {
		rows = append(rows, []interface{}{
			i.ID,
			i.Date.String(),
			i.AdID,
			i.CampaignID,
			i.Impressions,
			i.Clicks,
			i.Spend,
			i.Conversions,
			i.Reach,
			i.VideoViews,
			i.Leads,
			i.ConversionValue,
		})
	}

	var inserted int
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		n, err := bulkInsert(ctx, tx, insightsTable, insightColumns, rows)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// QueryPerformanceRows seleciona os insights do período unidos a anúncio, campanha e criativo.
// O objetivo sempre restringe o resultado, inclusive quando a busca casa pelo nome do anúncio.
func (r *insightRepository) QueryPerformanceRows(ctx context.Context, filter domain.PerformanceQuery) ([]domain.PerformanceRow, error) {
	queryBuilder := squirrel.
		Select(
			"i.date", "i.ad_id", "i.campaign_id",
			"i.impressions", "i.clicks", "i.spend", "i.conversions",
			"i.reach", "i.video_views", "i.leads", "i.conversion_value",
			"c.name", "c.status", "c.objective",
			"a.name", "a.status",
			"COALESCE(cr.type, '')", "COALESCE(cr.thumbnail_url, '')",
		).
		From("insights i").
		Join("campaigns c ON c.id = i.campaign_id").
		Join("ads a ON a.id = i.ad_id").
		LeftJoin("creatives cr ON cr.id = a.creative_id").
		Where(squirrel.GtOrEq{"i.date": filter.From.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"i.date": filter.To.Format(time.DateOnly)}).
		Where(squirrel.Eq{"c.objective": filter.Objective}).
		OrderBy("i.campaign_id ASC", "i.ad_id ASC", "i.date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != nil {
		statusColumn := "c.status"
		if filter.Grouping == domain.GroupingAd {
			statusColumn = "a.status"
		}
		queryBuilder = queryBuilder.Where(squirrel.Eq{statusColumn: *filter.Status})
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		if filter.Grouping == domain.GroupingAd {
			queryBuilder = queryBuilder.Where(squirrel.Or{
				squirrel.ILike{"c.name": pattern},
				squirrel.ILike{"a.name": pattern},
			})
		} else {
			queryBuilder = queryBuilder.Where(squirrel.ILike{"c.name": pattern})
		}
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]domain.PerformanceRow, 0)
	for rows.Next() {
		row, err := r.scanPerformanceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de performance: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *insightRepository) Count(ctx context.Context) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(insightsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar insights: %w", err)
	}

	return count, nil
}

func (r *insightRepository) scanPerformanceRow(rows *sql.Rows) (domain.PerformanceRow, error) {
	var (
		row  domain.PerformanceRow
		date time.Time
	)

	err := rows.Scan(
		&date,
		&row.AdID,
		&row.CampaignID,
		&row.Metrics.Impressions,
		&row.Metrics.Clicks,
		&row.Metrics.Spend,
		&row.Metrics.Conversions,
		&row.Metrics.Reach,
		&row.Metrics.VideoViews,
		&row.Metrics.Leads,
		&row.Metrics.ConversionValue,
		&row.CampaignName,
		&row.CampaignStatus,
		&row.CampaignObjective,
		&row.AdName,
		&row.AdStatus,
		&row.CreativeType,
		&row.ThumbnailURL,
	)
	if err != nil {
		return domain.PerformanceRow{}, err
	}

	row.Date = dateFromTime(date)
	return row, nil
}
