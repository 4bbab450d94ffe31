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
	adsTable = "ads"
)

var adColumns = []string{"id", "campaign_id", "creative_id", "start_date", "end_date", "name", "description", "status"}

type AdRepository interface {
	BulkInsert(ctx context.Context, ads []domain.Ad) (int, error)
	// List retorna todos os anúncios, ou apenas os da campanha quando campaignID não é vazio
	List(ctx context.Context, campaignID string) ([]domain.Ad, error)
}

type adRepository struct {
	conn postgres.Conn
}

func NewAdRepository(conn postgres.Conn) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) BulkInsert(ctx context.Context, ads []domain.Ad) (int, error) {
	rows := make([][]interface{}, 0, len(ads))
	for _, a := range ads {
		rows = append(rows, []interface{}{
			a.ID,
			a.CampaignID,
			a.CreativeID,
			nullableDate(a.StartDate),
			nullableDate(a.EndDate),
			a.Name,
			a.Description,
			a.Status,
		})
	}

	return bulkInsert(ctx, r.conn, adsTable, adColumns, rows)
}

func (r *adRepository) List(ctx context.Context, campaignID string) ([]domain.Ad, error) {
	queryBuilder := squirrel.
		Select(adColumns...).
		From(adsTable).
		OrderBy("name ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if campaignID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"campaign_id": campaignID})
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

	ads := make([]domain.Ad, 0)
	for rows.Next() {
		var (
			a                  domain.Ad
			startDate, endDate sql.NullTime
		)
		if err := rows.Scan(
			&a.ID,
			&a.CampaignID,
			&a.CreativeID,
			&startDate,
			&endDate,
			&a.Name,
			&a.Description,
			&a.Status,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
		}
		a.StartDate = dateFromNull(startDate)
		a.EndDate = dateFromNull(endDate)
		ads = append(ads, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, nil
}

func nullableDate(d domain.Date) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func dateFromNull(t sql.NullTime) domain.Date {
	if !t.Valid {
		return domain.Date{}
	}
	return dateFromTime(t.Time)
}

// dateFromTime descarta fuso e horário que o driver possa anexar a colunas DATE
func dateFromTime(t time.Time) domain.Date {
	return domain.NewDate(t.Date())
}
