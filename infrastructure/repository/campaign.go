package repository

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

var campaignColumns = []string{"id", "name", "status", "objective"}

type CampaignRepository interface {
	BulkInsert(ctx context.Context, campaigns []domain.Campaign) (int, error)
	List(ctx context.Context) ([]domain.Campaign, error)
}

type campaignRepository struct {
	conn postgres.Conn
}

func NewCampaignRepository(conn postgres.Conn) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) BulkInsert(ctx context.Context, campaigns []domain.Campaign) (int, error) {
	rows := make([][]interface{}, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, []interface{}{c.ID, c.Name, c.Status, c.Objective})
	}

	return bulkInsert(ctx, r.conn, campaignsTable, campaignColumns, rows)
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns...).
		From(campaignsTable).
		OrderBy("name ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.Objective); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}
