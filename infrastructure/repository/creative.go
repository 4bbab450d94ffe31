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
	creativesTable = "creatives"
)

var creativeColumns = []string{"id", "type", "thumbnail_url"}

type CreativeRepository interface {
	BulkInsert(ctx context.Context, creatives []domain.Creative) (int, error)
	List(ctx context.Context) ([]domain.Creative, error)
}

type creativeRepository struct {
	conn postgres.Conn
}

func NewCreativeRepository(conn postgres.Conn) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

func (r *creativeRepository) BulkInsert(ctx context.Context, creatives []domain.Creative) (int, error) {
	rows := make([][]interface{}, 0, len(creatives))
	for _, c := range creatives {
		rows = append(rows, []interface{}{c.ID, c.Type, c.ThumbnailURL})
	}

	return bulkInsert(ctx, r.conn, creativesTable, creativeColumns, rows)
}

func (r *creativeRepository) List(ctx context.Context) ([]domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns...).
		From(creativesTable).
		OrderBy("id ASC").
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

	creatives := make([]domain.Creative, 0)
	for rows.Next() {
		var c domain.Creative
		if err := rows.Scan(&c.ID, &c.Type, &c.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("erro ao escanear criativo: %w", err)
		}
		creatives = append(creatives, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return creatives, nil
}
