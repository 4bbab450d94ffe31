package repository

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"fmt"

	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
)

// Store reúne operações que atingem todas as tabelas de entidades
type Store interface {
	TruncateAll(ctx context.Context) error
}

type store struct {
	conn postgres.Conn
}

func NewStore(conn postgres.Conn) Store {
	return &store{conn: conn}
}

// TruncateAll apaga campanhas, criativos, anúncios e insights em um único statement
func (s *store) TruncateAll(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, "TRUNCATE TABLE insights, ads, creatives, campaigns"); err != nil {
		return fmt.Errorf("erro ao limpar tabelas: %w", err)
	}
	return nil
}
