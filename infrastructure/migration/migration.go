package migration

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
)

//go:embed schema.sql
var schema string

// Migrate cria as tabelas e índices caso ainda não existam
func Migrate(ctx context.Context, q postgres.Queryer) error {
	logrus.Info("migration: aplicando schema")

	if _, err := q.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("erro ao aplicar schema: %w", err)
	}

	logrus.Info("migration: schema aplicado")
	return nil
}
