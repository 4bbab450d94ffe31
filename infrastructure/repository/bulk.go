package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
)

// Limite de parâmetros por statement do protocolo do Postgres
const maxBindParams = 65535

// bulkInsert grava as linhas em statements multi-valor, ignorando ids já existentes.
// Retorna quantas linhas foram efetivamente inseridas.
func bulkInsert(ctx context.Context, q postgres.Queryer, table string, columns []string, rows [][]interface{}) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	rowsPerStatement := maxBindParams / len(columns)
	inserted := 0

	for start := 0; start < len(rows); start += rowsPerStatement {
		end := min(start+rowsPerStatement, len(rows))

		builder := squirrel.
			Insert(table).
			Columns(columns...).
			Suffix("ON CONFLICT (id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows[start:end] {
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return inserted, fmt.Errorf("erro no banco de dados ao inserir em %s: %w (código: %s)", table, pqErr, pqErr.Code)
			}
			return inserted, fmt.Errorf("erro ao inserir em %s: %w", table, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
		}
		inserted += int(affected)
	}

	return inserted, nil
}

// escapeLike neutraliza os curingas do ILIKE no texto de busca
func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
