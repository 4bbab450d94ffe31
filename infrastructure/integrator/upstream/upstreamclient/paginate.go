package upstreamclient

import (
	"context"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	upstreamdomain "github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/domain"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 20

// ProgressFunc recebe quantos registros já chegaram e o total estimado
type ProgressFunc func(fetched, total int)

type FetchOptions struct {
	Query       url.Values
	Concurrency int
	OnProgress  ProgressFunc
}

// FetchAll busca todas as páginas de uma coleção.
// A página 1 revela o total de páginas; as demais são buscadas em lotes concorrentes
// de tamanho Concurrency, e cada lote termina antes do próximo começar.
func FetchAll[T any](ctx context.Context, client Client, collection string, opts FetchOptions) ([]T, error) {
	report := func(fetched, total int) {
		if opts.OnProgress != nil {
			opts.OnProgress(fetched, total)
		}
	}

	first, err := fetchPage[T](ctx, client, collection, opts.Query, 1)
	if err != nil {
		return nil, err
	}

	totalPages := first.Pagination.TotalPages
	pageSize := max(first.Pagination.PageSize, len(first.Data))
	estimated := max(totalPages*pageSize, len(first.Data))

	records := make([]T, 0, estimated)
	records = append(records, first.Data...)

	if totalPages <= 1 {
		report(len(records), len(records))
		return records, nil
	}
	report(len(records), estimated)

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	var mu sync.Mutex
	batch := 0

	for start := 2; start <= totalPages; start += concurrency {
		end := min(start+concurrency-1, totalPages)

		g, gctx := errgroup.WithContext(ctx)
		for page := start; page <= end; page++ {
			g.Go(func() error {
				result, err := fetchPage[T](gctx, client, collection, opts.Query, page)
				if err != nil {
					return err
				}

				mu.Lock()
				records = append(records, result.Data...)
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		batch++
		switch {
		case end == totalPages:
			report(len(records), len(records))
		case batch%2 == 0:
			report(len(records), max(estimated, len(records)))
		}
	}

	return records, nil
}

func fetchPage[T any](ctx context.Context, client Client, collection string, query url.Values, page int) (*upstreamdomain.Page[T], error) {
	body, err := client.GetPage(ctx, collection, query, page)
	if err != nil {
		return nil, err
	}

	var result upstreamdomain.Page[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar %s página %d", collection, page)
	}

	return &result, nil
}
