package upstreamclient

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
	"golang.org/x/time/rate"
)

type Client interface {
	// GetPage busca uma página de uma coleção, já passando pela política de retry
	GetPage(ctx context.Context, collection string, query url.Values, page int) ([]byte, error)
}

type UpstreamClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	retry      RetryPolicy
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

func NewClient(cfg config.Upstream, m *metrics.Metrics) (*UpstreamClient, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base do upstream")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &UpstreamClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry:   NewRetryPolicy(cfg.MaxAttempts, cfg.RetryDelay),
		metrics: m,
	}

	client.retry.OnRetry = func(reason string, _ int, _ time.Duration) {
		m.RecordUpstreamRetry(reason)
	}

	if cfg.RequestsPerSecond > 0 {
		burst := max(1, int(cfg.RequestsPerSecond))
		client.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return client, nil
}

func (c *UpstreamClient) GetPage(ctx context.Context, collection string, query url.Values, page int) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, collection)

	params := url.Values{}
	for key, values := range query {
		params[key] = append([]string(nil), values...)
	}
	params.Set("page", strconv.Itoa(page))
	endpoint.RawQuery = params.Encode()

	target := endpoint.String()

	resp, err := c.retry.Do(ctx, func(ctx context.Context) (*Response, error) {
		return c.do(ctx, collection, target)
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"collection": collection,
			"page":       page,
			"error":      err.Error(),
		}).Error("upstream: failed to fetch page")
		return nil, errors.Wrapf(err, "erro ao buscar %s página %d", collection, page)
	}

	return resp.Body, nil
}

func (c *UpstreamClient) do(ctx context.Context, collection, target string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "erro aguardando o limitador de requisições")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	c.metrics.RecordUpstreamRequest(collection, resp.StatusCode)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
