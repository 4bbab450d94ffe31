package upstreamclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
)

func TestUpstreamClient_GetPage(t *testing.T) {
	var got *url.URL
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		got = r.URL
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests","retryAfterMs":5}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"page":3,"pageSize":100,"totalPages":3}}`))
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	client, err := NewClient(config.Upstream{
		BaseURL:     srv.URL + "/api",
		MaxAttempts: 5,
		RetryDelay:  time.Millisecond,
	}, m)
	require.NoError(t, err)

	query := url.Values{"ids": []string{"a1,a2"}}
	body, err := client.GetPage(context.Background(), "insights", query, 3)
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":[],"pagination":{"page":3,"pageSize":100,"totalPages":3}}`, string(body))
	assert.Equal(t, "/api/insights", got.Path)
	assert.Equal(t, "3", got.Query().Get("page"))
	assert.Equal(t, "a1,a2", got.Query().Get("ids"))
	assert.Empty(t, query.Get("page"), "a query do chamador não deve ser alterada")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("insights", "429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("insights", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRetries.WithLabelValues(RetryReasonRateLimited)))
}

func TestUpstreamClient_RateLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"page":1,"pageSize":100,"totalPages":1}}`))
	}))
	defer srv.Close()

	client, err := NewClient(config.Upstream{
		BaseURL:           srv.URL,
		MaxAttempts:       1,
		RequestsPerSecond: 10,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, client.limiter)

	start := time.Now()
	for i := 0; i < 12; i++ {
		_, err := client.GetPage(context.Background(), "campaigns", nil, 1)
		require.NoError(t, err)
	}

	// burst de 10, as duas requisições restantes aguardam o limitador
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(config.Upstream{BaseURL: "://sem-esquema"}, nil)
	assert.Error(t, err)
}
