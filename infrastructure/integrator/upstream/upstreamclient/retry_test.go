package upstreamclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSleeper struct {
	waits []time.Duration
}

func (f *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	f.waits = append(f.waits, d)
	return nil
}

// scripted devolve as respostas na ordem e repete a última indefinidamente
func scripted(calls *int, steps ...func() (*Response, error)) Operation {
	return func(context.Context) (*Response, error) {
		i := min(*calls, len(steps)-1)
		*calls++
		return steps[i]()
	}
}

func status(code int, body string) func() (*Response, error) {
	return func() (*Response, error) {
		return &Response{StatusCode: code, Body: []byte(body)}, nil
	}
}

func networkFailure() (*Response, error) {
	return nil, errors.New("connection refused")
}

func TestRetryPolicy_Do(t *testing.T) {
	const baseDelay = 1000 * time.Millisecond

	tests := []struct {
		name        string
		steps       []func() (*Response, error)
		wantCalls   int
		wantWaits   []time.Duration
		wantErr     bool
		wantStatus  int
		wantRetries bool
	}{
		{
			name:      "sucesso na primeira tentativa",
			steps:     []func() (*Response, error){status(200, `{"data":[]}`)},
			wantCalls: 1,
		},
		{
			name:        "500 sempre esgota exatamente o máximo de tentativas",
			steps:       []func() (*Response, error){status(500, "boom")},
			wantCalls:   5,
			wantWaits:   []time.Duration{baseDelay, baseDelay, baseDelay, baseDelay},
			wantErr:     true,
			wantStatus:  500,
			wantRetries: true,
		},
		{
			name:      "429 espera o tempo sugerido e depois tem sucesso",
			steps:     []func() (*Response, error){status(429, `{"error":"slow down","retryAfterMs":250}`), status(200, "{}")},
			wantCalls: 2,
			wantWaits: []time.Duration{250 * time.Millisecond},
		},
		{
			name:      "429 sem dica usa o atraso base",
			steps:     []func() (*Response, error){status(429, ""), status(200, "{}")},
			wantCalls: 2,
			wantWaits: []time.Duration{baseDelay},
		},
		{
			name:       "404 não é repetido",
			steps:      []func() (*Response, error){status(404, "not found")},
			wantCalls:  1,
			wantErr:    true,
			wantStatus: 404,
		},
		{
			name:       "400 não é repetido",
			steps:      []func() (*Response, error){status(400, "bad request")},
			wantCalls:  1,
			wantErr:    true,
			wantStatus: 400,
		},
		{
			name:      "falha de rede seguida de sucesso",
			steps:     []func() (*Response, error){networkFailure, status(200, "{}")},
			wantCalls: 2,
			wantWaits: []time.Duration{baseDelay},
		},
		{
			name:      "falha de rede persistente propaga o erro",
			steps:     []func() (*Response, error){networkFailure},
			wantCalls: 5,
			wantWaits: []time.Duration{baseDelay, baseDelay, baseDelay, baseDelay},
			wantErr:   true,
		},
		{
			name:      "mistura de 500 e 429 dentro do limite",
			steps:     []func() (*Response, error){status(500, ""), status(429, `{"retryAfterMs":10}`), status(200, "{}")},
			wantCalls: 3,
			wantWaits: []time.Duration{baseDelay, 10 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeper := &fakeSleeper{}
			policy := NewRetryPolicy(5, baseDelay)
			policy.Sleep = sleeper.Sleep

			calls := 0
			resp, err := policy.Do(context.Background(), scripted(&calls, tt.steps...))

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantWaits == nil {
				assert.Empty(t, sleeper.waits)
			} else {
				assert.Equal(t, tt.wantWaits, sleeper.waits)
			}

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				return
			}

			require.Error(t, err)
			if tt.wantStatus != 0 {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
				assert.Equal(t, tt.wantRetries, statusErr.Retryable)
			}
		})
	}
}

func TestRetryPolicy_HonorsRetryAfterWallClock(t *testing.T) {
	policy := NewRetryPolicy(5, time.Second)

	calls := 0
	start := time.Now()
	resp, err := policy.Do(context.Background(), scripted(&calls,
		status(429, `{"error":"rate limited","retryAfterMs":250}`),
		status(200, "{}"),
	))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, elapsed, 250*time.Millisecond)
}

func TestRetryPolicy_CancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := NewRetryPolicy(5, time.Hour)
	policy.OnRetry = func(string, int, time.Duration) { cancel() }

	calls := 0
	_, err := policy.Do(ctx, scripted(&calls, status(503, "")))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_OnRetryReasons(t *testing.T) {
	var reasons []string
	policy := NewRetryPolicy(4, time.Millisecond)
	policy.Sleep = (&fakeSleeper{}).Sleep
	policy.OnRetry = func(reason string, _ int, _ time.Duration) { reasons = append(reasons, reason) }

	calls := 0
	_, err := policy.Do(context.Background(), scripted(&calls,
		status(500, ""),
		status(429, ""),
		networkFailure,
		status(200, "{}"),
	))

	require.NoError(t, err)
	assert.Equal(t, []string{RetryReasonServerError, RetryReasonRateLimited, RetryReasonNetwork}, reasons)
}
