package upstreamclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	upstreamdomain "github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultMaxAttempts = 5
	DefaultRetryDelay  = time.Second
)

// Motivos de nova tentativa, usados em logs e métricas
const (
	RetryReasonRateLimited = "rate_limited"
	RetryReasonServerError = "server_error"
	RetryReasonNetwork     = "network"
)

// Response é o resultado bruto de uma tentativa
type Response struct {
	StatusCode int
	Body       []byte
}

// Operation executa uma única tentativa de requisição
type Operation func(ctx context.Context) (*Response, error)

// RetryPolicy repete uma operação com número máximo de tentativas.
// 429 espera o tempo sugerido pelo servidor; 5xx e falhas de rede esperam BaseDelay;
// qualquer outro status não 2xx falha na hora.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
	OnRetry     func(reason string, attempt int, wait time.Duration)
}

func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryDelay
	}
	return RetryPolicy{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

func (p RetryPolicy) Do(ctx context.Context, op Operation) (*Response, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last := attempt == maxAttempts

		resp, err := op(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(ctx.Err(), "requisição ao upstream cancelada")
			}
			if last {
				return nil, errors.Wrapf(err, "requisição ao upstream falhou após %d tentativas", attempt)
			}
			if err := p.wait(ctx, RetryReasonNetwork, attempt, p.BaseDelay); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			if last {
				return nil, errors.Wrapf(newStatusError(resp, true), "limite de requisições persistiu após %d tentativas", attempt)
			}
			if err := p.wait(ctx, RetryReasonRateLimited, attempt, p.retryAfter(resp)); err != nil {
				return nil, err
			}

		case resp.StatusCode >= 500:
			if last {
				return nil, errors.Wrapf(newStatusError(resp, true), "upstream indisponível após %d tentativas", attempt)
			}
			if err := p.wait(ctx, RetryReasonServerError, attempt, p.BaseDelay); err != nil {
				return nil, err
			}

		default:
			return nil, newStatusError(resp, false)
		}
	}

	// Inalcançável com maxAttempts >= 1
	return nil, errors.New("nenhuma tentativa executada")
}

// retryAfter lê retryAfterMs do corpo do 429, usando BaseDelay quando ausente
func (p RetryPolicy) retryAfter(resp *Response) time.Duration {
	var body upstreamdomain.ErrorResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.RetryAfterMs <= 0 {
		return p.BaseDelay
	}
	return time.Duration(body.RetryAfterMs) * time.Millisecond
}

func (p RetryPolicy) wait(ctx context.Context, reason string, attempt int, d time.Duration) error {
	logrus.WithFields(logrus.Fields{
		"reason":  reason,
		"attempt": attempt,
		"wait_ms": d.Milliseconds(),
	}).Debug("upstream: retrying request")

	if p.OnRetry != nil {
		p.OnRetry(reason, attempt, d)
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	if err := sleep(ctx, d); err != nil {
		return errors.Wrap(err, "espera entre tentativas interrompida")
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
