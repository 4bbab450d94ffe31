package upstreamclient

import (
	"fmt"
	"net/http"
)

// StatusError representa uma resposta não 2xx do upstream
type StatusError struct {
	StatusCode int
	Body       string
	Retryable  bool
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream respondeu com status %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("upstream respondeu com status %d (%s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

const maxErrorBody = 512

func newStatusError(resp *Response, retryable bool) *StatusError {
	body := string(resp.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: body, Retryable: retryable}
}
