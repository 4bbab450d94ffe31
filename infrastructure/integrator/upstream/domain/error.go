package upstreamdomain

// ErrorResponse é o corpo das respostas de erro do upstream.
// Em respostas 429, RetryAfterMs indica quanto esperar antes de tentar de novo.
type ErrorResponse struct {
	Error        string `json:"error"`
	RetryAfterMs int64  `json:"retryAfterMs,omitempty"`
}
