package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name          string
		allowed       []string
		origin        string
		method        string
		wantStatus    int
		wantAllowOrig string
	}{
		{"Origem permitida", []string{"http://localhost:3000"}, "http://localhost:3000", http.MethodGet, http.StatusTeapot, "http://localhost:3000"},
		{"Origem não permitida", []string{"http://localhost:3000"}, "http://evil.example", http.MethodGet, http.StatusTeapot, ""},
		{"Curinga", []string{"*"}, "http://any.example", http.MethodPost, http.StatusTeapot, "http://any.example"},
		{"Preflight", []string{"http://localhost:3000"}, "http://localhost:3000", http.MethodOptions, http.StatusOK, "http://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/performance", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowOrig, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
