package upstreamclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upstreamdomain "github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
)

type record struct {
	ID string `json:"id"`
}

// pagedServer simula o upstream: totalPages páginas de pageSize registros,
// com falhas 500 injetadas na primeira chamada das páginas em flaky
type pagedServer struct {
	mu         sync.Mutex
	totalPages int
	pageSize   int
	flaky      map[int]bool
	broken     map[int]int
	hits       map[int]int
}

func (s *pagedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	s.mu.Lock()
	s.hits[page]++
	hits := s.hits[page]
	s.mu.Unlock()

	if code, ok := s.broken[page]; ok {
		w.WriteHeader(code)
		return
	}
	if s.flaky[page] && hits == 1 {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"synthetic failure"}`))
		return
	}

	data := make([]record, 0, s.pageSize)
	for i := 0; i < s.pageSize; i++ {
		data = append(data, record{ID: fmt.Sprintf("p%d-r%d", page, i)})
	}

	body, _ := json.Marshal(upstreamdomain.Page[record]{
		Data:       data,
		Pagination: upstreamdomain.Pagination{Page: page, PageSize: s.pageSize, TotalPages: s.totalPages},
	})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func newPagedServer(t *testing.T, totalPages, pageSize int) (*pagedServer, Client) {
	t.Helper()

	s := &pagedServer{
		totalPages: totalPages,
		pageSize:   pageSize,
		flaky:      map[int]bool{},
		broken:     map[int]int{},
		hits:       map[int]int{},
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.Upstream{
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, nil)
	require.NoError(t, err)

	return s, client
}

func TestFetchAll_Completeness(t *testing.T) {
	tests := []struct {
		name        string
		totalPages  int
		concurrency int
	}{
		{name: "página única", totalPages: 1, concurrency: 20},
		{name: "lotes exatos", totalPages: 9, concurrency: 4},
		{name: "último lote parcial", totalPages: 23, concurrency: 5},
		{name: "concorrência maior que o total", totalPages: 7, concurrency: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, client := newPagedServer(t, tt.totalPages, 10)
			server.flaky[2] = true

			var (
				progressMu sync.Mutex
				fetched    []int
				totals     []int
			)
			records, err := FetchAll[record](context.Background(), client, "campaigns", FetchOptions{
				Concurrency: tt.concurrency,
				OnProgress: func(f, total int) {
					progressMu.Lock()
					defer progressMu.Unlock()
					fetched = append(fetched, f)
					totals = append(totals, total)
				},
			})
			require.NoError(t, err)

			assert.Len(t, records, tt.totalPages*10)
			seen := make(map[string]bool, len(records))
			for _, r := range records {
				assert.False(t, seen[r.ID], "registro duplicado %s", r.ID)
				seen[r.ID] = true
			}

			for page := 1; page <= tt.totalPages; page++ {
				want := 1
				if page == 2 && tt.totalPages > 1 {
					want = 2
				}
				assert.Equal(t, want, server.hits[page], "página %d", page)
			}
			assert.Zero(t, server.hits[tt.totalPages+1])

			require.NotEmpty(t, fetched)
			assert.IsNonDecreasing(t, fetched)
			assert.Equal(t, len(records), fetched[len(fetched)-1])
			assert.Equal(t, len(records), totals[len(totals)-1])
		})
	}
}

func TestFetchAll_ProgressIsCoarse(t *testing.T) {
	_, client := newPagedServer(t, 11, 1)

	calls := 0
	_, err := FetchAll[record](context.Background(), client, "ads", FetchOptions{
		Concurrency: 2,
		OnProgress:  func(int, int) { calls++ },
	})
	require.NoError(t, err)

	// página 1 + lotes 2 e 4 + lote final (5 lotes de páginas 2..11)
	assert.Equal(t, 4, calls)
}

func TestFetchAll_PropagatesNonRetryableError(t *testing.T) {
	server, client := newPagedServer(t, 6, 5)
	server.broken[4] = http.StatusNotFound

	records, err := FetchAll[record](context.Background(), client, "insights", FetchOptions{Concurrency: 2})

	require.Error(t, err)
	assert.Nil(t, records)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, 1, server.hits[4])
}

func TestFetchAll_ExhaustedRetries(t *testing.T) {
	server, client := newPagedServer(t, 3, 5)
	server.broken[1] = http.StatusInternalServerError

	_, err := FetchAll[record](context.Background(), client, "creatives", FetchOptions{})

	require.Error(t, err)
	assert.Equal(t, 3, server.hits[1])
	assert.Zero(t, server.hits[2])
}
