package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/reporting/mocks"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/apiErrors"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

const performanceBody = `{
	"grouping": "ad",
	"filters": {"dateRange": {"from": "2024-05-01", "to": "2024-05-31"}, "objective": "SALES"},
	"pagination": {"page": 1, "pageSize": 10},
	"sorting": {"field": "spend", "direction": "desc"},
	"columns": ["ad_name", "spend"]
}`

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestGetPerformance(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setup        func(m *mocks.MockReporter)
		expectedCode int
		expectedErr  string
		validate     func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "relatório montado",
			body: performanceBody,
			setup: func(m *mocks.MockReporter) {
				m.EXPECT().
					GetPerformance(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req domain.PerformanceRequest) (*domain.PerformanceResponse, error) {
						assert.Equal(t, domain.GroupingAd, req.Grouping)
						assert.Equal(t, "2024-05-31", req.Filters.DateRange.To.String())
						assert.Equal(t, []domain.ColumnID{domain.ColumnAdName, domain.ColumnSpend}, req.Columns)
						require.NotNil(t, req.Sorting)
						assert.Equal(t, domain.SortDesc, req.Sorting.Direction)

						return &domain.PerformanceResponse{
							Data: []domain.ReportRecord{{domain.ColumnAdName: "Anúncio 1", domain.ColumnSpend: 10.5}},
							Meta: domain.PageMeta{TotalRows: 1, Page: 1, PageSize: 10, TotalPages: 1},
						}, nil
					})
			},
			expectedCode: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t,
					`{"data":[{"ad_name":"Anúncio 1","spend":10.5}],"meta":{"totalRows":1,"page":1,"pageSize":10,"totalPages":1}}`,
					rec.Body.String())
			},
		},
		{
			name:         "json malformado",
			body:         `{"grouping": `,
			setup:        func(m *mocks.MockReporter) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apiErrors.ErrInvalidFormat,
		},
		{
			name: "pedido inválido",
			body: performanceBody,
			setup: func(m *mocks.MockReporter) {
				m.EXPECT().GetPerformance(gomock.Any(), gomock.Any()).
					Return(nil, &domain.ValidationError{Field: "columns", Message: `unknown column "spnd"`})
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apiErrors.ErrInvalidRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				apiErr := decodeAPIError(t, rec)
				assert.Contains(t, apiErr.Message, "spnd")
				assert.Equal(t, map[string]any{"field": "columns"}, apiErr.Details)
			},
		},
		{
			name: "falha no armazenamento",
			body: performanceBody,
			setup: func(m *mocks.MockReporter) {
				m.EXPECT().GetPerformance(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection reset by peer"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  apiErrors.ErrReportFailed,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "connection reset by peer", decodeAPIError(t, rec).Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reporter := mocks.NewMockReporter(ctrl)
			tt.setup(reporter)

			req := httptest.NewRequest(http.MethodPost, "/api/performance", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			GetPerformance(reporter).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeAPIError(t, rec).Code)
			}
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestListColumns(t *testing.T) {
	rec := httptest.NewRecorder()

	ListColumns().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/columns", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	var columns []domain.Column
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &columns))
	assert.Len(t, columns, len(domain.Columns()))
	assert.Equal(t, domain.ColumnCampaignID, columns[0].ID)
}
