package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

var performanceColumns = []string{
	"date", "ad_id", "campaign_id",
	"impressions", "clicks", "spend", "conversions",
	"reach", "video_views", "leads", "conversion_value",
	"campaign_name", "campaign_status", "objective",
	"ad_name", "ad_status", "creative_type", "thumbnail_url",
}

func sampleInsight() domain.Insight {
	return domain.Insight{
		ID:         "i1",
		Date:       domain.NewDate(2024, time.May, 10),
		AdID:       "a1",
		CampaignID: "c1",
		Metrics: domain.Metrics{
			Impressions: 1000, Clicks: 50, Spend: 25, Conversions: 5,
			Reach: 800, VideoViews: 100, Leads: 2, ConversionValue: 45,
		},
	}
}

func TestInsightRepository_BulkInsert(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    int
		wantErr bool
	}{
		{
			name: "lote gravado em transação",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO insights (id,date,ad_id,campaign_id,impressions,clicks,spend,conversions,reach,video_views,leads,conversion_value)")).
					WithArgs("i1", "2024-05-10", "a1", "c1", int64(1000), int64(50), 25.0, int64(5), int64(800), int64(100), int64(2), 45.0).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			want: 1,
		},
		{
			name: "falha faz rollback do lote",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO insights").WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			tt.setup(mock)

			got, err := NewInsightRepository(conn).BulkInsert(context.Background(), []domain.Insight{sampleInsight()})
			if tt.wantErr {
				assert.ErrorContains(t, err, "disk full")
				assert.Zero(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInsightRepository_QueryPerformanceRows(t *testing.T) {
	active := domain.StatusActive
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.PerformanceQuery
		query  string
		args   []driver.Value
	}{
		{
			name:   "campanha sem filtros opcionais",
			filter: domain.PerformanceQuery{Grouping: domain.GroupingCampaign, From: from, To: to, Objective: domain.ObjectiveSales},
			query:  `WHERE i.date >= $1 AND i.date <= $2 AND c.objective = $3 ORDER BY`,
			args:   []driver.Value{"2024-05-01", "2024-05-31", "SALES"},
		},
		{
			name: "campanha com status e busca só no nome da campanha",
			filter: domain.PerformanceQuery{
				Grouping: domain.GroupingCampaign, From: from, To: to,
				Objective: domain.ObjectiveSales, Status: &active, Search: "verão",
			},
			query: `AND c.objective = $3 AND c.status = $4 AND c.name ILIKE $5 ORDER BY`,
			args:  []driver.Value{"2024-05-01", "2024-05-31", "SALES", "active", "%verão%"},
		},
		{
			name: "anúncio com status do anúncio e busca em campanha ou anúncio",
			filter: domain.PerformanceQuery{
				Grouping: domain.GroupingAd, From: from, To: to,
				Objective: domain.ObjectiveLeads, Status: &active, Search: "50%",
			},
			query: `AND c.objective = $3 AND a.status = $4 AND (c.name ILIKE $5 OR a.name ILIKE $6) ORDER BY`,
			args:  []driver.Value{"2024-05-01", "2024-05-31", "LEADS", "active", `%50\%%`, `%50\%%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)

			rows := sqlmock.NewRows(performanceColumns).AddRow(
				time.Date(2024, 5, 10, 0, 0, 0, 0, time.FixedZone("BRT", -3*3600)), "a1", "c1",
				int64(1000), int64(50), 25.0, int64(5), int64(800), int64(100), int64(2), 45.0,
				"Verão", "active", "SALES", "Carrossel", "inactive", "video", "https://cdn/x.png",
			)

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WithArgs(tt.args...).
				WillReturnRows(rows)

			result, err := NewInsightRepository(conn).QueryPerformanceRows(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, result, 1)

			row := result[0]
			assert.Equal(t, domain.NewDate(2024, time.May, 10), row.Date)
			assert.Equal(t, int64(1000), row.Metrics.Impressions)
			assert.Equal(t, 45.0, row.Metrics.ConversionValue)
			assert.Equal(t, domain.StatusInactive, row.AdStatus)
			assert.Equal(t, domain.CreativeTypeVideo, row.CreativeType)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInsightRepository_Count(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM insights")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := NewInsightRepository(conn).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}
