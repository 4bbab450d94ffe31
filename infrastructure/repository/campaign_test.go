package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
)

func newMockConn(t *testing.T) (postgres.Conn, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return postgres.Wrap(db), mock
}

func TestCampaignRepository_BulkInsert(t *testing.T) {
	tests := []struct {
		name      string
		campaigns []domain.Campaign
		setup     func(mock sqlmock.Sqlmock)
		want      int
		wantErr   bool
	}{
		{
			name:      "lista vazia não executa query",
			campaigns: nil,
			setup:     func(sqlmock.Sqlmock) {},
			want:      0,
		},
		{
			name: "ignora ids existentes",
			campaigns: []domain.Campaign{
				{ID: "c1", Name: "Verão", Status: domain.StatusActive, Objective: domain.ObjectiveSales},
				{ID: "c2", Name: "Inverno", Status: domain.StatusInactive, Objective: domain.ObjectiveLeads},
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO campaigns (id,name,status,objective) VALUES ($1,$2,$3,$4),($5,$6,$7,$8) ON CONFLICT (id) DO NOTHING",
				)).
					WithArgs("c1", "Verão", domain.StatusActive, domain.ObjectiveSales, "c2", "Inverno", domain.StatusInactive, domain.ObjectiveLeads).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: 1,
		},
		{
			name:      "erro do banco",
			campaigns: []domain.Campaign{{ID: "c1"}},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO campaigns").WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			tt.setup(mock)

			got, err := NewCampaignRepository(conn).BulkInsert(context.Background(), tt.campaigns)
			if tt.wantErr {
				assert.ErrorContains(t, err, "connection reset")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCampaignRepository_List(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, status, objective FROM campaigns ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows(campaignColumns).
			AddRow("c1", "Alpha", "active", "AWARENESS").
			AddRow("c2", "Beta", "inactive", "SALES"))

	campaigns, err := NewCampaignRepository(conn).List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Campaign{
		{ID: "c1", Name: "Alpha", Status: domain.StatusActive, Objective: domain.ObjectiveAwareness},
		{ID: "c2", Name: "Beta", Status: domain.StatusInactive, Objective: domain.ObjectiveSales},
	}, campaigns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TruncateAll(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE insights, ads, creatives, campaigns")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewStore(conn).TruncateAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
}
