package domain

import "time"

type SyncStatus string

const (
	SyncStatusIdle      SyncStatus = "idle"
	SyncStatusSyncing   SyncStatus = "syncing"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusError     SyncStatus = "error"
)

type EntityType string

const (
	EntityCampaigns EntityType = "campaigns"
	EntityCreatives EntityType = "creatives"
	EntityAds       EntityType = "ads"
	EntityInsights  EntityType = "insights"
)

var EntityTypes = []EntityType{EntityCampaigns, EntityCreatives, EntityAds, EntityInsights}

type EntityProgress struct {
	Fetched int `json:"fetched"`
	Total   int `json:"total"`
	Stored  int `json:"stored"`
}

// SyncProgress é o estado observável da sincronização. Não é persistido.
type SyncProgress struct {
	Status     SyncStatus     `json:"status"`
	Error      string         `json:"error,omitempty"`
	RunID      string         `json:"runId,omitempty"`
	StartedAt  *time.Time     `json:"startedAt,omitempty"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
	Campaigns  EntityProgress `json:"campaigns"`
	Creatives  EntityProgress `json:"creatives"`
	Ads        EntityProgress `json:"ads"`
	Insights   EntityProgress `json:"insights"`
}

func NewSyncProgress() SyncProgress {
	return SyncProgress{Status: SyncStatusIdle}
}

// Entity retorna o contador do tipo de entidade, ou nil se o tipo for desconhecido
func (p *SyncProgress) Entity(entity EntityType) *EntityProgress {
	switch entity {
	case EntityCampaigns:
		return &p.Campaigns
	case EntityCreatives:
		return &p.Creatives
	case EntityAds:
		return &p.Ads
	case EntityInsights:
		return &p.Insights
	}
	return nil
}

// Clone devolve uma cópia que não compartilha ponteiros com o original
func (p SyncProgress) Clone() SyncProgress {
	out := p
	if p.StartedAt != nil {
		startedAt := *p.StartedAt
		out.StartedAt = &startedAt
	}
	if p.FinishedAt != nil {
		finishedAt := *p.FinishedAt
		out.FinishedAt = &finishedAt
	}
	return out
}
