package domain

type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
)

func (s EntityStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Objective é o objetivo declarado da campanha e define qual par de KPIs é relevante
type Objective string

const (
	ObjectiveAwareness  Objective = "AWARENESS"
	ObjectiveTraffic    Objective = "TRAFFIC"
	ObjectiveEngagement Objective = "ENGAGEMENT"
	ObjectiveLeads      Objective = "LEADS"
	ObjectiveSales      Objective = "SALES"
)

var Objectives = []Objective{
	ObjectiveAwareness,
	ObjectiveTraffic,
	ObjectiveEngagement,
	ObjectiveLeads,
	ObjectiveSales,
}

func (o Objective) IsValid() bool {
	for _, objective := range Objectives {
		if o == objective {
			return true
		}
	}
	return false
}

type Campaign struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    EntityStatus `json:"status"`
	Objective Objective    `json:"objective"`
}
