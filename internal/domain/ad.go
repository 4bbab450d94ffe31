package domain

type Ad struct {
	ID          string       `json:"id"`
	CampaignID  string       `json:"campaignId"`
	CreativeID  string       `json:"creativeId"`
	StartDate   Date         `json:"startDate"`
	EndDate     Date         `json:"endDate"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      EntityStatus `json:"status"`
}
