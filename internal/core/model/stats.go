package model

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type SeverityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type Stats struct {
	TotalEvents int               `json:"total_events"`
	EventTypes  int               `json:"event_types"`
	Locations   int               `json:"locations"`
	Categories  int               `json:"categories"`
	Recent      int               `json:"recent_events"`
	AvgPerDay   int               `json:"avg_per_day"`
	Severity    SeverityBreakdown `json:"severity"`
	Clusters    int               `json:"clusters"`
}
