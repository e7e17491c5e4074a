package models

import "time"

// DailyUsage represents aggregated conversion counts for a day and source unit
type DailyUsage struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Unit         string `json:"unit"`
	RequestCount int    `json:"request_count"`
	InvalidCount int    `json:"invalid_count"`
}

// UnitStats represents usage statistics for a specific source unit
type UnitStats struct {
	Unit         string `json:"unit"`
	RequestCount int    `json:"request_count"`
	InvalidCount int    `json:"invalid_count"`
}

// UsageStats represents aggregated usage statistics
type UsageStats struct {
	TotalRequests int                   `json:"total_requests"`
	InvalidCount  int                   `json:"invalid_count"`
	UnitBreakdown map[string]*UnitStats `json:"units,omitempty"`
}

// StatsFilter contains parameters for filtering usage statistics
type StatsFilter struct {
	Unit      string
	StartDate *time.Time
	EndDate   *time.Time
}
