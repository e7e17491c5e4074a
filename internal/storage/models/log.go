package models

import "time"

// Request outcomes recorded for each conversion
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUnknownUnit  = "unknown_unit"
)

// UnitUnknown is recorded in place of any unit slug that is not supported
const UnitUnknown = "unknown"

// Channels a conversion request can arrive through
const (
	ChannelAPI  = "api"
	ChannelForm = "form"
)

// RequestLog represents one logged conversion request.
// The converted value itself is never stored.
type RequestLog struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	Unit       string    `json:"unit"`
	Channel    string    `json:"channel"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// LogFilter contains parameters for filtering request logs
type LogFilter struct {
	Unit       string
	Channel    string
	Outcome    string
	StatusCode *int
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
