package domain

import "time"

// isoMillis matches the millisecond ISO-8601 form clients already parse.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// HealthStatus is the healthcheck result.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthStatus reports the service as up at now.
func NewHealthStatus(now time.Time) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: now.UTC().Format(isoMillis),
	}
}
