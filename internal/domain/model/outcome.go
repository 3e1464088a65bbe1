package model

// DispatchStatus is the terminal state of one city in a run.
type DispatchStatus string

const (
	StatusSent                      DispatchStatus = "SENT"
	StatusSkippedNoRecipients       DispatchStatus = "SKIPPED_NO_RECIPIENTS"
	StatusSkippedWeatherUnavailable DispatchStatus = "SKIPPED_WEATHER_UNAVAILABLE"
	StatusFailed                    DispatchStatus = "FAILED"
)

// Pipeline stages, recorded on failed outcomes.
const (
	StageWeather  = "weather"
	StageResolve  = "resolve"
	StageDispatch = "dispatch"
)

// DispatchOutcome is the result of one city's pipeline.
type DispatchOutcome struct {
	City           string         `json:"city"`
	Status         DispatchStatus `json:"status"`
	RecipientCount int            `json:"recipient_count"`
	ProviderStatus int            `json:"provider_status,omitempty"`
	NotificationID string         `json:"notification_id,omitempty"`
	Stage          string         `json:"stage,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// RunSummary aggregates outcomes of one invocation.
type RunSummary struct {
	RunID        string            `json:"run_id"`
	SuccessCount int               `json:"success_count"`
	SkippedCount int               `json:"skipped_count"`
	FailureCount int               `json:"failure_count"`
	Outcomes     []DispatchOutcome `json:"outcomes"`
}

// NewRunSummary counts outcomes. Weather-unavailable cities count as failures.
func NewRunSummary(runID string, outcomes []DispatchOutcome) *RunSummary {
	summary := &RunSummary{RunID: runID, Outcomes: outcomes}
	for _, outcome := range outcomes {
		switch outcome.Status {
		case StatusSent:
			summary.SuccessCount++
		case StatusSkippedNoRecipients:
			summary.SkippedCount++
		default:
			summary.FailureCount++
		}
	}
	return summary
}

// Failed is true when at least one city did not complete.
func (s *RunSummary) Failed() bool {
	return s.FailureCount > 0
}
