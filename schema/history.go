package schema

import "time"

// HistoryEntry is one recorded query-log row. The log exists so the
// resolution heuristics can be validated against real questions later.
type HistoryEntry struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId,omitempty"`
	AskedAt        time.Time `json:"askedAt"`
	Query          string    `json:"query"`
	DatasetID      string    `json:"datasetId"`
	Metric         string    `json:"metric,omitempty"`
	Dimension      string    `json:"dimension,omitempty"`
	Aggregation    string    `json:"aggregation,omitempty"`
	ChartType      string    `json:"chartType,omitempty"`
	Answered       bool      `json:"answered"`
	Answer         string    `json:"answer,omitempty"`
	DurationMs     int64     `json:"durationMs"`
}
