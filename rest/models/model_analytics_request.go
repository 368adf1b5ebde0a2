package models

// AnalyticsRequest selects the reporting window for an analytics call.
// From and To accept the engine's date vocabulary.
type AnalyticsRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`

	// MinValue filters value-ranked reports to customers at or above it
	MinValue float64 `json:"minValue" validate:"gte=0"`
}
