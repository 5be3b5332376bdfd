package models

import "time"

// RFP status values. Transitions are not validated: any handler may set any
// status, matching the draft -> sent -> evaluating workflow loosely.
const (
	StatusDraft      = "draft"
	StatusSent       = "sent"
	StatusEvaluating = "evaluating"
)

func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusSent || s == StatusEvaluating
}

type RFP struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	NaturalLanguageInput string    `json:"natural_language_input"`
	Budget               *float64  `json:"budget"`
	Status               string    `json:"status"`
	Items                []RFPItem `json:"items"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (r *RFP) Prepare() {
	if r.Status == "" {
		r.Status = StatusDraft
	}
	if r.Items == nil {
		r.Items = []RFPItem{}
	}
}
