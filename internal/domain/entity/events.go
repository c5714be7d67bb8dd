package entity

import "time"

// AdEvent is one ad-spend row: a campaign/content dimension at a timestamp.
type AdEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Medium    string    `json:"medium"`
	Campaign  string    `json:"campaign"`
	Content   string    `json:"content"`
	Clicks    int64     `json:"clicks"`
	Cost      float64   `json:"cost"`
	YearMonth string    `json:"year_month"`
}

// LeadEvent is a lead-generation row. An empty ClientID means the client is unknown.
type LeadEvent struct {
	LeadID    string    `json:"lead_id"`
	ClientID  string    `json:"client_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Medium    string    `json:"medium"`
	Campaign  string    `json:"campaign"`
	Content   string    `json:"content"`
	YearMonth string    `json:"year_month"`
}

// HasClient reports whether the lead can be joined to purchases.
func (l LeadEvent) HasClient() bool { return l.ClientID != "" }

// PurchaseEvent is a completed purchase by a client.
type PurchaseEvent struct {
	PurchaseID string    `json:"purchase_id"`
	ClientID   string    `json:"client_id"`
	Timestamp  time.Time `json:"timestamp"`
	Amount     float64   `json:"amount"`
	YearMonth  string    `json:"year_month"`
}
