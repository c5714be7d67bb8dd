package entity

// AdLead is an ad row joined to a lead sharing its timestamp and UTM dimensions.
type AdLead struct {
	Ad   AdEvent
	Lead LeadEvent
}

// AttributedPurchase credits a purchase to a lead.
type AttributedPurchase struct {
	Ad             AdEvent
	Lead           LeadEvent
	Purchase       PurchaseEvent
	LatencyDays    int
	MinLatencyDays int
}

// AttributionStats counts rows surviving each attribution stage.
type AttributionStats struct {
	AdLeadRows     int `json:"ad_lead_rows"`
	CandidateRows  int `json:"candidate_rows"`
	WindowRows     int `json:"window_rows"`
	AttributedRows int `json:"attributed_rows"`
}
