package entity

// CampaignMonthKey groups every rollup: one report row per key.
type CampaignMonthKey struct {
	YearMonth string `json:"year_month"`
	Source    string `json:"source"`
	Medium    string `json:"medium"`
	Campaign  string `json:"campaign"`
}

// Less orders keys the way a grouped rollup emits them.
func (k CampaignMonthKey) Less(o CampaignMonthKey) bool {
	if k.YearMonth != o.YearMonth {
		return k.YearMonth < o.YearMonth
	}
	if k.Source != o.Source {
		return k.Source < o.Source
	}
	if k.Medium != o.Medium {
		return k.Medium < o.Medium
	}
	return k.Campaign < o.Campaign
}

// CampaignAggregate holds ad spend summed per campaign-month.
type CampaignAggregate struct {
	Key    CampaignMonthKey
	Clicks int64
	Cost   float64
}

// CampaignReportRow is one line of the final report. Nil metrics are undefined
// (no leads, no sales, or a zero denominator).
type CampaignReportRow struct {
	CampaignMonthKey
	Clicks       int64    `json:"clicks"`
	CampaignCost float64  `json:"campaign_cost"`
	LeadsCount   *int     `json:"leads_count"`
	SalesNum     *int     `json:"sales_num"`
	Revenue      *float64 `json:"revenue"`
	CPL          *float64 `json:"CPL"`
	ROAS         *float64 `json:"ROAS"`
}

// ReportColumns is the fixed column order of tabular exports.
var ReportColumns = []string{
	"year_month", "source", "medium", "campaign", "clicks",
	"campaign_cost", "leads_count", "revenue", "CPL", "ROAS",
}
