package pipeline

import (
	"math"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

type salesAgg struct {
	purchases map[string]struct{}
	revenue   float64
}

// Rollup joins campaign spend with lead counts and attributed sales per
// campaign-month, computes CPL and ROAS and drops rows without spend. Leads
// are counted over every ad-lead match, converted or not. Row order follows
// aggs.
func Rollup(aggs []entity.CampaignAggregate, adLeads []entity.AdLead, attributed []entity.AttributedPurchase) []entity.CampaignReportRow {
	leads := make(map[entity.CampaignMonthKey]map[string]struct{})
	for _, al := range adLeads {
		k := entity.CampaignMonthKey{
			YearMonth: al.Ad.YearMonth,
			Source:    al.Lead.Source,
			Medium:    al.Lead.Medium,
			Campaign:  al.Lead.Campaign,
		}
		if leads[k] == nil {
			leads[k] = make(map[string]struct{})
		}
		leads[k][al.Lead.LeadID] = struct{}{}
	}

	sales := make(map[entity.CampaignMonthKey]*salesAgg)
	for _, a := range attributed {
		k := adKey(a.Ad)
		s, ok := sales[k]
		if !ok {
			s = &salesAgg{purchases: make(map[string]struct{})}
			sales[k] = s
		}
		s.purchases[a.Purchase.PurchaseID] = struct{}{}
		s.revenue += a.Purchase.Amount
	}

	out := make([]entity.CampaignReportRow, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Cost == 0 {
			continue
		}
		row := entity.CampaignReportRow{
			CampaignMonthKey: agg.Key,
			Clicks:           agg.Clicks,
			CampaignCost:     agg.Cost,
		}
		if ids, ok := leads[agg.Key]; ok {
			n := len(ids)
			row.LeadsCount = &n
			row.CPL = ratio(agg.Cost, float64(n))
		}
		if s, ok := sales[agg.Key]; ok {
			n := len(s.purchases)
			rev := s.revenue
			row.SalesNum = &n
			row.Revenue = &rev
			row.ROAS = ratio(rev, agg.Cost)
		}
		out = append(out, row)
	}
	return out
}

// ratio returns num/den rounded to cents, or nil when undefined.
func ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := round2(num / den)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// round2 rounds half to even at two decimals.
func round2(f float64) float64 { return math.RoundToEven(f*100) / 100 }
