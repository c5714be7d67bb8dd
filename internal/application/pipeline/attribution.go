package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

// AttributionWindowDays is the longest lead-to-purchase latency credited to a lead.
const AttributionWindowDays = 15

// TieBreak selects which lead keeps a purchase when several leads share the
// minimum latency.
type TieBreak string

const (
	// TieBreakInputOrder keeps the first candidate in join order.
	TieBreakInputOrder TieBreak = "input_order"
	// TieBreakSmallestLeadID keeps the candidate with the smallest lead id.
	TieBreakSmallestLeadID TieBreak = "smallest_lead_id"
)

// ParseTieBreak validates a tie-break policy name; empty means input order.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.TrimSpace(s)) {
	case "", TieBreakInputOrder:
		return TieBreakInputOrder, nil
	case TieBreakSmallestLeadID:
		return TieBreakSmallestLeadID, nil
	default:
		return "", fmt.Errorf("unknown tie-break policy %q", s)
	}
}

type adLeadKey struct {
	sec      int64
	nsec     int
	source   string
	medium   string
	campaign string
	content  string
}

func keyOf(ts time.Time, source, medium, campaign, content string) adLeadKey {
	return adLeadKey{
		sec:      ts.Unix(),
		nsec:     ts.Nanosecond(),
		source:   source,
		medium:   medium,
		campaign: campaign,
		content:  content,
	}
}

// JoinAdsLeads pairs each ad with every lead sharing its exact timestamp,
// source, medium, campaign and content. Rows follow ads order, then leads order.
func JoinAdsLeads(ads []entity.AdEvent, leads []entity.LeadEvent) []entity.AdLead {
	byKey := make(map[adLeadKey][]int, len(leads))
	for i, l := range leads {
		k := keyOf(l.Timestamp, l.Source, l.Medium, l.Campaign, l.Content)
		byKey[k] = append(byKey[k], i)
	}

	var out []entity.AdLead
	for _, ad := range ads {
		for _, i := range byKey[keyOf(ad.Timestamp, ad.Source, ad.Medium, ad.Campaign, ad.Content)] {
			out = append(out, entity.AdLead{Ad: ad, Lead: leads[i]})
		}
	}
	return out
}

// Attribute credits purchases to the joined leads of the same client. A pair
// survives when the purchase happened 0..AttributionWindowDays whole days after
// the lead and no other candidate lead of that purchase is closer. Each lead
// and each purchase is then credited at most once per client.
func Attribute(adLeads []entity.AdLead, purchases []entity.PurchaseEvent, tieBreak TieBreak) ([]entity.AttributedPurchase, entity.AttributionStats) {
	stats := entity.AttributionStats{AdLeadRows: len(adLeads)}

	byClient := make(map[string][]int)
	for i, p := range purchases {
		byClient[p.ClientID] = append(byClient[p.ClientID], i)
	}

	var candidates []entity.AttributedPurchase
	minLatency := make(map[string]int)
	for _, al := range adLeads {
		for _, i := range byClient[al.Lead.ClientID] {
			p := purchases[i]
			lat := latencyDays(al.Lead.Timestamp, p.Timestamp)
			if m, ok := minLatency[p.PurchaseID]; !ok || lat < m {
				minLatency[p.PurchaseID] = lat
			}
			candidates = append(candidates, entity.AttributedPurchase{
				Ad:          al.Ad,
				Lead:        al.Lead,
				Purchase:    p,
				LatencyDays: lat,
			})
		}
	}
	stats.CandidateRows = len(candidates)

	window := make([]entity.AttributedPurchase, 0, len(candidates))
	for _, c := range candidates {
		c.MinLatencyDays = minLatency[c.Purchase.PurchaseID]
		if c.LatencyDays >= 0 && c.LatencyDays == c.MinLatencyDays && c.LatencyDays <= AttributionWindowDays {
			window = append(window, c)
		}
	}
	stats.WindowRows = len(window)

	out := dedupe(window, func(a entity.AttributedPurchase) string {
		return a.Purchase.ClientID + "\x00" + a.Lead.LeadID
	})
	out = withoutZeroAmount(out)

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Purchase.Timestamp, out[j].Purchase.Timestamp
		if !ti.Equal(tj) || tieBreak != TieBreakSmallestLeadID {
			return ti.Before(tj)
		}
		return compareIDs(out[i].Lead.LeadID, out[j].Lead.LeadID) < 0
	})

	out = dedupe(out, func(a entity.AttributedPurchase) string {
		return a.Purchase.ClientID + "\x00" + a.Purchase.PurchaseID
	})
	stats.AttributedRows = len(out)
	return out, stats
}

// latencyDays is the whole number of days from lead to purchase, rounded
// toward negative infinity.
func latencyDays(lead, purchase time.Time) int {
	const day = 24 * time.Hour
	d := purchase.Sub(lead)
	days := d / day
	if d%day != 0 && d < 0 {
		days--
	}
	return int(days)
}

// dedupe keeps the first row for every key, preserving order.
func dedupe(rows []entity.AttributedPurchase, key func(entity.AttributedPurchase) string) []entity.AttributedPurchase {
	seen := make(map[string]struct{}, len(rows))
	out := make([]entity.AttributedPurchase, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func withoutZeroAmount(rows []entity.AttributedPurchase) []entity.AttributedPurchase {
	out := make([]entity.AttributedPurchase, 0, len(rows))
	for _, r := range rows {
		if r.Purchase.Amount != 0 {
			out = append(out, r)
		}
	}
	return out
}

// compareIDs orders integer ids numerically and anything else lexically.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
