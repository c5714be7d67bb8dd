package pipeline

import (
	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

// Only paid Yandex traffic is attributed.
const (
	LeadSource = "yandex"
	LeadMedium = "cpc"
)

// FilterLeads keeps paid-channel leads whose campaign and content values both
// occur somewhere in ads and whose client is known. The two value checks are
// independent set lookups, not a tuple match.
func FilterLeads(leads []entity.LeadEvent, ads []entity.AdEvent) []entity.LeadEvent {
	campaigns := make(map[string]struct{}, len(ads))
	contents := make(map[string]struct{}, len(ads))
	for _, ad := range ads {
		campaigns[ad.Campaign] = struct{}{}
		contents[ad.Content] = struct{}{}
	}

	out := make([]entity.LeadEvent, 0, len(leads))
	for _, l := range leads {
		if l.Source != LeadSource || l.Medium != LeadMedium {
			continue
		}
		if _, ok := campaigns[l.Campaign]; !ok {
			continue
		}
		if _, ok := contents[l.Content]; !ok {
			continue
		}
		if !l.HasClient() {
			continue
		}
		out = append(out, l)
	}
	return out
}
