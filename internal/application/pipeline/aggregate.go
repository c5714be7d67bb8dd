package pipeline

import (
	"sort"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

// AggregateCampaigns sums clicks and cost per campaign-month. Every ad row
// contributes, including zero-cost rows.
func AggregateCampaigns(ads []entity.AdEvent) []entity.CampaignAggregate {
	byKey := make(map[entity.CampaignMonthKey]*entity.CampaignAggregate)
	for _, ad := range ads {
		k := adKey(ad)
		agg, ok := byKey[k]
		if !ok {
			agg = &entity.CampaignAggregate{Key: k}
			byKey[k] = agg
		}
		agg.Clicks += ad.Clicks
		agg.Cost += ad.Cost
	}

	out := make([]entity.CampaignAggregate, 0, len(byKey))
	for _, agg := range byKey {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

func adKey(ad entity.AdEvent) entity.CampaignMonthKey {
	return entity.CampaignMonthKey{
		YearMonth: ad.YearMonth,
		Source:    ad.Source,
		Medium:    ad.Medium,
		Campaign:  ad.Campaign,
	}
}
