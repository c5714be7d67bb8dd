// Package pipeline turns the raw ads, leads and purchases tables into the
// campaign-month report. Every stage is a pure function of its inputs.
package pipeline

import (
	"fmt"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

// Input holds the three raw tables of a run.
type Input struct {
	Ads       *entity.RawTable
	Leads     *entity.RawTable
	Purchases *entity.RawTable
}

// Options tunes the attribution stage.
type Options struct {
	TieBreak TieBreak
}

// Result carries the report and the intermediate relations it was built from.
type Result struct {
	Ads           []entity.AdEvent
	Leads         []entity.LeadEvent
	FilteredLeads []entity.LeadEvent
	Purchases     []entity.PurchaseEvent
	Aggregates    []entity.CampaignAggregate
	AdLeads       []entity.AdLead
	Attributed    []entity.AttributedPurchase
	Stats         entity.AttributionStats
	Report        []entity.CampaignReportRow
}

// Run executes every stage in order and stops at the first error, so a
// failed run never yields a partial report.
func Run(in Input, opts Options) (*Result, error) {
	ads, err := NormalizeAds(in.Ads)
	if err != nil {
		return nil, fmt.Errorf("normalizing ads: %w", err)
	}
	leads, err := NormalizeLeads(in.Leads)
	if err != nil {
		return nil, fmt.Errorf("normalizing leads: %w", err)
	}
	purchases, err := NormalizePurchases(in.Purchases)
	if err != nil {
		return nil, fmt.Errorf("normalizing purchases: %w", err)
	}

	res := &Result{
		Ads:        ads,
		Leads:      leads,
		Purchases:  purchases,
		Aggregates: AggregateCampaigns(ads),
	}
	res.FilteredLeads = FilterLeads(leads, ads)
	res.AdLeads = JoinAdsLeads(ads, res.FilteredLeads)
	res.Attributed, res.Stats = Attribute(res.AdLeads, purchases, opts.TieBreak)
	res.Report = Rollup(res.Aggregates, res.AdLeads, res.Attributed)
	return res, nil
}
