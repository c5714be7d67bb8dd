package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

func TestJoinAdsLeadsExactMatch(t *testing.T) {
	ads := []entity.AdEvent{
		ad(day(0), "c1", "x1", 1, 1),
		ad(day(1), "c1", "x1", 1, 1),
	}
	leads := []entity.LeadEvent{
		lead("1", "k", day(0), "c1", "x1"),
		lead("2", "k", day(0).Add(time.Second), "c1", "x1"),
		lead("3", "k", day(0), "c1", "x2"),
		lead("4", "k", day(1), "c1", "x1"),
		lead("5", "k", day(0), "c1", "x1"),
	}

	got := JoinAdsLeads(ads, leads)
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].Lead.LeadID)
	assert.Equal(t, "5", got[1].Lead.LeadID)
	assert.Equal(t, "4", got[2].Lead.LeadID)
	assert.Equal(t, day(1), got[2].Ad.Timestamp)
}

func TestJoinAdsLeadsComparesInstants(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	ads := []entity.AdEvent{ad(day(0), "c1", "x1", 1, 1)}
	leads := []entity.LeadEvent{lead("1", "k", day(0).In(msk), "c1", "x1")}

	assert.Len(t, JoinAdsLeads(ads, leads), 1)
}

func TestAttributeNearestLeadWins(t *testing.T) {
	a := ad(day(0), "c1", "x1", 1, 1)
	adLeads := []entity.AdLead{
		{Ad: a, Lead: lead("L1", "C", day(0), "c1", "x1")},
		{Ad: a, Lead: lead("L2", "C", day(3), "c1", "x1")},
	}
	purchases := []entity.PurchaseEvent{purchase("P", "C", day(5), 100)}

	got, stats := Attribute(adLeads, purchases, TieBreakInputOrder)
	require.Len(t, got, 1)
	assert.Equal(t, "L2", got[0].Lead.LeadID)
	assert.Equal(t, 2, got[0].LatencyDays)
	assert.Equal(t, 2, got[0].MinLatencyDays)
	assert.Equal(t, entity.AttributionStats{AdLeadRows: 2, CandidateRows: 2, WindowRows: 1, AttributedRows: 1}, stats)
}

func TestAttributeWindow(t *testing.T) {
	a := ad(day(0), "c1", "x1", 1, 1)
	tests := []struct {
		name     string
		purchase time.Time
		want     int
	}{
		{"same instant", day(0), 1},
		{"fifteen days", day(15), 1},
		{"fifteen days and change", day(15).Add(23 * time.Hour), 1},
		{"sixteen days", day(16), 0},
		{"before lead", day(0).Add(-time.Minute), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adLeads := []entity.AdLead{{Ad: a, Lead: lead("L1", "C", day(0), "c1", "x1")}}
			got, _ := Attribute(adLeads, []entity.PurchaseEvent{purchase("P", "C", tt.purchase, 10)}, TieBreakInputOrder)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestAttributeNegativeMinimumBlocksPurchase(t *testing.T) {
	// The closest candidate is a lead created after the purchase, so no lead
	// qualifies even though L1 is inside the window.
	a := ad(day(0), "c1", "x1", 1, 1)
	adLeads := []entity.AdLead{
		{Ad: a, Lead: lead("L1", "C", day(0), "c1", "x1")},
		{Ad: a, Lead: lead("L2", "C", day(6), "c1", "x1")},
	}
	got, stats := Attribute(adLeads, []entity.PurchaseEvent{purchase("P", "C", day(5), 10)}, TieBreakInputOrder)
	assert.Empty(t, got)
	assert.Equal(t, 2, stats.CandidateRows)
	assert.Zero(t, stats.WindowRows)
}

func TestAttributeTieBreak(t *testing.T) {
	a := ad(day(0), "c1", "x1", 1, 1)
	adLeads := []entity.AdLead{
		{Ad: a, Lead: lead("10", "C", day(0), "c1", "x1")},
		{Ad: a, Lead: lead("2", "C", day(0), "c1", "x1")},
	}
	purchases := []entity.PurchaseEvent{purchase("P", "C", day(2), 100)}

	got, stats := Attribute(adLeads, purchases, TieBreakInputOrder)
	require.Len(t, got, 1)
	assert.Equal(t, "10", got[0].Lead.LeadID)
	assert.Equal(t, 2, stats.WindowRows)

	got, _ = Attribute(adLeads, purchases, TieBreakSmallestLeadID)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Lead.LeadID)
}

func TestAttributeLeadCreditedOnce(t *testing.T) {
	a := ad(day(0), "c1", "x1", 1, 1)
	adLeads := []entity.AdLead{{Ad: a, Lead: lead("L1", "C", day(0), "c1", "x1")}}
	purchases := []entity.PurchaseEvent{
		purchase("P2", "C", day(3), 20),
		purchase("P1", "C", day(1), 10),
	}

	got, _ := Attribute(adLeads, purchases, TieBreakInputOrder)
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].Purchase.PurchaseID)
}

func TestAttributeDropsZeroAmount(t *testing.T) {
	a := ad(day(0), "c1", "x1", 1, 1)
	adLeads := []entity.AdLead{
		{Ad: a, Lead: lead("L1", "C", day(0), "c1", "x1")},
		{Ad: a, Lead: lead("L2", "D", day(0), "c1", "x1")},
	}
	purchases := []entity.PurchaseEvent{
		purchase("P1", "C", day(1), 0),
		purchase("P2", "D", day(1), 40),
	}

	got, _ := Attribute(adLeads, purchases, TieBreakInputOrder)
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].Purchase.PurchaseID)
}

func TestAttributeOrderedByPurchaseTime(t *testing.T) {
	a := ad(day(0), "c1", "x1", 1, 1)
	adLeads := []entity.AdLead{
		{Ad: a, Lead: lead("L1", "A", day(0), "c1", "x1")},
		{Ad: a, Lead: lead("L2", "B", day(0), "c1", "x1")},
		{Ad: a, Lead: lead("L3", "C", day(0), "c1", "x1")},
	}
	purchases := []entity.PurchaseEvent{
		purchase("PA", "A", day(9), 1),
		purchase("PB", "B", day(2), 1),
		purchase("PC", "C", day(5), 1),
	}

	got, _ := Attribute(adLeads, purchases, TieBreakInputOrder)
	require.Len(t, got, 3)
	assert.Equal(t, "PB", got[0].Purchase.PurchaseID)
	assert.Equal(t, "PC", got[1].Purchase.PurchaseID)
	assert.Equal(t, "PA", got[2].Purchase.PurchaseID)
}

func TestAttributeInvariants(t *testing.T) {
	// Several clients, duplicated ad rows and competing leads.
	var adLeads []entity.AdLead
	var purchases []entity.PurchaseEvent
	for c := 0; c < 4; c++ {
		client := string(rune('A' + c))
		for l := 0; l < 5; l++ {
			at := day(l * 3)
			a := ad(at, "c1", "x1", 1, 1)
			ld := lead(client+string(rune('0'+l)), client, at, "c1", "x1")
			adLeads = append(adLeads, entity.AdLead{Ad: a, Lead: ld}, entity.AdLead{Ad: a, Lead: ld})
		}
		for p := 0; p < 6; p++ {
			purchases = append(purchases, purchase(client+"-p"+string(rune('0'+p)), client, day(p*4+1), float64(p)))
		}
	}

	candidates := make(map[string][]int)
	for _, al := range adLeads {
		for _, p := range purchases {
			if p.ClientID == al.Lead.ClientID {
				candidates[p.PurchaseID] = append(candidates[p.PurchaseID], latencyDays(al.Lead.Timestamp, p.Timestamp))
			}
		}
	}

	got, _ := Attribute(adLeads, purchases, TieBreakInputOrder)
	require.NotEmpty(t, got)

	leadsSeen := map[string]bool{}
	purchasesSeen := map[string]bool{}
	for _, r := range got {
		assert.GreaterOrEqual(t, r.LatencyDays, 0)
		assert.LessOrEqual(t, r.LatencyDays, AttributionWindowDays)
		for _, lat := range candidates[r.Purchase.PurchaseID] {
			assert.GreaterOrEqual(t, lat, r.LatencyDays)
		}
		assert.NotZero(t, r.Purchase.Amount)

		lk := r.Purchase.ClientID + "/" + r.Lead.LeadID
		pk := r.Purchase.ClientID + "/" + r.Purchase.PurchaseID
		assert.False(t, leadsSeen[lk], "lead %s credited twice", lk)
		assert.False(t, purchasesSeen[pk], "purchase %s credited twice", pk)
		leadsSeen[lk] = true
		purchasesSeen[pk] = true
	}
}

func TestLatencyDaysFloors(t *testing.T) {
	assert.Equal(t, 0, latencyDays(day(0), day(0).Add(23*time.Hour)))
	assert.Equal(t, 1, latencyDays(day(0), day(1)))
	assert.Equal(t, -1, latencyDays(day(0), day(0).Add(-time.Hour)))
	assert.Equal(t, -2, latencyDays(day(0), day(-1).Add(-time.Second)))
}

func TestParseTieBreak(t *testing.T) {
	tb, err := ParseTieBreak("")
	require.NoError(t, err)
	assert.Equal(t, TieBreakInputOrder, tb)

	tb, err = ParseTieBreak("smallest_lead_id")
	require.NoError(t, err)
	assert.Equal(t, TieBreakSmallestLeadID, tb)

	_, err = ParseTieBreak("random")
	assert.Error(t, err)
}
