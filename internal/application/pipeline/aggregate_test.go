package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

func TestAggregateCampaigns(t *testing.T) {
	april := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	ads := []entity.AdEvent{
		ad(april, "b", "x", 5, 10),
		ad(day(0), "b", "x", 50, 0),
		ad(day(1), "b", "y", 7, 2.5),
		ad(day(2), "a", "x", 1, 1),
	}

	got := AggregateCampaigns(ads)
	require.Len(t, got, 3)

	assert.Equal(t, entity.CampaignMonthKey{YearMonth: "2024-03", Source: "yandex", Medium: "cpc", Campaign: "a"}, got[0].Key)
	assert.Equal(t, "b", got[1].Key.Campaign)
	assert.Equal(t, int64(57), got[1].Clicks)
	assert.Equal(t, 2.5, got[1].Cost)
	assert.Equal(t, "2024-04", got[2].Key.YearMonth)
}
