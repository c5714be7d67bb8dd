package pipeline

import (
	"time"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.Add(time.Duration(n) * 24 * time.Hour) }

func ad(at time.Time, campaign, content string, clicks int64, cost float64) entity.AdEvent {
	return entity.AdEvent{
		Timestamp: at,
		Source:    LeadSource,
		Medium:    LeadMedium,
		Campaign:  campaign,
		Content:   content,
		Clicks:    clicks,
		Cost:      cost,
		YearMonth: at.Format(yearMonthLayout),
	}
}

func lead(id, client string, at time.Time, campaign, content string) entity.LeadEvent {
	return entity.LeadEvent{
		LeadID:    id,
		ClientID:  client,
		Timestamp: at,
		Source:    LeadSource,
		Medium:    LeadMedium,
		Campaign:  campaign,
		Content:   content,
		YearMonth: at.Format(yearMonthLayout),
	}
}

func purchase(id, client string, at time.Time, amount float64) entity.PurchaseEvent {
	return entity.PurchaseEvent{
		PurchaseID: id,
		ClientID:   client,
		Timestamp:  at,
		Amount:     amount,
		YearMonth:  at.Format(yearMonthLayout),
	}
}

func table(name string, header []string, rows ...[]string) *entity.RawTable {
	return &entity.RawTable{Name: name, Header: header, Rows: rows}
}

func ptrInt(v int) *int { return &v }

func ptrFloat(v float64) *float64 { return &v }
