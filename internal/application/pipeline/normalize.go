package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

const yearMonthLayout = "2006-01"

var (
	errEmptyValue  = errors.New("empty value")
	errNotIntegral = errors.New("not an integral count")
)

// Layouts accepted for event timestamps. Values without a zone are read as UTC.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Cell values read as missing, matching what spreadsheet exports and
// dataframe dumps write for nulls.
var nullTokens = map[string]struct{}{
	"": {}, "nan": {}, "NaN": {}, "NAN": {}, "null": {}, "NULL": {},
	"None": {}, "NA": {}, "N/A": {}, "n/a": {}, "<NA>": {}, "#N/A": {},
}

// Header aliases: the column names of the tracker export come first, then
// the plain names.
var (
	adsTimestamp = []string{"created_at", "timestamp"}
	adsSource    = []string{"d_utm_source", "source"}
	adsMedium    = []string{"d_utm_medium", "medium"}
	adsCampaign  = []string{"d_utm_campaign", "campaign"}
	adsContent   = []string{"d_utm_content", "content"}
	adsClicks    = []string{"m_clicks", "clicks"}
	adsCost      = []string{"m_cost", "cost"}
	adsTerm      = []string{"d_utm_term", "term"}

	leadID        = []string{"lead_id"}
	leadClientID  = []string{"client_id"}
	leadTimestamp = []string{"lead_created_at", "timestamp"}
	leadSource    = []string{"d_lead_utm_source", "source"}
	leadMedium    = []string{"d_lead_utm_medium", "medium"}
	leadCampaign  = []string{"d_lead_utm_campaign", "campaign"}
	leadContent   = []string{"d_lead_utm_content", "content"}

	purchaseID        = []string{"purchase_id"}
	purchaseClientID  = []string{"client_id"}
	purchaseTimestamp = []string{"purchase_created_at", "timestamp"}
	purchaseAmount    = []string{"m_purchase_amount", "amount"}
)

// columns resolves header positions, remembering the first missing column.
type columns struct {
	table *entity.RawTable
	err   error
}

func (c *columns) require(names []string) int {
	if c.err != nil {
		return -1
	}
	i := c.table.ColumnIndex(names...)
	if i < 0 {
		c.err = fmt.Errorf("%s: %w: %s", c.table.Name, types.ErrMissingColumn, names[0])
	}
	return i
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isNull(v string) bool {
	_, ok := nullTokens[strings.TrimSpace(v)]
	return ok
}

// NormalizeAds converts the raw ads table into typed events. The term column,
// when present, must be empty on every row.
func NormalizeAds(t *entity.RawTable) ([]entity.AdEvent, error) {
	cols := &columns{table: t}
	iTS := cols.require(adsTimestamp)
	iSrc := cols.require(adsSource)
	iMed := cols.require(adsMedium)
	iCamp := cols.require(adsCampaign)
	iCont := cols.require(adsContent)
	iClicks := cols.require(adsClicks)
	iCost := cols.require(adsCost)
	if cols.err != nil {
		return nil, cols.err
	}
	iTerm := t.ColumnIndex(adsTerm...)

	out := make([]entity.AdEvent, 0, len(t.Rows))
	for n, row := range t.Rows {
		if iTerm >= 0 && !isNull(cell(row, iTerm)) {
			return nil, fmt.Errorf("%s: %w: row %d has %q", t.Name, types.ErrTermColumnNotEmpty, n+1, cell(row, iTerm))
		}
		ts, err := parseTimestamp(cell(row, iTS))
		if err != nil {
			return nil, parseError(t, adsTimestamp[0], n, cell(row, iTS), err)
		}
		clicks, err := parseCount(cell(row, iClicks))
		if err != nil {
			return nil, parseError(t, adsClicks[0], n, cell(row, iClicks), err)
		}
		cost, err := parseAmount(cell(row, iCost))
		if err != nil {
			return nil, parseError(t, adsCost[0], n, cell(row, iCost), err)
		}
		out = append(out, entity.AdEvent{
			Timestamp: ts,
			Source:    cell(row, iSrc),
			Medium:    cell(row, iMed),
			Campaign:  canonicalCode(cell(row, iCamp)),
			Content:   canonicalCode(cell(row, iCont)),
			Clicks:    clicks,
			Cost:      cost,
			YearMonth: ts.Format(yearMonthLayout),
		})
	}
	return out, nil
}

// NormalizeLeads converts the raw leads table into typed events. The term
// column is ignored.
func NormalizeLeads(t *entity.RawTable) ([]entity.LeadEvent, error) {
	cols := &columns{table: t}
	iID := cols.require(leadID)
	iClient := cols.require(leadClientID)
	iTS := cols.require(leadTimestamp)
	iSrc := cols.require(leadSource)
	iMed := cols.require(leadMedium)
	iCamp := cols.require(leadCampaign)
	iCont := cols.require(leadContent)
	if cols.err != nil {
		return nil, cols.err
	}

	out := make([]entity.LeadEvent, 0, len(t.Rows))
	for n, row := range t.Rows {
		ts, err := parseTimestamp(cell(row, iTS))
		if err != nil {
			return nil, parseError(t, leadTimestamp[0], n, cell(row, iTS), err)
		}
		out = append(out, entity.LeadEvent{
			LeadID:    canonicalCode(cell(row, iID)),
			ClientID:  nullableID(cell(row, iClient)),
			Timestamp: ts,
			Source:    cell(row, iSrc),
			Medium:    cell(row, iMed),
			Campaign:  canonicalCode(cell(row, iCamp)),
			Content:   canonicalCode(cell(row, iCont)),
			YearMonth: ts.Format(yearMonthLayout),
		})
	}
	return out, nil
}

// NormalizePurchases converts the raw purchases table into typed events.
func NormalizePurchases(t *entity.RawTable) ([]entity.PurchaseEvent, error) {
	cols := &columns{table: t}
	iID := cols.require(purchaseID)
	iClient := cols.require(purchaseClientID)
	iTS := cols.require(purchaseTimestamp)
	iAmount := cols.require(purchaseAmount)
	if cols.err != nil {
		return nil, cols.err
	}

	out := make([]entity.PurchaseEvent, 0, len(t.Rows))
	for n, row := range t.Rows {
		ts, err := parseTimestamp(cell(row, iTS))
		if err != nil {
			return nil, parseError(t, purchaseTimestamp[0], n, cell(row, iTS), err)
		}
		amount, err := parseAmount(cell(row, iAmount))
		if err != nil {
			return nil, parseError(t, purchaseAmount[0], n, cell(row, iAmount), err)
		}
		out = append(out, entity.PurchaseEvent{
			PurchaseID: canonicalCode(cell(row, iID)),
			ClientID:   nullableID(cell(row, iClient)),
			Timestamp:  ts,
			Amount:     amount,
			YearMonth:  ts.Format(yearMonthLayout),
		})
	}
	return out, nil
}

func parseError(t *entity.RawTable, column string, n int, value string, err error) error {
	return &types.ParseError{Table: t.Name, Column: column, Row: n + 1, Value: value, Err: err}
}

func parseTimestamp(v string) (time.Time, error) {
	if isNull(v) {
		return time.Time{}, errEmptyValue
	}
	var err error
	for _, layout := range timestampLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, v); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, err
}

// parseCount reads an integral measure; "12" and "12.0" are both 12.
func parseCount(v string) (int64, error) {
	if isNull(v) {
		return 0, nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errNotIntegral
	}
	return int64(f), nil
}

func parseAmount(v string) (float64, error) {
	if isNull(v) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return f, nil
}

func nullableID(v string) string {
	if isNull(v) {
		return ""
	}
	return canonicalCode(v)
}

// canonicalCode turns numeric codes written as floats ("1234.0") into their
// integer spelling so the same code compares equal across tables.
func canonicalCode(v string) string {
	i := strings.IndexByte(v, '.')
	if i <= 0 || !isDigits(v[:i]) || strings.Trim(v[i+1:], "0") != "" {
		return v
	}
	return v[:i]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
