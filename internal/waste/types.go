package waste

import (
	"math"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// Entry: one recorded instance of wasted pastry stock, as submitted by the
// daily log page. UnitPrice is the snapshot frozen at save time; nil means the
// price is resolved from the live catalog when aggregating.
type Entry struct {
	Item      string   `json:"item"`
	Quantity  int      `json:"qty"`
	Reason    string   `json:"reason"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

const ReasonOther = "Other"

// Closed reason list; anything else is coerced to "Other".
var allowedReasons = map[string]bool{
	"Not sold":     true,
	"Overproduced": true,
	"Expired":      true,
	"Damaged":      true,
	"Staff error":  true,
	ReasonOther:    true,
}

func CoerceReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if allowedReasons[reason] {
		return reason
	}
	return ReasonOther
}

// NormalizeEntries drops malformed rows (empty item, non-positive quantity)
// and coerces unknown reasons. Malformed rows are not an error: the store is
// expected to be clean already, this is re-validation on the way in and out.
func NormalizeEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Item = strings.TrimSpace(e.Item)
		if e.Item == "" || e.Quantity <= 0 {
			continue
		}
		e.Reason = CoerceReason(e.Reason)
		out = append(out, e)
	}
	return out
}

// ParseDay parses a strict YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// WeekStart normalizes any date to the Monday of its ISO week.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
