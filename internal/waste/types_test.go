package waste

import (
	"reflect"
	"testing"
	"time"
)

func TestCoerceReason(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Not sold", "Not sold"},
		{"Overproduced", "Overproduced"},
		{"Expired", "Expired"},
		{"Damaged", "Damaged"},
		{"Staff error", "Staff error"},
		{"Other", "Other"},
		{"  Expired  ", "Expired"},
		{"dropped it", "Other"},
		{"", "Other"},
		{"not sold", "Other"}, // reasons are case-sensitive
	}

	for _, tt := range tests {
		if got := CoerceReason(tt.in); got != tt.want {
			t.Fatalf("CoerceReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEntries(t *testing.T) {
	in := []Entry{
		{Item: "Croissant", Quantity: 2, Reason: "Not sold"},
		{Item: "   ", Quantity: 5, Reason: "Expired"},
		{Item: "Danish", Quantity: 0, Reason: "Expired"},
		{Item: "Scone", Quantity: -1, Reason: "Damaged"},
		{Item: "  Muffin ", Quantity: 1, Reason: "went missing"},
	}

	got := NormalizeEntries(in)

	want := []Entry{
		{Item: "Croissant", Quantity: 2, Reason: "Not sold"},
		{Item: "Muffin", Quantity: 1, Reason: "Other"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeEntries = %+v, want %+v", got, want)
	}
}

func TestNormalizeEntriesKeepsStoredPrice(t *testing.T) {
	price := 1.25
	got := NormalizeEntries([]Entry{{Item: "Croissant", Quantity: 1, Reason: "Other", UnitPrice: &price}})
	if len(got) != 1 || got[0].UnitPrice == nil || *got[0].UnitPrice != 1.25 {
		t.Fatalf("stored unit price lost during normalization: %+v", got)
	}
}

func TestWeekStart(t *testing.T) {
	// 2025-08-25 is a Monday.
	tests := []struct {
		in   string
		want string
	}{
		{"2025-08-25", "2025-08-25"}, // Monday
		{"2025-08-26", "2025-08-25"},
		{"2025-08-27", "2025-08-25"},
		{"2025-08-28", "2025-08-25"},
		{"2025-08-29", "2025-08-25"},
		{"2025-08-30", "2025-08-25"},
		{"2025-08-31", "2025-08-25"}, // Sunday
		{"2025-09-01", "2025-09-01"}, // next Monday
	}

	for _, tt := range tests {
		in, err := ParseDay(tt.in)
		if err != nil {
			t.Fatalf("ParseDay(%q) failed: %v", tt.in, err)
		}
		got := WeekStart(in)
		if got.Format(DayLayout) != tt.want {
			t.Fatalf("WeekStart(%s) = %s, want %s", tt.in, got.Format(DayLayout), tt.want)
		}
		if got.Weekday() != time.Monday {
			t.Fatalf("WeekStart(%s) is a %s, want Monday", tt.in, got.Weekday())
		}
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "today", "2025-8-25", "25-08-2025", "2025-13-01", "2025-08-32"} {
		if _, err := ParseDay(s); err == nil {
			t.Fatalf("ParseDay(%q) should fail", s)
		}
	}
}
