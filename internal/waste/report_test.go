package waste

import (
	"reflect"
	"testing"
	"time"
)

func reportFixture(t *testing.T) ReportInput {
	t.Helper()

	days := map[string][]Entry{
		"2025-08-25": {
			{Item: "Croissant", Quantity: 3, Reason: "Not sold", UnitPrice: ptr(2.50)},
			{Item: "Mystery Bun", Quantity: 1, Reason: "Expired"},
		},
		"2025-08-27": {
			{Item: "Danish", Quantity: 2, Reason: "Damaged", UnitPrice: ptr(3.00)},
		},
	}
	prices := map[string]float64{"Croissant": 2.50, "Danish": 3.00}
	res := AggregateWeek(days, prices, day(t, "2025-08-25"), false)

	return ReportInput{
		Result:      res,
		Days:        days,
		Prices:      prices,
		GeneratedAt: time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildReportDashboard(t *testing.T) {
	f, err := BuildReport(reportFixture(t))
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	defer f.Close()

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s) failed: %v", sheet, ref, err)
		}
		return v
	}

	if got := cell("Dashboard", "A1"); got != "Weekly Waste Report" {
		t.Fatalf("title = %q", got)
	}
	if got := cell("Dashboard", "A2"); got != "Week: 2025-08-25 to 2025-08-31" {
		t.Fatalf("week range = %q", got)
	}
	if got := cell("Dashboard", "A3"); got != "Generated: 2025-09-01 10:30" {
		t.Fatalf("generated = %q", got)
	}
	if got := cell("Dashboard", "B5"); got != "6" {
		t.Fatalf("total quantity = %q, want 6", got)
	}
	if got := cell("Dashboard", "B6"); got != "13.5" {
		t.Fatalf("total cost = %q, want 13.5", got)
	}
	if got := cell("Dashboard", "A8"); got != "No price on file (cost counted as 0): Mystery Bun" {
		t.Fatalf("warning block = %q", got)
	}

	// Daily table: 2 active days only (export variant).
	if got := cell("Dashboard", "A10"); got != "Date" {
		t.Fatalf("daily header = %q", got)
	}
	if got := cell("Dashboard", "A11"); got != "2025-08-25" {
		t.Fatalf("first daily row date = %q", got)
	}
	if got := cell("Dashboard", "B11"); got != "Monday" {
		t.Fatalf("first daily row weekday = %q", got)
	}
	if got := cell("Dashboard", "D11"); got != "7.5" {
		t.Fatalf("first daily row cost = %q, want 7.5", got)
	}
	if got := cell("Dashboard", "A12"); got != "2025-08-27" {
		t.Fatalf("second daily row date = %q", got)
	}
	if got := cell("Dashboard", "A13"); got != "" {
		t.Fatalf("daily table should end after 2 rows, A13 = %q", got)
	}

	// Items table follows one blank row below the daily table.
	if got := cell("Dashboard", "A14"); got != "Item" {
		t.Fatalf("items header = %q", got)
	}
	if got := cell("Dashboard", "A15"); got != "Croissant" {
		t.Fatalf("top item = %q, want Croissant", got)
	}
	if got := cell("Dashboard", "C15"); got != "7.5" {
		t.Fatalf("top item cost = %q, want 7.5", got)
	}
}

func TestBuildReportEntriesSheet(t *testing.T) {
	f, err := BuildReport(reportFixture(t))
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Entries")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("entries sheet has %d rows, want header + 3 entries", len(rows))
	}

	header := []string{"Date", "Weekday", "Item", "Reason", "Quantity", "Unit price", "Cost"}
	if !reflect.DeepEqual(rows[0], header) {
		t.Fatalf("entries header = %v, want %v", rows[0], header)
	}

	if rows[1][2] != "Croissant" || rows[1][0] != "2025-08-25" {
		t.Fatalf("first entry row = %v", rows[1])
	}
	// Mystery Bun has no resolvable price: blank price cell, zero cost.
	if rows[2][2] != "Mystery Bun" {
		t.Fatalf("second entry row = %v", rows[2])
	}
	if rows[2][5] != "" {
		t.Fatalf("unresolved unit price cell = %q, want blank", rows[2][5])
	}
	if rows[2][6] != "0" {
		t.Fatalf("unresolved cost cell = %q, want 0", rows[2][6])
	}
	if rows[3][0] != "2025-08-27" || rows[3][1] != "Wednesday" {
		t.Fatalf("third entry row = %v", rows[3])
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	in := reportFixture(t)

	first, err := BuildReport(in)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	defer first.Close()
	second, err := BuildReport(in)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	defer second.Close()

	for _, sheet := range []string{"Dashboard", "Entries"} {
		a, err := first.GetRows(sheet)
		if err != nil {
			t.Fatalf("GetRows failed: %v", err)
		}
		b, err := second.GetRows(sheet)
		if err != nil {
			t.Fatalf("GetRows failed: %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("sheet %s differs between two builds of identical input", sheet)
		}
	}
}

func TestBuildReportEmptyWeek(t *testing.T) {
	res := AggregateWeek(nil, nil, day(t, "2025-08-25"), false)

	f, err := BuildReport(ReportInput{
		Result:      res,
		Days:        nil,
		Prices:      nil,
		GeneratedAt: time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("BuildReport on an empty week failed: %v", err)
	}
	defer f.Close()

	// No daily rows, no items, no charts; the skeleton is still complete.
	v, err := f.GetCellValue("Dashboard", "B5")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if v != "0" {
		t.Fatalf("empty week total quantity = %q, want 0", v)
	}

	rows, err := f.GetRows("Entries")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty week entries sheet has %d rows, want header only", len(rows))
	}
}
