package waste

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetDashboard = "Dashboard"
	sheetEntries   = "Entries"

	// Top of the daily table on the dashboard sheet.
	dailyHeaderRow = 10
	topItemLimit   = 15
)

// ReportInput carries everything the workbook needs: the export-variant
// aggregate, the same week snapshot it was computed from (for the raw entries
// sheet) and the price catalog used to resolve costs.
type ReportInput struct {
	Result      *WeekResult
	Days        map[string][]Entry
	Prices      map[string]float64
	GeneratedAt time.Time
}

// BuildReport renders the weekly report workbook in memory: a dashboard sheet
// with totals, per-day and top-item tables plus their bar charts, and a raw
// entries sheet backing the rollups. Inputs are not mutated; identical input
// produces identical sheet contents apart from the generation timestamp.
func BuildReport(in ReportInput) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetDashboard); err != nil {
		return nil, fmt.Errorf("report: could not name dashboard sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetEntries); err != nil {
		return nil, fmt.Errorf("report: could not create entries sheet: %w", err)
	}

	if err := buildDashboardSheet(f, in); err != nil {
		return nil, err
	}
	if err := buildEntriesSheet(f, in); err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(sheetDashboard)
	if err != nil {
		return nil, fmt.Errorf("report: could not look up dashboard sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	return f, nil
}

func buildDashboardSheet(f *excelize.File, in ReportInput) error {
	res := in.Result

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("report: could not create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report: could not create header style: %w", err)
	}

	setRow := func(cell string, values []interface{}) error {
		if err := f.SetSheetRow(sheetDashboard, cell, &values); err != nil {
			return fmt.Errorf("report: could not write dashboard row %s: %w", cell, err)
		}
		return nil
	}

	if err := setRow("A1", []interface{}{"Weekly Waste Report"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDashboard, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("report: could not style title: %w", err)
	}
	if err := setRow("A2", []interface{}{fmt.Sprintf("Week: %s to %s", res.WeekStart, res.WeekEnd)}); err != nil {
		return err
	}
	if err := setRow("A3", []interface{}{"Generated: " + in.GeneratedAt.Format("2006-01-02 15:04")}); err != nil {
		return err
	}

	if err := setRow("A5", []interface{}{"Total quantity", res.TotalQuantity}); err != nil {
		return err
	}
	if err := setRow("A6", []interface{}{"Total cost", res.TotalCost}); err != nil {
		return err
	}

	if len(res.UnresolvedItems) > 0 {
		warn := "No price on file (cost counted as 0): " + strings.Join(res.UnresolvedItems, ", ")
		if err := setRow("A8", []interface{}{warn}); err != nil {
			return err
		}
	}

	// Daily table, active days only.
	if err := setRow(fmt.Sprintf("A%d", dailyHeaderRow), []interface{}{"Date", "Weekday", "Quantity", "Cost"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDashboard, fmt.Sprintf("A%d", dailyHeaderRow), fmt.Sprintf("D%d", dailyHeaderRow), headerStyle); err != nil {
		return fmt.Errorf("report: could not style daily header: %w", err)
	}
	for i, day := range res.PerDay {
		cell := fmt.Sprintf("A%d", dailyHeaderRow+1+i)
		if err := setRow(cell, []interface{}{day.Date, day.Weekday, day.Quantity, day.Cost}); err != nil {
			return err
		}
	}

	if err := addColumnChart(f, "F4", "Cost by day",
		rangeRef(sheetDashboard, "A", dailyHeaderRow+1, len(res.PerDay)),
		rangeRef(sheetDashboard, "D", dailyHeaderRow+1, len(res.PerDay)),
		len(res.PerDay)); err != nil {
		return err
	}

	// Top items table, one blank row under the daily table.
	itemsHeaderRow := dailyHeaderRow + len(res.PerDay) + 2
	if err := setRow(fmt.Sprintf("A%d", itemsHeaderRow), []interface{}{"Item", "Quantity", "Cost"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDashboard, fmt.Sprintf("A%d", itemsHeaderRow), fmt.Sprintf("C%d", itemsHeaderRow), headerStyle); err != nil {
		return fmt.Errorf("report: could not style items header: %w", err)
	}

	topItems := res.PerItem
	if len(topItems) > topItemLimit {
		topItems = topItems[:topItemLimit]
	}
	for i, it := range topItems {
		cell := fmt.Sprintf("A%d", itemsHeaderRow+1+i)
		if err := setRow(cell, []interface{}{it.Item, it.Quantity, it.Cost}); err != nil {
			return err
		}
	}

	if err := addColumnChart(f, "F22", "Cost by item",
		rangeRef(sheetDashboard, "A", itemsHeaderRow+1, len(topItems)),
		rangeRef(sheetDashboard, "C", itemsHeaderRow+1, len(topItems)),
		len(topItems)); err != nil {
		return err
	}

	for col, width := range map[string]float64{"A": 16, "B": 12, "C": 10, "D": 10} {
		if err := f.SetColWidth(sheetDashboard, col, col, width); err != nil {
			return fmt.Errorf("report: could not size dashboard column %s: %w", col, err)
		}
	}

	return nil
}

// addColumnChart adds a bar chart whose series points at exactly rows' worth
// of populated cells. Zero rows means no chart at all, which is a no-op.
func addColumnChart(f *excelize.File, anchor, title, categories, values string, rows int) error {
	if rows == 0 {
		return nil
	}

	err := f.AddChart(sheetDashboard, anchor, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       title,
			Categories: categories,
			Values:     values,
		}},
		Title:     []excelize.RichTextRun{{Text: title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		Dimension: excelize.ChartDimension{Width: 480, Height: 300},
	})
	if err != nil {
		return fmt.Errorf("report: could not add %q chart: %w", title, err)
	}
	return nil
}

// rangeRef builds an absolute single-column range like 'Dashboard'!$A$11:$A$17.
func rangeRef(sheet, col string, firstRow, rows int) string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, col, firstRow, col, firstRow+rows-1)
}

func buildEntriesSheet(f *excelize.File, in ReportInput) error {
	header := []interface{}{"Date", "Weekday", "Item", "Reason", "Quantity", "Unit price", "Cost"}
	if err := f.SetSheetRow(sheetEntries, "A1", &header); err != nil {
		return fmt.Errorf("report: could not write entries header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report: could not create entries header style: %w", err)
	}
	if err := f.SetCellStyle(sheetEntries, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("report: could not style entries header: %w", err)
	}

	monday, err := ParseDay(in.Result.WeekStart)
	if err != nil {
		return fmt.Errorf("report: bad week start %q: %w", in.Result.WeekStart, err)
	}

	row := 2
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		key := date.Format(DayLayout)

		for _, e := range NormalizeEntries(in.Days[key]) {
			price, ok := resolveUnitPrice(e, in.Prices)

			var priceCell interface{} // blank when no price resolved
			cost := 0.0
			if ok {
				priceCell = price
				cost = round2(float64(e.Quantity) * price)
			}

			values := []interface{}{key, date.Weekday().String(), e.Item, e.Reason, e.Quantity, priceCell, cost}
			if err := f.SetSheetRow(sheetEntries, fmt.Sprintf("A%d", row), &values); err != nil {
				return fmt.Errorf("report: could not write entries row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetPanes(sheetEntries, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("report: could not freeze entries header: %w", err)
	}

	lastRow := row - 1
	if lastRow < 1 {
		lastRow = 1
	}
	if err := f.AutoFilter(sheetEntries, fmt.Sprintf("A1:G%d", lastRow), nil); err != nil {
		return fmt.Errorf("report: could not set entries filter: %w", err)
	}

	for col, width := range map[string]float64{"A": 12, "B": 12, "C": 24, "D": 14, "E": 10, "F": 10, "G": 10} {
		if err := f.SetColWidth(sheetEntries, col, col, width); err != nil {
			return fmt.Errorf("report: could not size entries column %s: %w", col, err)
		}
	}

	return nil
}
