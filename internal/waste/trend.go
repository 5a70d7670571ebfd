package waste

type ItemTrend struct {
	Item         string   `json:"item"`
	CurrentCost  float64  `json:"current_cost"`
	PreviousCost float64  `json:"previous_cost"`
	DeltaCost    float64  `json:"delta_cost"`
	PctChange    *float64 `json:"pct_change"` // null when there is no baseline
}

type WeekTrend struct {
	DeltaQuantity     int         `json:"delta_quantity"`
	DeltaCost         float64     `json:"delta_cost"`
	QuantityPctChange *float64    `json:"quantity_pct_change"`
	CostPctChange     *float64    `json:"cost_pct_change"`
	TopItems          []ItemTrend `json:"top_items"`
}

// PercentChange returns the rounded percentage change from prev to curr, or
// nil when prev is zero: no baseline is a signal, not an error or infinity.
func PercentChange(curr, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	pct := round1(((curr - prev) / prev) * 100)
	return &pct
}

// CompareWeeks computes current-vs-previous deltas over two already-computed
// full-variant aggregates. No I/O happens here.
func CompareWeeks(cur, prev *WeekResult) *WeekTrend {
	trend := &WeekTrend{
		DeltaQuantity:     cur.TotalQuantity - prev.TotalQuantity,
		DeltaCost:         round2(cur.TotalCost - prev.TotalCost),
		QuantityPctChange: PercentChange(float64(cur.TotalQuantity), float64(prev.TotalQuantity)),
		CostPctChange:     PercentChange(cur.TotalCost, prev.TotalCost),
		TopItems:          []ItemTrend{},
	}

	prevCosts := make(map[string]float64, len(prev.PerItem))
	for _, it := range prev.PerItem {
		prevCosts[it.Item] = it.Cost
	}

	// PerItem is already sorted by current-week cost.
	for i := 0; i < len(cur.PerItem) && i < 3; i++ {
		it := cur.PerItem[i]
		prevCost := prevCosts[it.Item] // 0 when absent last week

		trend.TopItems = append(trend.TopItems, ItemTrend{
			Item:         it.Item,
			CurrentCost:  it.Cost,
			PreviousCost: prevCost,
			DeltaCost:    round2(it.Cost - prevCost),
			PctChange:    PercentChange(it.Cost, prevCost),
		})
	}

	return trend
}
