package waste

import (
	"sort"
	"time"
)

type DayTotal struct {
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

type ItemTotal struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

type WeekResult struct {
	WeekStart       string      `json:"week_start"`
	WeekEnd         string      `json:"week_end"`
	TotalQuantity   int         `json:"total_quantity"`
	TotalCost       float64     `json:"total_cost"`
	PerDay          []DayTotal  `json:"per_day"`
	PerItem         []ItemTotal `json:"per_item"`
	UnresolvedItems []string    `json:"items_with_unresolved_price"`
}

type itemAcc struct {
	quantity int
	cost     float64
}

// resolveUnitPrice: stored snapshot on the entry wins, then the live price
// catalog. Both missing means the entry contributes zero cost and the item is
// flagged. This order must not change, it decides what historical weeks cost.
func resolveUnitPrice(e Entry, prices map[string]float64) (float64, bool) {
	if e.UnitPrice != nil {
		return *e.UnitPrice, true
	}
	if p, ok := prices[e.Item]; ok {
		return p, true
	}
	return 0, false
}

// aggregateDay folds one day's entries into quantity/cost totals plus
// per-item contributions. Pure function of its inputs.
func aggregateDay(entries []Entry, prices map[string]float64, items map[string]*itemAcc, unresolved map[string]bool) (int, float64) {
	dayQuantity := 0
	dayCost := 0.0

	for _, e := range NormalizeEntries(entries) {
		price, ok := resolveUnitPrice(e, prices)
		if !ok {
			unresolved[e.Item] = true
		}
		cost := float64(e.Quantity) * price

		dayQuantity += e.Quantity
		dayCost += cost

		acc, found := items[e.Item]
		if !found {
			acc = &itemAcc{}
			items[e.Item] = acc
		}
		acc.quantity += e.Quantity
		acc.cost += cost
	}

	return dayQuantity, dayCost
}

// AggregateWeek computes the weekly rollup for the 7 days starting at the
// Monday of weekStart's week. days is a point-in-time snapshot of the log
// store keyed by YYYY-MM-DD; prices is the current price catalog.
//
// includeZeroDays picks the presentation variant: true keeps all 7 per-day
// rows (on-screen summary, gaps visible), false keeps only days with
// activity (exported report). Both run the same cost math.
func AggregateWeek(days map[string][]Entry, prices map[string]float64, weekStart time.Time, includeZeroDays bool) *WeekResult {
	monday := WeekStart(weekStart)

	res := &WeekResult{
		WeekStart:       monday.Format(DayLayout),
		WeekEnd:         monday.AddDate(0, 0, 6).Format(DayLayout),
		PerDay:          []DayTotal{},
		PerItem:         []ItemTotal{},
		UnresolvedItems: []string{},
	}

	items := make(map[string]*itemAcc)
	unresolved := make(map[string]bool)
	totalCost := 0.0

	// Monday first; downstream charts rely on this left-to-right order.
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		key := date.Format(DayLayout)

		dayQuantity, dayCost := aggregateDay(days[key], prices, items, unresolved)

		res.TotalQuantity += dayQuantity
		totalCost += dayCost

		if includeZeroDays || dayQuantity > 0 {
			res.PerDay = append(res.PerDay, DayTotal{
				Date:     key,
				Weekday:  date.Weekday().String(),
				Quantity: dayQuantity,
				Cost:     round2(dayCost),
			})
		}
	}

	res.TotalCost = round2(totalCost)

	for item, acc := range items {
		res.PerItem = append(res.PerItem, ItemTotal{
			Item:     item,
			Quantity: acc.quantity,
			Cost:     round2(acc.cost),
		})
	}

	// Cost desc, quantity breaks ties, item name keeps equal rows stable.
	sort.Slice(res.PerItem, func(i, j int) bool {
		a, b := res.PerItem[i], res.PerItem[j]
		if a.Cost != b.Cost {
			return a.Cost > b.Cost
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Item < b.Item
	})

	for item := range unresolved {
		res.UnresolvedItems = append(res.UnresolvedItems, item)
	}
	sort.Strings(res.UnresolvedItems)

	return res
}
