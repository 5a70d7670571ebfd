package waste

import (
	"fmt"
	"strings"
	"time"

	"cafe-backend/internal/models"

	"gorm.io/gorm"
)

// Store owns reads and writes of the waste log and the pastry price catalog.
// The aggregation functions never touch it directly; handlers read a snapshot
// here once and pass plain data in.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Day returns the entries recorded for one date, in submitted order, plus the
// day's last-modified timestamp. A missing date is an empty list, not an error.
func (s *Store) Day(date string) ([]Entry, time.Time, error) {
	var rows []models.WasteEntry
	if err := s.db.Where("date = ?", date).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, time.Time{}, fmt.Errorf("could not load waste entries for %s: %w", date, err)
	}

	var day models.WasteDay
	var updatedAt time.Time
	if err := s.db.Where("date = ?", date).First(&day).Error; err == nil {
		updatedAt = day.UpdatedAt
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{
			Item:      r.Item,
			Quantity:  r.Quantity,
			Reason:    r.Reason,
			UnitPrice: r.UnitPrice,
		})
	}
	return entries, updatedAt, nil
}

// PutDay replaces the whole day's log with the given batch. Entries are
// normalized first; rows without a stored unit price get the current catalog
// price frozen on, so later catalog edits never rewrite this day's cost.
// Returns how many entries were saved.
func (s *Store) PutDay(date string, entries []Entry) (int, error) {
	entries = NormalizeEntries(entries)

	prices, err := s.Prices()
	if err != nil {
		return 0, err
	}
	for i := range entries {
		if entries[i].UnitPrice == nil {
			if p, ok := prices[entries[i].Item]; ok {
				frozen := p
				entries[i].UnitPrice = &frozen
			}
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&models.WasteEntry{}).Error; err != nil {
			return fmt.Errorf("could not clear old entries for %s: %w", date, err)
		}

		for i, e := range entries {
			row := models.WasteEntry{
				Date:      date,
				Position:  i,
				Item:      e.Item,
				Quantity:  e.Quantity,
				Reason:    e.Reason,
				UnitPrice: e.UnitPrice,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("could not save entry %d for %s: %w", i, date, err)
			}
		}

		// Upsert the day record so UpdatedAt reflects this submission.
		var day models.WasteDay
		if err := tx.Where("date = ?", date).First(&day).Error; err != nil {
			day = models.WasteDay{Date: date}
		}
		day.UpdatedAt = time.Now()
		if err := tx.Save(&day).Error; err != nil {
			return fmt.Errorf("could not update day record for %s: %w", date, err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(entries), nil
}

// WeekSnapshot reads the 7 days starting at monday in one query and returns
// them keyed by date. This is the point-in-time read the aggregation works on.
func (s *Store) WeekSnapshot(monday time.Time) (map[string][]Entry, error) {
	monday = WeekStart(monday)
	keys := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		keys = append(keys, monday.AddDate(0, 0, i).Format(DayLayout))
	}

	var rows []models.WasteEntry
	if err := s.db.Where("date IN ?", keys).Order("date ASC, position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not load waste entries for week of %s: %w", keys[0], err)
	}

	days := make(map[string][]Entry)
	for _, r := range rows {
		days[r.Date] = append(days[r.Date], Entry{
			Item:      r.Item,
			Quantity:  r.Quantity,
			Reason:    r.Reason,
			UnitPrice: r.UnitPrice,
		})
	}
	return days, nil
}

// AllDays returns the full log keyed by date, for the snapshot mirror.
func (s *Store) AllDays() (map[string][]Entry, error) {
	var rows []models.WasteEntry
	if err := s.db.Order("date ASC, position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not load waste log: %w", err)
	}

	days := make(map[string][]Entry)
	for _, r := range rows {
		days[r.Date] = append(days[r.Date], Entry{
			Item:      r.Item,
			Quantity:  r.Quantity,
			Reason:    r.Reason,
			UnitPrice: r.UnitPrice,
		})
	}
	return days, nil
}

// Prices returns the current price catalog as a name -> unit price map.
func (s *Store) Prices() (map[string]float64, error) {
	items, err := s.ListPrices()
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(items))
	for _, it := range items {
		prices[it.Name] = it.Price
	}
	return prices, nil
}

func (s *Store) ListPrices() ([]models.PastryPrice, error) {
	var items []models.PastryPrice
	if err := s.db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("could not load price catalog: %w", err)
	}
	return items, nil
}

type PriceItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ReplacePrices swaps the whole price catalog. Names are trimmed and
// deduplicated (last one wins), negative prices are rejected, prices are
// rounded to 2 decimals on write.
func (s *Store) ReplacePrices(items []PriceItem) error {
	seen := make(map[string]int)
	clean := make([]PriceItem, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			continue
		}
		if it.Price < 0 {
			return fmt.Errorf("price for %q must not be negative", it.Name)
		}
		it.Price = round2(it.Price)
		if idx, dup := seen[it.Name]; dup {
			clean[idx] = it
			continue
		}
		seen[it.Name] = len(clean)
		clean = append(clean, it)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.PastryPrice{}).Error; err != nil {
			return fmt.Errorf("could not clear price catalog: %w", err)
		}
		for _, it := range clean {
			row := models.PastryPrice{Name: it.Name, Price: it.Price}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("could not save price for %q: %w", it.Name, err)
			}
		}
		return nil
	})
}
