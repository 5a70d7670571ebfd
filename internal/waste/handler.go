package waste

import (
	"fmt"
	"log"
	"time"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/database"
	"cafe-backend/internal/mirror"
	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SaveDayRequest struct {
	Entries []Entry `json:"entries"`
}

type DayResponse struct {
	Date      string  `json:"date"`
	Entries   []Entry `json:"entries"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type WeeklySummaryResponse struct {
	Week  *WeekResult `json:"week"`
	Trend *WeekTrend  `json:"trend"`
}

func getUserInfo(c *fiber.Ctx) (uint, string) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, ""
	}
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}

// weekAnchor resolves the requested week: no date means the current week,
// a malformed date is a rejected request.
func weekAnchor(c *fiber.Ctx) (time.Time, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return WeekStart(time.Now()), nil
	}
	d, err := ParseDay(dateStr)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
	}
	return WeekStart(d), nil
}

// GET /api/waste/days/:date
func GetDayHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Params("date")
		if _, err := ParseDay(date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
		}

		entries, updatedAt, err := store.Day(date)
		if err != nil {
			log.Println("[WARN] waste day read failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load waste entries")
		}

		resp := DayResponse{Date: date, Entries: entries}
		if !updatedAt.IsZero() {
			resp.UpdatedAt = updatedAt.Format("2006-01-02 15:04:05")
		}
		return c.JSON(resp)
	}
}

// PUT /api/waste/days/:date
// Whole-day replace: the submitted batch becomes the day's log.
func SaveDayHandler(store *Store, mir *mirror.Mirror) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Params("date")
		if _, err := ParseDay(date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
		}

		var body SaveDayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before, _, err := store.Day(date)
		if err != nil {
			log.Println("[WARN] waste day read failed:", err)
			before = nil
		}

		saved, err := store.PutDay(date, body.Entries)
		if err != nil {
			log.Println("[WARN] waste day save failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save waste entries")
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "waste_day",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Waste log for %s replaced (%d entries)", date, saved),
			Before:      before,
			After:       body.Entries,
		})

		if days, err := store.AllDays(); err == nil {
			mir.Snapshot("waste_log", days)
		}

		return c.JSON(fiber.Map{"saved": saved, "date": date})
	}
}

// GET /api/waste/prices
func ListPricesHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.ListPrices()
		if err != nil {
			log.Println("[WARN] price catalog read failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load price catalog")
		}

		resp := make([]PriceItem, 0, len(items))
		for _, it := range items {
			resp = append(resp, PriceItem{Name: it.Name, Price: it.Price})
		}
		return c.JSON(resp)
	}
}

// PUT /api/waste/prices
func ReplacePricesHandler(store *Store, mir *mirror.Mirror) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []PriceItem
		if err := c.BodyParser(&items); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := store.ReplacePrices(items); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "pastry_price",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Price catalog replaced (%d items)", len(items)),
			After:       items,
		})

		if prices, err := store.Prices(); err == nil {
			mir.Snapshot("waste_prices", prices)
		}

		return c.JSON(fiber.Map{"saved": len(items)})
	}
}

// GET /api/waste/weekly-summary?date=2025-08-27
// Full-variant aggregate for the date's week plus the trend against the week
// before it.
func WeeklySummaryHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monday, err := weekAnchor(c)
		if err != nil {
			return err
		}
		prevMonday := monday.AddDate(0, 0, -7)

		prices, err := store.Prices()
		if err != nil {
			log.Println("[WARN] price catalog read failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load price catalog")
		}

		days, err := store.WeekSnapshot(monday)
		if err != nil {
			log.Println("[WARN] week snapshot failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load waste log")
		}
		prevDays, err := store.WeekSnapshot(prevMonday)
		if err != nil {
			log.Println("[WARN] week snapshot failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load waste log")
		}

		cur := AggregateWeek(days, prices, monday, true)
		prev := AggregateWeek(prevDays, prices, prevMonday, true)

		return c.JSON(WeeklySummaryResponse{
			Week:  cur,
			Trend: CompareWeeks(cur, prev),
		})
	}
}

// GET /api/waste/weekly-report?date=2025-08-27
// Export-variant aggregate rendered as a downloadable workbook. A render
// failure is a hard error, no partial artifact is ever sent.
func WeeklyReportHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monday, err := weekAnchor(c)
		if err != nil {
			return err
		}

		prices, err := store.Prices()
		if err != nil {
			log.Println("[WARN] price catalog read failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load price catalog")
		}
		days, err := store.WeekSnapshot(monday)
		if err != nil {
			log.Println("[WARN] week snapshot failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load waste log")
		}

		res := AggregateWeek(days, prices, monday, false)

		f, err := BuildReport(ReportInput{
			Result:      res,
			Days:        days,
			Prices:      prices,
			GeneratedAt: time.Now(),
		})
		if err != nil {
			log.Println("[WARN] report build failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report workbook")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			log.Println("[WARN] report serialize failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report workbook")
		}

		filename := fmt.Sprintf("weekly_waste_%s_to_%s.xlsx", res.WeekStart, res.WeekEnd)
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}
}
