package orders

import (
	"time"

	"cafe-backend/internal/database"
	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AddLineRequest struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// summaryLines joins the pending order against the catalog, in catalog (SKU)
// order. SKUs that were removed from the catalog since being added are
// silently dropped, like the original order summary did.
func summaryLines(store *Store) ([]SummaryLine, error) {
	quantities := store.Quantities()

	var items []models.CatalogItem
	if err := database.DB.Order("sku ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]SummaryLine, 0, len(quantities))
	for _, item := range items {
		if qty, ok := quantities[item.SKU]; ok {
			lines = append(lines, SummaryLine{
				SKU:  item.SKU,
				Name: item.Name,
				Unit: item.Unit,
				Qty:  qty,
			})
		}
	}
	return lines, nil
}

// POST /api/order/items
func AddLineHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddLineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.SKU == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sku is required")
		}
		if body.Qty < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "qty must be at least 1")
		}

		var item models.CatalogItem
		if err := database.DB.Where("sku = ?", body.SKU).First(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Unknown SKU")
		}

		store.Add(body.SKU, body.Qty)
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/order/items/:sku
func RemoveLineHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sku := c.Params("sku")
		if sku == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sku is required")
		}

		store.Remove(sku)
		return c.JSON(fiber.Map{"success": true})
	}
}

// GET /api/order/summary
func SummaryHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lines, err := summaryLines(store)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build order summary")
		}
		return c.JSON(lines)
	}
}

// GET /api/order/email
// Returns ready-to-open compose URLs; nothing is sent from the server.
func EmailHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lines, err := summaryLines(store)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build order email")
		}

		subject, body := ComposeEmail(lines, time.Now())
		return c.JSON(fiber.Map{
			"gmail":  GmailURL(subject, body),
			"mailto": MailtoURL(subject, body),
		})
	}
}
