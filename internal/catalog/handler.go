package catalog

import (
	"fmt"
	"log"
	"strings"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/database"
	"cafe-backend/internal/mirror"
	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ItemRequest struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type ItemResponse struct {
	ID   uint   `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func toResponse(item models.CatalogItem) ItemResponse {
	return ItemResponse{ID: item.ID, SKU: item.SKU, Name: item.Name, Unit: item.Unit}
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

// snapshotCatalog pushes the whole catalog to the git mirror after a write.
func snapshotCatalog(mir *mirror.Mirror) {
	var items []models.CatalogItem
	if err := database.DB.Order("sku ASC").Find(&items).Error; err != nil {
		log.Println("[WARN] catalog snapshot read failed:", err)
		return
	}
	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toResponse(it))
	}
	mir.Snapshot("catalog", resp)
}

// GET /api/catalog?q=flour
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.CatalogItem{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			query = query.Where("sku ILIKE ? OR name ILIKE ?", like, like)
		}

		var items []models.CatalogItem
		if err := query.Order("sku ASC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list catalog items")
		}

		resp := make([]ItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, toResponse(it))
		}
		return c.JSON(resp)
	}
}

// POST /api/catalog
func CreateItemHandler(mir *mirror.Mirror) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.SKU = strings.TrimSpace(body.SKU)
		body.Name = strings.TrimSpace(body.Name)
		body.Unit = strings.TrimSpace(body.Unit)
		if body.SKU == "" || body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sku, name and unit are required")
		}

		item := models.CatalogItem{SKU: body.SKU, Name: body.Name, Unit: body.Unit}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Could not create item, SKU may already exist")
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "catalog_item",
			EntityID:    item.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Catalog item added: [%s] %s", item.SKU, item.Name),
			After:       item,
		})
		snapshotCatalog(mir)

		return c.Status(fiber.StatusCreated).JSON(toResponse(item))
	}
}

// PUT /api/catalog/:id
func UpdateItemHandler(mir *mirror.Mirror) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.CatalogItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Catalog item not found")
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := item
		if s := strings.TrimSpace(body.SKU); s != "" {
			item.SKU = s
		}
		if s := strings.TrimSpace(body.Name); s != "" {
			item.Name = s
		}
		if s := strings.TrimSpace(body.Unit); s != "" {
			item.Unit = s
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update catalog item")
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "catalog_item",
			EntityID:    item.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Catalog item updated: [%s] %s", item.SKU, item.Name),
			Before:      before,
			After:       item,
		})
		snapshotCatalog(mir)

		return c.JSON(toResponse(item))
	}
}

// DELETE /api/catalog/:id
func DeleteItemHandler(mir *mirror.Mirror) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.CatalogItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Catalog item not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete catalog item")
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "catalog_item",
			EntityID:    item.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Catalog item deleted: [%s] %s", item.SKU, item.Name),
			Before:      item,
		})
		snapshotCatalog(mir)

		return c.JSON(fiber.Map{"message": "Catalog item deleted"})
	}
}
