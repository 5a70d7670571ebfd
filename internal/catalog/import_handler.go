package catalog

import (
	"fmt"
	"log"
	"strings"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/database"
	"cafe-backend/internal/mirror"
	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// POST /api/catalog/import
// Bulk import from a supplier XLSX: first sheet, columns sku | name | unit.
// Existing SKUs are updated, new ones created, incomplete rows skipped.
func ImportItemsHandler(mir *mirror.Mirror) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be uploaded")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read Excel file: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read sheet: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is empty")
		}

		// Skip the first row when it looks like a header.
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "SKU") || strings.Contains(firstCell, "PRODUCT") || strings.Contains(firstCell, "ITEM") {
				startIndex = 1
				log.Println("Catalog import: first row detected as header, skipping")
			}
		}

		created := 0
		updated := 0
		skipped := make([]string, 0)

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) < 3 {
				if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
					skipped = append(skipped, strings.TrimSpace(row[0]))
				}
				continue
			}

			sku := strings.TrimSpace(row[0])
			name := strings.TrimSpace(row[1])
			unit := strings.TrimSpace(row[2])
			if sku == "" || name == "" || unit == "" {
				if sku != "" {
					skipped = append(skipped, sku)
				}
				continue
			}

			var item models.CatalogItem
			if err := database.DB.Where("sku = ?", sku).First(&item).Error; err == nil {
				item.Name = name
				item.Unit = unit
				if err := database.DB.Save(&item).Error; err != nil {
					log.Printf("Catalog import: could not update %s: %v", sku, err)
					skipped = append(skipped, sku)
					continue
				}
				updated++
				continue
			}

			item = models.CatalogItem{SKU: sku, Name: name, Unit: unit}
			if err := database.DB.Create(&item).Error; err != nil {
				log.Printf("Catalog import: could not create %s: %v", sku, err)
				skipped = append(skipped, sku)
				continue
			}
			created++
		}

		userID, userName := getUserInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "catalog_item",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Catalog import: %d created, %d updated, %d skipped", created, updated, len(skipped)),
		})
		snapshotCatalog(mir)

		return c.JSON(fiber.Map{
			"success": true,
			"created": created,
			"updated": updated,
			"skipped": skipped,
			"message": fmt.Sprintf("%d items created, %d updated. %d rows skipped.", created, updated, len(skipped)),
		})
	}
}
