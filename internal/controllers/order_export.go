package controllers

import (
	"fmt"
	"net/http"
	"time"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/entities"
	"aircon-admin/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	exportSheet       = "Orders"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportColumnWidth = 22
)

// exportHeaders lists the workbook columns. Customers never get the Status column.
func exportHeaders(role authz.Role) []interface{} {
	headers := []interface{}{"Customer", "Phone", "Technician", "Technician Phone", "Visit Date", "Total Price"}
	if role != authz.RoleCustomer {
		headers = append(headers, "Status")
	}
	return append(headers, "Created At")
}

func exportRow(o entities.Order, role authz.Role) []interface{} {
	row := []interface{}{
		o.Name,
		o.Phone,
		o.TechnicianName,
		o.TechnicianPhone,
		utils.FormatVisitDate(o.VisitDate),
		utils.FormatRupiah(o.TotalPrice),
	}
	if role != authz.RoleCustomer {
		row = append(row, o.Status.String())
	}
	createdAt := ""
	if o.CreatedAt != nil {
		createdAt = o.CreatedAt.Format(utils.DateTimeLayout)
	}
	return append(row, createdAt)
}

func buildOrdersWorkbook(orders []entities.Order, role authz.Role) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headers := exportHeaders(role)
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", style); err != nil {
		return nil, err
	}

	for i, o := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(o, role)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", lastCol, exportColumnWidth); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *OrderController) respondWithXLSX(ctx echo.Context, orders []entities.Order, role authz.Role) error {
	f, err := buildOrdersWorkbook(orders, role)
	if err != nil {
		utils.Logger(ctx, c.logger).Error("order export: workbook build failed", zap.Error(err))
		return c.errorResponse(ctx, err)
	}
	defer f.Close()

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format(utils.DateLayout))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
