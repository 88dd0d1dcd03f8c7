// Package excel genera los ficheros xlsx de exportación: estado de stock y
// historial de movimientos.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

const sheetName = "Sheet1"

// Exporter construye los ficheros de exportación en memoria.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportStatus vuelca el estado de stock a un xlsx.
func (e *Exporter) ExportStatus(rows []dto.StatusResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []any{"Código", "Nombre", "Categoría", "Cantidad", "Unidad", "Stock de seguridad", "Entradas", "Salidas", "Bajo stock"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		safety := ""
		if row.SafetyStock != nil {
			safety = row.SafetyStock.String()
		}
		cells := []any{
			row.ItemCode,
			row.ItemName,
			row.Category,
			row.Quantity.String(),
			row.Unit,
			safety,
			row.InboundCount,
			row.OutboundCount,
			row.IsLowStock,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}

// ExportMovements vuelca el historial de movimientos a un xlsx.
func (e *Exporter) ExportMovements(rows []dto.MovementResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []any{"Tipo", "Fecha", "Lote", "Código", "Nombre", "Cantidad", "Unidad", "Observaciones"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells := []any{
			row.Direction,
			row.IODate,
			row.LotID,
			row.ItemCode,
			row.ItemName,
			row.Quantity.String(),
			row.Unit,
			row.Remark,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}
