package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

const (
	dateLayout = "2006-01-02"

	defaultLowStockLimit = 50
	defaultExpiringDays  = 7
	defaultExpiringLimit = 50
)

// StockUseCase consultas de estado de stock: balance real, estado por
// artículo, bajo stock, caducidades e historial por artículo.
type StockUseCase struct {
	reportRepo  repository.ReportRepository
	balanceRepo repository.BalanceRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(reportRepo repository.ReportRepository, balanceRepo repository.BalanceRepository) *StockUseCase {
	return &StockUseCase{reportRepo: reportRepo, balanceRepo: balanceRepo}
}

// GetBalances devuelve la proyección de balance tal cual está persistida.
// Los artículos sin fila tienen stock cero y no aparecen.
func (uc *StockUseCase) GetBalances() ([]dto.BalanceResponse, error) {
	balances, err := uc.balanceRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.BalanceResponse{
			ItemCode: b.ItemCode,
			Quantity: b.Quantity,
			Unit:     b.Unit,
		})
	}
	return out, nil
}

// GetStatus devuelve el estado de stock por artículo partiendo del maestro:
// los artículos sin balance aparecen con cantidad cero.
func (uc *StockUseCase) GetStatus(ctx context.Context, req dto.StatusSearchRequest) ([]dto.StatusResponse, error) {
	rows, err := uc.reportRepo.GetStatus(ctx, repository.StatusFilter{
		Category: req.Category,
		ItemCode: req.ItemCode,
		ItemName: req.ItemName,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StatusResponse{
			ItemCode:      row.ItemCode,
			ItemName:      row.ItemName,
			Category:      row.Category,
			Quantity:      row.Quantity,
			Unit:          row.Unit,
			SafetyStock:   row.SafetyStock,
			InboundCount:  row.InboundCount,
			OutboundCount: row.OutboundCount,
			IsLowStock:    row.IsLowStock,
		})
	}
	return out, nil
}

// GetLowStock lista artículos en o bajo su stock de seguridad.
func (uc *StockUseCase) GetLowStock(ctx context.Context, limit int) ([]dto.LowStockResponse, error) {
	if limit <= 0 {
		limit = defaultLowStockLimit
	}
	rows, err := uc.reportRepo.GetLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toLowStockResponses(rows), nil
}

// GetExpiringLots lista lotes que caducan dentro de withinDays días.
func (uc *StockUseCase) GetExpiringLots(ctx context.Context, withinDays, limit int) ([]dto.ExpiringLotResponse, error) {
	if withinDays <= 0 {
		withinDays = defaultExpiringDays
	}
	if limit <= 0 {
		limit = defaultExpiringLimit
	}
	rows, err := uc.reportRepo.GetExpiringLots(ctx, withinDays, limit)
	if err != nil {
		return nil, err
	}
	return toExpiringResponses(rows), nil
}

// GetItemHistory devuelve el stock actual de un artículo junto con su
// historial completo de movimientos.
func (uc *StockUseCase) GetItemHistory(ctx context.Context, itemCode string) (*dto.ItemHistoryResponse, error) {
	if itemCode == "" {
		return nil, fmt.Errorf("%w: item_code es obligatorio", domain.ErrInvalidInput)
	}
	history, err := uc.reportRepo.GetItemHistory(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, itemCode)
	}

	resp := &dto.ItemHistoryResponse{
		StockInfo: &dto.ItemStockInfo{
			ItemCode:         history.ItemCode,
			ItemName:         history.ItemName,
			Category:         history.Category,
			Quantity:         history.Quantity,
			Unit:             history.Unit,
			SafetyStock:      history.SafetyStock,
			InboundCount:     history.InboundCount,
			TotalInboundQty:  history.TotalInboundQty,
			OutboundCount:    history.OutboundCount,
			TotalOutboundQty: history.TotalOutboundQty,
			IsLowStock:       history.IsLowStock,
		},
		History: make([]dto.MovementResponse, 0, len(history.History)),
	}
	for _, row := range history.History {
		resp.History = append(resp.History, movementResponseFromRow(row))
	}
	return resp, nil
}

func toLowStockResponses(rows []repository.LowStockRow) []dto.LowStockResponse {
	out := make([]dto.LowStockResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.LowStockResponse{
			ItemCode:    row.ItemCode,
			ItemName:    row.ItemName,
			Category:    row.Category,
			Quantity:    row.Quantity,
			Unit:        row.Unit,
			SafetyStock: row.SafetyStock,
			Shortage:    row.Shortage,
		})
	}
	return out
}

func toExpiringResponses(rows []repository.ExpiringLotRow) []dto.ExpiringLotResponse {
	out := make([]dto.ExpiringLotResponse, 0, len(rows))
	for _, row := range rows {
		resp := dto.ExpiringLotResponse{
			LotID:           row.LotID,
			ItemCode:        row.ItemCode,
			ItemName:        row.ItemName,
			Category:        row.Category,
			Quantity:        row.Quantity,
			Unit:            row.Unit,
			ReceivedDate:    row.ReceivedDate.Format(dateLayout),
			ExpiryDate:      row.ExpiryDate.Format(dateLayout),
			DaysUntilExpiry: row.DaysUntilExpiry,
		}
		if row.PreparationDate != nil {
			s := row.PreparationDate.Format(dateLayout)
			resp.PreparationDate = &s
		}
		out = append(out, resp)
	}
	return out
}

func movementResponseFromRow(row repository.MovementRow) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:        row.ID,
		LotID:     row.LotID,
		ItemCode:  row.ItemCode,
		ItemName:  row.ItemName,
		Direction: row.Direction,
		Quantity:  row.Quantity,
		Unit:      row.Unit,
		IODate:    row.MovementDate.Format(dateLayout),
		Remark:    row.Remark,
		CreatedAt: row.CreatedAt,
	}
	if row.ReceivedDate != nil {
		s := row.ReceivedDate.Format(dateLayout)
		resp.ReceivedDate = &s
	}
	if row.PreparationDate != nil {
		s := row.PreparationDate.Format(dateLayout)
		resp.PreparationDate = &s
	}
	if row.ExpiryDate != nil {
		s := row.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &s
	}
	return resp
}
