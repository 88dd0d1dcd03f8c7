package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

const (
	dashboardLowStockLimit = 10
	dashboardExpiringDays  = 30
	dashboardExpiringLimit = 10
	dashboardRecentLimit   = 10
)

// DashboardUseCase agrega los datos del panel principal: bajo stock,
// caducidades próximas, totales y movimientos recientes.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetDashboard consulta los cuatro bloques en paralelo (llamadas independientes).
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	type lowStockResult struct {
		rows []repository.LowStockRow
		err  error
	}
	type expiringResult struct {
		rows []repository.ExpiringLotRow
		err  error
	}
	type summaryResult struct {
		summary *repository.StockSummary
		err     error
	}
	type recentResult struct {
		rows []repository.TransactionRow
		err  error
	}

	lowChan := make(chan lowStockResult, 1)
	expChan := make(chan expiringResult, 1)
	sumChan := make(chan summaryResult, 1)
	recChan := make(chan recentResult, 1)

	go func() {
		rows, err := uc.reportRepo.GetLowStock(ctx, dashboardLowStockLimit)
		lowChan <- lowStockResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetExpiringLots(ctx, dashboardExpiringDays, dashboardExpiringLimit)
		expChan <- expiringResult{rows, err}
	}()
	go func() {
		summary, err := uc.reportRepo.GetSummary(ctx)
		sumChan <- summaryResult{summary, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetRecentTransactions(ctx, dashboardRecentLimit)
		recChan <- recentResult{rows, err}
	}()

	lowRes := <-lowChan
	expRes := <-expChan
	sumRes := <-sumChan
	recRes := <-recChan

	if lowRes.err != nil {
		return nil, fmt.Errorf("dashboard: bajo stock: %w", lowRes.err)
	}
	if expRes.err != nil {
		return nil, fmt.Errorf("dashboard: caducidades: %w", expRes.err)
	}
	if sumRes.err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", sumRes.err)
	}
	if recRes.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recRes.err)
	}

	transactions := make([]dto.TransactionResponse, 0, len(recRes.rows))
	for _, row := range recRes.rows {
		transactions = append(transactions, dto.TransactionResponse{
			Direction:       row.Direction,
			TransactionNo:   row.TransactionNo,
			ItemCode:        row.ItemCode,
			ItemName:        row.ItemName,
			Quantity:        row.Quantity,
			Unit:            row.Unit,
			TransactionDate: row.TransactionDate.Format(dateLayout),
			Remark:          row.Remark,
		})
	}

	return &dto.DashboardResponse{
		LowStock: toLowStockResponses(lowRes.rows),
		Expiring: toExpiringResponses(expRes.rows),
		Summary: &dto.SummaryResponse{
			TotalItems:    sumRes.summary.TotalItems,
			TotalLots:     sumRes.summary.TotalLots,
			TotalQuantity: sumRes.summary.TotalQuantity,
			ActiveItems:   sumRes.summary.ActiveItems,
			EmptyItems:    sumRes.summary.EmptyItems,
		},
		RecentTransactions: transactions,
	}, nil
}
