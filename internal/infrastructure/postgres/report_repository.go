package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación read-only de ReportRepository sobre PostgreSQL.
// El estado parte del maestro: los artículos sin balance salen con cero.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetStatus devuelve el estado de stock por artículo activo, con contadores
// de movimientos y la marca de bajo stock.
func (r *ReportRepo) GetStatus(ctx context.Context, filter repository.StatusFilter) ([]repository.StatusRow, error) {
	query := `
		SELECT i.code, i.name, i.category,
		       COALESCE(b.quantity, 0) AS quantity,
		       COALESCE(b.unit, i.unit) AS unit,
		       i.safety_stock,
		       COALESCE(m.in_count, 0), COALESCE(m.out_count, 0),
		       (i.safety_stock IS NOT NULL AND COALESCE(b.quantity, 0) <= i.safety_stock) AS is_low_stock,
		       b.updated_at
		FROM items i
		LEFT JOIN balance b ON b.item_code = i.code
		LEFT JOIN (
			SELECT item_code,
			       COUNT(*) FILTER (WHERE direction = 'IN') AS in_count,
			       COUNT(*) FILTER (WHERE direction = 'OUT') AS out_count
			FROM movements
			GROUP BY item_code
		) m ON m.item_code = i.code
		WHERE i.is_active
		  AND ($1 = '' OR i.category = $1)
		  AND ($2 = '' OR i.code ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR i.name ILIKE '%' || $3 || '%')
		ORDER BY i.code`
	rows, err := r.q.Query(ctx, query, filter.Category, filter.ItemCode, filter.ItemName)
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	defer rows.Close()

	var out []repository.StatusRow
	for rows.Next() {
		var sr repository.StatusRow
		if err := rows.Scan(
			&sr.ItemCode, &sr.ItemName, &sr.Category, &sr.Quantity, &sr.Unit,
			&sr.SafetyStock, &sr.InboundCount, &sr.OutboundCount,
			&sr.IsLowStock, &sr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan status row: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// GetLowStock devuelve los artículos en o bajo su stock de seguridad,
// mayor faltante primero.
func (r *ReportRepo) GetLowStock(ctx context.Context, limit int) ([]repository.LowStockRow, error) {
	query := `
		SELECT i.code, i.name, i.category,
		       COALESCE(b.quantity, 0) AS quantity,
		       COALESCE(b.unit, i.unit) AS unit,
		       i.safety_stock,
		       i.safety_stock - COALESCE(b.quantity, 0) AS shortage
		FROM items i
		LEFT JOIN balance b ON b.item_code = i.code
		WHERE i.is_active
		  AND i.safety_stock IS NOT NULL
		  AND COALESCE(b.quantity, 0) <= i.safety_stock
		ORDER BY shortage DESC, i.code
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var lr repository.LowStockRow
		if err := rows.Scan(
			&lr.ItemCode, &lr.ItemName, &lr.Category, &lr.Quantity,
			&lr.Unit, &lr.SafetyStock, &lr.Shortage,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// GetExpiringLots devuelve lotes con stock que caducan dentro de withinDays
// días, incluidos los ya vencidos (días negativos).
func (r *ReportRepo) GetExpiringLots(ctx context.Context, withinDays, limit int) ([]repository.ExpiringLotRow, error) {
	query := `
		SELECT l.lot_id, l.item_code, i.name, i.category, l.quantity, l.unit,
		       l.received_date, l.preparation_date, i.max_use_period,
		       COALESCE(l.preparation_date, l.received_date) + i.max_use_period AS expiry_date,
		       (COALESCE(l.preparation_date, l.received_date) + i.max_use_period) - CURRENT_DATE AS days_until_expiry
		FROM lots l
		JOIN items i ON i.code = l.item_code
		WHERE i.max_use_period IS NOT NULL
		  AND l.quantity > 0
		  AND COALESCE(l.preparation_date, l.received_date) + i.max_use_period <= CURRENT_DATE + $1
		ORDER BY expiry_date ASC, l.lot_id ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, withinDays, limit)
	if err != nil {
		return nil, fmt.Errorf("get expiring lots: %w", err)
	}
	defer rows.Close()

	var out []repository.ExpiringLotRow
	for rows.Next() {
		var er repository.ExpiringLotRow
		if err := rows.Scan(
			&er.LotID, &er.ItemCode, &er.ItemName, &er.Category,
			&er.Quantity, &er.Unit, &er.ReceivedDate, &er.PreparationDate,
			&er.MaxUsePeriod, &er.ExpiryDate, &er.DaysUntilExpiry,
		); err != nil {
			return nil, fmt.Errorf("scan expiring lot: %w", err)
		}
		out = append(out, er)
	}
	return out, rows.Err()
}

// GetSummary devuelve los totales globales del almacén.
func (r *ReportRepo) GetSummary(ctx context.Context) (*repository.StockSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM items WHERE is_active),
			(SELECT COUNT(*) FROM lots WHERE quantity > 0),
			(SELECT COALESCE(SUM(quantity), 0) FROM balance),
			(SELECT COUNT(*) FROM balance WHERE quantity > 0),
			(SELECT COUNT(*) FROM items i
			 WHERE i.is_active
			   AND NOT EXISTS (SELECT 1 FROM balance b WHERE b.item_code = i.code))`
	var s repository.StockSummary
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalItems, &s.TotalLots, &s.TotalQuantity, &s.ActiveItems, &s.EmptyItems,
	)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return &s, nil
}

// GetRecentTransactions devuelve los últimos movimientos IN y OUT mezclados.
// Las entradas usan el número de lote como referencia; las salidas, su id.
func (r *ReportRepo) GetRecentTransactions(ctx context.Context, limit int) ([]repository.TransactionRow, error) {
	query := `
		SELECT m.direction,
		       COALESCE(m.lot_id, m.id::text) AS transaction_no,
		       m.item_code, COALESCE(i.name, ''), m.quantity, m.unit,
		       m.movement_date, m.remark, m.created_at
		FROM movements m
		LEFT JOIN items i ON i.code = m.item_code
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent transactions: %w", err)
	}
	defer rows.Close()

	var out []repository.TransactionRow
	for rows.Next() {
		var tr repository.TransactionRow
		if err := rows.Scan(
			&tr.Direction, &tr.TransactionNo, &tr.ItemCode, &tr.ItemName,
			&tr.Quantity, &tr.Unit, &tr.TransactionDate, &tr.Remark, &tr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// GetItemHistory devuelve el stock y los totales de un artículo junto con su
// historial de movimientos. Devuelve nil, nil si el artículo no existe.
func (r *ReportRepo) GetItemHistory(ctx context.Context, itemCode string) (*repository.ItemHistory, error) {
	query := `
		SELECT i.code, i.name, i.category,
		       COALESCE(b.quantity, 0), COALESCE(b.unit, i.unit), i.safety_stock,
		       COALESCE(m.in_count, 0), COALESCE(m.in_qty, 0),
		       COALESCE(m.out_count, 0), COALESCE(m.out_qty, 0),
		       (i.safety_stock IS NOT NULL AND COALESCE(b.quantity, 0) <= i.safety_stock)
		FROM items i
		LEFT JOIN balance b ON b.item_code = i.code
		LEFT JOIN (
			SELECT item_code,
			       COUNT(*) FILTER (WHERE direction = 'IN') AS in_count,
			       COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'), 0) AS in_qty,
			       COUNT(*) FILTER (WHERE direction = 'OUT') AS out_count,
			       COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0) AS out_qty
			FROM movements
			WHERE item_code = $1
			GROUP BY item_code
		) m ON m.item_code = i.code
		WHERE i.code = $1`
	var h repository.ItemHistory
	err := r.q.QueryRow(ctx, query, itemCode).Scan(
		&h.ItemCode, &h.ItemName, &h.Category, &h.Quantity, &h.Unit,
		&h.SafetyStock, &h.InboundCount, &h.TotalInboundQty,
		&h.OutboundCount, &h.TotalOutboundQty, &h.IsLowStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item history: %w", err)
	}

	history, err := r.listItemMovements(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	h.History = history
	return &h, nil
}

// listItemMovements lista el historial de un artículo por coincidencia exacta
// de código, a diferencia del filtro LIKE del buscador.
func (r *ReportRepo) listItemMovements(ctx context.Context, itemCode string) ([]repository.MovementRow, error) {
	query := `
		SELECT m.id, COALESCE(m.lot_id, ''), m.item_code, COALESCE(i.name, ''),
		       m.direction, m.quantity, m.unit, m.movement_date,
		       l.received_date, l.preparation_date, i.max_use_period,
		       CASE WHEN i.max_use_period IS NOT NULL AND l.lot_id IS NOT NULL
		            THEN COALESCE(l.preparation_date, l.received_date) + i.max_use_period
		       END AS expiry_date,
		       m.remark, m.created_at
		FROM movements m
		LEFT JOIN lots l ON l.lot_id = m.lot_id
		LEFT JOIN items i ON i.code = m.item_code
		WHERE m.item_code = $1
		ORDER BY m.movement_date DESC, m.id DESC`
	rows, err := r.q.Query(ctx, query, itemCode)
	if err != nil {
		return nil, fmt.Errorf("list item movements: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementRow
	for rows.Next() {
		var mr repository.MovementRow
		if err := rows.Scan(
			&mr.ID, &mr.LotID, &mr.ItemCode, &mr.ItemName,
			&mr.Direction, &mr.Quantity, &mr.Unit, &mr.MovementDate,
			&mr.ReceivedDate, &mr.PreparationDate, &mr.MaxUsePeriod,
			&mr.ExpiryDate, &mr.Remark, &mr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		out = append(out, mr)
	}
	return out, rows.Err()
}
