// Package testutil provee dobles en memoria de los puertos de persistencia
// para probar los casos de uso sin base de datos. El runner de transacciones
// falso hace snapshot del estado y lo restaura si la función devuelve error,
// imitando el commit/rollback real.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Store agrupa el estado en memoria compartido por los repositorios falsos.
type Store struct {
	Lots      map[string]*entity.Lot
	Movements map[int64]*entity.Movement
	Balances  map[string]*entity.Balance
	nextMovID int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Lots:      map[string]*entity.Lot{},
		Movements: map[int64]*entity.Movement{},
		Balances:  map[string]*entity.Balance{},
	}
}

// SeedLot agrega un lote directamente al store (sin movimiento ni balance).
func (s *Store) SeedLot(lot entity.Lot) {
	s.Lots[lot.LotID] = &lot
}

// SeedBalance agrega una fila de balance directamente al store.
func (s *Store) SeedBalance(b entity.Balance) {
	s.Balances[b.ItemCode] = &b
}

// SeedMovement agrega un movimiento con ID asignado y lo devuelve.
func (s *Store) SeedMovement(m entity.Movement) *entity.Movement {
	s.nextMovID++
	m.ID = s.nextMovID
	s.Movements[m.ID] = &m
	return s.Movements[m.ID]
}

func (s *Store) snapshot() *Store {
	cp := NewStore()
	cp.nextMovID = s.nextMovID
	for k, v := range s.Lots {
		l := *v
		cp.Lots[k] = &l
	}
	for k, v := range s.Movements {
		m := *v
		cp.Movements[k] = &m
	}
	for k, v := range s.Balances {
		b := *v
		cp.Balances[k] = &b
	}
	return cp
}

func (s *Store) restore(snap *Store) {
	s.Lots = snap.Lots
	s.Movements = snap.Movements
	s.Balances = snap.Balances
	s.nextMovID = snap.nextMovID
}

// ──────────────────────────────────────────────────────────────────────────────
// LotRepo
// ──────────────────────────────────────────────────────────────────────────────

// LotRepo implementación en memoria de repository.LotRepository.
type LotRepo struct{ s *Store }

var _ repository.LotRepository = (*LotRepo)(nil)

// NewLotRepo crea el repositorio falso de lotes sobre el store.
func NewLotRepo(s *Store) *LotRepo { return &LotRepo{s: s} }

func (r *LotRepo) Create(lot *entity.Lot) error {
	if _, ok := r.s.Lots[lot.LotID]; ok {
		return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, lot.LotID)
	}
	cp := *lot
	r.s.Lots[lot.LotID] = &cp
	return nil
}

func (r *LotRepo) GetByID(lotID string) (*entity.Lot, error) {
	lot, ok := r.s.Lots[lotID]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *LotRepo) GetForUpdate(lotID string) (*entity.Lot, error) {
	return r.GetByID(lotID)
}

func (r *LotRepo) Update(lot *entity.Lot) error {
	if _, ok := r.s.Lots[lot.LotID]; !ok {
		return fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, lot.LotID)
	}
	cp := *lot
	r.s.Lots[lot.LotID] = &cp
	return nil
}

func (r *LotRepo) Delete(lotID string) error {
	if _, ok := r.s.Lots[lotID]; !ok {
		return fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, lotID)
	}
	delete(r.s.Lots, lotID)
	return nil
}

// LockSequence no hace nada: los tests ejecutan en serie.
func (r *LotRepo) LockSequence(prefix string) error { return nil }

func (r *LotRepo) LastIDWithPrefix(prefix string) (string, error) {
	last := ""
	for id := range r.s.Lots {
		if strings.HasPrefix(id, prefix) && id > last {
			last = id
		}
	}
	return last, nil
}

func (r *LotRepo) List(filter repository.LotFilter) ([]repository.LotRow, error) {
	var rows []repository.LotRow
	for _, lot := range r.s.Lots {
		if filter.StartDate != nil && lot.ReceivedDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && lot.ReceivedDate.After(*filter.EndDate) {
			continue
		}
		if filter.ItemCode != "" && !strings.Contains(lot.ItemCode, filter.ItemCode) {
			continue
		}
		rows = append(rows, lotRow(lot))
	}
	sortLotRowsDesc(rows)
	return rows, nil
}

func (r *LotRepo) ListByItem(itemCode string) ([]repository.LotRow, error) {
	var rows []repository.LotRow
	for _, lot := range r.s.Lots {
		if lot.ItemCode == itemCode {
			rows = append(rows, lotRow(lot))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LotID < rows[j].LotID })
	return rows, nil
}

func (r *LotRepo) ListByDate(date time.Time) ([]repository.LotRow, error) {
	var rows []repository.LotRow
	for _, lot := range r.s.Lots {
		if lot.ReceivedDate.Equal(date) {
			rows = append(rows, lotRow(lot))
		}
	}
	sortLotRowsDesc(rows)
	return rows, nil
}

func lotRow(lot *entity.Lot) repository.LotRow {
	return repository.LotRow{
		LotID:           lot.LotID,
		ItemCode:        lot.ItemCode,
		ReceivedDate:    lot.ReceivedDate,
		PreparationDate: lot.PreparationDate,
		Quantity:        lot.Quantity,
		Unit:            lot.Unit,
		Remark:          lot.Remark,
		CreatedAt:       lot.CreatedAt,
	}
}

func sortLotRowsDesc(rows []repository.LotRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].LotID > rows[j].LotID })
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementRepo
// ──────────────────────────────────────────────────────────────────────────────

// MovementRepo implementación en memoria de repository.MovementRepository.
type MovementRepo struct{ s *Store }

var _ repository.MovementRepository = (*MovementRepo)(nil)

// NewMovementRepo crea el repositorio falso de movimientos sobre el store.
func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.s.nextMovID++
	movement.ID = r.s.nextMovID
	cp := *movement
	r.s.Movements[movement.ID] = &cp
	return nil
}

func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	m, ok := r.s.Movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MovementRepo) Update(movement *entity.Movement) error {
	if _, ok := r.s.Movements[movement.ID]; !ok {
		return fmt.Errorf("%w: movimiento %d", domain.ErrMovementNotFound, movement.ID)
	}
	cp := *movement
	r.s.Movements[movement.ID] = &cp
	return nil
}

func (r *MovementRepo) Delete(id int64) error {
	if _, ok := r.s.Movements[id]; !ok {
		return fmt.Errorf("%w: movimiento %d", domain.ErrMovementNotFound, id)
	}
	delete(r.s.Movements, id)
	return nil
}

func (r *MovementRepo) List(filter repository.MovementFilter) ([]repository.MovementRow, error) {
	var rows []repository.MovementRow
	for _, m := range r.s.Movements {
		if filter.Direction != "" && m.Direction != filter.Direction {
			continue
		}
		if filter.LotID != "" && m.LotID != filter.LotID {
			continue
		}
		if filter.ItemCode != "" && !strings.Contains(m.ItemCode, filter.ItemCode) {
			continue
		}
		if filter.StartDate != nil && m.MovementDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && m.MovementDate.After(*filter.EndDate) {
			continue
		}
		rows = append(rows, repository.MovementRow{
			ID:           m.ID,
			LotID:        m.LotID,
			ItemCode:     m.ItemCode,
			Direction:    m.Direction,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
			MovementDate: m.MovementDate,
			Remark:       m.Remark,
			CreatedAt:    m.CreatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// BalanceRepo
// ──────────────────────────────────────────────────────────────────────────────

// BalanceRepo implementación en memoria de repository.BalanceRepository.
type BalanceRepo struct{ s *Store }

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// NewBalanceRepo crea el repositorio falso de balance sobre el store.
func NewBalanceRepo(s *Store) *BalanceRepo { return &BalanceRepo{s: s} }

func (r *BalanceRepo) Get(itemCode string) (*entity.Balance, error) {
	b, ok := r.s.Balances[itemCode]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BalanceRepo) GetForUpdate(itemCode string) (*entity.Balance, error) {
	return r.Get(itemCode)
}

func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	cp := *balance
	r.s.Balances[balance.ItemCode] = &cp
	return nil
}

// Delete es idempotente, igual que el repositorio real.
func (r *BalanceRepo) Delete(itemCode string) error {
	delete(r.s.Balances, itemCode)
	return nil
}

func (r *BalanceRepo) List() ([]*entity.Balance, error) {
	var out []*entity.Balance
	for _, b := range r.s.Balances {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemCode < out[j].ItemCode })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner ejecuta la función con repositorios sobre el store compartido.
// Si la función falla, el estado se restaura al snapshot previo (rollback).
type TxRunner struct{ s *Store }

// NewTxRunner crea el runner falso sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run imita la semántica transaccional: todo o nada sobre el store.
func (t *TxRunner) Run(ctx context.Context, fn func(lotRepo repository.LotRepository, movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error) error {
	snap := t.s.snapshot()
	if err := fn(NewLotRepo(t.s), NewMovementRepo(t.s), NewBalanceRepo(t.s)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// RecorderSpy
// ──────────────────────────────────────────────────────────────────────────────

// RecorderSpy captura los eventos de auditoría emitidos durante un test.
type RecorderSpy struct {
	Events []audit.Event
}

var _ audit.Recorder = (*RecorderSpy)(nil)

// Record acumula el evento.
func (r *RecorderSpy) Record(event audit.Event) {
	r.Events = append(r.Events, event)
}
