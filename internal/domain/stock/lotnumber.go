// Package stock contiene la lógica de dominio pura del almacén: numeración
// de lotes y cálculo de caducidad.
package stock

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain"
)

// Longitud total de un número de lote: yyyyMMdd (8) + secuencia (3).
const LotIDLength = 11

// MaxDailySequence es el tope de lotes por fecha; superarlo agota la capacidad del día.
const MaxDailySequence = 999

// DatePrefix devuelve el prefijo yyyyMMdd del número de lote para una fecha.
func DatePrefix(date time.Time) string {
	return date.Format("20060102")
}

// NextLotID calcula el siguiente número de lote para una fecha dada el último
// asignado ese día (lastID vacío si no hay ninguno). La secuencia es 1-based,
// estrictamente creciente y sin huecos bajo creación secuencial.
// Devuelve domain.ErrCapacityExceeded si la secuencia superaría 999.
func NextLotID(date time.Time, lastID string) (string, error) {
	prefix := DatePrefix(date)

	seq := 1
	if lastID != "" {
		if len(lastID) != LotIDLength || lastID[:8] != prefix {
			return "", fmt.Errorf("%w: número de lote previo %q no corresponde a %s", domain.ErrInvalidInput, lastID, prefix)
		}
		last, err := strconv.Atoi(lastID[8:])
		if err != nil {
			return "", fmt.Errorf("%w: secuencia ilegible en %q", domain.ErrInvalidInput, lastID)
		}
		seq = last + 1
	}
	if seq > MaxDailySequence {
		return "", fmt.Errorf("%w: fecha %s", domain.ErrCapacityExceeded, prefix)
	}
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

// ValidLotID verifica el formato yyyyMMdd + 3 dígitos.
func ValidLotID(lotID string) bool {
	if len(lotID) != LotIDLength {
		return false
	}
	for _, r := range lotID {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, err := time.Parse("20060102", lotID[:8])
	return err == nil
}
