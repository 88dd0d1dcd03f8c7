package stock_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/stock"
)

var testDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Tests NextLotID
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: primer lote del día → secuencia 001.
func TestNextLotID_PrimerLoteDelDia(t *testing.T) {
	id, err := stock.NextLotID(testDate, "")
	require.NoError(t, err)
	assert.Equal(t, "20250110001", id, "el primer lote del día debe llevar secuencia 001")
}

// Caso 2: la secuencia incrementa en 1 sobre el último asignado.
func TestNextLotID_IncrementaSecuencia(t *testing.T) {
	id, err := stock.NextLotID(testDate, "20250110001")
	require.NoError(t, err)
	assert.Equal(t, "20250110002", id)

	id, err = stock.NextLotID(testDate, "20250110041")
	require.NoError(t, err)
	assert.Equal(t, "20250110042", id)
}

// Caso 3: la secuencia conserva el relleno con ceros en todo el rango.
func TestNextLotID_RellenoConCeros(t *testing.T) {
	id, err := stock.NextLotID(testDate, "20250110009")
	require.NoError(t, err)
	assert.Equal(t, "20250110010", id)

	id, err = stock.NextLotID(testDate, "20250110099")
	require.NoError(t, err)
	assert.Equal(t, "20250110100", id)
}

// Caso 4: el día admite hasta 999 lotes; el 1000 agota la capacidad.
func TestNextLotID_CapacidadDiaria(t *testing.T) {
	id, err := stock.NextLotID(testDate, "20250110998")
	require.NoError(t, err)
	assert.Equal(t, "20250110999", id, "la secuencia 999 todavía es válida")

	_, err = stock.NextLotID(testDate, "20250110999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded),
		"superar 999 lotes en un día debe devolver ErrCapacityExceeded")
}

// Caso 5: un último lote de otra fecha o malformado es entrada inválida.
func TestNextLotID_UltimoLoteInconsistente(t *testing.T) {
	casos := []string{
		"20250109003", // prefijo de otra fecha
		"2025011000",  // longitud incorrecta
		"20250110abc", // secuencia no numérica
	}
	for _, lastID := range casos {
		_, err := stock.NextLotID(testDate, lastID)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput),
			fmt.Sprintf("lastID %q debe producir ErrInvalidInput", lastID))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ValidLotID / DatePrefix
// ──────────────────────────────────────────────────────────────────────────────

func TestValidLotID(t *testing.T) {
	assert.True(t, stock.ValidLotID("20250110001"))
	assert.True(t, stock.ValidLotID("20241231999"))

	assert.False(t, stock.ValidLotID(""), "vacío no es un número de lote")
	assert.False(t, stock.ValidLotID("20250110"), "faltan los 3 dígitos de secuencia")
	assert.False(t, stock.ValidLotID("2025011000a"), "solo se admiten dígitos")
	assert.False(t, stock.ValidLotID("20251341001"), "el prefijo debe ser una fecha real")
}

func TestDatePrefix(t *testing.T) {
	assert.Equal(t, "20250110", stock.DatePrefix(testDate))
	assert.Equal(t, "20241231", stock.DatePrefix(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
}
