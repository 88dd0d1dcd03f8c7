package batch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/batch"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests BestEffort
// ──────────────────────────────────────────────────────────────────────────────

// Una fila fallida no frena el lote: siempre hay n resultados y las filas
// posteriores al error se aplican.
func TestBestEffort_ContinuaTrasError(t *testing.T) {
	applied := []int{}
	results := batch.BestEffort(4, func(i int) (any, error) {
		if i == 1 {
			return nil, errors.New("fila corrupta")
		}
		applied = append(applied, i)
		return i * 10, nil
	})

	require.Len(t, results, 4, "mejor esfuerzo siempre devuelve un resultado por fila")
	assert.Equal(t, []int{0, 2, 3}, applied, "las filas posteriores al error deben aplicarse")

	assert.True(t, results[0].Success)
	assert.Equal(t, 0, results[0].Data)

	assert.False(t, results[1].Success)
	assert.Equal(t, "fila corrupta", results[1].Message)

	assert.True(t, results[2].Success)
	assert.True(t, results[3].Success)
}

func TestBestEffort_LoteVacio(t *testing.T) {
	results := batch.BestEffort(0, func(i int) (any, error) {
		t.Fatal("no debe invocarse con lote vacío")
		return nil, nil
	})
	assert.Empty(t, results)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Atomic
// ──────────────────────────────────────────────────────────────────────────────

// El primer error corta la ejecución: las filas siguientes no se tocan y el
// caller no recibe resultados parciales.
func TestAtomic_CortaEnPrimerError(t *testing.T) {
	wantErr := errors.New("stock insuficiente")
	applied := []int{}

	results, err := batch.Atomic(4, func(i int) (any, error) {
		if i == 2 {
			return nil, wantErr
		}
		applied = append(applied, i)
		return i, nil
	})

	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, results, "un lote atómico fallido no devuelve resultados parciales")
	assert.Equal(t, []int{0, 1}, applied, "las filas posteriores al error no deben ejecutarse")
}

func TestAtomic_TodasExitosas(t *testing.T) {
	results, err := batch.Atomic(3, func(i int) (any, error) {
		return i + 100, nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.True(t, r.Success)
		assert.Equal(t, i+100, r.Data)
	}
}
