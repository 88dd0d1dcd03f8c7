// Package batch define las dos estrategias de ejecución de lotes de filas:
// mejor esfuerzo (cada fila commitea o falla por separado) y atómica (todas
// las filas o ninguna). La estrategia se elige por punto de llamada, no por
// tipo de entidad.
package batch

import "github.com/tu-usuario/almacen-api/internal/application/dto"

// RowFunc aplica la fila i y devuelve el dato resultante.
type RowFunc func(i int) (any, error)

// BestEffort aplica cada fila de forma independiente: un error se convierte en
// un resultado {success:false, message} y el procesamiento continúa con la
// siguiente fila. Siempre devuelve n resultados.
func BestEffort(n int, apply RowFunc) []dto.RowResult {
	results := make([]dto.RowResult, 0, n)
	for i := 0; i < n; i++ {
		data, err := apply(i)
		if err != nil {
			results = append(results, dto.RowResult{Success: false, Message: err.Error()})
			continue
		}
		results = append(results, dto.RowResult{Success: true, Data: data})
	}
	return results
}

// Atomic aplica las filas en orden y se detiene en el primer error,
// devolviéndolo al caller para que revierta la transacción completa.
// Solo devuelve resultados si todas las filas tuvieron éxito.
func Atomic(n int, apply RowFunc) ([]dto.RowResult, error) {
	results := make([]dto.RowResult, 0, n)
	for i := 0; i < n; i++ {
		data, err := apply(i)
		if err != nil {
			return nil, err
		}
		results = append(results, dto.RowResult{Success: true, Data: data})
	}
	return results, nil
}
