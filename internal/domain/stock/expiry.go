package stock

import "time"

// ExpiryDate calcula la fecha de caducidad de un lote: fecha de preparación
// más el período máximo de uso del artículo; si el lote no tiene fecha de
// preparación se usa la fecha de recepción. Sin período máximo no hay caducidad.
func ExpiryDate(preparationDate *time.Time, receivedDate time.Time, maxUsePeriod *int) *time.Time {
	if maxUsePeriod == nil {
		return nil
	}
	base := receivedDate
	if preparationDate != nil {
		base = *preparationDate
	}
	exp := base.AddDate(0, 0, *maxUsePeriod)
	return &exp
}

// Normalize trunca una fecha a medianoche en su zona horaria (las fechas de
// recepción y preparación se almacenan sin componente horario).
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
