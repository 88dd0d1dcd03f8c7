package entity

import "time"

// CodeGroup agrupa códigos comunes de la aplicación (unidades, categorías,
// motivos). El grupo es el espacio de nombres de sus detalles.
type CodeGroup struct {
	GrpCode     string
	Name        string
	Description string
	Order       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CodeDetail es un código común dentro de un grupo. La clave es compuesta
// (grp_code, code); Value lleva el valor asociado cuando el código lo tiene.
type CodeDetail struct {
	GrpCode     string
	Code        string
	Name        string
	Value       string
	Description string
	Order       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
