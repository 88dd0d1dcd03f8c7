package entity

import "time"

// Menu representa un nodo del menú jerárquico de la aplicación.
// ParentID vacío marca un menú raíz; Roles vacío significa visible para todos.
type Menu struct {
	ID        string
	Name      string
	Path      string
	Icon      string
	ParentID  string
	Order     int
	IsActive  bool
	Roles     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
