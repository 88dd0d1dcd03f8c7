package dto

// CreateMenuRequest body para POST /api/menus.
type CreateMenuRequest struct {
	Name     string   `json:"name" validate:"required"`
	Path     string   `json:"path" validate:"required"`
	Icon     string   `json:"icon,omitempty"`
	ParentID string   `json:"parent_id,omitempty" validate:"omitempty,uuid4"`
	Order    int      `json:"order"`
	IsActive *bool    `json:"is_active,omitempty"`
	Roles    []string `json:"roles,omitempty" validate:"dive,oneof=admin user"`
}

// UpdateMenuRequest body para PUT /api/menus/:id (parcial).
type UpdateMenuRequest struct {
	Name     *string  `json:"name,omitempty"`
	Path     *string  `json:"path,omitempty"`
	Icon     *string  `json:"icon,omitempty"`
	ParentID *string  `json:"parent_id,omitempty"`
	Order    *int     `json:"order,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
	Roles    []string `json:"roles,omitempty" validate:"dive,oneof=admin user"`
}

// MenuNode nodo del árbol de menús devuelto por /api/menus/tree.
type MenuNode struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Icon     string     `json:"icon,omitempty"`
	ParentID string     `json:"parent_id,omitempty"`
	Order    int        `json:"order"`
	IsActive bool       `json:"is_active"`
	Roles    []string   `json:"roles,omitempty"`
	Children []MenuNode `json:"children"`
}
