package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// MenuRepository define el puerto de persistencia para el menú jerárquico.
type MenuRepository interface {
	Create(menu *entity.Menu) error
	// GetByID devuelve nil, nil si el menú no existe.
	GetByID(id string) (*entity.Menu, error)
	Update(menu *entity.Menu) error
	Delete(id string) error
	// List devuelve todos los menús ordenados por Order ascendente.
	List() ([]*entity.Menu, error)
}
