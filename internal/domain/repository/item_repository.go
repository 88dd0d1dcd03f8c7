package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el maestro de artículos.
type ItemRepository interface {
	Create(item *entity.Item) error
	// GetByCode devuelve nil, nil si el artículo no existe.
	GetByCode(code string) (*entity.Item, error)
	Update(item *entity.Item) error
	Delete(code string) error
	List() ([]*entity.Item, error)
	ListByCategory(category string) ([]*entity.Item, error)
}
