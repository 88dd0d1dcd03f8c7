package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	// GetByID devuelve nil, nil si el usuario no existe.
	GetByID(id string) (*entity.User, error)
	// GetByUsername devuelve nil, nil si el usuario no existe.
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	ListByStatus(status string) ([]*entity.User, error)
}
