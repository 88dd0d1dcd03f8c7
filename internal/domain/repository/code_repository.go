package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// CodeGroupRepository define el puerto de persistencia para grupos de códigos
// comunes.
type CodeGroupRepository interface {
	Create(group *entity.CodeGroup) error
	// GetByCode devuelve nil, nil si el grupo no existe.
	GetByCode(grpCode string) (*entity.CodeGroup, error)
	Update(group *entity.CodeGroup) error
	Delete(grpCode string) error
	List() ([]*entity.CodeGroup, error)
}

// CodeDetailRepository define el puerto de persistencia para los códigos de
// cada grupo (clave compuesta grp_code + code).
type CodeDetailRepository interface {
	Create(detail *entity.CodeDetail) error
	// Get devuelve nil, nil si el código no existe.
	Get(grpCode, code string) (*entity.CodeDetail, error)
	Update(detail *entity.CodeDetail) error
	Delete(grpCode, code string) error
	List() ([]*entity.CodeDetail, error)
	ListByGroup(grpCode string) ([]*entity.CodeDetail, error)
}
