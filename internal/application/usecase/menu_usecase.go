package usecase

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// MenuUseCase mantiene el menú jerárquico y construye el árbol visible por
// rol. Un menú sin roles es visible para todos.
type MenuUseCase struct {
	menuRepo repository.MenuRepository
	recorder audit.Recorder
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(menuRepo repository.MenuRepository, recorder audit.Recorder) *MenuUseCase {
	return &MenuUseCase{menuRepo: menuRepo, recorder: recorder}
}

// Create da de alta un menú. Si trae ParentID, el padre debe existir.
func (uc *MenuUseCase) Create(in dto.CreateMenuRequest, actor audit.Actor) (*entity.Menu, error) {
	if in.Name == "" || in.Path == "" {
		return nil, fmt.Errorf("%w: name y path son obligatorios", domain.ErrInvalidInput)
	}
	if in.ParentID != "" {
		parent, err := uc.menuRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: menú padre %s", domain.ErrNotFound, in.ParentID)
		}
	}
	now := time.Now()
	menu := &entity.Menu{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Path:      in.Path,
		Icon:      in.Icon,
		ParentID:  in.ParentID,
		Order:     in.Order,
		IsActive:  true,
		Roles:     in.Roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsActive != nil {
		menu.IsActive = *in.IsActive
	}
	if err := uc.menuRepo.Create(menu); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "menus",
		RecordID:    menu.ID,
		Operation:   entity.OpInsert,
		NewValue:    menu,
		Description: "alta de menú",
	})
	return menu, nil
}

// Update aplica una actualización parcial sobre un menú.
func (uc *MenuUseCase) Update(id string, in dto.UpdateMenuRequest, actor audit.Actor) (*entity.Menu, error) {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, fmt.Errorf("%w: menú %s", domain.ErrNotFound, id)
	}
	old := *menu

	if in.Name != nil {
		menu.Name = *in.Name
	}
	if in.Path != nil {
		menu.Path = *in.Path
	}
	if in.Icon != nil {
		menu.Icon = *in.Icon
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, fmt.Errorf("%w: un menú no puede ser su propio padre", domain.ErrInvalidInput)
		}
		if *in.ParentID != "" {
			parent, err := uc.menuRepo.GetByID(*in.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, fmt.Errorf("%w: menú padre %s", domain.ErrNotFound, *in.ParentID)
			}
		}
		menu.ParentID = *in.ParentID
	}
	if in.Order != nil {
		menu.Order = *in.Order
	}
	if in.IsActive != nil {
		menu.IsActive = *in.IsActive
	}
	if in.Roles != nil {
		menu.Roles = in.Roles
	}
	menu.UpdatedAt = time.Now()

	if err := uc.menuRepo.Update(menu); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "menus",
		RecordID:    menu.ID,
		Operation:   entity.OpUpdate,
		OldValue:    &old,
		NewValue:    menu,
		Description: "modificación de menú",
	})
	return menu, nil
}

// Delete elimina un menú. Los hijos quedan como raíces huérfanas activas.
func (uc *MenuUseCase) Delete(id string, actor audit.Actor) error {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if menu == nil {
		return fmt.Errorf("%w: menú %s", domain.ErrNotFound, id)
	}
	if err := uc.menuRepo.Delete(id); err != nil {
		return err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "menus",
		RecordID:    id,
		Operation:   entity.OpDelete,
		OldValue:    menu,
		Description: "baja de menú",
	})
	return nil
}

// List devuelve todos los menús planos ordenados por Order.
func (uc *MenuUseCase) List() ([]*entity.Menu, error) {
	return uc.menuRepo.List()
}

// GetTree construye el árbol de menús activos visibles para el rol dado.
// Los hijos cuyo padre no es visible se descartan con el padre.
func (uc *MenuUseCase) GetTree(role string) ([]dto.MenuNode, error) {
	menus, err := uc.menuRepo.List()
	if err != nil {
		return nil, err
	}

	visible := make([]*entity.Menu, 0, len(menus))
	for _, m := range menus {
		if !m.IsActive {
			continue
		}
		if len(m.Roles) > 0 && !slices.Contains(m.Roles, role) {
			continue
		}
		visible = append(visible, m)
	}

	return BuildMenuTree(visible), nil
}

// BuildMenuTree arma el árbol a partir de la lista plana ya ordenada por
// Order. El orden relativo entre hermanos se conserva.
func BuildMenuTree(menus []*entity.Menu) []dto.MenuNode {
	byParent := make(map[string][]*entity.Menu)
	ids := make(map[string]bool, len(menus))
	for _, m := range menus {
		ids[m.ID] = true
	}
	for _, m := range menus {
		parent := m.ParentID
		// Un padre fuera de la lista degrada el nodo a raíz.
		if parent != "" && !ids[parent] {
			parent = ""
		}
		byParent[parent] = append(byParent[parent], m)
	}

	var build func(parentID string) []dto.MenuNode
	build = func(parentID string) []dto.MenuNode {
		children := byParent[parentID]
		nodes := make([]dto.MenuNode, 0, len(children))
		for _, m := range children {
			nodes = append(nodes, dto.MenuNode{
				ID:       m.ID,
				Name:     m.Name,
				Path:     m.Path,
				Icon:     m.Icon,
				ParentID: m.ParentID,
				Order:    m.Order,
				IsActive: m.IsActive,
				Roles:    m.Roles,
				Children: build(m.ID),
			})
		}
		return nodes
	}
	return build("")
}
