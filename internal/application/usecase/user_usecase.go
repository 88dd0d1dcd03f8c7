package usecase

import (
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// UserUseCase administración de usuarios: listado y aprobación o rechazo de
// registros pendientes. Solo lo invocan handlers protegidos por rol admin.
type UserUseCase struct {
	userRepo repository.UserRepository
	recorder audit.Recorder
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, recorder audit.Recorder) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, recorder: recorder}
}

// List devuelve todos los usuarios, opcionalmente filtrados por estado.
func (uc *UserUseCase) List(status string) ([]dto.UserResponse, error) {
	var (
		users []*entity.User
		err   error
	)
	if status != "" {
		users, err = uc.userRepo.ListByStatus(status)
	} else {
		users, err = uc.userRepo.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// ListPending devuelve los registros a la espera de aprobación.
func (uc *UserUseCase) ListPending() ([]dto.UserResponse, error) {
	return uc.List(entity.StatusPending)
}

// Approve resuelve un registro pendiente dejándolo en active o rejected.
func (uc *UserUseCase) Approve(in dto.ApproveUserRequest, actor audit.Actor) (*dto.UserResponse, error) {
	if in.Status != entity.StatusActive && in.Status != entity.StatusRejected {
		return nil, fmt.Errorf("%w: status %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrUserNotFound, in.UserID)
	}
	if user.Status != entity.StatusPending {
		return nil, fmt.Errorf("%w: el usuario ya fue resuelto (%s)", domain.ErrInvalidInput, user.Status)
	}

	old := *user
	now := time.Now()
	user.Status = in.Status
	user.ApprovedBy = actor.UserID
	user.ApprovedAt = &now
	user.UpdatedAt = now

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "users",
		RecordID:    user.ID,
		Operation:   entity.OpUpdate,
		OldValue:    auth.ToUserResponse(&old),
		NewValue:    auth.ToUserResponse(user),
		Description: "resolución de registro de usuario",
	})
	return auth.ToUserResponse(user), nil
}
