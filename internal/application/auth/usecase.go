// Package auth implementa registro y login. Los usuarios nuevos quedan en
// estado pending y no pueden iniciar sesión hasta que un administrador los
// apruebe.
package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	recorder audit.Recorder
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, recorder audit.Recorder) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, recorder: recorder}
}

// Register crea un usuario en estado pending: hashea el password con bcrypt
// y persiste. Devuelve ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s", domain.ErrDuplicate, in.Username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Email:        in.Email,
		Role:         entity.RoleUser,
		Status:       entity.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       audit.Actor{UserID: user.ID, Username: user.Username},
		TableName:   "users",
		RecordID:    user.ID,
		Operation:   entity.OpInsert,
		NewValue:    ToUserResponse(user),
		Description: "registro de usuario",
	})
	return ToUserResponse(user), nil
}

// Login verifica username/password, exige estado active y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.StatusActive {
		return nil, fmt.Errorf("%w: usuario no aprobado", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse proyecta el usuario sin campos sensibles.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		ApprovedBy: u.ApprovedBy,
		ApprovedAt: u.ApprovedAt,
		CreatedAt:  u.CreatedAt,
	}
}
