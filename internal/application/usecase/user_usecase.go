package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/auth"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// UserUseCase administración de usuarios. Reservado a admin_global en el router.
type UserUseCase struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	audit     SecurityLogger
}

func NewUserUseCase(userRepo repository.UserRepository, storeRepo repository.StoreRepository, audit SecurityLogger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, storeRepo: storeRepo, audit: audit}
}

// Create da de alta un usuario con su rol y tiendas asignadas.
func (uc *UserUseCase) Create(ctx context.Context, actor Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if err := auth.ValidatePasswordComplexity(in.Password); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if err := uc.validateStoreIDs(in.StoreIDs); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:                uuid.New().String(),
		Username:          in.Username,
		PasswordHash:      string(hash),
		Role:              role,
		PasswordChangedAt: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if len(in.StoreIDs) > 0 {
		if err := uc.userRepo.ReplaceStores(user.ID, in.StoreIDs); err != nil {
			return nil, err
		}
	}
	uc.audit.LogEvent(ctx, entity.EventUserCreated,
		fmt.Sprintf("usuario creado: %s - rol %s", user.Username, user.Role), actor.UserID)
	return toUserResponse(user), nil
}

// Get devuelve un usuario por id.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// List lista los usuarios.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	users := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		users = append(users, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: users,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza rol, contraseña o tiendas asignadas de un usuario.
// Un cambio de contraseña por esta vía reinicia su vencimiento.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var changes []string
	if in.Role != nil && *in.Role != user.Role {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		changes = append(changes, fmt.Sprintf("rol: %s -> %s", user.Role, role))
		user.Role = role
	}
	if in.Password != nil {
		if err := auth.ValidatePasswordComplexity(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash de contraseña: %w", err)
		}
		user.PasswordHash = string(hash)
		user.PasswordChangedAt = time.Now()
		changes = append(changes, "contraseña restablecida")
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	if in.StoreIDs != nil {
		if err := uc.validateStoreIDs(*in.StoreIDs); err != nil {
			return nil, err
		}
		if err := uc.userRepo.ReplaceStores(user.ID, *in.StoreIDs); err != nil {
			return nil, err
		}
		changes = append(changes, "tiendas reasignadas")
	}
	if len(changes) > 0 {
		uc.audit.LogEvent(ctx, entity.EventUserUpdated,
			fmt.Sprintf("usuario actualizado: %s - %s", user.Username, strings.Join(changes, ", ")), actor.UserID)
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if id == actor.UserID {
		return domain.ErrConflict
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.audit.LogEvent(ctx, entity.EventUserDeleted,
		fmt.Sprintf("usuario eliminado: %s", user.Username), actor.UserID)
	return nil
}

// ListStores devuelve las tiendas asignadas a un usuario.
func (uc *UserUseCase) ListStores(ctx context.Context, id string) ([]dto.StoreResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	stores, err := uc.userRepo.ListStores(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

func (uc *UserUseCase) validateStoreIDs(storeIDs []string) error {
	for _, storeID := range storeIDs {
		store, err := uc.storeRepo.GetByID(storeID)
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("tienda %s: %w", storeID, domain.ErrNotFound)
		}
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
