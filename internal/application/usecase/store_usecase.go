package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// StoreUseCase casos de uso de tiendas. Reservado a admin_global en el router.
type StoreUseCase struct {
	storeRepo repository.StoreRepository
	audit     SecurityLogger
}

func NewStoreUseCase(storeRepo repository.StoreRepository, audit SecurityLogger) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo, audit: audit}
}

// Create da de alta una tienda. El nombre es único.
func (uc *StoreUseCase) Create(ctx context.Context, actor Actor, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.storeRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.storeRepo.Create(store); err != nil {
		return nil, err
	}
	uc.audit.LogEvent(ctx, entity.EventStoreCreated,
		fmt.Sprintf("tienda creada: %s", store.Name), actor.UserID)
	return toStoreResponse(store), nil
}

// Get devuelve una tienda por id.
func (uc *StoreUseCase) Get(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// List lista las tiendas.
func (uc *StoreUseCase) List(ctx context.Context, limit, offset int) (*dto.StoreListResponse, error) {
	list, err := uc.storeRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	stores := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		stores = append(stores, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: stores,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza nombre y ubicación. El cambio de nombre respeta la unicidad.
func (uc *StoreUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != store.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.storeRepo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != store.ID {
			return nil, domain.ErrDuplicate
		}
		store.Name = *in.Name
	}
	if in.Location != nil {
		store.Location = *in.Location
	}
	store.UpdatedAt = time.Now()
	if err := uc.storeRepo.Update(store); err != nil {
		return nil, err
	}
	uc.audit.LogEvent(ctx, entity.EventStoreUpdated,
		fmt.Sprintf("tienda actualizada: %s", store.Name), actor.UserID)
	return toStoreResponse(store), nil
}

// Delete elimina una tienda. Una tienda con inventario no se puede eliminar.
func (uc *StoreUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	hasInventory, err := uc.storeRepo.HasInventory(id)
	if err != nil {
		return err
	}
	if hasInventory {
		return domain.ErrStoreNotEmpty
	}
	if err := uc.storeRepo.Delete(id); err != nil {
		return err
	}
	uc.audit.LogEvent(ctx, entity.EventStoreDeleted,
		fmt.Sprintf("tienda eliminada: %s", store.Name), actor.UserID)
	return nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
