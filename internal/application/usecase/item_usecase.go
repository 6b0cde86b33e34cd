package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// Actor identidad del usuario que ejecuta la operación (del token JWT).
type Actor struct {
	UserID string
	Role   string
}

// ItemUseCase casos de uso de artículos de inventario: CRUD, ajuste de stock
// y traslados entre tiendas. Toda mutación de cantidad delega en el
// registrador del libro mayor; este caso de uso nunca escribe quantity.
type ItemUseCase struct {
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
	access    *ledger.StoreAccessChecker
	txRepo    repository.TransactionRepository
	txRunner  ledger.TxRunner
	recorder  *ledger.Recorder
	audit     SecurityLogger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	access *ledger.StoreAccessChecker,
	txRepo repository.TransactionRepository,
	txRunner ledger.TxRunner,
	recorder *ledger.Recorder,
	audit SecurityLogger,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:  itemRepo,
		storeRepo: storeRepo,
		access:    access,
		txRepo:    txRepo,
		txRunner:  txRunner,
		recorder:  recorder,
		audit:     audit,
	}
}

// CheckStoreAccess verifica que el actor pueda operar sobre la tienda.
// partner_admin y admin_global acceden a cualquier tienda; el rol user solo a
// sus tiendas asignadas.
func (uc *ItemUseCase) CheckStoreAccess(ctx context.Context, actor Actor, storeID string) error {
	return uc.access.Check(ctx, actor.UserID, actor.Role, storeID)
}

// visibleCategory devuelve el filtro de categoría efectivo para el rol:
// user y partner_admin solo ven accesorios.
func visibleCategory(role, requested string) string {
	if role == entity.RoleAdminGlobal {
		return requested
	}
	return entity.CategoryAccessories
}

// List lista los artículos de una tienda visibles para el actor.
func (uc *ItemUseCase) List(ctx context.Context, actor Actor, storeID, category string, limit, offset int) (*dto.ItemListResponse, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.CheckStoreAccess(ctx, actor, storeID); err != nil {
		return nil, err
	}
	if category != "" {
		if _, ok := entity.ParseCategory(category); !ok {
			return nil, domain.ErrInvalidInput
		}
	}
	list, err := uc.itemRepo.ListByStore(storeID, visibleCategory(actor.Role, category), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Get devuelve un artículo con su historial de transacciones.
func (uc *ItemUseCase) Get(ctx context.Context, actor Actor, itemID string, limit, offset int) (*dto.ItemDetailResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdminGlobal && item.Category != entity.CategoryAccessories {
		return nil, domain.ErrForbidden
	}
	if err := uc.CheckStoreAccess(ctx, actor, item.StoreID); err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	history := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		history = append(history, *toTransactionResponse(tx))
	}
	return &dto.ItemDetailResponse{Item: *toItemResponse(item), Transactions: history}, nil
}

const initialStockNotes = "registro inicial de inventario"

// Create da de alta un artículo. Una cantidad inicial positiva genera la
// entrada add del libro mayor dentro de la misma transacción de BD que el
// insert del artículo. partner_admin solo puede crear accesorios.
func (uc *ItemUseCase) Create(ctx context.Context, actor Actor, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.PartNumber == "" || in.Name == "" || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if actor.Role == entity.RolePartnerAdmin && category != entity.CategoryAccessories {
		return nil, domain.ErrForbidden
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		PartNumber:  in.PartNumber,
		Name:        in.Name,
		Description: in.Description,
		Category:    category,
		Quantity:    0, // la cantidad inicial entra por el libro mayor
		StoreID:     in.StoreID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = ledger.RunWithTicketRetry(ctx, uc.txRunner, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if in.Quantity > 0 {
			_, err := uc.recorder.RecordInTx(txRepo, itemRepo, ledger.RecordInput{
				ItemID:  item.ID,
				UserID:  actor.UserID,
				StoreID: item.StoreID,
				Type:    entity.TransactionAdd,
				Delta:   in.Quantity,
				Notes:   initialStockNotes,
			}, now)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	item.Quantity = in.Quantity

	uc.audit.LogEvent(ctx, entity.EventItemCreated,
		fmt.Sprintf("artículo creado: %s - %s - categoría %s - cantidad %d",
			item.PartNumber, item.Name, item.Category, item.Quantity),
		actor.UserID)
	return toItemResponse(item), nil
}

// Update actualiza los atributos de un artículo. Un cambio de tienda se
// registra como par transfer_out/transfer_in (delta neto cero) y el artículo
// se muda a la tienda destino. La cantidad no es editable por esta vía.
func (uc *ItemUseCase) Update(ctx context.Context, actor Actor, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RolePartnerAdmin && item.Category != entity.CategoryAccessories {
		return nil, domain.ErrForbidden
	}

	var changes []string
	if in.PartNumber != nil && *in.PartNumber != item.PartNumber {
		changes = append(changes, fmt.Sprintf("número de parte: %s -> %s", item.PartNumber, *in.PartNumber))
		item.PartNumber = *in.PartNumber
	}
	if in.Name != nil && *in.Name != item.Name {
		changes = append(changes, fmt.Sprintf("nombre: %s -> %s", item.Name, *in.Name))
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil && *in.Category != item.Category {
		category, ok := entity.ParseCategory(*in.Category)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		if actor.Role == entity.RolePartnerAdmin && category != entity.CategoryAccessories {
			return nil, domain.ErrForbidden
		}
		changes = append(changes, fmt.Sprintf("categoría: %s -> %s", item.Category, category))
		item.Category = category
	}

	oldStoreID := item.StoreID
	storeChanged := in.StoreID != nil && *in.StoreID != oldStoreID
	if storeChanged {
		dest, err := uc.storeRepo.GetByID(*in.StoreID)
		if err != nil {
			return nil, err
		}
		if dest == nil {
			return nil, domain.ErrNotFound
		}
		changes = append(changes, fmt.Sprintf("tienda: %s -> %s", oldStoreID, dest.ID))
	}

	now := time.Now()
	item.UpdatedAt = now
	err = ledger.RunWithTicketRetry(ctx, uc.txRunner, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error {
		// El par de traslado solo se registra si hay inventario que mover.
		if storeChanged && item.Quantity > 0 {
			if _, err := uc.recorder.RecordInTx(txRepo, itemRepo, ledger.RecordInput{
				ItemID:  item.ID,
				UserID:  actor.UserID,
				StoreID: oldStoreID,
				Type:    entity.TransactionTransferOut,
				Delta:   -item.Quantity,
				Notes:   fmt.Sprintf("traslado a tienda %s (edición de artículo)", *in.StoreID),
			}, now); err != nil {
				return err
			}
			if _, err := uc.recorder.RecordInTx(txRepo, itemRepo, ledger.RecordInput{
				ItemID:  item.ID,
				UserID:  actor.UserID,
				StoreID: *in.StoreID,
				Type:    entity.TransactionTransferIn,
				Delta:   item.Quantity,
				Notes:   fmt.Sprintf("traslado desde tienda %s (edición de artículo)", oldStoreID),
			}, now); err != nil {
				return err
			}
		}
		if storeChanged {
			item.StoreID = *in.StoreID
		}
		return itemRepo.Update(item)
	})
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		uc.audit.LogEvent(ctx, entity.EventItemUpdated,
			fmt.Sprintf("artículo actualizado: %s - cambios: %s", item.PartNumber, strings.Join(changes, ", ")),
			actor.UserID)
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo y, en cascada y dentro de la misma transacción,
// sus entradas del libro mayor. Reservado a admin_global en el router.
func (uc *ItemUseCase) Delete(ctx context.Context, actor Actor, itemID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := txRepo.DeleteByItem(itemID); err != nil {
			return err
		}
		return itemRepo.Delete(itemID)
	})
	if err != nil {
		return err
	}
	uc.audit.LogEvent(ctx, entity.EventItemDeleted,
		fmt.Sprintf("artículo eliminado: %s - %s", item.PartNumber, item.Name),
		actor.UserID)
	return nil
}

// Adjust ajusta el stock de un artículo. Modos: add (suma), remove (resta) y
// set (fija la cantidad exacta calculando el delta necesario). Un resultado
// negativo solo lo puede forzar admin_global.
func (uc *ItemUseCase) Adjust(ctx context.Context, actor Actor, itemID string, in dto.AdjustStockRequest) (*dto.TransactionResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RolePartnerAdmin && item.Category != entity.CategoryAccessories {
		return nil, domain.ErrForbidden
	}

	switch in.Mode {
	case "add", "remove":
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case "set":
	default:
		return nil, domain.ErrInvalidInput
	}

	// El delta se calcula sobre la fila bloqueada: en modo set, un ajuste
	// concurrente no puede desviar la cantidad final de la solicitada.
	var tx *entity.Transaction
	var delta, newQuantity int64
	now := time.Now()
	err = ledger.RunWithTicketRetry(ctx, uc.txRunner, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error {
		locked, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		switch in.Mode {
		case "add":
			delta = in.Quantity
		case "remove":
			delta = -in.Quantity
		case "set":
			delta = in.Quantity - locked.Quantity
		}
		newQuantity = locked.Quantity + delta
		if newQuantity < 0 && actor.Role != entity.RoleAdminGlobal {
			return domain.ErrNegativeQuantity
		}
		tx, err = uc.recorder.RecordInTx(txRepo, itemRepo, ledger.RecordInput{
			ItemID:  item.ID,
			UserID:  actor.UserID,
			StoreID: item.StoreID,
			Type:    entity.TransactionAdjustment,
			Delta:   delta,
			Notes:   in.Notes,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit.LogEvent(ctx, entity.EventStockAdjusted,
		fmt.Sprintf("ajuste de stock: %s - delta %d - nueva cantidad %d",
			item.PartNumber, delta, newQuantity),
		actor.UserID)
	return toTransactionResponse(tx), nil
}

// Transfer traslada unidades de un artículo entre tiendas. Si el número de
// parte no existe en la tienda destino se crea allí un artículo nuevo; si
// existe, recibe la entrada transfer_in. Todo en una sola transacción de BD.
func (uc *ItemUseCase) Transfer(ctx context.Context, actor Actor, in dto.TransferRequest) error {
	if in.Quantity <= 0 || in.SourceStoreID == in.DestinationStoreID {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if actor.Role == entity.RolePartnerAdmin && item.Category != entity.CategoryAccessories {
		return domain.ErrForbidden
	}
	if item.StoreID != in.SourceStoreID {
		return domain.ErrConflict // el artículo no está en la tienda origen
	}
	if item.Quantity < in.Quantity {
		return domain.ErrInsufficientStock
	}
	source, err := uc.storeRepo.GetByID(in.SourceStoreID)
	if err != nil {
		return err
	}
	dest, err := uc.storeRepo.GetByID(in.DestinationStoreID)
	if err != nil {
		return err
	}
	if source == nil || dest == nil {
		return domain.ErrNotFound
	}

	notes := in.Notes
	if notes == "" {
		notes = fmt.Sprintf("traslado de %s a %s", source.Name, dest.Name)
	}
	now := time.Now()
	err = ledger.RunWithTicketRetry(ctx, uc.txRunner, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error {
		if _, err := uc.recorder.RecordInTx(txRepo, itemRepo, ledger.RecordInput{
			ItemID:  item.ID,
			UserID:  actor.UserID,
			StoreID: in.SourceStoreID,
			Type:    entity.TransactionTransferOut,
			Delta:   -in.Quantity,
			Notes:   fmt.Sprintf("traslado a %s: %s", dest.Name, notes),
		}, now); err != nil {
			return err
		}

		destItem, err := itemRepo.GetByPartNumberAndStore(item.PartNumber, in.DestinationStoreID)
		if err != nil {
			return err
		}
		if destItem == nil {
			destItem = &entity.Item{
				ID:          uuid.New().String(),
				PartNumber:  item.PartNumber,
				Name:        item.Name,
				Description: item.Description,
				Category:    item.Category,
				Quantity:    0,
				StoreID:     in.DestinationStoreID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := itemRepo.Create(destItem); err != nil {
				return err
			}
		}
		_, err = uc.recorder.RecordInTx(txRepo, itemRepo, ledger.RecordInput{
			ItemID:  destItem.ID,
			UserID:  actor.UserID,
			StoreID: in.DestinationStoreID,
			Type:    entity.TransactionTransferIn,
			Delta:   in.Quantity,
			Notes:   fmt.Sprintf("traslado desde %s: %s", source.Name, notes),
		}, now)
		return err
	})
	if err != nil {
		return err
	}

	uc.audit.LogEvent(ctx, entity.EventItemTransferred,
		fmt.Sprintf("traslado: %s - cantidad %d - de %s a %s",
			item.PartNumber, in.Quantity, source.Name, dest.Name),
		actor.UserID)
	return nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          it.ID,
		PartNumber:  it.PartNumber,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Quantity:    it.Quantity,
		StoreID:     it.StoreID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toTransactionResponse(tx *entity.Transaction) *dto.TransactionResponse {
	if tx == nil {
		return nil
	}
	return &dto.TransactionResponse{
		ID:             tx.ID,
		TicketNumber:   tx.TicketNumber,
		ItemID:         tx.ItemID,
		UserID:         tx.UserID,
		StoreID:        tx.StoreID,
		Type:           tx.Type,
		QuantityChange: tx.QuantityChange,
		Notes:          tx.Notes,
		CreatedAt:      tx.CreatedAt,
	}
}
