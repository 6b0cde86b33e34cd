package ledger

import (
	"context"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// RejectReason razón estructurada por la que se rechaza una salida rápida.
// Es texto para mostrar al caller, no un error de sistema.
type RejectReason string

// Razones de rechazo, en el orden en que se validan.
const (
	ReasonItemNotFound RejectReason = "el artículo no existe"
	ReasonNotAccessory RejectReason = "solo los accesorios pueden registrarse por esta vía"
	ReasonWrongStore   RejectReason = "el artículo no pertenece a la tienda seleccionada"
	ReasonOutOfStock   RejectReason = "el artículo está agotado"
)

const defaultOutgoingNotes = "salida de accesorio registrada por el usuario"

// OutgoingTicket comprobante de una salida rápida registrada.
type OutgoingTicket struct {
	TicketNumber string
	ItemName     string
	PartNumber   string
	Timestamp    string // YYYY-MM-DD HH:MM:SS
}

// OutgoingUseCase registra la salida rápida de un accesorio: el camino de
// checkout de una sola unidad para usuarios regulares. No es una API general
// de salidas; rechaza todo lo que no sea un accesorio disponible en la tienda
// indicada.
type OutgoingUseCase struct {
	itemRepo repository.ItemRepository
	recorder *Recorder
	access   *StoreAccessChecker
}

// NewOutgoingUseCase construye el caso de uso.
func NewOutgoingUseCase(itemRepo repository.ItemRepository, recorder *Recorder, access *StoreAccessChecker) *OutgoingUseCase {
	return &OutgoingUseCase{itemRepo: itemRepo, recorder: recorder, access: access}
}

// Register exige primero que el actor tenga alcance sobre la tienda (el rol
// user solo sobre sus tiendas asignadas) y luego valida en orden: (a) el
// artículo existe, (b) es un accesorio, (c) pertenece a la tienda, (d) tiene
// cantidad positiva. La primera validación que falla devuelve su razón sin
// ningún efecto lateral. Si todas pasan, registra una transacción remove con
// delta fijo de -1 (nunca más de una unidad por llamada) y devuelve el
// comprobante.
//
// El error de retorno es para fallos de almacenamiento y de autorización
// (ErrForbidden); un rechazo de validación llega como RejectReason con error nil.
func (uc *OutgoingUseCase) Register(ctx context.Context, itemID, userID, role, storeID, notes string) (*OutgoingTicket, RejectReason, error) {
	if err := uc.access.Check(ctx, userID, role, storeID); err != nil {
		return nil, "", err
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, ReasonItemNotFound, nil
	}
	if item.Category != entity.CategoryAccessories {
		return nil, ReasonNotAccessory, nil
	}
	if item.StoreID != storeID {
		return nil, ReasonWrongStore, nil
	}
	if item.Quantity <= 0 {
		return nil, ReasonOutOfStock, nil
	}

	if notes == "" {
		notes = defaultOutgoingNotes
	}
	tx, err := uc.recorder.Record(ctx, RecordInput{
		ItemID:  itemID,
		UserID:  userID,
		StoreID: storeID,
		Type:    entity.TransactionRemove,
		Delta:   -1,
		Notes:   notes,
	})
	if err != nil {
		return nil, "", err
	}
	return &OutgoingTicket{
		TicketNumber: tx.TicketNumber,
		ItemName:     item.Name,
		PartNumber:   item.PartNumber,
		Timestamp:    tx.CreatedAt.Format("2006-01-02 15:04:05"),
	}, "", nil
}
