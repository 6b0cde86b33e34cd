// Package ledger implementa el núcleo del inventario: el libro mayor de
// transacciones y el único camino de escritura de cantidades.
//
// Invariante central: la cantidad de un artículo es siempre igual a la suma de
// quantity_change de sus transacciones. Para sostenerlo, toda mutación de
// cantidad pasa por Recorder, que dentro de una sola transacción de BD bloquea
// la fila del artículo, genera el tiquete, inserta la entrada del libro y
// aplica el delta de forma atómica (quantity = quantity + delta).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// RecordInput entrada para registrar una transacción de inventario.
// Delta es un entero con signo arbitrario: el registrador no impone límites;
// vetar resultados negativos es responsabilidad del caller antes de invocar.
type RecordInput struct {
	ItemID  string
	UserID  string
	StoreID string
	Type    string // entity.Transaction*
	Delta   int64
	Notes   string
}

// Recorder registra transacciones de inventario de forma transaccional.
// Es el único camino de escritura del libro mayor y de item.quantity.
type Recorder struct {
	txRunner TxRunner
	audit    SecurityLogger
}

// NewRecorder construye el registrador.
func NewRecorder(txRunner TxRunner, audit SecurityLogger) *Recorder {
	return &Recorder{txRunner: txRunner, audit: audit}
}

// Record ejecuta el registro en su propia transacción de BD y, tras el commit,
// emite el evento de auditoría (best-effort, fuera de la transacción).
//
// Un artículo inexistente es un fallo duro (ErrNotFound) antes de cualquier
// escritura; nunca se registra una transacción sobre un artículo que no existe.
// Una colisión de número de tiquete (constraint único) reintenta la
// transacción completa una sola vez antes de propagar el fallo.
func (r *Recorder) Record(ctx context.Context, in RecordInput) (*entity.Transaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var created *entity.Transaction
	var partNumber string
	run := func(txRepo repository.TransactionRepository, itemRepo repository.ItemRepository) error {
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		partNumber = item.PartNumber
		created, err = recordEntry(txRepo, itemRepo, item, in, time.Now())
		return err
	}
	if err := RunWithTicketRetry(ctx, r.txRunner, run); err != nil {
		return nil, err
	}
	r.audit.LogEvent(ctx, entity.EventInventoryTx,
		fmt.Sprintf("transacción %s: %s - artículo %s - cantidad %d",
			in.Type, created.TicketNumber, partNumber, in.Delta),
		in.UserID)
	return created, nil
}

// RecordInTx registra una transacción usando los repositorios del caller
// (misma transacción de BD). Para casos de uso que componen el registro con
// otras escrituras: alta de artículo con cantidad inicial, traslados entre
// tiendas. El caller es responsable del commit/rollback y de la auditoría.
func (r *Recorder) RecordInTx(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
	in RecordInput,
	now time.Time,
) (*entity.Transaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return recordEntry(txRepo, itemRepo, item, in, now)
}

// RunWithTicketRetry ejecuta fn en una transacción y, si falla por colisión de
// tiquete (ErrDuplicate), la reintenta una sola vez. Cualquier otro error se
// propaga tal cual.
func RunWithTicketRetry(ctx context.Context, runner TxRunner, fn func(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
) error) error {
	err := runner.Run(ctx, fn)
	if errors.Is(err, domain.ErrDuplicate) {
		return runner.Run(ctx, fn)
	}
	return err
}

// recordEntry asume la fila del artículo ya bloqueada por el caller.
func recordEntry(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
	item *entity.Item,
	in RecordInput,
	now time.Time,
) (*entity.Transaction, error) {
	seq, err := txRepo.MaxTicketSequence()
	if err != nil {
		return nil, fmt.Errorf("secuencia de tiquetes: %w", err)
	}
	tx := &entity.Transaction{
		ID:             uuid.New().String(),
		TicketNumber:   FormatTicket(seq + 1),
		ItemID:         item.ID,
		UserID:         in.UserID,
		StoreID:        in.StoreID,
		Type:           in.Type,
		QuantityChange: in.Delta,
		Notes:          in.Notes,
		CreatedAt:      now,
	}
	if err := txRepo.Create(tx); err != nil {
		return nil, err
	}
	if err := itemRepo.ApplyDelta(item.ID, in.Delta); err != nil {
		return nil, err
	}
	return tx, nil
}

func validateInput(in RecordInput) error {
	if in.ItemID == "" || in.UserID == "" || in.StoreID == "" {
		return domain.ErrInvalidInput
	}
	if _, ok := entity.ParseTransactionType(in.Type); !ok {
		return domain.ErrInvalidInput
	}
	return nil
}
