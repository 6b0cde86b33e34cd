package ledger_test

import (
	"context"
	"sync"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// memDB estado compartido de los fakes. El mutex del runner emula la
// serialización que en PostgreSQL aporta el SELECT FOR UPDATE sobre la fila
// del artículo; el snapshot emula el rollback de la transacción.
type memDB struct {
	mu      sync.Mutex
	items   map[string]*entity.Item
	txs     []*entity.Transaction
	tickets map[string]bool

	// Inyección de fallos para los tests de atomicidad y reintento.
	failCreateTx   error
	failApplyDelta error
	dupOnCreate    int // número de Create que fallarán con ErrDuplicate
	createAttempts int
}

func newMemDB(items ...*entity.Item) *memDB {
	db := &memDB{
		items:   make(map[string]*entity.Item),
		tickets: make(map[string]bool),
	}
	for _, it := range items {
		cp := *it
		db.items[it.ID] = &cp
	}
	return db
}

func (db *memDB) itemQuantity(id string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if it, ok := db.items[id]; ok {
		return it.Quantity
	}
	return 0
}

func (db *memDB) ledgerSum(itemID string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	var sum int64
	for _, tx := range db.txs {
		if tx.ItemID == itemID {
			sum += tx.QuantityChange
		}
	}
	return sum
}

func (db *memDB) ledgerRows(itemID string) []*entity.Transaction {
	db.mu.Lock()
	defer db.mu.Unlock()
	var rows []*entity.Transaction
	for _, tx := range db.txs {
		if tx.ItemID == itemID {
			cp := *tx
			rows = append(rows, &cp)
		}
	}
	return rows
}

// snapshot copia el estado mutable para poder restaurarlo en rollback.
func (db *memDB) snapshot() (map[string]*entity.Item, []*entity.Transaction, map[string]bool) {
	items := make(map[string]*entity.Item, len(db.items))
	for id, it := range db.items {
		cp := *it
		items[id] = &cp
	}
	txs := make([]*entity.Transaction, len(db.txs))
	copy(txs, db.txs)
	tickets := make(map[string]bool, len(db.tickets))
	for t := range db.tickets {
		tickets[t] = true
	}
	return items, txs, tickets
}

// memTxRunner implementa ledger.TxRunner sobre memDB con semántica
// todo-o-nada: si fn devuelve error, el estado queda exactamente como antes.
type memTxRunner struct{ db *memDB }

var _ ledger.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	items, txs, tickets := r.db.snapshot()
	err := fn(&memTransactionRepo{db: r.db}, &memItemRepo{db: r.db})
	if err != nil {
		r.db.items, r.db.txs, r.db.tickets = items, txs, tickets
	}
	return err
}

// memTransactionRepo implementa repository.TransactionRepository en memoria.
type memTransactionRepo struct{ db *memDB }

var _ repository.TransactionRepository = (*memTransactionRepo)(nil)

func (r *memTransactionRepo) Create(tx *entity.Transaction) error {
	r.db.createAttempts++
	if r.db.failCreateTx != nil {
		return r.db.failCreateTx
	}
	if r.db.dupOnCreate > 0 {
		r.db.dupOnCreate--
		return domain.ErrDuplicate
	}
	if r.db.tickets[tx.TicketNumber] {
		return domain.ErrDuplicate
	}
	cp := *tx
	r.db.txs = append(r.db.txs, &cp)
	r.db.tickets[tx.TicketNumber] = true
	return nil
}

func (r *memTransactionRepo) GetByTicket(ticketNumber string) (*entity.Transaction, error) {
	for _, tx := range r.db.txs {
		if tx.TicketNumber == ticketNumber {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) MaxTicketSequence() (int64, error) {
	var max int64
	for _, tx := range r.db.txs {
		if seq, ok := ledger.ParseTicketSequence(tx.TicketNumber); ok && seq > max {
			max = seq
		}
	}
	return max, nil
}

func (r *memTransactionRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for _, tx := range r.db.txs {
		if tx.ItemID == itemID {
			cp := *tx
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memTransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for _, tx := range r.db.txs {
		if filter.StoreID != "" && tx.StoreID != filter.StoreID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		cp := *tx
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memTransactionRepo) DeleteByItem(itemID string) error {
	var kept []*entity.Transaction
	for _, tx := range r.db.txs {
		if tx.ItemID == itemID {
			delete(r.db.tickets, tx.TicketNumber)
			continue
		}
		kept = append(kept, tx)
	}
	r.db.txs = kept
	return nil
}

// memItemRepo implementa repository.ItemRepository en memoria.
type memItemRepo struct{ db *memDB }

var _ repository.ItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.db.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.db.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *memItemRepo) GetByPartNumberAndStore(partNumber, storeID string) (*entity.Item, error) {
	for _, it := range r.db.items {
		if it.PartNumber == partNumber && it.StoreID == storeID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate: el bloqueo de fila lo emula el mutex del runner.
func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) ApplyDelta(id string, delta int64) error {
	if r.db.failApplyDelta != nil {
		return r.db.failApplyDelta
	}
	it, ok := r.db.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity += delta
	return nil
}

func (r *memItemRepo) Update(item *entity.Item) error {
	if _, ok := r.db.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.db.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) ListByStore(storeID, category string, limit, offset int) ([]*entity.Item, error) {
	var list []*entity.Item
	for _, it := range r.db.items {
		if it.StoreID != storeID {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		cp := *it
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.db.items, id)
	return nil
}

// memAudit implementa ledger.SecurityLogger acumulando los eventos emitidos.
type memAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

type auditEvent struct {
	EventType   string
	Description string
	UserID      string
}

var _ ledger.SecurityLogger = (*memAudit)(nil)

func (a *memAudit) LogEvent(_ context.Context, eventType, description, userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, auditEvent{EventType: eventType, Description: description, UserID: userID})
}

// memStoreAccess implementa ledger.StoreAccess con asignaciones en memoria.
type memStoreAccess struct {
	granted map[string]map[string]bool // userID -> storeID -> asignado
}

var _ ledger.StoreAccess = (*memStoreAccess)(nil)

func (a *memStoreAccess) grant(userID, storeID string) {
	if a.granted == nil {
		a.granted = make(map[string]map[string]bool)
	}
	if a.granted[userID] == nil {
		a.granted[userID] = make(map[string]bool)
	}
	a.granted[userID][storeID] = true
}

func (a *memStoreAccess) HasStoreAccess(userID, storeID string) (bool, error) {
	return a.granted[userID][storeID], nil
}

// newRecorderForTest cablea un Recorder completo sobre memDB.
func newRecorderForTest(db *memDB) (*ledger.Recorder, *memAudit) {
	audit := &memAudit{}
	return ledger.NewRecorder(&memTxRunner{db: db}, audit), audit
}
