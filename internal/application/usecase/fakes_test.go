package usecase_test

import (
	"context"
	"sync"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// memDB estado compartido de los fakes del paquete. Mismo modelo que los
// fakes del libro mayor: el mutex del runner emula la serialización del
// SELECT FOR UPDATE y el snapshot emula el rollback.
type memDB struct {
	mu      sync.Mutex
	items   map[string]*entity.Item
	stores  map[string]*entity.Store
	users   map[string]*entity.User
	access  map[string]map[string]bool // userID -> storeID -> asignado
	txs     []*entity.Transaction
	tickets map[string]bool
}

func newMemDB() *memDB {
	return &memDB{
		items:   make(map[string]*entity.Item),
		stores:  make(map[string]*entity.Store),
		users:   make(map[string]*entity.User),
		access:  make(map[string]map[string]bool),
		tickets: make(map[string]bool),
	}
}

func (db *memDB) addStore(s *entity.Store) {
	cp := *s
	db.stores[s.ID] = &cp
}

func (db *memDB) addItem(it *entity.Item) {
	cp := *it
	db.items[it.ID] = &cp
}

func (db *memDB) itemQuantity(id string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if it, ok := db.items[id]; ok {
		return it.Quantity
	}
	return 0
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

type memTxRunner struct{ db *memDB }

var _ ledger.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	items, txs, tickets := r.db.snapshot()
	err := fn(&memTransactionRepo{db: r.db}, &memItemRepo{db: r.db, inTx: true})
	if err != nil {
		r.db.items, r.db.txs, r.db.tickets = items, txs, tickets
	}
	return err
}

type memTransactionRepo struct{ db *memDB }

var _ repository.TransactionRepository = (*memTransactionRepo)(nil)

func (r *memTransactionRepo) Create(tx *entity.Transaction) error {
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
		if filter.ItemID != "" && tx.ItemID != filter.ItemID {
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

// memItemRepo implementa repository.ItemRepository. Fuera de una transacción
// (inTx false) toma el mutex por operación.
type memItemRepo struct {
	db   *memDB
	inTx bool
}

var _ repository.ItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.db.mu.Lock()
	return r.db.mu.Unlock
}

func (r *memItemRepo) Create(item *entity.Item) error {
	defer r.lock()()
	for _, it := range r.db.items {
		if it.PartNumber == item.PartNumber && it.StoreID == item.StoreID {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.db.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	defer r.lock()()
	if it, ok := r.db.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *memItemRepo) GetByPartNumberAndStore(partNumber, storeID string) (*entity.Item, error) {
	defer r.lock()()
	for _, it := range r.db.items {
		if it.PartNumber == partNumber && it.StoreID == storeID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) ApplyDelta(id string, delta int64) error {
	defer r.lock()()
	it, ok := r.db.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity += delta
	return nil
}

func (r *memItemRepo) Update(item *entity.Item) error {
	defer r.lock()()
	if _, ok := r.db.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.db.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) ListByStore(storeID, category string, limit, offset int) ([]*entity.Item, error) {
	defer r.lock()()
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
	defer r.lock()()
	delete(r.db.items, id)
	return nil
}

type memStoreRepo struct{ db *memDB }

var _ repository.StoreRepository = (*memStoreRepo)(nil)

func (r *memStoreRepo) Create(store *entity.Store) error {
	cp := *store
	r.db.stores[store.ID] = &cp
	return nil
}

func (r *memStoreRepo) GetByID(id string) (*entity.Store, error) {
	if s, ok := r.db.stores[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memStoreRepo) GetByName(name string) (*entity.Store, error) {
	for _, s := range r.db.stores {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStoreRepo) Update(store *entity.Store) error {
	if _, ok := r.db.stores[store.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *store
	r.db.stores[store.ID] = &cp
	return nil
}

func (r *memStoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	var list []*entity.Store
	for _, s := range r.db.stores {
		cp := *s
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memStoreRepo) HasInventory(storeID string) (bool, error) {
	for _, it := range r.db.items {
		if it.StoreID == storeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStoreRepo) Delete(id string) error {
	delete(r.db.stores, id)
	return nil
}

type memUserRepo struct{ db *memDB }

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(user *entity.User) error {
	cp := *user
	r.db.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	if _, ok := r.db.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.db.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.db.users {
		cp := *u
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.db.users, id)
	return nil
}

func (r *memUserRepo) ListStores(userID string) ([]*entity.Store, error) {
	var list []*entity.Store
	for storeID := range r.db.access[userID] {
		if s, ok := r.db.stores[storeID]; ok {
			cp := *s
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memUserRepo) ReplaceStores(userID string, storeIDs []string) error {
	assigned := make(map[string]bool, len(storeIDs))
	for _, id := range storeIDs {
		assigned[id] = true
	}
	r.db.access[userID] = assigned
	return nil
}

func (r *memUserRepo) HasStoreAccess(userID, storeID string) (bool, error) {
	return r.db.access[userID][storeID], nil
}

// memReportRepo implementa repository.ReportRepository agregando sobre memDB.
type memReportRepo struct{ db *memDB }

var _ repository.ReportRepository = (*memReportRepo)(nil)

func (r *memReportRepo) InventorySummary(storeID string) ([]repository.InventorySummaryRow, error) {
	byKey := make(map[string]*repository.InventorySummaryRow)
	for _, it := range r.db.items {
		if storeID != "" && it.StoreID != storeID {
			continue
		}
		key := it.StoreID + "/" + it.Category
		row, ok := byKey[key]
		if !ok {
			name := ""
			if s, found := r.db.stores[it.StoreID]; found {
				name = s.Name
			}
			row = &repository.InventorySummaryRow{StoreID: it.StoreID, StoreName: name, Category: it.Category}
			byKey[key] = row
		}
		row.ItemCount++
		row.TotalUnits += it.Quantity
		if it.Quantity <= 0 {
			row.OutOfStock++
		}
	}
	rows := make([]repository.InventorySummaryRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (r *memReportRepo) GetStoreStats(storeID string) (*repository.StoreStats, error) {
	stats := &repository.StoreStats{}
	for _, it := range r.db.items {
		if it.StoreID != storeID {
			continue
		}
		stats.ItemCount++
		stats.TotalUnits += it.Quantity
		if it.Quantity <= 0 {
			stats.OutOfStock++
		}
	}
	return stats, nil
}

// memAudit acumula los eventos de auditoría emitidos.
type memAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

type auditEvent struct {
	EventType   string
	Description string
	UserID      string
}

var _ usecase.SecurityLogger = (*memAudit)(nil)

func (a *memAudit) LogEvent(_ context.Context, eventType, description, userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, auditEvent{EventType: eventType, Description: description, UserID: userID})
}

func (a *memAudit) eventTypes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	types := make([]string, 0, len(a.events))
	for _, e := range a.events {
		types = append(types, e.EventType)
	}
	return types
}

// newItemUseCaseForTest cablea ItemUseCase completo sobre memDB. El
// verificador de alcance por tienda comparte el colector de auditoría con el
// caso de uso, igual que en producción.
func newItemUseCaseForTest(db *memDB) (*usecase.ItemUseCase, *memAudit) {
	runner := &memTxRunner{db: db}
	audit := &memAudit{}
	recorder := ledger.NewRecorder(runner, &memAudit{})
	access := ledger.NewStoreAccessChecker(&memUserRepo{db: db}, audit)
	return usecase.NewItemUseCase(
		&memItemRepo{db: db},
		&memStoreRepo{db: db},
		access,
		&memTransactionRepo{db: db},
		runner,
		recorder,
		audit,
	), audit
}

// newReportUseCaseForTest cablea ReportUseCase sobre memDB. Los tests de este
// paquete no ejercitan el generador PDF ni el registro de auditoría.
func newReportUseCaseForTest(db *memDB) *usecase.ReportUseCase {
	access := ledger.NewStoreAccessChecker(&memUserRepo{db: db}, &memAudit{})
	return usecase.NewReportUseCase(
		&memReportRepo{db: db},
		&memTransactionRepo{db: db},
		&memStoreRepo{db: db},
		nil,
		nil,
		access,
	)
}
