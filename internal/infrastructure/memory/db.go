// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es el driver por defecto: el estado vive mientras viva el proceso y se pierde al reiniciar.
//
// Los repositorios nunca devuelven punteros al estado interno y nunca lo mutan en sitio:
// cada escritura reemplaza el elemento, lo que permite que TxRunner haga rollback
// restaurando una copia superficial de los slices.
package memory

import (
	"sync"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// DB estado compartido por todos los repositorios en memoria.
type DB struct {
	mu            sync.RWMutex
	products      []*entity.Product
	sales         []*entity.Sale
	debts         []*entity.Debt
	staff         []*entity.StaffMember
	users         []*entity.User
	subscriptions map[string]*entity.Subscription
}

// NewDB crea un almacén vacío.
func NewDB() *DB {
	return &DB{subscriptions: make(map[string]*entity.Subscription)}
}

type state struct {
	products      []*entity.Product
	sales         []*entity.Sale
	debts         []*entity.Debt
	staff         []*entity.StaffMember
	users         []*entity.User
	subscriptions map[string]*entity.Subscription
}

// save copia superficial; el llamador debe tener el lock.
func (db *DB) save() state {
	subs := make(map[string]*entity.Subscription, len(db.subscriptions))
	for k, v := range db.subscriptions {
		subs[k] = v
	}
	return state{
		products:      append([]*entity.Product(nil), db.products...),
		sales:         append([]*entity.Sale(nil), db.sales...),
		debts:         append([]*entity.Debt(nil), db.debts...),
		staff:         append([]*entity.StaffMember(nil), db.staff...),
		users:         append([]*entity.User(nil), db.users...),
		subscriptions: subs,
	}
}

func (db *DB) restore(s state) {
	db.products = s.products
	db.sales = s.sales
	db.debts = s.debts
	db.staff = s.staff
	db.users = s.users
	db.subscriptions = s.subscriptions
}

// guard decide si el repositorio toma el lock (fuera de tx) o ya lo tiene el TxRunner.
type guard struct {
	db   *DB
	inTx bool
}

func (g guard) read() func() {
	if g.inTx {
		return func() {}
	}
	g.db.mu.RLock()
	return g.db.mu.RUnlock
}

func (g guard) write() func() {
	if g.inTx {
		return func() {}
	}
	g.db.mu.Lock()
	return g.db.mu.Unlock
}
