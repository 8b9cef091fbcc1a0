package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
)

const biz = "biz-1"

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }

type fixture struct {
	store *store.Store
	users *memory.UserRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := memory.NewDB()
	clock := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	users := memory.NewUserRepository(db)
	s := store.New(store.Deps{
		Products: memory.NewProductRepository(db),
		Sales:    memory.NewSaleRepository(db),
		Debts:    memory.NewDebtRepository(db),
		Staff:    memory.NewStaffRepository(db),
		Tx:       memory.NewTxRunner(db),
		Hasher:   plainHasher{},
		Now:      func() time.Time { return clock },
	})
	return fixture{store: s, users: users}
}

func addRice(t *testing.T, s *store.Store) *entity.Product {
	t.Helper()
	p, err := s.AddProduct(context.Background(), biz, store.ProductInput{
		Name:      "Rice (5kg)",
		UnitPrice: decimal.NewFromInt(50),
		Quantity:  20,
		Category:  "Grains",
	})
	require.NoError(t, err)
	return p
}

func TestStore_RiceScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := addRice(t, f.store)

	sale, err := f.store.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", sale.Date)
	assert.True(t, sale.Amount.Equal(decimal.NewFromInt(250)))

	snap, err := f.store.Snapshot(ctx, biz)
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, 15, snap.Products[0].Quantity)
	assert.True(t, insight.StockBalance(snap).Equal(decimal.NewFromInt(750)))
	assert.True(t, insight.TodaySalesTotal(snap, f.store.Today()).Equal(decimal.NewFromInt(250)))
}

func TestStore_AddSale_MissingProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := addRice(t, f.store)

	_, err := f.store.AddSale(ctx, biz, store.SaleInput{ProductID: "ghost", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	sales, err := f.store.ListSales(ctx, biz)
	require.NoError(t, err)
	assert.Empty(t, sales)
	products, err := f.store.ListProducts(ctx, biz)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, rice.Quantity, products[0].Quantity)
}

func TestStore_AddSale_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := addRice(t, f.store)

	_, err := f.store.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 21})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	products, _ := f.store.ListProducts(ctx, biz)
	assert.Equal(t, 20, products[0].Quantity)
	sales, _ := f.store.ListSales(ctx, biz)
	assert.Empty(t, sales)

	_, err = f.store.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 20})
	require.NoError(t, err)
	products, _ = f.store.ListProducts(ctx, biz)
	assert.Equal(t, 0, products[0].Quantity)
}

func TestStore_AddSale_ExplicitAmountAndDate(t *testing.T) {
	f := newFixture(t)
	rice := addRice(t, f.store)

	sale, err := f.store.AddSale(context.Background(), biz, store.SaleInput{
		ProductID: rice.ID,
		Quantity:  2,
		Amount:    decimal.NewFromInt(90),
		Date:      "2026-03-01",
	})
	require.NoError(t, err)
	assert.True(t, sale.Amount.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, "2026-03-01", sale.Date)
}

func TestStore_AddSale_Validation(t *testing.T) {
	f := newFixture(t)
	rice := addRice(t, f.store)

	tests := []struct {
		name  string
		in    store.SaleInput
		field string
	}{
		{"sin producto", store.SaleInput{Quantity: 1}, "product_id"},
		{"cantidad cero", store.SaleInput{ProductID: rice.ID}, "quantity"},
		{"monto negativo", store.SaleInput{ProductID: rice.ID, Quantity: 1, Amount: decimal.NewFromInt(-1)}, "amount"},
		{"monto con tres decimales", store.SaleInput{ProductID: rice.ID, Quantity: 1, Amount: decimal.RequireFromString("10.005")}, "amount"},
		{"fecha inválida", store.SaleInput{ProductID: rice.ID, Quantity: 1, Date: "14/03/2026"}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.store.AddSale(context.Background(), biz, tt.in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestStore_AddProduct_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.AddProduct(ctx, biz, store.ProductInput{Name: "  ", UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddProduct(ctx, biz, store.ProductInput{Name: "Sugar", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddProduct(ctx, biz, store.ProductInput{Name: "Sugar", Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	products, _ := f.store.ListProducts(ctx, biz)
	assert.Empty(t, products)
}

func TestStore_UpdateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := addRice(t, f.store)

	qty := 40
	price := decimal.NewFromInt(55)
	updated, err := f.store.UpdateProduct(ctx, biz, rice.ID, entity.ProductPatch{Quantity: &qty, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Quantity)
	assert.Equal(t, "Rice (5kg)", updated.Name)
	assert.True(t, updated.UnitPrice.Equal(price))

	neg := -1
	_, err = f.store.UpdateProduct(ctx, biz, rice.ID, entity.ProductPatch{Quantity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.store.UpdateProduct(ctx, biz, "ghost", entity.ProductPatch{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.store.UpdateProduct(ctx, "otro-negocio", rice.ID, entity.ProductPatch{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteProduct_LeavesOrphanedSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := addRice(t, f.store)
	_, err := f.store.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteProduct(ctx, biz, rice.ID))

	snap, err := f.store.Snapshot(ctx, biz)
	require.NoError(t, err)
	assert.Empty(t, snap.Products)
	assert.Len(t, snap.Sales, 1)
	assert.Len(t, insight.OrphanedSales(snap), 1)
}

func TestStore_Debts_NetBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cred, err := f.store.AddCreditor(ctx, biz, store.DebtInput{Name: "Supplier A", Amount: decimal.NewFromInt(500), DueDate: "2026-04-01"})
	require.NoError(t, err)
	_, err = f.store.AddDebtor(ctx, biz, store.DebtInput{Name: "Customer B", Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)

	snap, err := f.store.Snapshot(ctx, biz)
	require.NoError(t, err)
	assert.True(t, insight.NetDebt(snap).Equal(decimal.NewFromInt(-350)))

	// un id de deudor no borra al acreedor
	require.NoError(t, f.store.DeleteDebtor(ctx, biz, cred.ID))
	creditors, _ := f.store.ListCreditors(ctx, biz)
	assert.Len(t, creditors, 1)

	require.NoError(t, f.store.DeleteCreditor(ctx, biz, cred.ID))
	require.NoError(t, f.store.DeleteCreditor(ctx, biz, cred.ID))
	snap, _ = f.store.Snapshot(ctx, biz)
	assert.True(t, insight.NetDebt(snap).Equal(decimal.NewFromInt(150)))
}

func TestStore_MoneyScale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.AddProduct(ctx, biz, store.ProductInput{Name: "Sugar", UnitPrice: decimal.RequireFromString("3.333")})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "unit_price", ve.Field)

	p, err := f.store.AddProduct(ctx, biz, store.ProductInput{Name: "Sugar", UnitPrice: decimal.RequireFromString("3.500"), Quantity: 2})
	require.NoError(t, err)
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("3.5")))

	badPrice := decimal.RequireFromString("4.125")
	_, err = f.store.UpdateProduct(ctx, biz, p.ID, entity.ProductPatch{UnitPrice: &badPrice})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.store.AddCreditor(ctx, biz, store.DebtInput{Name: "Acme", Amount: decimal.RequireFromString("0.001")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddDebtor(ctx, biz, store.DebtInput{Name: "Kofi", Amount: decimal.RequireFromString("12.75")})
	assert.NoError(t, err)
}

func TestStore_AddDebt_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.AddCreditor(ctx, biz, store.DebtInput{Name: "", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddDebtor(ctx, biz, store.DebtInput{Name: "X", Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddDebtor(ctx, biz, store.DebtInput{Name: "X", Amount: decimal.NewFromInt(1), DueDate: "mañana"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "due_date", ve.Field)
}

func TestStore_Staff_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member, err := f.store.AddStaffMember(ctx, biz, store.StaffInput{
		Name:      "Ama Mensah",
		Email:     " Ama@Shop.com ",
		RoleLabel: "cashier",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StaffActive, member.Status)
	assert.Equal(t, "ama@shop.com", member.Email)

	user, err := f.users.GetByID(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleStaff, user.Role)
	assert.Equal(t, biz, user.BusinessID)
	assert.Equal(t, "h:secret123", user.PasswordHash)

	_, err = f.store.AddStaffMember(ctx, biz, store.StaffInput{Name: "Dup", Email: "ama@shop.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	staff, _ := f.store.ListStaff(ctx, biz)
	assert.Len(t, staff, 1)

	updated, err := f.store.UpdateStaffStatus(ctx, biz, member.ID, entity.StaffInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.StaffInactive, updated.Status)
	user, _ = f.users.GetByID(ctx, member.ID)
	assert.Equal(t, entity.StaffInactive, user.Status)

	_, err = f.store.UpdateStaffStatus(ctx, biz, member.ID, "suspended")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.UpdateStaffStatus(ctx, biz, "ghost", entity.StaffActive)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.store.ResetStaffPassword(ctx, biz, member.ID, "brandnew99"))
	user, _ = f.users.GetByID(ctx, member.ID)
	assert.Equal(t, "h:brandnew99", user.PasswordHash)

	assert.ErrorIs(t, f.store.ResetStaffPassword(ctx, biz, member.ID, "short"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.store.ResetStaffPassword(ctx, "otro-negocio", member.ID, "brandnew99"), domain.ErrNotFound)
}

func TestStore_AddStaffMember_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.AddStaffMember(ctx, biz, store.StaffInput{Name: "A", Email: "no-arroba", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddStaffMember(ctx, biz, store.StaffInput{Name: "A", Email: "a@b.c", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Today_UsesLocation(t *testing.T) {
	db := memory.NewDB()
	tokyo := time.FixedZone("JST", 9*3600)
	clock := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s := store.New(store.Deps{
		Products: memory.NewProductRepository(db),
		Sales:    memory.NewSaleRepository(db),
		Debts:    memory.NewDebtRepository(db),
		Staff:    memory.NewStaffRepository(db),
		Tx:       memory.NewTxRunner(db),
		Now:      func() time.Time { return clock },
		Location: tokyo,
	})
	assert.Equal(t, "2026-03-15", s.Today())
}

// saleRace dispara una venta concurrente justo después de la próxima lectura de producto.
type saleRace struct {
	armed atomic.Bool
	fire  func()
}

func (r *saleRace) trigger() {
	if r.armed.CompareAndSwap(true, false) {
		r.fire()
	}
}

type racingProducts struct {
	repository.ProductRepository
	race *saleRace
}

func (p racingProducts) GetByID(ctx context.Context, businessID, id string) (*entity.Product, error) {
	prod, err := p.ProductRepository.GetByID(ctx, businessID, id)
	p.race.trigger()
	return prod, err
}

type racingTx struct {
	store.TxRunner
	race *saleRace
}

func (t racingTx) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	return t.TxRunner.Run(ctx, func(pr repository.ProductRepository, sr repository.SaleRepository) error {
		return fn(racingProducts{pr, t.race}, sr)
	})
}

func TestStore_UpdateProduct_KeepsConcurrentSale(t *testing.T) {
	db := memory.NewDB()
	race := &saleRace{}
	s := store.New(store.Deps{
		Products: racingProducts{memory.NewProductRepository(db), race},
		Sales:    memory.NewSaleRepository(db),
		Debts:    memory.NewDebtRepository(db),
		Staff:    memory.NewStaffRepository(db),
		Tx:       racingTx{memory.NewTxRunner(db), race},
		Hasher:   plainHasher{},
	})
	ctx := context.Background()
	rice := addRice(t, s)

	saleDone := make(chan error, 1)
	race.fire = func() {
		go func() {
			_, err := s.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 5})
			saleDone <- err
		}()
		// Sin transacción la venta termina aquí mismo; con ella queda esperando el lock.
		select {
		case err := <-saleDone:
			saleDone <- err
		case <-time.After(50 * time.Millisecond):
		}
	}
	race.armed.Store(true)

	name := "Rice (5kg) premium"
	updated, err := s.UpdateProduct(ctx, biz, rice.ID, entity.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	require.NoError(t, <-saleDone)

	snap, err := s.Snapshot(ctx, biz)
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	require.Len(t, snap.Sales, 1)
	assert.Equal(t, name, snap.Products[0].Name)
	assert.Equal(t, 15, snap.Products[0].Quantity)
	assert.True(t, insight.StockBalance(snap).Equal(decimal.NewFromInt(750)))
}

func TestStore_Snapshot_ConsistentUnderConcurrentSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := addRice(t, f.store)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			_, err := f.store.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 1})
			assert.NoError(t, err)
		}
	}()

	for i := 0; i < 50; i++ {
		snap, err := f.store.Snapshot(ctx, biz)
		require.NoError(t, err)
		require.Len(t, snap.Products, 1)
		sold := 0
		for _, sale := range snap.Sales {
			sold += sale.Quantity
		}
		assert.Equal(t, 20, snap.Products[0].Quantity+sold, "stock y ventas de la misma foto")
	}
	wg.Wait()
}
