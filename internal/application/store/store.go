// Package store es el almacén de datos del negocio: productos, ventas, acreedores,
// deudores y personal. Toda mutación pasa por sus métodos; las lecturas devuelven copias.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

// MinPasswordLength longitud mínima de contraseña para credenciales del personal.
const MinPasswordLength = 8

// Deps dependencias del Store.
type Deps struct {
	Products repository.ProductRepository
	Sales    repository.SaleRepository
	Debts    repository.DebtRepository
	Staff    repository.StaffRepository
	Tx       TxRunner
	Hasher   PasswordHasher   // nil = bcrypt.DefaultCost
	Logger   *logger.Logger   // nil = Nop
	Now      func() time.Time // nil = time.Now
	Location *time.Location   // zona para calcular "hoy"; nil = UTC
}

// Store implementa las operaciones del almacén de datos del negocio.
type Store struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	debts    repository.DebtRepository
	staff    repository.StaffRepository
	tx       TxRunner
	hasher   PasswordHasher
	log      *logger.Logger
	now      func() time.Time
	loc      *time.Location
}

// New construye el Store.
func New(d Deps) *Store {
	s := &Store{
		products: d.Products,
		sales:    d.Sales,
		debts:    d.Debts,
		staff:    d.Staff,
		tx:       d.Tx,
		hasher:   d.Hasher,
		log:      d.Logger,
		now:      d.Now,
		loc:      d.Location,
	}
	if s.hasher == nil {
		s.hasher = BcryptHasher{Cost: bcrypt.DefaultCost}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

// BcryptHasher PasswordHasher sobre golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	Cost int
}

// Hash devuelve el hash bcrypt de password.
func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Today fecha actual del negocio en formato YYYY-MM-DD.
func (s *Store) Today() string {
	return s.now().In(s.loc).Format(entity.DateLayout)
}

// ProductInput datos para crear un producto.
type ProductInput struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Category  string
	Supplier  string
}

// AddProduct valida y agrega un producto al inventario.
func (s *Store) AddProduct(ctx context.Context, businessID string, in ProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateProduct(name, in.UnitPrice, in.Quantity); err != nil {
		return nil, err
	}
	now := s.now()
	p := &entity.Product{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       name,
		UnitPrice:  in.UnitPrice,
		Quantity:   in.Quantity,
		Category:   strings.TrimSpace(in.Category),
		Supplier:   strings.TrimSpace(in.Supplier),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	s.log.Info().Str("business_id", businessID).Str("product_id", p.ID).Str("name", p.Name).Msg("producto agregado")
	return p, nil
}

// UpdateProduct aplica los campos presentes en patch. ErrNotFound si el producto no existe.
// Lectura y escritura van en la misma transacción que AddSale, así una venta concurrente
// no se pierde al reescribir Quantity.
func (s *Store) UpdateProduct(ctx context.Context, businessID, id string, patch entity.ProductPatch) (*entity.Product, error) {
	var updated *entity.Product
	err := s.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		p, err := productRepo.GetByID(ctx, businessID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.UnitPrice != nil {
			p.UnitPrice = *patch.UnitPrice
		}
		if patch.Quantity != nil {
			p.Quantity = *patch.Quantity
		}
		if patch.Category != nil {
			p.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Supplier != nil {
			p.Supplier = strings.TrimSpace(*patch.Supplier)
		}
		if err := validateProduct(p.Name, p.UnitPrice, p.Quantity); err != nil {
			return err
		}
		p.UpdatedAt = s.now()
		if err := productRepo.Update(ctx, p); err != nil {
			return fmt.Errorf("actualizar producto: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct elimina el producto. Sus ventas se conservan (quedan huérfanas).
func (s *Store) DeleteProduct(ctx context.Context, businessID, id string) error {
	if err := s.products.Delete(ctx, businessID, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	s.log.Info().Str("business_id", businessID).Str("product_id", id).Msg("producto eliminado")
	return nil
}

func validateProduct(name string, price decimal.Decimal, qty int) error {
	if name == "" {
		return domain.Invalid("name", "no puede estar vacío")
	}
	if err := validateMoney("unit_price", price); err != nil {
		return err
	}
	if qty < 0 {
		return domain.Invalid("quantity", "no puede ser negativa")
	}
	return nil
}

// Las columnas de montos son NUMERIC(14,2); más decimales se redondearían al guardar.
const moneyScale = 2

func validateMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.Invalid(field, "no puede ser negativo")
	}
	if !d.Equal(d.Truncate(moneyScale)) {
		return domain.Invalid(field, fmt.Sprintf("máximo %d decimales", moneyScale))
	}
	return nil
}

// SaleInput datos para registrar una venta. Amount cero se calcula como UnitPrice × Quantity;
// Date vacía es hoy.
type SaleInput struct {
	ProductID string
	Quantity  int
	Amount    decimal.Decimal
	Date      string
}

// AddSale registra la venta y descuenta el stock en una sola transacción.
// Rechaza productos inexistentes (ErrProductNotFound) y ventas mayores al stock (ErrInsufficientStock).
func (s *Store) AddSale(ctx context.Context, businessID string, in SaleInput) (*entity.Sale, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if err := validateMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	date, err := s.normalizeDate(in.Date, true)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = s.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		p, err := productRepo.GetByID(ctx, businessID, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if in.Quantity > p.Quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, p.Quantity, in.Quantity)
		}
		amount := in.Amount
		if amount.IsZero() {
			amount = p.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		}
		now := s.now()
		sale = &entity.Sale{
			ID:         uuid.New().String(),
			BusinessID: businessID,
			ProductID:  p.ID,
			Quantity:   in.Quantity,
			Amount:     amount,
			Date:       date,
			CreatedAt:  now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		p.Quantity -= in.Quantity
		p.UpdatedAt = now
		return productRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("business_id", businessID).Str("sale_id", sale.ID).Str("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).Str("amount", sale.Amount.StringFixed(2)).Msg("venta registrada")
	return sale, nil
}

// normalizeDate valida YYYY-MM-DD. Vacía devuelve hoy si defaultToday, o "" si no.
func (s *Store) normalizeDate(v string, defaultToday bool) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		if defaultToday {
			return s.Today(), nil
		}
		return "", nil
	}
	t, err := time.Parse(entity.DateLayout, v)
	if err != nil {
		return "", domain.Invalid("date", "formato esperado YYYY-MM-DD")
	}
	return t.Format(entity.DateLayout), nil
}

// DebtInput datos de un acreedor o deudor.
type DebtInput struct {
	Name    string
	Amount  decimal.Decimal
	DueDate string
}

// AddCreditor registra un monto que el negocio debe.
func (s *Store) AddCreditor(ctx context.Context, businessID string, in DebtInput) (*entity.Creditor, error) {
	return s.addDebt(ctx, businessID, entity.DebtOwedByBusiness, in)
}

// AddDebtor registra un monto que le deben al negocio.
func (s *Store) AddDebtor(ctx context.Context, businessID string, in DebtInput) (*entity.Debtor, error) {
	return s.addDebt(ctx, businessID, entity.DebtOwedToBusiness, in)
}

// DeleteCreditor elimina el acreedor; no falla si no existe.
func (s *Store) DeleteCreditor(ctx context.Context, businessID, id string) error {
	return s.debts.Delete(ctx, businessID, entity.DebtOwedByBusiness, id)
}

// DeleteDebtor elimina el deudor; no falla si no existe.
func (s *Store) DeleteDebtor(ctx context.Context, businessID, id string) error {
	return s.debts.Delete(ctx, businessID, entity.DebtOwedToBusiness, id)
}

func (s *Store) addDebt(ctx context.Context, businessID, debtType string, in DebtInput) (*entity.Debt, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "no puede estar vacío")
	}
	if err := validateMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	due, err := s.normalizeDate(in.DueDate, false)
	if err != nil {
		return nil, domain.Invalid("due_date", "formato esperado YYYY-MM-DD")
	}
	d := &entity.Debt{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Type:       debtType,
		Name:       name,
		Amount:     in.Amount,
		DueDate:    due,
		CreatedAt:  s.now(),
	}
	if err := s.debts.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("registrar deuda: %w", err)
	}
	s.log.Info().Str("business_id", businessID).Str("type", debtType).Str("debt_id", d.ID).Msg("deuda registrada")
	return d, nil
}

// StaffInput datos para dar de alta a un empleado.
type StaffInput struct {
	Name         string
	Email        string
	RoleLabel    string
	Password     string
	BusinessName string
}

// AddStaffMember crea el registro del empleado y su credencial (rol staff) con el mismo ID.
func (s *Store) AddStaffMember(ctx context.Context, businessID string, in StaffInput) (*entity.StaffMember, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, domain.Invalid("name", "no puede estar vacío")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("email", "no es un correo válido")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Invalid("password", fmt.Sprintf("mínimo %d caracteres", MinPasswordLength))
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := s.now()
	member := &entity.StaffMember{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       name,
		Email:      email,
		RoleLabel:  strings.TrimSpace(in.RoleLabel),
		Status:     entity.StaffActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	user := &entity.User{
		ID:           member.ID,
		BusinessID:   businessID,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleStaff,
		BusinessName: in.BusinessName,
		Status:       entity.StaffActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.tx.RunStaff(ctx, func(staffRepo repository.StaffRepository, userRepo repository.UserRepository) error {
		existing, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return staffRepo.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("business_id", businessID).Str("staff_id", member.ID).Msg("empleado agregado")
	return member, nil
}

// UpdateStaffStatus activa o desactiva al empleado y su credencial.
func (s *Store) UpdateStaffStatus(ctx context.Context, businessID, id, status string) (*entity.StaffMember, error) {
	if !entity.ValidStaffStatus(status) {
		return nil, domain.Invalid("status", "debe ser active o inactive")
	}
	var member *entity.StaffMember
	err := s.tx.RunStaff(ctx, func(staffRepo repository.StaffRepository, userRepo repository.UserRepository) error {
		m, err := staffRepo.GetByID(ctx, businessID, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := staffRepo.UpdateStatus(ctx, businessID, id, status); err != nil {
			return err
		}
		if err := userRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		m.Status = status
		m.UpdatedAt = s.now()
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("business_id", businessID).Str("staff_id", id).Str("status", status).Msg("estado de empleado actualizado")
	return member, nil
}

// ResetStaffPassword guarda un nuevo hash para la credencial del empleado.
func (s *Store) ResetStaffPassword(ctx context.Context, businessID, id, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return domain.Invalid("password", fmt.Sprintf("mínimo %d caracteres", MinPasswordLength))
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	err = s.tx.RunStaff(ctx, func(staffRepo repository.StaffRepository, userRepo repository.UserRepository) error {
		m, err := staffRepo.GetByID(ctx, businessID, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		return userRepo.UpdatePassword(ctx, id, hash)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("business_id", businessID).Str("staff_id", id).Msg("contraseña de empleado restablecida")
	return nil
}

// ListProducts productos en orden de inserción.
func (s *Store) ListProducts(ctx context.Context, businessID string) ([]*entity.Product, error) {
	return s.products.ListByBusiness(ctx, businessID)
}

// ListSales ventas en orden de inserción.
func (s *Store) ListSales(ctx context.Context, businessID string) ([]*entity.Sale, error) {
	return s.sales.ListByBusiness(ctx, businessID)
}

// ListCreditors montos que el negocio debe.
func (s *Store) ListCreditors(ctx context.Context, businessID string) ([]*entity.Creditor, error) {
	return s.debts.ListByBusiness(ctx, businessID, entity.DebtOwedByBusiness)
}

// ListDebtors montos que le deben al negocio.
func (s *Store) ListDebtors(ctx context.Context, businessID string) ([]*entity.Debtor, error) {
	return s.debts.ListByBusiness(ctx, businessID, entity.DebtOwedToBusiness)
}

// ListStaff personal del negocio.
func (s *Store) ListStaff(ctx context.Context, businessID string) ([]*entity.StaffMember, error) {
	return s.staff.ListByBusiness(ctx, businessID)
}

// Snapshot copia completa del estado del negocio para las derivaciones. Se lee en una sola
// vista consistente, así stock y ventas de la misma respuesta siempre cuadran.
func (s *Store) Snapshot(ctx context.Context, businessID string) (insight.Snapshot, error) {
	var snap insight.Snapshot
	err := s.tx.View(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		debtRepo repository.DebtRepository,
		staffRepo repository.StaffRepository,
	) error {
		products, err := productRepo.ListByBusiness(ctx, businessID)
		if err != nil {
			return err
		}
		sales, err := saleRepo.ListByBusiness(ctx, businessID)
		if err != nil {
			return err
		}
		creditors, err := debtRepo.ListByBusiness(ctx, businessID, entity.DebtOwedByBusiness)
		if err != nil {
			return err
		}
		debtors, err := debtRepo.ListByBusiness(ctx, businessID, entity.DebtOwedToBusiness)
		if err != nil {
			return err
		}
		staff, err := staffRepo.ListByBusiness(ctx, businessID)
		if err != nil {
			return err
		}
		snap.Products = deref(products)
		snap.Sales = deref(sales)
		snap.Creditors = deref(creditors)
		snap.Debtors = deref(debtors)
		snap.Staff = deref(staff)
		return nil
	})
	if err != nil {
		return insight.Snapshot{}, err
	}
	return snap, nil
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
