package store

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error no queda nada escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
	RunStaff(ctx context.Context, fn func(
		staffRepo repository.StaffRepository,
		userRepo repository.UserRepository,
	) error) error
	// View ejecuta fn sobre una vista consistente de solo lectura: ninguna escritura
	// concurrente queda a medias entre una lectura y la siguiente. fn no debe escribir.
	View(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		debtRepo repository.DebtRepository,
		staffRepo repository.StaffRepository,
	) error) error
}

// PasswordHasher abstrae bcrypt para poder bajar el costo en tests.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
