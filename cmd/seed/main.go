// seed crea (o reutiliza) un negocio en PostgreSQL y carga su inventario inicial desde un CSV.
//
// Uso: go run ./cmd/seed -email admin@tienda.com -password secreto123 -business "Tienda" -csv productos.csv
// Con -demo agrega además ventas, acreedores y deudores de ejemplo.
// Lee la conexión de las mismas variables que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/application/subscription"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/salesflow-api/pkg/config"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "correo del administrador")
	password := flag.String("password", "", "contraseña del administrador (solo si se crea)")
	business := flag.String("business", "", "nombre del negocio (solo si se crea)")
	csvPath := flag.String("csv", "", "ruta del catálogo de productos")
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8, windows-1252 o iso-8859-1")
	demo := flag.Bool("demo", false, "agregar ventas y deudas de ejemplo")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email es obligatorio")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("APP_TIMEZONE inválido")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración")
	}

	users := postgres.NewUserRepository(pool)
	st := store.New(store.Deps{
		Products: postgres.NewProductRepository(pool),
		Sales:    postgres.NewSaleRepository(pool),
		Debts:    postgres.NewDebtRepository(pool),
		Staff:    postgres.NewStaffRepository(pool),
		Tx:       postgres.NewTxRunner(pool),
		Logger:   log,
		Location: loc,
	})
	subscriptionUC := subscription.New(postgres.NewSubscriptionRepository(pool), log)
	// El token emitido al registrar se descarta; el secreto solo tiene que ser no vacío.
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "seed"
	}
	authUC := auth.NewAuthUseCase(users, users, subscriptionUC, memory.NewTokenDenylist(), auth.JWTConfig{
		Secret:     secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	businessID, err := ensureAdmin(ctx, users, authUC, *email, *password, *business)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("preparar administrador")
	}
	log.Info().Str("business_id", businessID).Msg("negocio listo")

	var products []string
	if *csvPath != "" {
		products, err = importCatalog(ctx, st, businessID, *csvPath, *encoding)
		if err != nil {
			log.Fatal().Err(err).Str("csv", *csvPath).Msg("importar catálogo")
		}
		log.Info().Int("productos", len(products)).Msg("catálogo importado")
	}

	if *demo {
		if err := seedDemo(ctx, st, businessID, products); err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		log.Info().Msg("datos de ejemplo cargados")
	}
}

type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ensureAdmin devuelve el negocio del usuario si ya existe; si no, lo registra como administrador.
func ensureAdmin(ctx context.Context, users userFinder, authUC *auth.AuthUseCase, email, password, business string) (string, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u != nil {
		if u.Role != entity.RoleAdmin {
			return "", fmt.Errorf("%s no es administrador", email)
		}
		return u.BusinessID, nil
	}
	res, err := authUC.SignUp(ctx, dto.SignUpRequest{
		Email:        email,
		Password:     password,
		BusinessName: business,
	})
	if err != nil {
		return "", err
	}
	return res.Session.BusinessID, nil
}

func importCatalog(ctx context.Context, st *store.Store, businessID, path, encoding string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := catalogReader(f, encoding)
	if err != nil {
		return nil, err
	}
	items, err := parseCatalog(r)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, in := range items {
		p, err := st.AddProduct(ctx, businessID, in)
		if err != nil {
			return ids, fmt.Errorf("%s: %w", in.Name, err)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// seedDemo registra una venta de una unidad por producto y un par de deudas.
func seedDemo(ctx context.Context, st *store.Store, businessID string, productIDs []string) error {
	products, err := st.ListProducts(ctx, businessID)
	if err != nil {
		return err
	}
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	for _, p := range products {
		if _, ok := wanted[p.ID]; !ok || p.Quantity == 0 {
			continue
		}
		if _, err := st.AddSale(ctx, businessID, store.SaleInput{
			ProductID: p.ID,
			Quantity:  1,
			Amount:    p.UnitPrice,
		}); err != nil {
			return fmt.Errorf("venta de %s: %w", p.Name, err)
		}
	}

	due := st.Today()
	if _, err := st.AddCreditor(ctx, businessID, store.DebtInput{
		Name:    "Proveedor mayorista",
		Amount:  decimal.NewFromInt(500),
		DueDate: due,
	}); err != nil {
		return err
	}
	_, err = st.AddDebtor(ctx, businessID, store.DebtInput{
		Name:   "Cliente frecuente",
		Amount: decimal.NewFromInt(150),
	})
	return err
}
