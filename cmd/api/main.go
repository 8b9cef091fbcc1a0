package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/application/subscription"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	infraai "github.com/jhoicas/salesflow-api/internal/infrastructure/ai"
	infraexcel "github.com/jhoicas/salesflow-api/internal/infrastructure/excel"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/salesflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/salesflow-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/salesflow-api/internal/interfaces/http"
	"github.com/jhoicas/salesflow-api/pkg/config"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// backend repositorios del driver elegido.
type backend struct {
	products      repository.ProductRepository
	sales         repository.SaleRepository
	debts         repository.DebtRepository
	staff         repository.StaffRepository
	users         repository.UserRepository
	profiles      repository.ProfileRepository
	subscriptions repository.SubscriptionRepository
	tx            store.TxRunner
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("APP_TIMEZONE inválido")
	}

	ctx := context.Background()
	be := openBackend(ctx, cfg, log)
	defer be.close()

	denylist, closeDenylist := openDenylist(ctx, cfg, log)
	defer closeDenylist()

	st := store.New(store.Deps{
		Products: be.products,
		Sales:    be.sales,
		Debts:    be.debts,
		Staff:    be.staff,
		Tx:       be.tx,
		Logger:   log.Component("store"),
		Location: loc,
	})

	subscriptionUC := subscription.New(be.subscriptions, log.Component("subscription"))
	authUC := auth.NewAuthUseCase(be.users, be.profiles, subscriptionUC, denylist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	authLog := log.Component("session")
	authUC.OnSessionChange(func(e auth.Event, s entity.Session) {
		authLog.Info().
			Str("event", string(e)).
			Str("user_id", s.UserID).
			Str("business_id", s.BusinessID).
			Str("role", s.Role).
			Msg("cambio de sesión")
	})

	dashboardUC := appanalytics.NewDashboardUseCase(st, appanalytics.Settings{
		LowStockThreshold: cfg.Store.LowStockThreshold,
		CostRatio:         cfg.Store.CostRatio,
		Currency:          cfg.Store.Currency,
		Language:          cfg.App.Locale,
	}, infrapdf.NewMarotoPDFGenerator(), infraexcel.NewSalesExporter())

	voiceUC := usecase.NewVoiceUseCase(interpreter(cfg.AI, log), st, cfg.Store.LowStockThreshold, log.Component("voice"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SalesFlow API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Store:          st,
		DashboardUC:    dashboardUC,
		SubscriptionUC: subscriptionUC,
		VoiceUC:        voiceUC,
		AppName:        cfg.App.Name,
		EnforcePlan:    cfg.Plan.Enforced,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) backend {
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración")
		}
		users := postgres.NewUserRepository(pool)
		return backend{
			products:      postgres.NewProductRepository(pool),
			sales:         postgres.NewSaleRepository(pool),
			debts:         postgres.NewDebtRepository(pool),
			staff:         postgres.NewStaffRepository(pool),
			users:         users,
			profiles:      users,
			subscriptions: postgres.NewSubscriptionRepository(pool),
			tx:            postgres.NewTxRunner(pool),
			close:         pool.Close,
		}
	}

	log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
	db := memory.NewDB()
	users := memory.NewUserRepository(db)
	return backend{
		products:      memory.NewProductRepository(db),
		sales:         memory.NewSaleRepository(db),
		debts:         memory.NewDebtRepository(db),
		staff:         memory.NewStaffRepository(db),
		users:         users,
		profiles:      users,
		subscriptions: memory.NewSubscriptionRepository(db),
		tx:            memory.NewTxRunner(db),
		close:         func() {},
	}
}

func openDenylist(ctx context.Context, cfg *config.Config, log *logger.Logger) (auth.TokenDenylist, func()) {
	if cfg.Redis.Addr == "" {
		return memory.NewTokenDenylist(), func() {}
	}
	client, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}
	return infraredis.NewTokenDenylist(client), func() { _ = client.Close() }
}

// interpreter LLM para dictados; nil si no hay proveedor configurado.
func interpreter(cfg config.AIConfig, log *logger.Logger) ports.TranscriptInterpreter {
	provider := cfg.ResolvedProvider()
	log.Info().Str("provider", provider).Msg("intérprete de dictados")
	switch provider {
	case config.AIProviderAnthropic:
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case config.AIProviderGemini:
		return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil
	}
}
