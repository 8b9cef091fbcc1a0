package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/application/subscription"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Store          *store.Store
	DashboardUC    *appanalytics.DashboardUseCase
	SubscriptionUC *subscription.UseCase
	VoiceUC        *usecase.VoiceUseCase
	AppName        string
	EnforcePlan    bool // bloquear escrituras con el plan vencido
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/signup", authHandler.SignUp)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/session", authHandler.Session)

	writes := []fiber.Handler{}
	if deps.EnforcePlan {
		writes = append(writes, RequireActivePlan(deps.SubscriptionUC))
	}
	guard := func(action authz.Action, h fiber.Handler) []fiber.Handler {
		hs := append([]fiber.Handler{RequireAction(action)}, writes...)
		return append(hs, h)
	}

	threshold := deps.DashboardUC.Settings().LowStockThreshold

	// Products
	productHandler := NewProductHandler(deps.Store, threshold)
	protected.Get("/products", RequireAction(authz.InventoryRead), productHandler.List)
	protected.Post("/products", guard(authz.InventoryWrite, productHandler.Create)...)
	protected.Put("/products/:id", guard(authz.InventoryWrite, productHandler.Update)...)
	protected.Delete("/products/:id", guard(authz.InventoryWrite, productHandler.Delete)...)

	// Sales
	saleHandler := NewSaleHandler(deps.Store, deps.DashboardUC)
	protected.Get("/sales", RequireAction(authz.SalesRead), saleHandler.List)
	protected.Get("/sales/export", RequireAction(authz.SalesRead), saleHandler.Export)
	protected.Post("/sales", guard(authz.SalesWrite, saleHandler.Create)...)

	// Debts
	debtHandler := NewDebtHandler(deps.Store)
	protected.Get("/debts", RequireAction(authz.DebtsRead), debtHandler.List)
	protected.Post("/debts/creditors", guard(authz.DebtsWrite, debtHandler.CreateCreditor)...)
	protected.Delete("/debts/creditors/:id", guard(authz.DebtsWrite, debtHandler.DeleteCreditor)...)
	protected.Post("/debts/debtors", guard(authz.DebtsWrite, debtHandler.CreateDebtor)...)
	protected.Delete("/debts/debtors/:id", guard(authz.DebtsWrite, debtHandler.DeleteDebtor)...)

	// Staff (solo admin)
	staffHandler := NewStaffHandler(deps.Store)
	protected.Get("/staff", RequireAction(authz.StaffManage), staffHandler.List)
	protected.Post("/staff", guard(authz.StaffManage, staffHandler.Create)...)
	protected.Patch("/staff/:id/status", guard(authz.StaffManage, staffHandler.UpdateStatus)...)
	protected.Post("/staff/:id/password", guard(authz.StaffManage, staffHandler.ResetPassword)...)

	// Dashboard, insights y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", RequireAction(authz.InsightsRead), dashboardHandler.GetSummary)
	protected.Get("/insights", RequireAction(authz.InsightsRead), dashboardHandler.GetInsights)
	protected.Get("/reports/business.pdf", RequireAction(authz.InsightsRead), dashboardHandler.BusinessReport)

	// Subscription (activar nunca se bloquea por plan vencido)
	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	protected.Get("/subscription", RequireAction(authz.SubscriptionManage), subscriptionHandler.Get)
	protected.Post("/subscription/activate", RequireAction(authz.SubscriptionManage), subscriptionHandler.Activate)

	// Voz: el permiso depende de la intención detectada (ver VoiceHandler).
	voiceHandler := NewVoiceHandler(deps.VoiceUC)
	voiceChain := append(append([]fiber.Handler{}, writes...), voiceHandler.Interpret)
	protected.Post("/voice/interpret", voiceChain...)
}
