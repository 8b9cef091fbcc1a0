package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/application/subscription"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/excel"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/salesflow-api/internal/interfaces/http"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

// testEnv API completa sobre el driver en memoria.
type testEnv struct {
	app      *fiber.App
	planTime time.Time // reloj de la suscripción
}

func newTestEnv(t *testing.T, enforcePlan bool) *testEnv {
	t.Helper()
	env := &testEnv{planTime: time.Now()}
	db := memory.NewDB()
	users := memory.NewUserRepository(db)

	subUC := subscription.New(memory.NewSubscriptionRepository(db), nil).
		WithClock(func() time.Time { return env.planTime })
	authUC := auth.NewAuthUseCase(users, users, subUC, memory.NewTokenDenylist(), auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "salesflow-test",
	}, nil)
	authUC.SetHashCost(bcrypt.MinCost)

	st := store.New(store.Deps{
		Products: memory.NewProductRepository(db),
		Sales:    memory.NewSaleRepository(db),
		Debts:    memory.NewDebtRepository(db),
		Staff:    memory.NewStaffRepository(db),
		Tx:       memory.NewTxRunner(db),
		Hasher:   store.BcryptHasher{Cost: bcrypt.MinCost},
	})
	dashboardUC := analytics.NewDashboardUseCase(st, analytics.Settings{
		LowStockThreshold: 10,
		CostRatio:         decimal.RequireFromString("0.7"),
		Currency:          "GHS",
		Language:          language.English,
	}, pdf.NewMarotoPDFGenerator(), excel.NewSalesExporter())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		Store:          st,
		DashboardUC:    dashboardUC,
		SubscriptionUC: subUC,
		VoiceUC:        usecase.NewVoiceUseCase(nil, st, 10, nil),
		AppName:        "salesflow-test",
		EnforcePlan:    enforcePlan,
	})
	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) signUp(t *testing.T, email string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": email, "password": "secret-123", "business_name": "Ama Stores",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp).Token
}

func (e *testEnv) login(t *testing.T, email, password string) *http.Response {
	t.Helper()
	return e.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": password})
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestAuth_SignUpSessionLogout(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.signUp(t, "Ama@Example.com")

	resp := env.do(t, http.MethodGet, "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, "admin", session.Role)
	assert.Equal(t, "Ama Stores", session.BusinessName)
	assert.Equal(t, "ama@example.com", session.Email)

	resp = env.do(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": "ama@example.com", "password": "secret-123", "business_name": "Otro",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.login(t, "ama@example.com", "wrong-pass")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_SignUpValidation(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"email": "not-an-email", "password": "secret-123", "business_name": "Ama Stores",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "email", body.Field)
}

func TestProductsAndSales_RiceScenario(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.signUp(t, "ama@example.com")

	resp := env.do(t, http.MethodPost, "/api/products", token, fiber.Map{
		"name": "Rice 5kg", "unit_price": "50", "quantity": 20, "category": "Grains",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rice := decode[dto.ProductResponse](t, resp)
	assert.True(t, rice.StockValue.Equal(decimal.NewFromInt(1000)))
	assert.False(t, rice.LowStock)

	resp = env.do(t, http.MethodPost, "/api/sales", token, fiber.Map{"product_id": rice.ID, "quantity": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "Rice 5kg", sale.ProductName)
	assert.True(t, sale.Amount.Equal(decimal.NewFromInt(250)))

	products := decode[[]dto.ProductResponse](t, env.do(t, http.MethodGet, "/api/products", token, nil))
	require.Len(t, products, 1)
	assert.Equal(t, 15, products[0].Quantity)

	summary := decode[dto.DashboardSummaryDTO](t, env.do(t, http.MethodGet, "/api/dashboard/summary", token, nil))
	assert.True(t, summary.StockBalance.Equal(decimal.NewFromInt(750)))
	assert.True(t, summary.TodaySales.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 1, summary.SalesCount)

	resp = env.do(t, http.MethodPost, "/api/sales", token, fiber.Map{"product_id": rice.ID, "quantity": 16})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/sales", token, fiber.Map{"product_id": "missing", "quantity": 1})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/sales", token, fiber.Map{"product_id": rice.ID, "quantity": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "quantity", decode[dto.ErrorResponse](t, resp).Field)

	resp = env.do(t, http.MethodPut, "/api/products/"+rice.ID, token, fiber.Map{"quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ProductResponse](t, resp).LowStock)

	resp = env.do(t, http.MethodPut, "/api/products/missing", token, fiber.Map{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/products/"+rice.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	sales := decode[[]dto.SaleResponse](t, env.do(t, http.MethodGet, "/api/sales", token, nil))
	require.Len(t, sales, 1, "la venta sobrevive al borrado del producto")
	assert.Empty(t, sales[0].ProductName)
}

func TestDebts_NetBalance(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.signUp(t, "ama@example.com")

	resp := env.do(t, http.MethodPost, "/api/debts/creditors", token, fiber.Map{"name": "Supplier A", "amount": "500"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	creditor := decode[dto.DebtResponse](t, resp)

	resp = env.do(t, http.MethodPost, "/api/debts/debtors", token, fiber.Map{"name": "Kofi", "amount": "150", "due_date": "2026-04-30"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/debts/debtors", token, fiber.Map{"name": "Kofi", "amount": "150", "due_date": "30/04/2026"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	debts := decode[dto.DebtsResponse](t, env.do(t, http.MethodGet, "/api/debts", token, nil))
	assert.True(t, debts.NetBalance.Equal(decimal.NewFromInt(-350)))
	assert.Len(t, debts.Creditors, 1)
	assert.Len(t, debts.Debtors, 1)

	resp = env.do(t, http.MethodDelete, "/api/debts/creditors/"+creditor.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	debts = decode[dto.DebtsResponse](t, env.do(t, http.MethodGet, "/api/debts", token, nil))
	assert.True(t, debts.NetBalance.Equal(decimal.NewFromInt(150)))
}

func TestStaff_RolesAndDeactivation(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signUp(t, "ama@example.com")

	resp := env.do(t, http.MethodPost, "/api/products", admin, fiber.Map{"name": "Sugar", "unit_price": "12", "quantity": 40})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sugar := decode[dto.ProductResponse](t, resp)

	resp = env.do(t, http.MethodPost, "/api/staff", admin, fiber.Map{
		"name": "Yaw", "email": "yaw@example.com", "role": "cajero", "password": "caja-1234",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	member := decode[dto.StaffResponse](t, resp)
	assert.Equal(t, "active", member.Status)

	resp = env.login(t, "yaw@example.com", "caja-1234")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	staff := decode[dto.AuthResponse](t, resp)
	assert.Equal(t, "staff", staff.Session.Role)

	resp = env.do(t, http.MethodPost, "/api/products", staff.Token, fiber.Map{"name": "Oil", "unit_price": "30", "quantity": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/staff", staff.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/subscription", staff.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/sales", staff.Token, fiber.Map{"product_id": sugar.ID, "quantity": 2})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "el personal registra ventas del negocio del admin")
	resp = env.do(t, http.MethodGet, "/api/products", staff.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[[]dto.StaffResponse](t, env.do(t, http.MethodGet, "/api/staff", admin, nil))
	require.Len(t, list, 1)

	resp = env.do(t, http.MethodPost, "/api/staff/"+member.ID+"/password", admin, fiber.Map{"password": "nueva-1234"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, env.login(t, "yaw@example.com", "caja-1234").StatusCode)
	assert.Equal(t, http.StatusOK, env.login(t, "yaw@example.com", "nueva-1234").StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/staff/"+member.ID+"/status", admin, fiber.Map{"status": "inactive"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "inactive", decode[dto.StaffResponse](t, resp).Status)

	assert.Equal(t, http.StatusForbidden, env.login(t, "yaw@example.com", "nueva-1234").StatusCode)
	resp = env.do(t, http.MethodGet, "/api/products", staff.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "la sesión abierta deja de valer")

	resp = env.do(t, http.MethodPatch, "/api/staff/missing/status", admin, fiber.Map{"status": "inactive"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInsightsAndReports(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.signUp(t, "ama@example.com")

	insights := decode[[]dto.InsightDTO](t, env.do(t, http.MethodGet, "/api/insights", token, nil))
	assert.NotEmpty(t, insights)

	resp := env.do(t, http.MethodPost, "/api/products", token, fiber.Map{"name": "Rice 5kg", "unit_price": "50", "quantity": 20})
	rice := decode[dto.ProductResponse](t, resp)
	env.do(t, http.MethodPost, "/api/sales", token, fiber.Map{"product_id": rice.ID, "quantity": 5})

	resp = env.do(t, http.MethodGet, "/api/sales/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx es un zip")

	resp = env.do(t, http.MethodGet, "/api/reports/business.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, _ = io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestSubscription_PlanEnforcement(t *testing.T) {
	env := newTestEnv(t, true)
	token := env.signUp(t, "ama@example.com")

	sub := decode[dto.SubscriptionResponse](t, env.do(t, http.MethodGet, "/api/subscription", token, nil))
	assert.Equal(t, "trial", sub.Status)
	assert.Equal(t, 30, sub.DaysRemaining)

	env.planTime = env.planTime.Add(31 * 24 * time.Hour)
	resp := env.do(t, http.MethodPost, "/api/products", token, fiber.Map{"name": "Sugar", "unit_price": "12", "quantity": 40})
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "PLAN_EXPIRED", decode[dto.ErrorResponse](t, resp).Code)
	resp = env.do(t, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "las lecturas siguen disponibles")

	resp = env.do(t, http.MethodPost, "/api/subscription/activate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", decode[dto.SubscriptionResponse](t, resp).Status)

	resp = env.do(t, http.MethodPost, "/api/products", token, fiber.Map{"name": "Sugar", "unit_price": "12", "quantity": 40})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestVoice_InterpretAndCommitByRole(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signUp(t, "ama@example.com")

	resp := env.do(t, http.MethodPost, "/api/voice/interpret", admin, fiber.Map{"transcript": "Rice 5kg, quantity 10, price 25 GHS"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft := decode[dto.VoiceResponse](t, resp)
	assert.Equal(t, "product", draft.Draft.Intent)
	assert.Equal(t, "rules", draft.Draft.Source)
	assert.Nil(t, draft.Product)

	resp = env.do(t, http.MethodPost, "/api/voice/interpret", admin, fiber.Map{"transcript": "Rice 5kg, quantity 10, price 25 GHS", "commit": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, decode[dto.VoiceResponse](t, resp).Product)

	env.do(t, http.MethodPost, "/api/staff", admin, fiber.Map{
		"name": "Yaw", "email": "yaw@example.com", "password": "caja-1234",
	})
	staff := decode[dto.AuthResponse](t, env.login(t, "yaw@example.com", "caja-1234"))

	resp = env.do(t, http.MethodPost, "/api/voice/interpret", staff.Token, fiber.Map{"transcript": "Beans, quantity 3, price 8", "commit": true})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/voice/interpret", staff.Token, fiber.Map{"transcript": "sold 4 Rice 5kg", "commit": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sale := decode[dto.VoiceResponse](t, resp).Sale
	require.NotNil(t, sale)
	assert.True(t, sale.Amount.Equal(decimal.NewFromInt(100)))
}
