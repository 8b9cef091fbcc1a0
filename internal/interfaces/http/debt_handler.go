package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
)

// DebtHandler acreedores (lo que el negocio debe) y deudores (lo que le deben).
type DebtHandler struct {
	store *store.Store
}

// NewDebtHandler construye el handler.
func NewDebtHandler(st *store.Store) *DebtHandler {
	return &DebtHandler{store: st}
}

// List godoc
// @Summary      Acreedores, deudores y balance neto
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DebtsResponse
// @Router       /api/debts [get]
func (h *DebtHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	businessID := GetBusinessID(c)
	creditors, err := h.store.ListCreditors(ctx, businessID)
	if err != nil {
		return writeError(c, err)
	}
	debtors, err := h.store.ListDebtors(ctx, businessID)
	if err != nil {
		return writeError(c, err)
	}
	snap := insight.Snapshot{Creditors: values(creditors), Debtors: values(debtors)}
	return c.JSON(dto.DebtsResponse{
		Creditors:  debtResponses(creditors),
		Debtors:    debtResponses(debtors),
		TotalOwed:  insight.TotalOwed(snap),
		TotalOwing: insight.TotalOwing(snap),
		NetBalance: insight.NetDebt(snap),
	})
}

// CreateCreditor godoc
// @Summary      Registrar acreedor
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDebtRequest  true  "name, amount, due_date"
// @Success      201   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/debts/creditors [post]
func (h *DebtHandler) CreateCreditor(c *fiber.Ctx) error {
	return h.create(c, h.store.AddCreditor)
}

// CreateDebtor godoc
// @Summary      Registrar deudor
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDebtRequest  true  "name, amount, due_date"
// @Success      201   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/debts/debtors [post]
func (h *DebtHandler) CreateDebtor(c *fiber.Ctx) error {
	return h.create(c, h.store.AddDebtor)
}

// DeleteCreditor godoc
// @Summary      Eliminar acreedor
// @Tags         debts
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/debts/creditors/{id} [delete]
func (h *DebtHandler) DeleteCreditor(c *fiber.Ctx) error {
	if err := h.store.DeleteCreditor(c.UserContext(), GetBusinessID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteDebtor godoc
// @Summary      Eliminar deudor
// @Tags         debts
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/debts/debtors/{id} [delete]
func (h *DebtHandler) DeleteDebtor(c *fiber.Ctx) error {
	if err := h.store.DeleteDebtor(c.UserContext(), GetBusinessID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addDebtFunc func(ctx context.Context, businessID string, in store.DebtInput) (*entity.Debt, error)

func (h *DebtHandler) create(c *fiber.Ctx, add addDebtFunc) error {
	var in dto.CreateDebtRequest
	if !bind(c, &in) {
		return nil
	}
	d, err := add(c.UserContext(), GetBusinessID(c), store.DebtInput{
		Name:    in.Name,
		Amount:  in.Amount,
		DueDate: in.DueDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDebtResponse(d))
}

func debtResponses(list []*entity.Debt) []dto.DebtResponse {
	out := make([]dto.DebtResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDebtResponse(d))
	}
	return out
}

func values[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
