// Package authz concentra la única verificación de permisos por rol de la aplicación.
// Las rutas HTTP la consumen vía RequireAction; el Store no conoce roles.
package authz

import "github.com/jhoicas/salesflow-api/internal/domain/entity"

// Action operación protegida.
type Action string

// Acciones conocidas.
const (
	InventoryRead      Action = "inventory:read"
	InventoryWrite     Action = "inventory:write"
	SalesRead          Action = "sales:read"
	SalesWrite         Action = "sales:write"
	DebtsRead          Action = "debts:read"
	DebtsWrite         Action = "debts:write"
	InsightsRead       Action = "insights:read"
	StaffManage        Action = "staff:manage"
	SubscriptionManage Action = "subscription:manage"
)

// staffActions lo que puede hacer un usuario staff. El admin puede todo.
var staffActions = map[Action]bool{
	InventoryRead: true,
	SalesRead:     true,
	SalesWrite:    true,
	DebtsRead:     true,
	InsightsRead:  true,
}

// Can informa si el rol puede ejecutar la acción. Roles desconocidos no pueden nada.
func Can(role string, action Action) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleStaff:
		return staffActions[action]
	default:
		return false
	}
}
