package services

import "warehouse-app/utils"

// Session is the identity of the signed-in user. It is built by the auth
// service and passed explicitly to every scoped operation.
type Session struct {
	UserID       uint   `json:"user_id"`
	EmployeeID   uint   `json:"employee_id"`
	Login        string `json:"login"`
	Role         string `json:"role"`
	IsAdmin      bool   `json:"is_admin"`
	WarehouseIDs []uint `json:"warehouse_ids"`
}

// CanAccess reports whether the session may act on the warehouse.
func (s Session) CanAccess(warehouseID uint) bool {
	return s.IsAdmin || utils.ContainsID(s.WarehouseIDs, warehouseID)
}

// scope narrows a requested warehouse filter to what the session may see.
// The second result is false when nothing is visible and the query can be skipped.
// An empty result with true means no filter.
func (s Session) scope(requested []uint) ([]uint, bool) {
	requested = utils.NormalizeIDs(requested)
	if s.IsAdmin {
		return requested, true
	}
	if len(requested) == 0 {
		return s.WarehouseIDs, len(s.WarehouseIDs) > 0
	}
	var allowed []uint
	for _, id := range requested {
		if utils.ContainsID(s.WarehouseIDs, id) {
			allowed = append(allowed, id)
		}
	}
	return allowed, len(allowed) > 0
}
