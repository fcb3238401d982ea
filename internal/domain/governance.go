package domain

import (
	"fmt"
	"regexp"
)

// GovernanceContext carries the scope identifiers that every record written
// by the engine must belong to. It is immutable; construct a new value
// instead of mutating fields after validation.
type GovernanceContext struct {
	TenantID     string
	BranchID     string
	CostCenterID string
	WarehouseID  string
	ActingUserID string
}

// GovernanceViolation reports a missing scope field. Callers must treat it
// as fatal to the operation, never catch-and-continue.
type GovernanceViolation struct {
	Field string
}

func (e *GovernanceViolation) Error() string {
	return fmt.Sprintf("governance violation: missing scope field %q", e.Field)
}

// Validate checks that every scope field required by the operation is set.
// Warehouse is only mandatory for inventory and financial-refund operations;
// those callers pass requireWarehouse=true.
func (g GovernanceContext) Validate(requireWarehouse bool) error {
	if g.TenantID == "" {
		return &GovernanceViolation{Field: "tenant_id"}
	}

	if g.BranchID == "" {
		return &GovernanceViolation{Field: "branch_id"}
	}

	if g.CostCenterID == "" {
		return &GovernanceViolation{Field: "cost_center_id"}
	}

	if requireWarehouse && g.WarehouseID == "" {
		return &GovernanceViolation{Field: "warehouse_id"}
	}

	if g.ActingUserID == "" {
		return &GovernanceViolation{Field: "acting_user_id"}
	}

	return nil
}

// nullEscapeRe matches "OR <scope field> IS NULL" style clauses, with or
// without a table qualifier, in any casing.
var nullEscapeRe = regexp.MustCompile(
	`(?i)\s*(?:OR|AND)?\s*\(?\s*(?:\w+\.)?(tenant_id|branch_id|cost_center_id|warehouse_id)\s+IS\s+NULL\s*\)?`)

// SanitizeScopeFilter strips clauses of the shape "scope_field IS NULL" from
// a raw filter expression. Such clauses widen a scoped query into a
// cross-tenant or cross-branch read; they are removed unconditionally. The
// type system keeps scope fields non-optional, this is defense in depth for
// filter strings assembled outside the engine.
func SanitizeScopeFilter(expr string) string {
	return nullEscapeRe.ReplaceAllString(expr, " ")
}
