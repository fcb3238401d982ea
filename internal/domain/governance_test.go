package domain

import (
	"errors"
	"strings"
	"testing"
)

func validScope() GovernanceContext {
	return GovernanceContext{
		TenantID:     "ten-1",
		BranchID:     "br-1",
		CostCenterID: "cc-1",
		WarehouseID:  "wh-1",
		ActingUserID: "user-1",
	}
}

func TestGovernanceContextValidate(t *testing.T) {
	t.Parallel()

	t.Run("complete scope passes", func(t *testing.T) {
		if err := validScope().Validate(true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("warehouse optional unless required", func(t *testing.T) {
		scope := validScope()
		scope.WarehouseID = ""

		if err := scope.Validate(false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		err := scope.Validate(true)

		var gv *GovernanceViolation
		if !errors.As(err, &gv) {
			t.Fatalf("expected GovernanceViolation, got %v", err)
		}

		if gv.Field != "warehouse_id" {
			t.Fatalf("expected warehouse_id violation, got %q", gv.Field)
		}
	})

	t.Run("names the first missing field", func(t *testing.T) {
		cases := []struct {
			clear func(*GovernanceContext)
			field string
		}{
			{func(g *GovernanceContext) { g.TenantID = "" }, "tenant_id"},
			{func(g *GovernanceContext) { g.BranchID = "" }, "branch_id"},
			{func(g *GovernanceContext) { g.CostCenterID = "" }, "cost_center_id"},
			{func(g *GovernanceContext) { g.ActingUserID = "" }, "acting_user_id"},
		}

		for _, tc := range cases {
			scope := validScope()
			tc.clear(&scope)

			err := scope.Validate(false)

			var gv *GovernanceViolation
			if !errors.As(err, &gv) {
				t.Fatalf("expected GovernanceViolation, got %v", err)
			}

			if gv.Field != tc.field {
				t.Fatalf("expected %q violation, got %q", tc.field, gv.Field)
			}
		}
	})
}

func TestSanitizeScopeFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips or-null escape",
			in:   "tenant_id = $1 OR tenant_id IS NULL",
			want: "tenant_id = $1",
		},
		{
			name: "strips qualified branch escape",
			in:   "d.branch_id = $2 OR d.branch_id IS NULL AND status = 'pending'",
			want: "d.branch_id = $2 AND status = 'pending'",
		},
		{
			name: "case insensitive",
			in:   "cost_center_id = $3 or COST_CENTER_ID is null",
			want: "cost_center_id = $3",
		},
		{
			name: "plain filter untouched",
			in:   "warehouse_id = $4 AND fiscal_year = 2025",
			want: "warehouse_id = $4 AND fiscal_year = 2025",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := strings.TrimSpace(SanitizeScopeFilter(tc.in))
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
