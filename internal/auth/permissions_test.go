package auth

import (
	"errors"
	"testing"

	"leadsdesk/internal/errs"
)

func TestParsePermissions(t *testing.T) {
	t.Parallel()

	perms, err := ParsePermissions([]string{"view_leads", "create_sales"})
	if err != nil {
		t.Fatalf("ParsePermissions: %v", err)
	}
	if len(perms) != 2 || perms[0] != PermViewLeads || perms[1] != PermCreateSales {
		t.Fatalf("perms=%v", perms)
	}

	if _, err := ParsePermissions([]string{"view_leads", "drop_tables"}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("unknown permission: err=%v, want ErrInvalidInput", err)
	}

	empty, err := ParsePermissions(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("nil input: perms=%v err=%v", empty, err)
	}
}

func TestPermissionValid(t *testing.T) {
	t.Parallel()

	if !PermDeleteLeads.Valid() {
		t.Fatalf("catalog permission reported invalid")
	}
	if Permission("admin_everything").Valid() {
		t.Fatalf("non-catalog permission reported valid")
	}
}
