package auth

import (
	"fmt"

	"leadsdesk/internal/errs"
)

// Permission is a named capability assignable to CSR accounts.
type Permission string

const (
	PermViewLeads   Permission = "view_leads"
	PermCreateLeads Permission = "create_leads"
	PermEditLeads   Permission = "edit_leads"
	PermDeleteLeads Permission = "delete_leads"
	PermViewSales   Permission = "view_sales"
	PermCreateSales Permission = "create_sales"
)

// CatalogEntry pairs a permission with its display label.
type CatalogEntry struct {
	Value Permission `json:"value"`
	Label string     `json:"label"`
}

// Catalog is the fixed set of assignable permissions. Values outside it
// are rejected at write time.
var Catalog = []CatalogEntry{
	{Value: PermViewLeads, Label: "View Leads"},
	{Value: PermCreateLeads, Label: "Create Leads"},
	{Value: PermEditLeads, Label: "Edit Leads"},
	{Value: PermDeleteLeads, Label: "Delete Leads"},
	{Value: PermViewSales, Label: "View Sales"},
	{Value: PermCreateSales, Label: "Create Sales"},
}

// AllPermissions returns every permission in the catalog.
func AllPermissions() []Permission {
	perms := make([]Permission, len(Catalog))
	for i, e := range Catalog {
		perms[i] = e.Value
	}
	return perms
}

// Valid reports whether p is part of the catalog.
func (p Permission) Valid() bool {
	for _, e := range Catalog {
		if e.Value == p {
			return true
		}
	}
	return false
}

// ParsePermissions validates raw permission names against the catalog.
func ParsePermissions(raw []string) ([]Permission, error) {
	perms := make([]Permission, 0, len(raw))
	for _, v := range raw {
		p := Permission(v)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown permission %q", errs.ErrInvalidInput, v)
		}
		perms = append(perms, p)
	}
	return perms, nil
}
