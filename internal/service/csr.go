package service

import (
	"context"
	"errors"
	"fmt"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"
	"leadsdesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CSRService manages CSR accounts and their permission grants. All
// operations are admin-only; the middleware enforces that before calls
// reach this layer.
type CSRService struct {
	users repository.IUserRepository
}

func NewCSRService(users repository.IUserRepository) *CSRService {
	return &CSRService{users: users}
}

// List returns all CSR accounts, newest first.
func (s *CSRService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.Find(ctx, bson.M{"role": auth.RoleCSR}, newestFirst())
}

// Create provisions a CSR account with an initial permission set,
// stamped with the provisioning admin.
func (s *CSRService) Create(ctx context.Context, adminID primitive.ObjectID, req *model.CreateCSRRequest) (*model.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	perms, err := auth.ParsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleCSR,
		Permissions:  perms,
		CreatedBy:    adminID,
	})
}

// UpdatePermissions replaces a CSR's permission set wholesale.
func (s *CSRService) UpdatePermissions(ctx context.Context, id primitive.ObjectID, raw []string) (*model.User, error) {
	perms, err := auth.ParsePermissions(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != auth.RoleCSR {
		return nil, fmt.Errorf("%w: permissions can only be assigned to csr accounts", errs.ErrInvalidInput)
	}

	if err := s.users.UpdateFields(ctx, id, bson.M{"permissions": perms}); err != nil {
		return nil, err
	}
	user.Permissions = perms
	return user, nil
}

// Delete removes a CSR account. Admin accounts cannot be deleted here.
func (s *CSRService) Delete(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role != auth.RoleCSR {
		return fmt.Errorf("%w: only csr accounts can be deleted", errs.ErrInvalidInput)
	}
	return s.users.Delete(ctx, id)
}

// Catalog lists every grantable permission with its display label.
func (s *CSRService) Catalog() []auth.CatalogEntry {
	return auth.Catalog
}
