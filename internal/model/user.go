package model

import (
	"time"

	"leadsdesk/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a principal document. The password digest and reset-token
// fields are load-only: they never serialize outward.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"passwordHash" json:"-"`
	Role             auth.Role          `bson:"role" json:"role"`
	Permissions      []auth.Permission  `bson:"permissions" json:"permissions"`
	CreatedBy        primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	ResetTokenHash   string             `bson:"resetTokenHash,omitempty" json:"-"`
	ResetTokenExpiry time.Time          `bson:"resetTokenExpiry,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Principal resolves the authorization identity from the persisted
// document. Called on every authenticated request.
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}

// UserResponse is the outward representation of a principal (credential
// fields excluded).
type UserResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        auth.Role         `json:"role"`
	Permissions []auth.Permission `json:"permissions"`
	CreatedBy   string            `json:"createdBy,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToResponse converts a User to its outward shape, reporting the
// effective permission set (full catalog for admins).
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Principal().EffectivePermissions(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if !u.CreatedBy.IsZero() {
		resp.CreatedBy = u.CreatedBy.Hex()
	}
	return resp
}
